package stats

import "time"

// DashboardStats is the derived season view. Instances are cached and shared
// between requests, so treat them as immutable after Aggregate returns.
type DashboardStats struct {
	Summary     Summary          `json:"summary"`
	LastMatches []LastMatchEntry `json:"lastMatches"`
	NextMatch   *NextMatchEntry  `json:"nextMatch,omitempty"`
	TopScorers  []ScorerStat     `json:"topScorers"`
	Attendance  []AttendanceStat `json:"attendance"`
}

type Summary struct {
	TotalGames   int `json:"totalGames"`
	Wins         int `json:"wins"`
	Draws        int `json:"draws"`
	Losses       int `json:"losses"`
	GoalsFor     int `json:"goalsFor"`
	GoalsAgainst int `json:"goalsAgainst"`
	WinRate      int `json:"winRate"`
}

type LastMatchEntry struct {
	ID         string    `json:"id"`
	Date       time.Time `json:"date"`
	Location   string    `json:"location"`
	Opponent   string    `json:"opponent"`
	OurScore   int       `json:"ourScore"`
	TheirScore int       `json:"theirScore"`
	Result     string    `json:"result"`
	Scorers    []string  `json:"scorers"`
}

type NextMatchEntry struct {
	ID       string    `json:"id"`
	Date     time.Time `json:"date"`
	Location string    `json:"location"`
	Opponent string    `json:"opponent"`
}

// MatchRef marks when something last happened and against whom.
type MatchRef struct {
	Date     time.Time `json:"date"`
	Opponent string    `json:"opponent"`
}

type ScorerStat struct {
	PlayerID      string    `json:"id"`
	Name          string    `json:"name"`
	Nickname      string    `json:"nickname,omitempty"`
	Photo         string    `json:"photo,omitempty"`
	Goals         int       `json:"goals"`
	FreeKickGoals int       `json:"freeKickGoals"`
	PenaltyGoals  int       `json:"penaltyGoals"`
	HatTricks     int       `json:"hatTricks"`
	Doubles       int       `json:"doubles"`
	CurrentStreak int       `json:"currentStreak"`
	MaxStreak     int       `json:"maxStreak"`
	MatchesPlayed int       `json:"matchesPlayed"`
	LastGoal      *MatchRef `json:"lastGoal,omitempty"`
}

type AttendanceStat struct {
	PlayerID     string    `json:"id"`
	Name         string    `json:"name"`
	Nickname     string    `json:"nickname,omitempty"`
	Photo        string    `json:"photo,omitempty"`
	PresentCount int       `json:"presentCount"`
	Percentage   int       `json:"percentage"`
	LastMatch    *MatchRef `json:"lastMatch,omitempty"`
}

// Zero is the defined result for a team with no resolvable season: every
// number zero, every list empty, never nil lists so JSON stays shaped.
func Zero() DashboardStats {
	return DashboardStats{
		LastMatches: []LastMatchEntry{},
		TopScorers:  []ScorerStat{},
		Attendance:  []AttendanceStat{},
	}
}
