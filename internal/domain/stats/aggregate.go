package stats

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/futstats/team-manager/internal/domain/match"
	"github.com/futstats/team-manager/internal/domain/season"
)

const lastMatchesLimit = 5

// Input carries everything Aggregate needs, already materialized. Matches
// must have goals (player join) and PresentCount populated; Goals must carry
// the player join; Presences must be confirmed rows only.
type Input struct {
	Matches   []match.Match
	Goals     []match.Goal
	Presences []match.Presence
	Roster    []season.RosterEntry
	Now       time.Time
}

// Aggregate turns a season's raw records into DashboardStats. Pure and
// deterministic: no I/O, no clock reads beyond Input.Now.
//
// Only played matches (at least one confirmed presence) count toward the
// summary, scorer and attendance tables. Unplayed fixtures stay eligible as
// the next match.
func Aggregate(in Input) DashboardStats {
	ascending := make([]match.Match, len(in.Matches))
	copy(ascending, in.Matches)
	sort.SliceStable(ascending, func(i, j int) bool {
		return ascending[i].Date.Before(ascending[j].Date)
	})

	played := make([]match.Match, 0, len(ascending))
	playedByID := make(map[string]match.Match, len(ascending))
	for _, m := range ascending {
		if m.Played() {
			played = append(played, m)
			playedByID[m.ID] = m
		}
	}

	out := Zero()
	out.Summary = summarize(played)
	out.LastMatches = lastMatches(played)
	out.NextMatch = nextMatch(ascending, in.Now)
	out.TopScorers = scorerTable(in, played, playedByID)
	out.Attendance = attendanceTable(in, played, playedByID)
	return out
}

func summarize(played []match.Match) Summary {
	s := Summary{TotalGames: len(played)}
	for _, m := range played {
		s.GoalsFor += m.OurScore
		s.GoalsAgainst += m.TheirScore
		switch m.Result() {
		case match.ResultWin:
			s.Wins++
		case match.ResultLoss:
			s.Losses++
		default:
			s.Draws++
		}
	}
	s.WinRate = percent(s.Wins, s.TotalGames)
	return s
}

func lastMatches(played []match.Match) []LastMatchEntry {
	out := make([]LastMatchEntry, 0, lastMatchesLimit)
	for i := len(played) - 1; i >= 0 && len(out) < lastMatchesLimit; i-- {
		m := played[i]
		out = append(out, LastMatchEntry{
			ID:         m.ID,
			Date:       m.Date,
			Location:   m.Location,
			Opponent:   m.OpponentLabel(),
			OurScore:   m.OurScore,
			TheirScore: m.TheirScore,
			Result:     m.Result(),
			Scorers:    scorerLabels(m),
		})
	}
	return out
}

// scorerLabels lists who scored, in goal creation order. Own goals and goals
// without a resolvable player carry no label.
func scorerLabels(m match.Match) []string {
	labels := make([]string, 0, len(m.Goals))
	for _, g := range m.Goals {
		if g.OwnGoal || g.Player == nil {
			continue
		}
		labels = append(labels, g.Player.Label())
	}
	return labels
}

func nextMatch(ascending []match.Match, now time.Time) *NextMatchEntry {
	if now.IsZero() {
		return nil
	}
	startOfToday := now.UTC().Truncate(24 * time.Hour)
	for _, m := range ascending {
		if m.PresentCount > 0 || m.Date.Before(startOfToday) {
			continue
		}
		return &NextMatchEntry{
			ID:       m.ID,
			Date:     m.Date,
			Location: m.Location,
			Opponent: m.OpponentLabel(),
		}
	}
	return nil
}

func scorerTable(in Input, played []match.Match, playedByID map[string]match.Match) []ScorerStat {
	// Own goals and orphaned goal rows never credit a scorer.
	goalsByPlayer := make(map[string][]match.Goal)
	for _, g := range in.Goals {
		if g.OwnGoal || g.PlayerID == nil {
			continue
		}
		if _, ok := playedByID[g.MatchID]; !ok {
			continue
		}
		goalsByPlayer[*g.PlayerID] = append(goalsByPlayer[*g.PlayerID], g)
	}

	presentMatches := presentMatchesByPlayer(in.Presences, playedByID)

	out := make([]ScorerStat, 0, len(goalsByPlayer))
	for _, entry := range in.Roster {
		playerGoals := goalsByPlayer[entry.PlayerID]
		if len(playerGoals) == 0 {
			continue
		}

		stat := ScorerStat{
			PlayerID:      entry.PlayerID,
			Name:          entry.Player.Name,
			Nickname:      entry.Player.Nickname,
			Photo:         entry.Player.Photo,
			Goals:         len(playerGoals),
			MatchesPlayed: len(presentMatches[entry.PlayerID]),
		}

		perMatch := make(map[string]int)
		for _, g := range playerGoals {
			perMatch[g.MatchID]++
			if g.FreeKick {
				stat.FreeKickGoals++
			}
			if g.Penalty {
				stat.PenaltyGoals++
			}
		}
		for _, count := range perMatch {
			switch {
			case count >= 3:
				stat.HatTricks++
			case count == 2:
				stat.Doubles++
			}
		}

		// A scoreless played match breaks the streak; matches the player
		// skipped entirely still count as scoreless here.
		streak := 0
		for _, m := range played {
			if perMatch[m.ID] > 0 {
				streak++
				stat.LastGoal = &MatchRef{Date: m.Date, Opponent: m.OpponentLabel()}
			} else {
				streak = 0
			}
			if streak > stat.MaxStreak {
				stat.MaxStreak = streak
			}
		}
		stat.CurrentStreak = streak

		out = append(out, stat)
	}

	// Stable sort keeps roster order on equal goal counts.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Goals > out[j].Goals
	})
	return out
}

func attendanceTable(in Input, played []match.Match, playedByID map[string]match.Match) []AttendanceStat {
	presentMatches := presentMatchesByPlayer(in.Presences, playedByID)

	out := make([]AttendanceStat, 0, len(presentMatches))
	for _, entry := range in.Roster {
		attended := presentMatches[entry.PlayerID]
		if len(attended) == 0 {
			continue
		}

		stat := AttendanceStat{
			PlayerID:     entry.PlayerID,
			Name:         entry.Player.Name,
			Nickname:     entry.Player.Nickname,
			Photo:        entry.Player.Photo,
			PresentCount: len(attended),
			Percentage:   percent(len(attended), len(played)),
		}

		var last match.Match
		for _, m := range attended {
			if last.ID == "" || m.Date.After(last.Date) {
				last = m
			}
		}
		stat.LastMatch = &MatchRef{Date: last.Date, Opponent: last.OpponentLabel()}

		out = append(out, stat)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Percentage != out[j].Percentage {
			return out[i].Percentage > out[j].Percentage
		}
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

func presentMatchesByPlayer(presences []match.Presence, playedByID map[string]match.Match) map[string][]match.Match {
	out := make(map[string][]match.Match)
	for _, p := range presences {
		if !p.Present {
			continue
		}
		m, ok := playedByID[p.MatchID]
		if !ok {
			continue
		}
		out[p.PlayerID] = append(out[p.PlayerID], m)
	}
	return out
}

// percent rounds half away from zero, so 1 of 2 is 50 and 1 of 3 is 33.
func percent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}
