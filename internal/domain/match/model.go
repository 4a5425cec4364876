package match

import (
	"fmt"
	"time"

	"github.com/futstats/team-manager/internal/domain/player"
)

const (
	ResultWin  = "WIN"
	ResultLoss = "LOSS"
	ResultDraw = "DRAW"
)

// NoOpponentLabel substitutes for fixtures recorded without an opponent.
const NoOpponentLabel = "No opponent"

const (
	MinuteMin = 0
	MinuteMax = 130
)

// Match is one fixture. OurScore/TheirScore are the authoritative result;
// goal rows carry per-player detail and may legitimately not add up to the
// stored score.
type Match struct {
	ID         string
	TeamID     string
	SeasonID   string
	Date       time.Time
	Location   string
	Opponent   string
	Notes      string
	OurScore   int
	TheirScore int

	// Goals is ordered by creation time, with the player join resolved.
	Goals []Goal
	// PresentCount is the number of confirmed presences. A match is
	// "played" once at least one player confirmed.
	PresentCount int
}

// Played reports whether the fixture actually happened, as opposed to being
// scheduled with nobody confirmed.
func (m Match) Played() bool {
	return m.PresentCount > 0
}

// Result classifies the stored score from the team's perspective.
func (m Match) Result() string {
	switch {
	case m.OurScore > m.TheirScore:
		return ResultWin
	case m.OurScore < m.TheirScore:
		return ResultLoss
	default:
		return ResultDraw
	}
}

// OpponentLabel never returns an empty string.
func (m Match) OpponentLabel() string {
	if m.Opponent == "" {
		return NoOpponentLabel
	}
	return m.Opponent
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if m.TeamID == "" {
		return fmt.Errorf("match team id is required")
	}
	if m.SeasonID == "" {
		return fmt.Errorf("match season id is required")
	}
	if m.Date.IsZero() {
		return fmt.Errorf("match date is required")
	}
	if m.OurScore < 0 || m.TheirScore < 0 {
		return fmt.Errorf("match scores cannot be negative")
	}
	return nil
}

// Goal is a single scored goal. PlayerID is nullable: imports and deleted
// players can leave goals with no resolvable scorer, and those rows must
// survive for the match score to stay explainable.
type Goal struct {
	ID        string
	MatchID   string
	PlayerID  *string
	Minute    *int
	OwnGoal   bool
	FreeKick  bool
	Penalty   bool
	CreatedAt time.Time

	// Player is the resolved join when PlayerID is set.
	Player *player.Player
}

func (g Goal) Validate() error {
	if g.ID == "" {
		return fmt.Errorf("goal id is required")
	}
	if g.MatchID == "" {
		return fmt.Errorf("goal match id is required")
	}
	if g.Minute != nil && (*g.Minute < MinuteMin || *g.Minute > MinuteMax) {
		return fmt.Errorf("goal minute is out of range: %d", *g.Minute)
	}
	return nil
}

// Presence is a player's confirmed attendance answer for a match.
type Presence struct {
	MatchID  string
	PlayerID string
	Present  bool
}
