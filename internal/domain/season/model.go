package season

import (
	"fmt"

	"github.com/futstats/team-manager/internal/domain/player"
)

// Season scopes matches and roster membership. At most one season per team
// is active at a time; activation is responsible for keeping that true.
type Season struct {
	ID       string
	TeamID   string
	Year     int
	Name     string
	IsActive bool
}

func (s Season) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("season id is required")
	}
	if s.TeamID == "" {
		return fmt.Errorf("season team id is required")
	}
	if s.Year < 1900 {
		return fmt.Errorf("season year is out of range: %d", s.Year)
	}
	if s.Name == "" {
		return fmt.Errorf("season name is required")
	}
	return nil
}

// RosterEntry is a player's membership in a season. Roster membership alone
// makes a player eligible for scorer and attendance tables, activity or not.
type RosterEntry struct {
	SeasonID string
	PlayerID string
	Player   player.Player
}
