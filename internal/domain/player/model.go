package player

import "fmt"

// Player belongs to a team; season membership is tracked separately so a
// player can sit out a season without losing history.
type Player struct {
	ID       string
	TeamID   string
	Name     string
	Nickname string
	Position string
	Number   int
	Photo    string
}

// Label is the display name used in scorer lists: nickname when set,
// otherwise the full name.
func (p Player) Label() string {
	if p.Nickname != "" {
		return p.Nickname
	}
	return p.Name
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.TeamID == "" {
		return fmt.Errorf("player team id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if p.Number < 0 {
		return fmt.Errorf("player number cannot be negative")
	}
	return nil
}
