package match

import (
	"context"
	"time"
)

// Repository describes match persistence needs from use cases.
type Repository interface {
	// ListBySeason returns the season's matches ordered by date descending,
	// with goals (player join, creation order) and PresentCount populated.
	ListBySeason(ctx context.Context, teamID, seasonID string) ([]Match, error)

	GetByID(ctx context.Context, teamID, matchID string) (Match, bool, error)

	// FindNextUnplayed returns the chronologically earliest match on or after
	// from that has no confirmed presence yet.
	FindNextUnplayed(ctx context.Context, teamID, seasonID string, from time.Time) (Match, bool, error)

	// ListGoalsByMatchIDs returns goals with the player join resolved.
	ListGoalsByMatchIDs(ctx context.Context, matchIDs []string) ([]Goal, error)

	// ListPresentByMatchIDs returns only rows with present = true.
	ListPresentByMatchIDs(ctx context.Context, matchIDs []string) ([]Presence, error)

	Create(ctx context.Context, m Match) error
	Update(ctx context.Context, m Match) error
	Delete(ctx context.Context, teamID, matchID string) error

	AddGoal(ctx context.Context, g Goal) error
	DeleteGoal(ctx context.Context, matchID, goalID string) error
	UpsertPresence(ctx context.Context, p Presence) error
}
