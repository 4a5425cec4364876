package season

import "context"

// Repository describes season and roster persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, teamID, seasonID string) (Season, bool, error)
	FindActive(ctx context.Context, teamID string) (Season, bool, error)
	ListByTeam(ctx context.Context, teamID string) ([]Season, error)
	Create(ctx context.Context, s Season) error
	Update(ctx context.Context, s Season) error
	Delete(ctx context.Context, teamID, seasonID string) error

	// DeactivateAll clears the active flag on every season of the team.
	// Activation runs it before flipping the target season on.
	DeactivateAll(ctx context.Context, teamID string) error

	// ListRoster returns entries with the player join, in insertion order.
	ListRoster(ctx context.Context, seasonID string) ([]RosterEntry, error)
	AddRosterEntry(ctx context.Context, seasonID, playerID string) error
	RemoveRosterEntry(ctx context.Context, seasonID, playerID string) error
}
