package usecase

import (
	"context"

	"github.com/futstats/team-manager/internal/platform/cache"
	"github.com/futstats/team-manager/internal/platform/logging"
)

// CacheInvalidator is what mutation services call after a committed write.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, teamID string)
}

// Invalidator drops every cached read for a team: dashboard aggregates and
// generic response-cache entries alike. Invalidation is team-wide, never
// per-season; cached responses can span seasons.
type Invalidator struct {
	store  *cache.Store
	logger *logging.Logger
}

func NewInvalidator(store *cache.Store, logger *logging.Logger) *Invalidator {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Invalidator{store: store, logger: logger}
}

// Invalidate is idempotent; calling it on a team with nothing cached is a
// no-op.
func (i *Invalidator) Invalidate(ctx context.Context, teamID string) {
	if teamID == "" || i.store == nil {
		return
	}

	removed := i.store.DeletePrefix(ctx, cache.TeamPrefix(cache.NamespaceDashboard, teamID))
	removed += i.store.DeletePrefix(ctx, cache.TeamPrefix(cache.NamespaceResponse, teamID))

	i.logger.DebugContext(ctx, "team cache invalidated", "team_id", teamID, "entries_removed", removed)
}
