package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/futstats/team-manager/internal/platform/cache"
)

func TestInvalidator_DropsBothNamespacesForTheTeam(t *testing.T) {
	t.Parallel()

	store := cache.NewStore(time.Minute)
	ctx := context.Background()
	store.Set(ctx, cache.DashboardKey("team-1", "s1").String(), "a")
	store.Set(ctx, cache.ResponseKey("team-1", "/api/teams/team-1/matches").String(), "b")
	store.Set(ctx, cache.DashboardKey("team-12", "s1").String(), "c")

	NewInvalidator(store, nil).Invalidate(ctx, "team-1")

	if _, ok := store.Get(ctx, cache.DashboardKey("team-1", "s1").String()); ok {
		t.Fatalf("dashboard entry must be invalidated")
	}
	if _, ok := store.Get(ctx, cache.ResponseKey("team-1", "/api/teams/team-1/matches").String()); ok {
		t.Fatalf("response entry must be invalidated")
	}
	if _, ok := store.Get(ctx, cache.DashboardKey("team-12", "s1").String()); !ok {
		t.Fatalf("other team's entry must survive")
	}
}

func TestInvalidator_IsIdempotent(t *testing.T) {
	t.Parallel()

	store := cache.NewStore(time.Minute)
	inv := NewInvalidator(store, nil)
	ctx := context.Background()

	store.Set(ctx, cache.DashboardKey("team-1", "s1").String(), "a")
	inv.Invalidate(ctx, "team-1")
	inv.Invalidate(ctx, "team-1")

	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d entries", store.Len())
	}
}

func TestInvalidator_NoOpWithoutStoreOrTeam(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	NewInvalidator(nil, nil).Invalidate(ctx, "team-1")

	store := cache.NewStore(time.Minute)
	store.Set(ctx, cache.DashboardKey("team-1", "s1").String(), "a")
	NewInvalidator(store, nil).Invalidate(ctx, "")
	if store.Len() != 1 {
		t.Fatalf("empty team id must not invalidate anything")
	}
}
