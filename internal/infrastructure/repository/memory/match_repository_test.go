package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/futstats/team-manager/internal/domain/match"
	"github.com/futstats/team-manager/internal/domain/player"
)

func seedMatchRepo(t *testing.T) (*MatchRepository, context.Context) {
	t.Helper()

	players := NewPlayerRepository([]player.Player{
		{ID: "p1", TeamID: "team-1", Name: "Ana Souza", Nickname: "Aninha"},
		{ID: "p2", TeamID: "team-1", Name: "Bia Lima"},
	})
	repo := NewMatchRepository(players)
	ctx := context.Background()

	for _, m := range []match.Match{
		{ID: "m1", TeamID: "team-1", SeasonID: "s1", Date: time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC), OurScore: 2, TheirScore: 1},
		{ID: "m2", TeamID: "team-1", SeasonID: "s1", Date: time.Date(2026, 3, 8, 19, 0, 0, 0, time.UTC)},
		{ID: "m3", TeamID: "team-1", SeasonID: "s2", Date: time.Date(2026, 3, 15, 19, 0, 0, 0, time.UTC)},
	} {
		require.NoError(t, repo.Create(ctx, m))
	}

	p1, p2 := "p1", "p2"
	require.NoError(t, repo.AddGoal(ctx, match.Goal{ID: "g1", MatchID: "m1", PlayerID: &p1}))
	require.NoError(t, repo.AddGoal(ctx, match.Goal{ID: "g2", MatchID: "m1", PlayerID: &p2}))
	require.NoError(t, repo.UpsertPresence(ctx, match.Presence{MatchID: "m1", PlayerID: "p1", Present: true}))

	return repo, ctx
}

func TestMatchRepository_ListBySeason(t *testing.T) {
	repo, ctx := seedMatchRepo(t)

	matches, err := repo.ListBySeason(ctx, "team-1", "s1")
	require.NoError(t, err)
	require.Len(t, matches, 2)

	// Newest first, season-scoped.
	require.Equal(t, "m2", matches[0].ID)
	require.Equal(t, "m1", matches[1].ID)

	// Joins populated: goals in creation order with resolved players, plus
	// the confirmed presence count.
	played := matches[1]
	require.Equal(t, 1, played.PresentCount)
	require.Len(t, played.Goals, 2)
	require.Equal(t, "g1", played.Goals[0].ID)
	require.NotNil(t, played.Goals[0].Player)
	require.Equal(t, "Aninha", played.Goals[0].Player.Label())
}

func TestMatchRepository_FindNextUnplayed(t *testing.T) {
	repo, ctx := seedMatchRepo(t)
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	// m1 has a confirmed presence, so m2 is the earliest unplayed fixture.
	next, ok, err := repo.FindNextUnplayed(ctx, "team-1", "s1", from)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "m2", next.ID)

	require.NoError(t, repo.UpsertPresence(ctx, match.Presence{MatchID: "m2", PlayerID: "p1", Present: true}))
	_, ok, err = repo.FindNextUnplayed(ctx, "team-1", "s1", from)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMatchRepository_DeleteRemovesDependents(t *testing.T) {
	repo, ctx := seedMatchRepo(t)

	require.NoError(t, repo.Delete(ctx, "team-1", "m1"))

	goals, err := repo.ListGoalsByMatchIDs(ctx, []string{"m1"})
	require.NoError(t, err)
	require.Empty(t, goals)

	presences, err := repo.ListPresentByMatchIDs(ctx, []string{"m1"})
	require.NoError(t, err)
	require.Empty(t, presences)
}

func TestMatchRepository_UpsertPresenceOverwrites(t *testing.T) {
	repo, ctx := seedMatchRepo(t)

	require.NoError(t, repo.UpsertPresence(ctx, match.Presence{MatchID: "m1", PlayerID: "p1", Present: false}))
	presences, err := repo.ListPresentByMatchIDs(ctx, []string{"m1"})
	require.NoError(t, err)
	require.Empty(t, presences)
}
