package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/futstats/team-manager/internal/domain/match"
	"github.com/futstats/team-manager/internal/domain/player"
	"github.com/futstats/team-manager/internal/domain/season"
	"github.com/futstats/team-manager/internal/domain/team"
	"github.com/futstats/team-manager/internal/infrastructure/repository/memory"
)

type stubIDGen struct{ n int }

func (g *stubIDGen) NewID() (string, error) {
	g.n++
	return fmt.Sprintf("id-%04d", g.n), nil
}

type recordingInvalidator struct {
	mu    sync.Mutex
	teams []string
}

func (r *recordingInvalidator) Invalidate(_ context.Context, teamID string) {
	r.mu.Lock()
	r.teams = append(r.teams, teamID)
	r.mu.Unlock()
}

func (r *recordingInvalidator) calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.teams...)
}

// countingMatchRepo counts season listings to observe cache hits and misses.
type countingMatchRepo struct {
	match.Repository
	listCalls atomic.Int32
}

func (c *countingMatchRepo) ListBySeason(ctx context.Context, teamID, seasonID string) ([]match.Match, error) {
	c.listCalls.Add(1)
	return c.Repository.ListBySeason(ctx, teamID, seasonID)
}

// flakyMatchRepo fails season listings while broken is set.
type flakyMatchRepo struct {
	match.Repository
	broken atomic.Bool
}

func (f *flakyMatchRepo) ListBySeason(ctx context.Context, teamID, seasonID string) ([]match.Match, error) {
	if f.broken.Load() {
		return nil, fmt.Errorf("matches query failed")
	}
	return f.Repository.ListBySeason(ctx, teamID, seasonID)
}

type fixture struct {
	teams   *memory.TeamRepository
	players *memory.PlayerRepository
	seasons *memory.SeasonRepository
	matches *memory.MatchRepository
}

// newFixture seeds one team with an active season, a two-player roster and a
// played match that p1 scored in.
func newFixture() fixture {
	teams := memory.NewTeamRepository([]team.Team{{ID: "team-1", Name: "Sharks"}})
	players := memory.NewPlayerRepository([]player.Player{
		{ID: "p1", TeamID: "team-1", Name: "Ana Souza", Number: 10},
		{ID: "p2", TeamID: "team-1", Name: "Bia Lima", Number: 7},
	})
	seasons := memory.NewSeasonRepository([]season.Season{
		{ID: "s1", TeamID: "team-1", Year: 2026, Name: "2026", IsActive: true},
	}, players)

	ctx := context.Background()
	_ = seasons.AddRosterEntry(ctx, "s1", "p1")
	_ = seasons.AddRosterEntry(ctx, "s1", "p2")

	matches := memory.NewMatchRepository(players)
	_ = matches.Create(ctx, match.Match{
		ID:       "m1",
		TeamID:   "team-1",
		SeasonID: "s1",
		Date:     time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC),
		Opponent: "Rivals",
		OurScore: 2, TheirScore: 1,
	})
	p1 := "p1"
	_ = matches.AddGoal(ctx, match.Goal{ID: "g1", MatchID: "m1", PlayerID: &p1, CreatedAt: time.Now()})
	_ = matches.UpsertPresence(ctx, match.Presence{MatchID: "m1", PlayerID: "p1", Present: true})
	_ = matches.UpsertPresence(ctx, match.Presence{MatchID: "m1", PlayerID: "p2", Present: true})

	return fixture{teams: teams, players: players, seasons: seasons, matches: matches}
}
