package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/futstats/team-manager/internal/domain/match"
)

func newMatchService(fx fixture, inv CacheInvalidator) *MatchService {
	return NewMatchService(fx.seasons, fx.matches, fx.players, &stubIDGen{}, inv)
}

func TestMatchService_CreateMatch_FallsBackToActiveSeason(t *testing.T) {
	t.Parallel()

	fx := newFixture()
	inv := &recordingInvalidator{}
	svc := newMatchService(fx, inv)
	ctx := context.Background()

	created, err := svc.CreateMatch(ctx, CreateMatchInput{
		TeamID:   "team-1",
		Date:     time.Date(2026, 4, 1, 19, 0, 0, 0, time.UTC),
		Opponent: "Rivals",
	})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	if created.SeasonID != "s1" {
		t.Fatalf("expected active season s1, got %s", created.SeasonID)
	}
	if _, ok, _ := fx.matches.GetByID(ctx, "team-1", created.ID); !ok {
		t.Fatalf("match must be persisted")
	}
	if calls := inv.calls(); len(calls) != 1 {
		t.Fatalf("expected one invalidation, got %v", calls)
	}
}

func TestMatchService_CreateMatch_NoActiveSeason(t *testing.T) {
	t.Parallel()

	fx := newFixture()
	ctx := context.Background()
	if err := fx.seasons.DeactivateAll(ctx, "team-1"); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	svc := newMatchService(fx, &recordingInvalidator{})
	_, err := svc.CreateMatch(ctx, CreateMatchInput{TeamID: "team-1", Date: time.Now()})
	if !errors.Is(err, ErrNoActiveSeason) {
		t.Fatalf("expected ErrNoActiveSeason, got %v", err)
	}
}

func TestMatchService_CreateMatch_UnknownExplicitSeason(t *testing.T) {
	t.Parallel()

	fx := newFixture()
	svc := newMatchService(fx, &recordingInvalidator{})

	_, err := svc.CreateMatch(context.Background(), CreateMatchInput{TeamID: "team-1", SeasonID: "missing", Date: time.Now()})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMatchService_UpdateMatch_RejectsNegativeScores(t *testing.T) {
	t.Parallel()

	fx := newFixture()
	svc := newMatchService(fx, &recordingInvalidator{})

	_, err := svc.UpdateMatch(context.Background(), UpdateMatchInput{
		TeamID:   "team-1",
		MatchID:  "m1",
		Date:     time.Now(),
		OurScore: -1,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestMatchService_AddGoal(t *testing.T) {
	t.Parallel()

	fx := newFixture()
	inv := &recordingInvalidator{}
	svc := newMatchService(fx, inv)
	ctx := context.Background()

	t.Run("credits known player", func(t *testing.T) {
		playerID := "p2"
		g, err := svc.AddGoal(ctx, AddGoalInput{TeamID: "team-1", MatchID: "m1", PlayerID: &playerID})
		if err != nil {
			t.Fatalf("add goal: %v", err)
		}
		if g.PlayerID == nil || *g.PlayerID != "p2" {
			t.Fatalf("unexpected goal: %+v", g)
		}
	})

	t.Run("rejects unknown player", func(t *testing.T) {
		playerID := "missing"
		if _, err := svc.AddGoal(ctx, AddGoalInput{TeamID: "team-1", MatchID: "m1", PlayerID: &playerID}); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("allows unattributed goal", func(t *testing.T) {
		if _, err := svc.AddGoal(ctx, AddGoalInput{TeamID: "team-1", MatchID: "m1", OwnGoal: true}); err != nil {
			t.Fatalf("add own goal: %v", err)
		}
	})

	t.Run("rejects out-of-range minute", func(t *testing.T) {
		minute := 200
		if _, err := svc.AddGoal(ctx, AddGoalInput{TeamID: "team-1", MatchID: "m1", Minute: &minute}); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestMatchService_SetPresence(t *testing.T) {
	t.Parallel()

	fx := newFixture()
	inv := &recordingInvalidator{}
	svc := newMatchService(fx, inv)
	ctx := context.Background()

	if err := svc.SetPresence(ctx, SetPresenceInput{TeamID: "team-1", MatchID: "m1", PlayerID: "p2", Present: false}); err != nil {
		t.Fatalf("set presence: %v", err)
	}
	presences, err := fx.matches.ListPresentByMatchIDs(ctx, []string{"m1"})
	if err != nil {
		t.Fatalf("list presences: %v", err)
	}
	if len(presences) != 1 || presences[0].PlayerID != "p1" {
		t.Fatalf("expected only p1 confirmed, got %+v", presences)
	}

	if err := svc.SetPresence(ctx, SetPresenceInput{TeamID: "team-1", MatchID: "m1", Present: true}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing player id, got %v", err)
	}
	if err := svc.SetPresence(ctx, SetPresenceInput{TeamID: "team-1", MatchID: "missing", PlayerID: "p1"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown match, got %v", err)
	}
}

func TestMatchService_NextMatch_SkipsConfirmedFixtures(t *testing.T) {
	t.Parallel()

	fx := newFixture()
	svc := newMatchService(fx, &recordingInvalidator{})
	ctx := context.Background()

	future := time.Now().UTC().Add(30 * 24 * time.Hour)
	if err := fx.matches.Create(ctx, match.Match{
		ID: "m-upcoming", TeamID: "team-1", SeasonID: "s1", Date: future, Opponent: "Next Rivals",
	}); err != nil {
		t.Fatalf("seed match: %v", err)
	}

	next, ok, err := svc.NextMatch(ctx, "team-1", "")
	if err != nil {
		t.Fatalf("next match: %v", err)
	}
	if !ok || next.ID != "m-upcoming" {
		t.Fatalf("expected upcoming fixture, got ok=%t %+v", ok, next)
	}

	if err := svc.SetPresence(ctx, SetPresenceInput{TeamID: "team-1", MatchID: "m-upcoming", PlayerID: "p1", Present: true}); err != nil {
		t.Fatalf("set presence: %v", err)
	}
	if _, ok, _ := svc.NextMatch(ctx, "team-1", ""); ok {
		t.Fatalf("confirmed fixture must no longer be next")
	}
}

func TestMatchService_DeleteMatch_RemovesDependentRows(t *testing.T) {
	t.Parallel()

	fx := newFixture()
	svc := newMatchService(fx, &recordingInvalidator{})
	ctx := context.Background()

	if err := svc.DeleteMatch(ctx, "team-1", "m1"); err != nil {
		t.Fatalf("delete match: %v", err)
	}
	goals, err := fx.matches.ListGoalsByMatchIDs(ctx, []string{"m1"})
	if err != nil {
		t.Fatalf("list goals: %v", err)
	}
	if len(goals) != 0 {
		t.Fatalf("goals must go with the match, got %+v", goals)
	}
	if err := svc.DeleteMatch(ctx, "team-1", "m1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on repeat delete, got %v", err)
	}
}
