package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/futstats/team-manager/internal/domain/match"
	"github.com/futstats/team-manager/internal/domain/season"
	"github.com/futstats/team-manager/internal/domain/stats"
	"github.com/futstats/team-manager/internal/platform/cache"
)

// DashboardService serves the aggregated season view. Reads go through the
// cache: a hit returns the stored value as-is, a miss runs the full
// query-and-aggregate sequence and stores the result. Concurrent misses for
// the same team/season share one computation.
type DashboardService struct {
	seasonRepo season.Repository
	matchRepo  match.Repository
	store      *cache.Store
	now        func() time.Time
}

func NewDashboardService(
	seasonRepo season.Repository,
	matchRepo match.Repository,
	store *cache.Store,
) *DashboardService {
	return &DashboardService{
		seasonRepo: seasonRepo,
		matchRepo:  matchRepo,
		store:      store,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// GetDashboard computes or returns the cached DashboardStats for the team.
// seasonID may be empty, in which case the active season is used. A team
// with no resolvable season gets a fully-formed zero result, not an error.
//
// Returned values may be shared with other callers; treat them as read-only.
func (s *DashboardService) GetDashboard(ctx context.Context, teamID, seasonID string) (stats.DashboardStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.GetDashboard")
	defer span.End()

	if teamID == "" {
		return stats.DashboardStats{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	if seasonID == "" {
		active, ok, err := s.seasonRepo.FindActive(ctx, teamID)
		if err != nil {
			return stats.DashboardStats{}, fmt.Errorf("find active season: %w", err)
		}
		if !ok {
			return stats.Zero(), nil
		}
		seasonID = active.ID
	}

	if s.store == nil {
		return s.compute(ctx, teamID, seasonID)
	}

	key := cache.DashboardKey(teamID, seasonID).String()
	value, err := s.store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return s.compute(ctx, teamID, seasonID)
	})
	if err != nil {
		return stats.DashboardStats{}, err
	}

	result, ok := value.(stats.DashboardStats)
	if !ok {
		return stats.DashboardStats{}, fmt.Errorf("unexpected cached value type %T for %s", value, key)
	}
	return result, nil
}

func (s *DashboardService) compute(ctx context.Context, teamID, seasonID string) (stats.DashboardStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.compute")
	defer span.End()

	matches, err := s.matchRepo.ListBySeason(ctx, teamID, seasonID)
	if err != nil {
		return stats.DashboardStats{}, fmt.Errorf("list matches: %w", err)
	}

	in := stats.Input{Matches: matches, Now: s.now()}
	if len(matches) == 0 {
		return stats.Aggregate(in), nil
	}

	matchIDs := make([]string, 0, len(matches))
	for _, m := range matches {
		matchIDs = append(matchIDs, m.ID)
	}

	// The three detail reads are independent; fan out and abort on the
	// first failure so nothing partial ever reaches the cache.
	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		goals, err := s.matchRepo.ListGoalsByMatchIDs(ctx, matchIDs)
		if err != nil {
			return fmt.Errorf("list goals: %w", err)
		}
		in.Goals = goals
		return nil
	})
	p.Go(func(ctx context.Context) error {
		presences, err := s.matchRepo.ListPresentByMatchIDs(ctx, matchIDs)
		if err != nil {
			return fmt.Errorf("list presences: %w", err)
		}
		in.Presences = presences
		return nil
	})
	p.Go(func(ctx context.Context) error {
		roster, err := s.seasonRepo.ListRoster(ctx, seasonID)
		if err != nil {
			return fmt.Errorf("list roster: %w", err)
		}
		in.Roster = roster
		return nil
	})
	if err := p.Wait(); err != nil {
		return stats.DashboardStats{}, err
	}

	return stats.Aggregate(in), nil
}
