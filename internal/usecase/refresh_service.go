package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/futstats/team-manager/internal/domain/stats"
	"github.com/futstats/team-manager/internal/platform/logging"
)

const (
	refreshDefaultWorkers = 4
	refreshMaxWorkers     = 32
)

type dashboardProvider interface {
	GetDashboard(ctx context.Context, teamID, seasonID string) (stats.DashboardStats, error)
}

// RefreshService rebuilds dashboard caches for many teams at once, e.g.
// after a bulk import. Work runs on a bounded pool so a large tenant list
// cannot starve the request path.
type RefreshService struct {
	dashboards  dashboardProvider
	invalidator CacheInvalidator
	logger      *logging.Logger
}

func NewRefreshService(dashboards dashboardProvider, invalidator CacheInvalidator, logger *logging.Logger) *RefreshService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &RefreshService{
		dashboards:  dashboards,
		invalidator: invalidator,
		logger:      logger,
	}
}

type RefreshInput struct {
	TeamIDs    []string
	MaxWorkers int
	// Invalidate drops each team's cache before recomputing, forcing fresh
	// aggregates instead of re-serving whatever is cached.
	Invalidate bool
}

type RefreshResult struct {
	TeamCount    int                 `json:"team_count"`
	SuccessCount int                 `json:"success_count"`
	FailedCount  int                 `json:"failed_count"`
	WorkerCount  int                 `json:"worker_count"`
	Teams        []RefreshTeamResult `json:"teams"`
}

type RefreshTeamResult struct {
	TeamID     string `json:"team_id"`
	Status     string `json:"status"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

func (s *RefreshService) Refresh(ctx context.Context, in RefreshInput) (RefreshResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RefreshService.Refresh")
	defer span.End()

	if len(in.TeamIDs) == 0 {
		return RefreshResult{}, fmt.Errorf("%w: team ids are required", ErrInvalidInput)
	}

	workers := in.MaxWorkers
	if workers <= 0 {
		workers = refreshDefaultWorkers
	}
	if workers > refreshMaxWorkers {
		workers = refreshMaxWorkers
	}
	if workers > len(in.TeamIDs) {
		workers = len(in.TeamIDs)
	}

	p, err := ants.NewPool(workers)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer p.Release()

	result := RefreshResult{
		TeamCount:   len(in.TeamIDs),
		WorkerCount: workers,
		Teams:       make([]RefreshTeamResult, len(in.TeamIDs)),
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	for i, teamID := range in.TeamIDs {
		i, teamID := i, teamID
		wg.Add(1)
		submitErr := p.Submit(func() {
			defer wg.Done()
			teamResult := s.refreshTeam(ctx, teamID, in.Invalidate)

			mu.Lock()
			result.Teams[i] = teamResult
			if teamResult.Status == "success" {
				result.SuccessCount++
			} else {
				result.FailedCount++
			}
			mu.Unlock()
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			result.Teams[i] = RefreshTeamResult{TeamID: teamID, Status: "failed", Message: submitErr.Error()}
			result.FailedCount++
			mu.Unlock()
		}
	}
	wg.Wait()

	s.logger.InfoContext(ctx, "dashboard refresh finished",
		"teams", result.TeamCount, "success", result.SuccessCount, "failed", result.FailedCount)
	return result, nil
}

func (s *RefreshService) refreshTeam(ctx context.Context, teamID string, invalidate bool) RefreshTeamResult {
	started := time.Now()

	if invalidate {
		s.invalidator.Invalidate(ctx, teamID)
	}

	if _, err := s.dashboards.GetDashboard(ctx, teamID, ""); err != nil {
		return RefreshTeamResult{
			TeamID:     teamID,
			Status:     "failed",
			DurationMs: time.Since(started).Milliseconds(),
			Message:    err.Error(),
		}
	}

	return RefreshTeamResult{
		TeamID:     teamID,
		Status:     "success",
		DurationMs: time.Since(started).Milliseconds(),
	}
}
