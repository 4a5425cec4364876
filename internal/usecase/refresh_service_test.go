package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/futstats/team-manager/internal/domain/stats"
)

// stubDashboards fails for team ids listed in failing.
type stubDashboards struct {
	failing map[string]bool
}

func (s *stubDashboards) GetDashboard(_ context.Context, teamID, _ string) (stats.DashboardStats, error) {
	if s.failing[teamID] {
		return stats.DashboardStats{}, fmt.Errorf("compute failed for %s", teamID)
	}
	return stats.Zero(), nil
}

func TestRefreshService_Refresh_CountsOutcomesPerTeam(t *testing.T) {
	t.Parallel()

	svc := NewRefreshService(&stubDashboards{failing: map[string]bool{"team-bad": true}}, &recordingInvalidator{}, nil)

	result, err := svc.Refresh(context.Background(), RefreshInput{TeamIDs: []string{"team-1", "team-bad", "team-3"}})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}

	if result.TeamCount != 3 || result.SuccessCount != 2 || result.FailedCount != 1 {
		t.Fatalf("unexpected counts: %+v", result)
	}
	if result.Teams[1].TeamID != "team-bad" || result.Teams[1].Status != "failed" {
		t.Fatalf("per-team results must keep input order: %+v", result.Teams)
	}
	if result.Teams[1].Message == "" {
		t.Fatalf("failed team must carry a message")
	}
	if result.Teams[0].Status != "success" || result.Teams[2].Status != "success" {
		t.Fatalf("unexpected statuses: %+v", result.Teams)
	}
}

func TestRefreshService_Refresh_ClampsWorkerCount(t *testing.T) {
	t.Parallel()

	svc := NewRefreshService(&stubDashboards{}, &recordingInvalidator{}, nil)
	ctx := context.Background()

	result, err := svc.Refresh(ctx, RefreshInput{TeamIDs: []string{"a", "b", "c"}, MaxWorkers: 100})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if result.WorkerCount != 3 {
		t.Fatalf("workers must not exceed team count, got %d", result.WorkerCount)
	}

	many := make([]string, 10)
	for i := range many {
		many[i] = fmt.Sprintf("team-%d", i)
	}
	result, err = svc.Refresh(ctx, RefreshInput{TeamIDs: many})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if result.WorkerCount != refreshDefaultWorkers {
		t.Fatalf("expected default worker count %d, got %d", refreshDefaultWorkers, result.WorkerCount)
	}
}

func TestRefreshService_Refresh_InvalidatesWhenAsked(t *testing.T) {
	t.Parallel()

	inv := &recordingInvalidator{}
	svc := NewRefreshService(&stubDashboards{}, inv, nil)
	ctx := context.Background()

	if _, err := svc.Refresh(ctx, RefreshInput{TeamIDs: []string{"team-1", "team-2"}, Invalidate: true}); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	calls := inv.calls()
	sort.Strings(calls)
	if len(calls) != 2 || calls[0] != "team-1" || calls[1] != "team-2" {
		t.Fatalf("expected invalidation per team, got %v", calls)
	}

	if _, err := svc.Refresh(ctx, RefreshInput{TeamIDs: []string{"team-3"}}); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if len(inv.calls()) != 2 {
		t.Fatalf("refresh without Invalidate must not touch the invalidator, got %v", inv.calls())
	}
}

func TestRefreshService_Refresh_RequiresTeams(t *testing.T) {
	t.Parallel()

	svc := NewRefreshService(&stubDashboards{}, &recordingInvalidator{}, nil)
	if _, err := svc.Refresh(context.Background(), RefreshInput{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
