package usecase

import (
	"context"
	"fmt"

	"github.com/futstats/team-manager/internal/domain/team"
)

type TeamService struct {
	teamRepo    team.Repository
	invalidator CacheInvalidator
}

func NewTeamService(teamRepo team.Repository, invalidator CacheInvalidator) *TeamService {
	return &TeamService{teamRepo: teamRepo, invalidator: invalidator}
}

func (s *TeamService) GetTeam(ctx context.Context, teamID string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetTeam")
	defer span.End()

	t, ok, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !ok {
		return team.Team{}, fmt.Errorf("%w: team %s", ErrNotFound, teamID)
	}
	return t, nil
}

// Rename invalidates cached reads even though no aggregate depends on the
// name today: cached response bodies embed it.
func (s *TeamService) Rename(ctx context.Context, teamID, name string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Rename")
	defer span.End()

	t, ok, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !ok {
		return team.Team{}, fmt.Errorf("%w: team %s", ErrNotFound, teamID)
	}

	t.Name = name
	if err := t.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.teamRepo.Update(ctx, t); err != nil {
		return team.Team{}, fmt.Errorf("update team: %w", err)
	}

	s.invalidator.Invalidate(ctx, teamID)
	return t, nil
}
