package usecase

import (
	"context"
	"fmt"

	"github.com/futstats/team-manager/internal/domain/player"
	"github.com/futstats/team-manager/internal/domain/season"
	"github.com/futstats/team-manager/internal/platform/id"
)

// SeasonService owns season lifecycle and roster membership. It is the one
// place allowed to flip the active flag, which keeps the one-active-season
// invariant enforceable.
type SeasonService struct {
	seasonRepo  season.Repository
	playerRepo  player.Repository
	idGen       id.Generator
	invalidator CacheInvalidator
}

func NewSeasonService(
	seasonRepo season.Repository,
	playerRepo player.Repository,
	idGen id.Generator,
	invalidator CacheInvalidator,
) *SeasonService {
	return &SeasonService{
		seasonRepo:  seasonRepo,
		playerRepo:  playerRepo,
		idGen:       idGen,
		invalidator: invalidator,
	}
}

type CreateSeasonInput struct {
	TeamID   string
	Year     int
	Name     string
	Activate bool
}

func (s *SeasonService) CreateSeason(ctx context.Context, in CreateSeasonInput) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.CreateSeason")
	defer span.End()

	seasonID, err := s.idGen.NewID()
	if err != nil {
		return season.Season{}, fmt.Errorf("generate season id: %w", err)
	}

	next := season.Season{
		ID:       seasonID,
		TeamID:   in.TeamID,
		Year:     in.Year,
		Name:     in.Name,
		IsActive: in.Activate,
	}
	if err := next.Validate(); err != nil {
		return season.Season{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if in.Activate {
		if err := s.seasonRepo.DeactivateAll(ctx, in.TeamID); err != nil {
			return season.Season{}, fmt.Errorf("deactivate seasons: %w", err)
		}
	}

	if err := s.seasonRepo.Create(ctx, next); err != nil {
		return season.Season{}, fmt.Errorf("create season: %w", err)
	}

	s.invalidator.Invalidate(ctx, in.TeamID)
	return next, nil
}

// ActivateSeason makes the given season the team's only active one.
func (s *SeasonService) ActivateSeason(ctx context.Context, teamID, seasonID string) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.ActivateSeason")
	defer span.End()

	target, ok, err := s.seasonRepo.GetByID(ctx, teamID, seasonID)
	if err != nil {
		return season.Season{}, fmt.Errorf("get season: %w", err)
	}
	if !ok {
		return season.Season{}, fmt.Errorf("%w: season %s", ErrNotFound, seasonID)
	}

	if err := s.seasonRepo.DeactivateAll(ctx, teamID); err != nil {
		return season.Season{}, fmt.Errorf("deactivate seasons: %w", err)
	}

	target.IsActive = true
	if err := s.seasonRepo.Update(ctx, target); err != nil {
		return season.Season{}, fmt.Errorf("activate season: %w", err)
	}

	s.invalidator.Invalidate(ctx, teamID)
	return target, nil
}

type UpdateSeasonInput struct {
	TeamID   string
	SeasonID string
	Year     int
	Name     string
}

func (s *SeasonService) UpdateSeason(ctx context.Context, in UpdateSeasonInput) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.UpdateSeason")
	defer span.End()

	existing, ok, err := s.seasonRepo.GetByID(ctx, in.TeamID, in.SeasonID)
	if err != nil {
		return season.Season{}, fmt.Errorf("get season: %w", err)
	}
	if !ok {
		return season.Season{}, fmt.Errorf("%w: season %s", ErrNotFound, in.SeasonID)
	}

	existing.Year = in.Year
	existing.Name = in.Name
	if err := existing.Validate(); err != nil {
		return season.Season{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.seasonRepo.Update(ctx, existing); err != nil {
		return season.Season{}, fmt.Errorf("update season: %w", err)
	}

	s.invalidator.Invalidate(ctx, in.TeamID)
	return existing, nil
}

func (s *SeasonService) DeleteSeason(ctx context.Context, teamID, seasonID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.DeleteSeason")
	defer span.End()

	_, ok, err := s.seasonRepo.GetByID(ctx, teamID, seasonID)
	if err != nil {
		return fmt.Errorf("get season: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: season %s", ErrNotFound, seasonID)
	}

	if err := s.seasonRepo.Delete(ctx, teamID, seasonID); err != nil {
		return fmt.Errorf("delete season: %w", err)
	}

	s.invalidator.Invalidate(ctx, teamID)
	return nil
}

func (s *SeasonService) ListSeasons(ctx context.Context, teamID string) ([]season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.ListSeasons")
	defer span.End()

	if teamID == "" {
		return nil, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	seasons, err := s.seasonRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}
	return seasons, nil
}

func (s *SeasonService) AddRosterEntry(ctx context.Context, teamID, seasonID, playerID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.AddRosterEntry")
	defer span.End()

	_, ok, err := s.seasonRepo.GetByID(ctx, teamID, seasonID)
	if err != nil {
		return fmt.Errorf("get season: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: season %s", ErrNotFound, seasonID)
	}

	_, ok, err = s.playerRepo.GetByID(ctx, teamID, playerID)
	if err != nil {
		return fmt.Errorf("get player: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: player %s", ErrNotFound, playerID)
	}

	if err := s.seasonRepo.AddRosterEntry(ctx, seasonID, playerID); err != nil {
		return fmt.Errorf("add roster entry: %w", err)
	}

	s.invalidator.Invalidate(ctx, teamID)
	return nil
}

func (s *SeasonService) RemoveRosterEntry(ctx context.Context, teamID, seasonID, playerID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.RemoveRosterEntry")
	defer span.End()

	_, ok, err := s.seasonRepo.GetByID(ctx, teamID, seasonID)
	if err != nil {
		return fmt.Errorf("get season: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: season %s", ErrNotFound, seasonID)
	}

	if err := s.seasonRepo.RemoveRosterEntry(ctx, seasonID, playerID); err != nil {
		return fmt.Errorf("remove roster entry: %w", err)
	}

	s.invalidator.Invalidate(ctx, teamID)
	return nil
}
