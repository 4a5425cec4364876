package usecase

import (
	"context"
	"fmt"

	"github.com/futstats/team-manager/internal/domain/player"
	"github.com/futstats/team-manager/internal/domain/season"
	"github.com/futstats/team-manager/internal/platform/id"
	"github.com/futstats/team-manager/internal/platform/logging"
)

// PlayerService handles player writes and the roster convenience around
// them.
type PlayerService struct {
	playerRepo  player.Repository
	seasonRepo  season.Repository
	idGen       id.Generator
	invalidator CacheInvalidator
	logger      *logging.Logger
}

func NewPlayerService(
	playerRepo player.Repository,
	seasonRepo season.Repository,
	idGen id.Generator,
	invalidator CacheInvalidator,
	logger *logging.Logger,
) *PlayerService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &PlayerService{
		playerRepo:  playerRepo,
		seasonRepo:  seasonRepo,
		idGen:       idGen,
		invalidator: invalidator,
		logger:      logger,
	}
}

type CreatePlayerInput struct {
	TeamID   string
	Name     string
	Nickname string
	Position string
	Number   int
	Photo    string
}

// CreatePlayer persists the player and then tries to enroll them into the
// team's active season. Enrollment is a convenience: its failure is logged
// and reported back, but the created player stands either way.
func (s *PlayerService) CreatePlayer(ctx context.Context, in CreatePlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.CreatePlayer")
	defer span.End()

	playerID, err := s.idGen.NewID()
	if err != nil {
		return player.Player{}, fmt.Errorf("generate player id: %w", err)
	}

	p := player.Player{
		ID:       playerID,
		TeamID:   in.TeamID,
		Name:     in.Name,
		Nickname: in.Nickname,
		Position: in.Position,
		Number:   in.Number,
		Photo:    in.Photo,
	}
	if err := p.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.playerRepo.Create(ctx, p); err != nil {
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}

	if enrollErr := s.enrollInActiveSeason(ctx, p); enrollErr != nil {
		s.logger.WarnContext(ctx, "auto-enroll into active season failed",
			"team_id", p.TeamID, "player_id", p.ID, "error", enrollErr)
	}

	s.invalidator.Invalidate(ctx, in.TeamID)
	return p, nil
}

// enrollInActiveSeason adds the player to the active season's roster. A team
// without an active season is not an error here.
func (s *PlayerService) enrollInActiveSeason(ctx context.Context, p player.Player) error {
	active, ok, err := s.seasonRepo.FindActive(ctx, p.TeamID)
	if err != nil {
		return fmt.Errorf("find active season: %w", err)
	}
	if !ok {
		return nil
	}

	if err := s.seasonRepo.AddRosterEntry(ctx, active.ID, p.ID); err != nil {
		return fmt.Errorf("add roster entry for season %s: %w", active.ID, err)
	}
	return nil
}

type UpdatePlayerInput struct {
	TeamID   string
	PlayerID string
	Name     string
	Nickname string
	Position string
	Number   int
	Photo    string
}

func (s *PlayerService) UpdatePlayer(ctx context.Context, in UpdatePlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.UpdatePlayer")
	defer span.End()

	existing, ok, err := s.playerRepo.GetByID(ctx, in.TeamID, in.PlayerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !ok {
		return player.Player{}, fmt.Errorf("%w: player %s", ErrNotFound, in.PlayerID)
	}

	existing.Name = in.Name
	existing.Nickname = in.Nickname
	existing.Position = in.Position
	existing.Number = in.Number
	existing.Photo = in.Photo
	if err := existing.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.playerRepo.Update(ctx, existing); err != nil {
		return player.Player{}, fmt.Errorf("update player: %w", err)
	}

	s.invalidator.Invalidate(ctx, in.TeamID)
	return existing, nil
}

func (s *PlayerService) DeletePlayer(ctx context.Context, teamID, playerID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.DeletePlayer")
	defer span.End()

	_, ok, err := s.playerRepo.GetByID(ctx, teamID, playerID)
	if err != nil {
		return fmt.Errorf("get player: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: player %s", ErrNotFound, playerID)
	}

	if err := s.playerRepo.Delete(ctx, teamID, playerID); err != nil {
		return fmt.Errorf("delete player: %w", err)
	}

	s.invalidator.Invalidate(ctx, teamID)
	return nil
}

func (s *PlayerService) ListPlayers(ctx context.Context, teamID string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListPlayers")
	defer span.End()

	if teamID == "" {
		return nil, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	players, err := s.playerRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return players, nil
}
