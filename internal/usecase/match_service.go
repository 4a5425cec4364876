package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/futstats/team-manager/internal/domain/match"
	"github.com/futstats/team-manager/internal/domain/player"
	"github.com/futstats/team-manager/internal/domain/season"
	"github.com/futstats/team-manager/internal/platform/id"
)

// MatchService handles match, goal and presence writes. Every committed
// mutation invalidates the team's cached reads before returning, so the next
// dashboard read recomputes.
type MatchService struct {
	seasonRepo  season.Repository
	matchRepo   match.Repository
	playerRepo  player.Repository
	idGen       id.Generator
	invalidator CacheInvalidator
}

func NewMatchService(
	seasonRepo season.Repository,
	matchRepo match.Repository,
	playerRepo player.Repository,
	idGen id.Generator,
	invalidator CacheInvalidator,
) *MatchService {
	return &MatchService{
		seasonRepo:  seasonRepo,
		matchRepo:   matchRepo,
		playerRepo:  playerRepo,
		idGen:       idGen,
		invalidator: invalidator,
	}
}

type CreateMatchInput struct {
	TeamID     string
	SeasonID   string
	Date       time.Time
	Location   string
	Opponent   string
	Notes      string
	OurScore   int
	TheirScore int
}

func (s *MatchService) CreateMatch(ctx context.Context, in CreateMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.CreateMatch")
	defer span.End()

	seasonID, err := s.resolveSeason(ctx, in.TeamID, in.SeasonID)
	if err != nil {
		return match.Match{}, err
	}

	matchID, err := s.idGen.NewID()
	if err != nil {
		return match.Match{}, fmt.Errorf("generate match id: %w", err)
	}

	m := match.Match{
		ID:         matchID,
		TeamID:     in.TeamID,
		SeasonID:   seasonID,
		Date:       in.Date,
		Location:   in.Location,
		Opponent:   in.Opponent,
		Notes:      in.Notes,
		OurScore:   in.OurScore,
		TheirScore: in.TheirScore,
	}
	if err := m.Validate(); err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.matchRepo.Create(ctx, m); err != nil {
		return match.Match{}, fmt.Errorf("create match: %w", err)
	}

	s.invalidator.Invalidate(ctx, in.TeamID)
	return m, nil
}

type UpdateMatchInput struct {
	TeamID     string
	MatchID    string
	Date       time.Time
	Location   string
	Opponent   string
	Notes      string
	OurScore   int
	TheirScore int
}

func (s *MatchService) UpdateMatch(ctx context.Context, in UpdateMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.UpdateMatch")
	defer span.End()

	existing, ok, err := s.matchRepo.GetByID(ctx, in.TeamID, in.MatchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !ok {
		return match.Match{}, fmt.Errorf("%w: match %s", ErrNotFound, in.MatchID)
	}

	existing.Date = in.Date
	existing.Location = in.Location
	existing.Opponent = in.Opponent
	existing.Notes = in.Notes
	existing.OurScore = in.OurScore
	existing.TheirScore = in.TheirScore
	if err := existing.Validate(); err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.matchRepo.Update(ctx, existing); err != nil {
		return match.Match{}, fmt.Errorf("update match: %w", err)
	}

	s.invalidator.Invalidate(ctx, in.TeamID)
	return existing, nil
}

func (s *MatchService) DeleteMatch(ctx context.Context, teamID, matchID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.DeleteMatch")
	defer span.End()

	_, ok, err := s.matchRepo.GetByID(ctx, teamID, matchID)
	if err != nil {
		return fmt.Errorf("get match: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: match %s", ErrNotFound, matchID)
	}

	if err := s.matchRepo.Delete(ctx, teamID, matchID); err != nil {
		return fmt.Errorf("delete match: %w", err)
	}

	s.invalidator.Invalidate(ctx, teamID)
	return nil
}

// ListMatches requires a resolvable season, mirroring the write paths.
func (s *MatchService) ListMatches(ctx context.Context, teamID, seasonID string) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListMatches")
	defer span.End()

	resolved, err := s.resolveSeason(ctx, teamID, seasonID)
	if err != nil {
		return nil, err
	}

	matches, err := s.matchRepo.ListBySeason(ctx, teamID, resolved)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return matches, nil
}

// NextMatch finds the nearest fixture on or after today with nobody
// confirmed yet.
func (s *MatchService) NextMatch(ctx context.Context, teamID, seasonID string) (match.Match, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.NextMatch")
	defer span.End()

	resolved, err := s.resolveSeason(ctx, teamID, seasonID)
	if err != nil {
		return match.Match{}, false, err
	}

	from := time.Now().UTC().Truncate(24 * time.Hour)
	next, ok, err := s.matchRepo.FindNextUnplayed(ctx, teamID, resolved, from)
	if err != nil {
		return match.Match{}, false, fmt.Errorf("find next match: %w", err)
	}
	return next, ok, nil
}

type AddGoalInput struct {
	TeamID   string
	MatchID  string
	PlayerID *string
	Minute   *int
	OwnGoal  bool
	FreeKick bool
	Penalty  bool
}

func (s *MatchService) AddGoal(ctx context.Context, in AddGoalInput) (match.Goal, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.AddGoal")
	defer span.End()

	_, ok, err := s.matchRepo.GetByID(ctx, in.TeamID, in.MatchID)
	if err != nil {
		return match.Goal{}, fmt.Errorf("get match: %w", err)
	}
	if !ok {
		return match.Goal{}, fmt.Errorf("%w: match %s", ErrNotFound, in.MatchID)
	}

	if in.PlayerID != nil {
		_, ok, err := s.playerRepo.GetByID(ctx, in.TeamID, *in.PlayerID)
		if err != nil {
			return match.Goal{}, fmt.Errorf("get player: %w", err)
		}
		if !ok {
			return match.Goal{}, fmt.Errorf("%w: player %s", ErrNotFound, *in.PlayerID)
		}
	}

	goalID, err := s.idGen.NewID()
	if err != nil {
		return match.Goal{}, fmt.Errorf("generate goal id: %w", err)
	}

	g := match.Goal{
		ID:        goalID,
		MatchID:   in.MatchID,
		PlayerID:  in.PlayerID,
		Minute:    in.Minute,
		OwnGoal:   in.OwnGoal,
		FreeKick:  in.FreeKick,
		Penalty:   in.Penalty,
		CreatedAt: time.Now().UTC(),
	}
	if err := g.Validate(); err != nil {
		return match.Goal{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.matchRepo.AddGoal(ctx, g); err != nil {
		return match.Goal{}, fmt.Errorf("add goal: %w", err)
	}

	s.invalidator.Invalidate(ctx, in.TeamID)
	return g, nil
}

func (s *MatchService) DeleteGoal(ctx context.Context, teamID, matchID, goalID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.DeleteGoal")
	defer span.End()

	_, ok, err := s.matchRepo.GetByID(ctx, teamID, matchID)
	if err != nil {
		return fmt.Errorf("get match: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: match %s", ErrNotFound, matchID)
	}

	if err := s.matchRepo.DeleteGoal(ctx, matchID, goalID); err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}

	s.invalidator.Invalidate(ctx, teamID)
	return nil
}

type SetPresenceInput struct {
	TeamID   string
	MatchID  string
	PlayerID string
	Present  bool
}

func (s *MatchService) SetPresence(ctx context.Context, in SetPresenceInput) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.SetPresence")
	defer span.End()

	if in.PlayerID == "" {
		return fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	_, ok, err := s.matchRepo.GetByID(ctx, in.TeamID, in.MatchID)
	if err != nil {
		return fmt.Errorf("get match: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: match %s", ErrNotFound, in.MatchID)
	}

	p := match.Presence{
		MatchID:  in.MatchID,
		PlayerID: in.PlayerID,
		Present:  in.Present,
	}
	if err := s.matchRepo.UpsertPresence(ctx, p); err != nil {
		return fmt.Errorf("upsert presence: %w", err)
	}

	s.invalidator.Invalidate(ctx, in.TeamID)
	return nil
}

// resolveSeason prefers an explicit season id and falls back to the active
// one. Mutation paths treat a missing season as an error, unlike dashboard
// reads.
func (s *MatchService) resolveSeason(ctx context.Context, teamID, seasonID string) (string, error) {
	if teamID == "" {
		return "", fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	if seasonID != "" {
		_, ok, err := s.seasonRepo.GetByID(ctx, teamID, seasonID)
		if err != nil {
			return "", fmt.Errorf("get season: %w", err)
		}
		if !ok {
			return "", fmt.Errorf("%w: season %s", ErrNotFound, seasonID)
		}
		return seasonID, nil
	}

	active, ok, err := s.seasonRepo.FindActive(ctx, teamID)
	if err != nil {
		return "", fmt.Errorf("find active season: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("%w: team %s", ErrNoActiveSeason, teamID)
	}
	return active.ID, nil
}
