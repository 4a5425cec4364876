package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/futstats/team-manager/internal/domain/season"
)

type SeasonRepository struct {
	mu      sync.RWMutex
	items   map[string]season.Season
	order   []string
	rosters map[string][]string // seasonID -> playerIDs, insertion order
	players *PlayerRepository
}

func NewSeasonRepository(seasons []season.Season, players *PlayerRepository) *SeasonRepository {
	r := &SeasonRepository{
		items:   make(map[string]season.Season, len(seasons)),
		rosters: make(map[string][]string),
		players: players,
	}
	for _, s := range seasons {
		r.items[s.ID] = s
		r.order = append(r.order, s.ID)
	}
	return r
}

func (r *SeasonRepository) GetByID(_ context.Context, teamID, seasonID string) (season.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.items[seasonID]
	if !ok || s.TeamID != teamID {
		return season.Season{}, false, nil
	}
	return s, true, nil
}

func (r *SeasonRepository) FindActive(_ context.Context, teamID string) (season.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if s, ok := r.items[id]; ok && s.TeamID == teamID && s.IsActive {
			return s, true, nil
		}
	}
	return season.Season{}, false, nil
}

func (r *SeasonRepository) ListByTeam(_ context.Context, teamID string) ([]season.Season, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]season.Season, 0)
	for _, id := range r.order {
		if s, ok := r.items[id]; ok && s.TeamID == teamID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *SeasonRepository) Create(_ context.Context, s season.Season) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[s.ID]; !exists {
		r.order = append(r.order, s.ID)
	}
	r.items[s.ID] = s
	return nil
}

func (r *SeasonRepository) Update(_ context.Context, s season.Season) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[s.ID] = s
	return nil
}

func (r *SeasonRepository) Delete(_ context.Context, teamID, seasonID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.items[seasonID]; ok && s.TeamID == teamID {
		delete(r.items, seasonID)
		delete(r.rosters, seasonID)
	}
	return nil
}

func (r *SeasonRepository) DeactivateAll(_ context.Context, teamID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, s := range r.items {
		if s.TeamID == teamID && s.IsActive {
			s.IsActive = false
			r.items[id] = s
		}
	}
	return nil
}

func (r *SeasonRepository) ListRoster(_ context.Context, seasonID string) ([]season.RosterEntry, error) {
	r.mu.RLock()
	playerIDs := append([]string(nil), r.rosters[seasonID]...)
	r.mu.RUnlock()

	out := make([]season.RosterEntry, 0, len(playerIDs))
	for _, playerID := range playerIDs {
		entry := season.RosterEntry{SeasonID: seasonID, PlayerID: playerID}
		if p, ok := r.players.lookup(playerID); ok {
			entry.Player = p
		}
		out = append(out, entry)
	}
	return out, nil
}

func (r *SeasonRepository) AddRosterEntry(_ context.Context, seasonID, playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.rosters[seasonID] {
		if existing == playerID {
			return fmt.Errorf("player %s is already on the roster of season %s", playerID, seasonID)
		}
	}
	r.rosters[seasonID] = append(r.rosters[seasonID], playerID)
	return nil
}

func (r *SeasonRepository) RemoveRosterEntry(_ context.Context, seasonID, playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	roster := r.rosters[seasonID]
	for i, existing := range roster {
		if existing == playerID {
			r.rosters[seasonID] = append(roster[:i], roster[i+1:]...)
			return nil
		}
	}
	return nil
}
