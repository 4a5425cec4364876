package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/futstats/team-manager/internal/domain/player"
)

type PlayerRepository struct {
	mu    sync.RWMutex
	items map[string]player.Player
	order []string
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	r := &PlayerRepository{items: make(map[string]player.Player, len(players))}
	for _, p := range players {
		r.items[p.ID] = p
		r.order = append(r.order, p.ID)
	}
	return r
}

func (r *PlayerRepository) GetByID(_ context.Context, teamID, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[playerID]
	if !ok || p.TeamID != teamID {
		return player.Player{}, false, nil
	}
	return p, true, nil
}

func (r *PlayerRepository) ListByTeam(_ context.Context, teamID string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0)
	for _, id := range r.order {
		if p, ok := r.items[id]; ok && p.TeamID == teamID {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *PlayerRepository) Create(_ context.Context, p player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[p.ID]; !exists {
		r.order = append(r.order, p.ID)
	}
	r.items[p.ID] = p
	return nil
}

func (r *PlayerRepository) Update(_ context.Context, p player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[p.ID] = p
	return nil
}

func (r *PlayerRepository) Delete(_ context.Context, teamID, playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.items[playerID]; ok && p.TeamID == teamID {
		delete(r.items, playerID)
	}
	return nil
}

// lookup resolves a player without team scoping, for joins.
func (r *PlayerRepository) lookup(playerID string) (player.Player, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[playerID]
	return p, ok
}
