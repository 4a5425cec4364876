package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/futstats/team-manager/internal/domain/match"
)

type MatchRepository struct {
	mu        sync.RWMutex
	items     map[string]match.Match     // stored without joins
	goals     map[string][]match.Goal    // matchID -> goals in creation order
	presences map[string]map[string]bool // matchID -> playerID -> present
	players   *PlayerRepository
}

func NewMatchRepository(players *PlayerRepository) *MatchRepository {
	return &MatchRepository{
		items:     make(map[string]match.Match),
		goals:     make(map[string][]match.Goal),
		presences: make(map[string]map[string]bool),
		players:   players,
	}
}

func (r *MatchRepository) ListBySeason(_ context.Context, teamID, seasonID string) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, m := range r.items {
		if m.TeamID == teamID && m.SeasonID == seasonID {
			out = append(out, r.withJoins(m))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *MatchRepository) GetByID(_ context.Context, teamID, matchID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.items[matchID]
	if !ok || m.TeamID != teamID {
		return match.Match{}, false, nil
	}
	return r.withJoins(m), true, nil
}

func (r *MatchRepository) FindNextUnplayed(_ context.Context, teamID, seasonID string, from time.Time) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var best match.Match
	found := false
	for _, m := range r.items {
		if m.TeamID != teamID || m.SeasonID != seasonID {
			continue
		}
		if m.Date.Before(from) || r.presentCount(m.ID) > 0 {
			continue
		}
		if !found || m.Date.Before(best.Date) {
			best = m
			found = true
		}
	}
	if !found {
		return match.Match{}, false, nil
	}
	return r.withJoins(best), true, nil
}

func (r *MatchRepository) ListGoalsByMatchIDs(_ context.Context, matchIDs []string) ([]match.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Goal, 0)
	for _, matchID := range matchIDs {
		out = append(out, r.joinedGoals(matchID)...)
	}
	return out, nil
}

func (r *MatchRepository) ListPresentByMatchIDs(_ context.Context, matchIDs []string) ([]match.Presence, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Presence, 0)
	for _, matchID := range matchIDs {
		for playerID, present := range r.presences[matchID] {
			if present {
				out = append(out, match.Presence{MatchID: matchID, PlayerID: playerID, Present: true})
			}
		}
	}
	return out, nil
}

func (r *MatchRepository) Create(_ context.Context, m match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m.Goals = nil
	m.PresentCount = 0
	r.items[m.ID] = m
	return nil
}

func (r *MatchRepository) Update(_ context.Context, m match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m.Goals = nil
	m.PresentCount = 0
	r.items[m.ID] = m
	return nil
}

func (r *MatchRepository) Delete(_ context.Context, teamID, matchID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m, ok := r.items[matchID]; ok && m.TeamID == teamID {
		delete(r.items, matchID)
		delete(r.goals, matchID)
		delete(r.presences, matchID)
	}
	return nil
}

func (r *MatchRepository) AddGoal(_ context.Context, g match.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g.Player = nil
	r.goals[g.MatchID] = append(r.goals[g.MatchID], g)
	return nil
}

func (r *MatchRepository) DeleteGoal(_ context.Context, matchID, goalID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	goals := r.goals[matchID]
	for i, g := range goals {
		if g.ID == goalID {
			r.goals[matchID] = append(goals[:i], goals[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *MatchRepository) UpsertPresence(_ context.Context, p match.Presence) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.presences[p.MatchID] == nil {
		r.presences[p.MatchID] = make(map[string]bool)
	}
	r.presences[p.MatchID][p.PlayerID] = p.Present
	return nil
}

// withJoins attaches goals (with player join) and the confirmed-presence
// count. Callers must hold at least a read lock.
func (r *MatchRepository) withJoins(m match.Match) match.Match {
	m.Goals = r.joinedGoals(m.ID)
	m.PresentCount = r.presentCount(m.ID)
	return m
}

func (r *MatchRepository) joinedGoals(matchID string) []match.Goal {
	stored := r.goals[matchID]
	out := make([]match.Goal, 0, len(stored))
	for _, g := range stored {
		if g.PlayerID != nil {
			if p, ok := r.players.lookup(*g.PlayerID); ok {
				joined := p
				g.Player = &joined
			}
		}
		out = append(out, g)
	}
	return out
}

func (r *MatchRepository) presentCount(matchID string) int {
	n := 0
	for _, present := range r.presences[matchID] {
		if present {
			n++
		}
	}
	return n
}
