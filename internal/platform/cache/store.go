package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/futstats/team-manager/internal/platform/resilience"
)

// DefaultTTL applies to entries stored without an explicit TTL. Matches the
// five-minute window season aggregates are allowed to go stale for.
const DefaultTTL = 5 * time.Minute

type entry struct {
	value     any
	expiresAt time.Time
}

// Store is an in-process key/value cache with per-entry expiry and
// prefix-based bulk deletion.
//
// Values are stored and returned by reference, never copied. Callers must
// treat anything obtained from Get as immutable.
type Store struct {
	mu         sync.RWMutex
	entries    map[string]entry
	defaultTTL time.Duration
	flight     resilience.SingleFlight

	sweepOnce sync.Once
	sweepStop chan struct{}
}

func NewStore(defaultTTL time.Duration) *Store {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	return &Store{
		entries:    make(map[string]entry),
		defaultTTL: defaultTTL,
		sweepStop:  make(chan struct{}),
	}
}

// Get returns the cached value if present and not expired. Expiry is enforced
// here; the sweeper only reclaims memory earlier.
func (s *Store) Get(_ context.Context, key string) (any, bool) {
	if key == "" {
		return nil, false
	}

	now := time.Now()
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !e.expiresAt.After(now) {
		s.mu.Lock()
		if current, still := s.entries[key]; still && !current.expiresAt.After(now) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false
	}

	return e.value, true
}

// Set stores value under key with the store's default TTL, overwriting any
// existing entry.
func (s *Store) Set(ctx context.Context, key string, value any) {
	s.SetTTL(ctx, key, value, 0)
}

// SetTTL stores value with an explicit TTL. A non-positive ttl falls back to
// the default.
func (s *Store) SetTTL(_ context.Context, key string, value any, ttl time.Duration) {
	if key == "" {
		return
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}

	s.mu.Lock()
	s.entries[key] = entry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	s.mu.Unlock()
}

// Delete removes the given keys and reports how many entries actually existed.
func (s *Store) Delete(_ context.Context, keys ...string) int {
	if len(keys) == 0 {
		return 0
	}

	removed := 0
	s.mu.Lock()
	for _, key := range keys {
		if _, ok := s.entries[key]; ok {
			delete(s.entries, key)
			removed++
		}
	}
	s.mu.Unlock()
	return removed
}

// DeletePrefix removes every entry whose key starts with prefix and reports
// the count. Callers should pass delimiter-terminated prefixes (see
// TeamPrefix).
func (s *Store) DeletePrefix(_ context.Context, prefix string) int {
	if prefix == "" {
		return 0
	}

	removed := 0
	s.mu.Lock()
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
			removed++
		}
	}
	s.mu.Unlock()
	return removed
}

// Flush drops everything. Intended for full resets such as test teardown;
// request-path code invalidates by prefix instead.
func (s *Store) Flush(_ context.Context) {
	s.mu.Lock()
	s.entries = make(map[string]entry)
	s.mu.Unlock()
}

// Len reports live (non-expired) entries.
func (s *Store) Len() int {
	now := time.Now()
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, e := range s.entries {
		if e.expiresAt.After(now) {
			n++
		}
	}
	return n
}

// GetOrLoad returns the cached value for key, computing and storing it via
// loader on a miss. Concurrent misses for the same key are collapsed into a
// single loader call. Loader failures are returned as-is and nothing is
// cached.
func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	value, err, _ := s.flight.Do(key, func() (any, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		s.Set(ctx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}

// StartSweeper launches a background goroutine that reclaims expired entries
// every interval. Get enforces expiry on its own, so the sweeper is purely a
// memory concern. Stop it with Close.
func (s *Store) StartSweeper(interval time.Duration) {
	if interval <= 0 {
		interval = s.defaultTTL / 5
	}
	if interval <= 0 {
		interval = time.Minute
	}

	s.sweepOnce.Do(func() {
		go func() {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					s.sweep(time.Now())
				case <-s.sweepStop:
					return
				}
			}
		}()
	})
}

// Close stops the sweeper goroutine, if one was started.
func (s *Store) Close() {
	select {
	case <-s.sweepStop:
	default:
		close(s.sweepStop)
	}
}

func (s *Store) sweep(now time.Time) {
	s.mu.Lock()
	for key, e := range s.entries {
		if !e.expiresAt.After(now) {
			delete(s.entries, key)
		}
	}
	s.mu.Unlock()
}
