package httpapi

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/futstats/team-manager/internal/platform/cache"
)

func cachedGETRequest(target string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.SetPathValue("teamID", "team-1")
	return req
}

func TestCachedGET_ReplaysStoredResponse(t *testing.T) {
	store := cache.NewStore(time.Minute)
	var calls atomic.Int32
	handler := CachedGET(store, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, cachedGETRequest("/api/teams/team-1/dashboard"))
	second := httptest.NewRecorder()
	handler.ServeHTTP(second, cachedGETRequest("/api/teams/team-1/dashboard"))

	if got := calls.Load(); got != 1 {
		t.Fatalf("expected 1 handler call, got %d", got)
	}
	if second.Header().Get("X-Cache") != "HIT" {
		t.Fatalf("expected X-Cache HIT on replay")
	}
	if second.Body.String() != `{"ok":true}` {
		t.Fatalf("unexpected replayed body: %q", second.Body.String())
	}
	if second.Header().Get("Content-Type") != "application/json" {
		t.Fatalf("unexpected replayed content type: %q", second.Header().Get("Content-Type"))
	}
}

func TestCachedGET_DistinguishesQueryStrings(t *testing.T) {
	store := cache.NewStore(time.Minute)
	var calls atomic.Int32
	handler := CachedGET(store, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), cachedGETRequest("/api/teams/team-1/dashboard"))
	handler.ServeHTTP(httptest.NewRecorder(), cachedGETRequest("/api/teams/team-1/dashboard?season_id=s2"))

	if got := calls.Load(); got != 2 {
		t.Fatalf("different query strings must cache separately, got %d calls", got)
	}
}

func TestCachedGET_SkipsNon200Responses(t *testing.T) {
	store := cache.NewStore(time.Minute)
	var calls atomic.Int32
	handler := CachedGET(store, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), cachedGETRequest("/api/teams/team-1/dashboard"))
	handler.ServeHTTP(httptest.NewRecorder(), cachedGETRequest("/api/teams/team-1/dashboard"))

	if got := calls.Load(); got != 2 {
		t.Fatalf("non-200 responses must not be cached, got %d calls", got)
	}
	if store.Len() != 0 {
		t.Fatalf("store must stay empty, got %d entries", store.Len())
	}
}

func TestCachedGET_SkipsNonGETAndMissingTeam(t *testing.T) {
	store := cache.NewStore(time.Minute)
	var calls atomic.Int32
	handler := CachedGET(store, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
	}))

	post := httptest.NewRequest(http.MethodPost, "/api/teams/team-1/matches", nil)
	post.SetPathValue("teamID", "team-1")
	handler.ServeHTTP(httptest.NewRecorder(), post)
	handler.ServeHTTP(httptest.NewRecorder(), post)

	noTeam := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	handler.ServeHTTP(httptest.NewRecorder(), noTeam)
	handler.ServeHTTP(httptest.NewRecorder(), noTeam)

	if got := calls.Load(); got != 4 {
		t.Fatalf("expected passthrough for all 4 requests, got %d calls", got)
	}
	if store.Len() != 0 {
		t.Fatalf("store must stay empty, got %d entries", store.Len())
	}
}

func TestCachedGET_NilStorePassesThrough(t *testing.T) {
	var calls atomic.Int32
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
	})

	handler := CachedGET(nil, next)
	handler.ServeHTTP(httptest.NewRecorder(), cachedGETRequest("/api/teams/team-1/dashboard"))
	handler.ServeHTTP(httptest.NewRecorder(), cachedGETRequest("/api/teams/team-1/dashboard"))

	if got := calls.Load(); got != 2 {
		t.Fatalf("nil store must disable caching, got %d calls", got)
	}
}

func TestCachedGET_InvalidationForcesRefresh(t *testing.T) {
	store := cache.NewStore(time.Minute)
	var calls atomic.Int32
	handler := CachedGET(store, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	req := cachedGETRequest("/api/teams/team-1/dashboard")

	handler.ServeHTTP(httptest.NewRecorder(), req)
	store.DeletePrefix(req.Context(), cache.TeamPrefix(cache.NamespaceResponse, "team-1"))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got := calls.Load(); got != 2 {
		t.Fatalf("expected refresh after invalidation, got %d calls", got)
	}
}
