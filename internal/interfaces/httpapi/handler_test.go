package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/futstats/team-manager/internal/domain/match"
	"github.com/futstats/team-manager/internal/domain/player"
	"github.com/futstats/team-manager/internal/domain/season"
	"github.com/futstats/team-manager/internal/domain/team"
	"github.com/futstats/team-manager/internal/infrastructure/repository/memory"
	"github.com/futstats/team-manager/internal/platform/cache"
	"github.com/futstats/team-manager/internal/platform/id"
	"github.com/futstats/team-manager/internal/usecase"
)

// newTestRouter wires the full stack against in-memory repositories: one team,
// one active season with a played match, shared cache for aggregates and
// response bodies.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	teams := memory.NewTeamRepository([]team.Team{{ID: "team-1", Name: "Sharks"}})
	players := memory.NewPlayerRepository([]player.Player{
		{ID: "p1", TeamID: "team-1", Name: "Ana Souza", Number: 10},
	})
	seasons := memory.NewSeasonRepository([]season.Season{
		{ID: "s1", TeamID: "team-1", Year: 2026, Name: "2026", IsActive: true},
	}, players)
	matches := memory.NewMatchRepository(players)

	ctx := context.Background()
	if err := seasons.AddRosterEntry(ctx, "s1", "p1"); err != nil {
		t.Fatalf("seed roster: %v", err)
	}
	if err := matches.Create(ctx, match.Match{
		ID: "m1", TeamID: "team-1", SeasonID: "s1",
		Date:     time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC),
		Opponent: "Rivals", OurScore: 2, TheirScore: 1,
	}); err != nil {
		t.Fatalf("seed match: %v", err)
	}
	if err := matches.UpsertPresence(ctx, match.Presence{MatchID: "m1", PlayerID: "p1", Present: true}); err != nil {
		t.Fatalf("seed presence: %v", err)
	}

	store := cache.NewStore(time.Minute)
	invalidator := usecase.NewInvalidator(store, nil)
	idGen := id.NewRandomGenerator()

	teamService := usecase.NewTeamService(teams, invalidator)
	playerService := usecase.NewPlayerService(players, seasons, idGen, invalidator, nil)
	seasonService := usecase.NewSeasonService(seasons, players, idGen, invalidator)
	matchService := usecase.NewMatchService(seasons, matches, players, idGen, invalidator)
	dashboardService := usecase.NewDashboardService(seasons, matches, store)
	refreshService := usecase.NewRefreshService(dashboardService, invalidator, nil)

	handler := NewHandler(teamService, playerService, seasonService, matchService, dashboardService, refreshService, nil)
	return NewRouter(handler, nil, []string{"*"}, store)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v (%s)", err, rec.Body.String())
	}
	return body
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	data, _ := body["data"].(map[string]any)
	if got, _ := data["status"].(string); got != "ok" {
		t.Fatalf("unexpected health payload: %v", body)
	}
}

func TestRouter_GetDashboard(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/teams/team-1/dashboard", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeEnvelope(t, rec)
	data, _ := body["data"].(map[string]any)
	summary, _ := data["summary"].(map[string]any)
	if got, _ := summary["totalGames"].(float64); got != 1 {
		t.Fatalf("unexpected totalGames: %v", summary)
	}
	if got, _ := summary["wins"].(float64); got != 1 {
		t.Fatalf("unexpected wins: %v", summary)
	}

	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/teams/team-1/dashboard", nil))
	if second.Header().Get("X-Cache") != "HIT" {
		t.Fatalf("second dashboard read must come from the response cache")
	}
}

func TestRouter_RenameTeamInvalidatesCachedReads(t *testing.T) {
	router := newTestRouter(t)

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/teams/team-1", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", first.Code)
	}

	rename := httptest.NewRequest(http.MethodPut, "/api/teams/team-1", strings.NewReader(`{"name":"Orcas"}`))
	renameRec := httptest.NewRecorder()
	router.ServeHTTP(renameRec, rename)
	if renameRec.Code != http.StatusOK {
		t.Fatalf("rename failed: %d %s", renameRec.Code, renameRec.Body.String())
	}

	after := httptest.NewRecorder()
	router.ServeHTTP(after, httptest.NewRequest(http.MethodGet, "/api/teams/team-1", nil))
	if after.Header().Get("X-Cache") == "HIT" {
		t.Fatalf("rename must invalidate the cached team response")
	}
	body := decodeEnvelope(t, after)
	data, _ := body["data"].(map[string]any)
	if got, _ := data["name"].(string); got != "Orcas" {
		t.Fatalf("expected renamed team, got %v", data)
	}
}

func TestRouter_UnknownTeamIsNotFound(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/teams/missing", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	errorObj, _ := body["error"].(map[string]any)
	if got, _ := errorObj["status"].(string); got != "NOT_FOUND" {
		t.Fatalf("unexpected error status: %v", errorObj)
	}
}

func TestRouter_RejectsUnknownJSONFields(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPut, "/api/teams/team-1",
		strings.NewReader(`{"name":"Orcas","unexpected":true}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown field, got %d", rec.Code)
	}
}

func TestRouter_RefreshDashboards(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/internal/dashboards/refresh",
		strings.NewReader(`{"team_ids":["team-1"],"invalidate":true}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeEnvelope(t, rec)
	data, _ := body["data"].(map[string]any)
	if got, _ := data["success_count"].(float64); got != 1 {
		t.Fatalf("unexpected refresh result: %v", data)
	}
}
