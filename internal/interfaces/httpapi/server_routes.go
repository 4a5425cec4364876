package httpapi

import (
	"net/http"

	"github.com/futstats/team-manager/internal/platform/cache"
)

func registerRoutes(mux *http.ServeMux, handler *Handler, responseCache *cache.Store) {
	cached := func(h http.HandlerFunc) http.Handler {
		return CachedGET(responseCache, h)
	}

	mux.HandleFunc("GET /healthz", handler.Healthz)

	mux.Handle("GET /api/teams/{teamID}", cached(handler.GetTeam))
	mux.HandleFunc("PUT /api/teams/{teamID}", handler.RenameTeam)

	mux.Handle("GET /api/teams/{teamID}/dashboard", cached(handler.GetDashboard))

	mux.Handle("GET /api/teams/{teamID}/players", cached(handler.ListPlayers))
	mux.HandleFunc("POST /api/teams/{teamID}/players", handler.CreatePlayer)
	mux.HandleFunc("PUT /api/teams/{teamID}/players/{playerID}", handler.UpdatePlayer)
	mux.HandleFunc("DELETE /api/teams/{teamID}/players/{playerID}", handler.DeletePlayer)

	mux.Handle("GET /api/teams/{teamID}/seasons", cached(handler.ListSeasons))
	mux.HandleFunc("POST /api/teams/{teamID}/seasons", handler.CreateSeason)
	mux.HandleFunc("PUT /api/teams/{teamID}/seasons/{seasonID}", handler.UpdateSeason)
	mux.HandleFunc("DELETE /api/teams/{teamID}/seasons/{seasonID}", handler.DeleteSeason)
	mux.HandleFunc("POST /api/teams/{teamID}/seasons/{seasonID}/activate", handler.ActivateSeason)
	mux.HandleFunc("POST /api/teams/{teamID}/seasons/{seasonID}/roster/{playerID}", handler.AddRosterEntry)
	mux.HandleFunc("DELETE /api/teams/{teamID}/seasons/{seasonID}/roster/{playerID}", handler.RemoveRosterEntry)

	mux.Handle("GET /api/teams/{teamID}/matches", cached(handler.ListMatches))
	mux.HandleFunc("POST /api/teams/{teamID}/matches", handler.CreateMatch)
	mux.Handle("GET /api/teams/{teamID}/matches/next", cached(handler.NextMatch))
	mux.HandleFunc("PUT /api/teams/{teamID}/matches/{matchID}", handler.UpdateMatch)
	mux.HandleFunc("DELETE /api/teams/{teamID}/matches/{matchID}", handler.DeleteMatch)
	mux.HandleFunc("POST /api/teams/{teamID}/matches/{matchID}/goals", handler.AddGoal)
	mux.HandleFunc("DELETE /api/teams/{teamID}/matches/{matchID}/goals/{goalID}", handler.DeleteGoal)
	mux.HandleFunc("PUT /api/teams/{teamID}/matches/{matchID}/presences/{playerID}", handler.SetPresence)

	mux.HandleFunc("POST /api/internal/dashboards/refresh", handler.RefreshDashboards)
}
