package httpapi

import (
	"net/http"
	"strings"
)

// GetDashboard serves the aggregated season view. An explicit season_id query
// parameter pins the season; otherwise the team's active season is used.
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDashboard")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	seasonID := strings.TrimSpace(r.URL.Query().Get("season_id"))

	dashboard, err := h.dashboardService.GetDashboard(ctx, teamID, seasonID)
	if err != nil {
		h.logger.ErrorContext(ctx, "get dashboard failed", "team_id", teamID, "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, dashboard)
}
