package httpapi

import (
	"net/http"

	"github.com/futstats/team-manager/internal/usecase"
)

type refreshRequest struct {
	TeamIDs    []string `json:"team_ids" validate:"required,min=1,dive,required"`
	MaxWorkers int      `json:"max_workers" validate:"gte=0,lte=32"`
	Invalidate bool     `json:"invalidate"`
}

// RefreshDashboards warms dashboard caches for a batch of teams. Meant for
// internal tooling after bulk imports, not for the request path.
func (h *Handler) RefreshDashboards(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshDashboards")
	defer span.End()

	var req refreshRequest
	if err := h.decodeRequest(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.refreshService.Refresh(ctx, usecase.RefreshInput{
		TeamIDs:    req.TeamIDs,
		MaxWorkers: req.MaxWorkers,
		Invalidate: req.Invalidate,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "dashboard refresh failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
