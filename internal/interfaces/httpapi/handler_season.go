package httpapi

import (
	"net/http"
	"strings"

	"github.com/futstats/team-manager/internal/domain/season"
	"github.com/futstats/team-manager/internal/usecase"
)

type createSeasonRequest struct {
	Year     int    `json:"year" validate:"required,gte=1900,lte=2200"`
	Name     string `json:"name" validate:"required,max=120"`
	Activate bool   `json:"activate"`
}

type updateSeasonRequest struct {
	Year int    `json:"year" validate:"required,gte=1900,lte=2200"`
	Name string `json:"name" validate:"required,max=120"`
}

type seasonDTO struct {
	ID       string `json:"id"`
	TeamID   string `json:"teamId"`
	Year     int    `json:"year"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}

func seasonToDTO(v season.Season) seasonDTO {
	return seasonDTO{
		ID:       v.ID,
		TeamID:   v.TeamID,
		Year:     v.Year,
		Name:     v.Name,
		IsActive: v.IsActive,
	}
}

func (h *Handler) ListSeasons(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasons")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	seasons, err := h.seasonService.ListSeasons(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "list seasons failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]seasonDTO, 0, len(seasons))
	for _, s := range seasons {
		items = append(items, seasonToDTO(s))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreateSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateSeason")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	var req createSeasonRequest
	if err := h.decodeRequest(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.seasonService.CreateSeason(ctx, usecase.CreateSeasonInput{
		TeamID:   teamID,
		Year:     req.Year,
		Name:     req.Name,
		Activate: req.Activate,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create season failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, seasonToDTO(item))
}

func (h *Handler) UpdateSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateSeason")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	var req updateSeasonRequest
	if err := h.decodeRequest(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.seasonService.UpdateSeason(ctx, usecase.UpdateSeasonInput{
		TeamID:   teamID,
		SeasonID: seasonID,
		Year:     req.Year,
		Name:     req.Name,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update season failed", "team_id", teamID, "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonToDTO(item))
}

func (h *Handler) ActivateSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ActivateSeason")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	item, err := h.seasonService.ActivateSeason(ctx, teamID, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "activate season failed", "team_id", teamID, "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonToDTO(item))
}

func (h *Handler) DeleteSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteSeason")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	if err := h.seasonService.DeleteSeason(ctx, teamID, seasonID); err != nil {
		h.logger.WarnContext(ctx, "delete season failed", "team_id", teamID, "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) AddRosterEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddRosterEntry")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	playerID := strings.TrimSpace(r.PathValue("playerID"))
	if err := h.seasonService.AddRosterEntry(ctx, teamID, seasonID, playerID); err != nil {
		h.logger.WarnContext(ctx, "add roster entry failed", "team_id", teamID, "season_id", seasonID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "added"})
}

func (h *Handler) RemoveRosterEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveRosterEntry")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	playerID := strings.TrimSpace(r.PathValue("playerID"))
	if err := h.seasonService.RemoveRosterEntry(ctx, teamID, seasonID, playerID); err != nil {
		h.logger.WarnContext(ctx, "remove roster entry failed", "team_id", teamID, "season_id", seasonID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "removed"})
}
