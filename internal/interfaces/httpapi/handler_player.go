package httpapi

import (
	"net/http"
	"strings"

	"github.com/futstats/team-manager/internal/domain/player"
	"github.com/futstats/team-manager/internal/usecase"
)

type upsertPlayerRequest struct {
	Name     string `json:"name" validate:"required,max=120"`
	Nickname string `json:"nickname" validate:"omitempty,max=60"`
	Position string `json:"position" validate:"omitempty,max=40"`
	Number   int    `json:"number" validate:"gte=0,lte=99"`
	Photo    string `json:"photo" validate:"omitempty,url"`
}

type playerDTO struct {
	ID       string `json:"id"`
	TeamID   string `json:"teamId"`
	Name     string `json:"name"`
	Nickname string `json:"nickname,omitempty"`
	Position string `json:"position,omitempty"`
	Number   int    `json:"number,omitempty"`
	Photo    string `json:"photo,omitempty"`
}

func playerToDTO(v player.Player) playerDTO {
	return playerDTO{
		ID:       v.ID,
		TeamID:   v.TeamID,
		Name:     v.Name,
		Nickname: v.Nickname,
		Position: v.Position,
		Number:   v.Number,
		Photo:    v.Photo,
	}
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	players, err := h.playerService.ListPlayers(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePlayer")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	var req upsertPlayerRequest
	if err := h.decodeRequest(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.playerService.CreatePlayer(ctx, usecase.CreatePlayerInput{
		TeamID:   teamID,
		Name:     req.Name,
		Nickname: req.Nickname,
		Position: req.Position,
		Number:   req.Number,
		Photo:    req.Photo,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create player failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerToDTO(item))
}

func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePlayer")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	playerID := strings.TrimSpace(r.PathValue("playerID"))
	var req upsertPlayerRequest
	if err := h.decodeRequest(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.playerService.UpdatePlayer(ctx, usecase.UpdatePlayerInput{
		TeamID:   teamID,
		PlayerID: playerID,
		Name:     req.Name,
		Nickname: req.Nickname,
		Position: req.Position,
		Number:   req.Number,
		Photo:    req.Photo,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update player failed", "team_id", teamID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(item))
}

func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePlayer")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	playerID := strings.TrimSpace(r.PathValue("playerID"))
	if err := h.playerService.DeletePlayer(ctx, teamID, playerID); err != nil {
		h.logger.WarnContext(ctx, "delete player failed", "team_id", teamID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}
