package httpapi

import (
	"net/http"
	"strings"

	"github.com/futstats/team-manager/internal/domain/match"
	"github.com/futstats/team-manager/internal/usecase"
)

type upsertMatchRequest struct {
	SeasonID   string `json:"seasonId"`
	Date       string `json:"date" validate:"required"`
	Location   string `json:"location" validate:"omitempty,max=200"`
	Opponent   string `json:"opponent" validate:"omitempty,max=120"`
	Notes      string `json:"notes" validate:"omitempty,max=2000"`
	OurScore   int    `json:"ourScore" validate:"gte=0"`
	TheirScore int    `json:"theirScore" validate:"gte=0"`
}

type addGoalRequest struct {
	PlayerID *string `json:"playerId"`
	Minute   *int    `json:"minute" validate:"omitempty,gte=0,lte=130"`
	OwnGoal  bool    `json:"ownGoal"`
	FreeKick bool    `json:"freeKick"`
	Penalty  bool    `json:"penalty"`
}

type setPresenceRequest struct {
	Present bool `json:"present"`
}

type matchDTO struct {
	ID           string    `json:"id"`
	TeamID       string    `json:"teamId"`
	SeasonID     string    `json:"seasonId"`
	Date         string    `json:"date"`
	Location     string    `json:"location,omitempty"`
	Opponent     string    `json:"opponent"`
	Notes        string    `json:"notes,omitempty"`
	OurScore     int       `json:"ourScore"`
	TheirScore   int       `json:"theirScore"`
	Played       bool      `json:"played"`
	Result       string    `json:"result,omitempty"`
	PresentCount int       `json:"presentCount"`
	Goals        []goalDTO `json:"goals"`
}

type goalDTO struct {
	ID          string `json:"id"`
	MatchID     string `json:"matchId"`
	PlayerID    string `json:"playerId,omitempty"`
	PlayerLabel string `json:"playerLabel,omitempty"`
	Minute      *int   `json:"minute,omitempty"`
	OwnGoal     bool   `json:"ownGoal"`
	FreeKick    bool   `json:"freeKick"`
	Penalty     bool   `json:"penalty"`
	CreatedAt   string `json:"createdAt"`
}

func matchToDTO(v match.Match) matchDTO {
	goals := make([]goalDTO, 0, len(v.Goals))
	for _, g := range v.Goals {
		goals = append(goals, goalToDTO(g))
	}

	dto := matchDTO{
		ID:           v.ID,
		TeamID:       v.TeamID,
		SeasonID:     v.SeasonID,
		Date:         formatDate(v.Date),
		Location:     v.Location,
		Opponent:     v.OpponentLabel(),
		Notes:        v.Notes,
		OurScore:     v.OurScore,
		TheirScore:   v.TheirScore,
		Played:       v.Played(),
		PresentCount: v.PresentCount,
		Goals:        goals,
	}
	if v.Played() {
		dto.Result = v.Result()
	}
	return dto
}

func goalToDTO(v match.Goal) goalDTO {
	dto := goalDTO{
		ID:        v.ID,
		MatchID:   v.MatchID,
		Minute:    v.Minute,
		OwnGoal:   v.OwnGoal,
		FreeKick:  v.FreeKick,
		Penalty:   v.Penalty,
		CreatedAt: formatDate(v.CreatedAt),
	}
	if v.PlayerID != nil {
		dto.PlayerID = *v.PlayerID
	}
	if v.Player != nil {
		dto.PlayerLabel = v.Player.Label()
	}
	return dto
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	seasonID := strings.TrimSpace(r.URL.Query().Get("season_id"))
	matches, err := h.matchService.ListMatches(ctx, teamID, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "team_id", teamID, "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

// NextMatch returns the nearest upcoming fixture nobody has confirmed for
// yet, or null when the calendar is clear.
func (h *Handler) NextMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.NextMatch")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	seasonID := strings.TrimSpace(r.URL.Query().Get("season_id"))
	next, ok, err := h.matchService.NextMatch(ctx, teamID, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "next match failed", "team_id", teamID, "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !ok {
		writeSuccess(ctx, w, http.StatusOK, nil)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(next))
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatch")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	var req upsertMatchRequest
	if err := h.decodeRequest(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.matchService.CreateMatch(ctx, usecase.CreateMatchInput{
		TeamID:     teamID,
		SeasonID:   strings.TrimSpace(req.SeasonID),
		Date:       date,
		Location:   req.Location,
		Opponent:   req.Opponent,
		Notes:      req.Notes,
		OurScore:   req.OurScore,
		TheirScore: req.TheirScore,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create match failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(item))
}

func (h *Handler) UpdateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMatch")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	matchID := strings.TrimSpace(r.PathValue("matchID"))
	var req upsertMatchRequest
	if err := h.decodeRequest(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.matchService.UpdateMatch(ctx, usecase.UpdateMatchInput{
		TeamID:     teamID,
		MatchID:    matchID,
		Date:       date,
		Location:   req.Location,
		Opponent:   req.Opponent,
		Notes:      req.Notes,
		OurScore:   req.OurScore,
		TheirScore: req.TheirScore,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update match failed", "team_id", teamID, "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteMatch")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	matchID := strings.TrimSpace(r.PathValue("matchID"))
	if err := h.matchService.DeleteMatch(ctx, teamID, matchID); err != nil {
		h.logger.WarnContext(ctx, "delete match failed", "team_id", teamID, "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) AddGoal(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddGoal")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	matchID := strings.TrimSpace(r.PathValue("matchID"))
	var req addGoalRequest
	if err := h.decodeRequest(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.matchService.AddGoal(ctx, usecase.AddGoalInput{
		TeamID:   teamID,
		MatchID:  matchID,
		PlayerID: req.PlayerID,
		Minute:   req.Minute,
		OwnGoal:  req.OwnGoal,
		FreeKick: req.FreeKick,
		Penalty:  req.Penalty,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "add goal failed", "team_id", teamID, "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, goalToDTO(item))
}

func (h *Handler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteGoal")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	matchID := strings.TrimSpace(r.PathValue("matchID"))
	goalID := strings.TrimSpace(r.PathValue("goalID"))
	if err := h.matchService.DeleteGoal(ctx, teamID, matchID, goalID); err != nil {
		h.logger.WarnContext(ctx, "delete goal failed", "team_id", teamID, "match_id", matchID, "goal_id", goalID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) SetPresence(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetPresence")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	matchID := strings.TrimSpace(r.PathValue("matchID"))
	playerID := strings.TrimSpace(r.PathValue("playerID"))
	var req setPresenceRequest
	if err := h.decodeRequest(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	err := h.matchService.SetPresence(ctx, usecase.SetPresenceInput{
		TeamID:   teamID,
		MatchID:  matchID,
		PlayerID: playerID,
		Present:  req.Present,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "set presence failed", "team_id", teamID, "match_id", matchID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "saved"})
}
