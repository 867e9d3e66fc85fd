package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/kemetion/fantasy-cricket/internal/usecase"
)

func (h *Handler) GetPlayerScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerScore")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	playerID := strings.TrimSpace(r.PathValue("playerID"))

	score, err := h.scoringService.PlayerScore(ctx, matchID, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player score failed", "match_id", matchID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerScoreToDTO(score))
}

func (h *Handler) ListMatchPerformances(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchPerformances")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	scores, err := h.scoringService.MatchPerformances(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "list match performances failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerScoreDTO, 0, len(scores))
	for _, score := range scores {
		items = append(items, playerScoreToDTO(score))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListScoringRules(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListScoringRules")
	defer span.End()

	rules := h.scoringService.Rules()
	items := make([]scoringRuleDTO, 0, len(rules))
	for _, rule := range rules {
		items = append(items, scoringRuleToDTO(rule))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) IngestPerformance(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.IngestPerformance")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))

	var req ingestPerformanceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	score, err := h.scoringService.IngestPerformance(ctx, usecase.IngestPerformanceInput{
		MatchID:    matchID,
		PlayerID:   req.PlayerID,
		Statistics: req.Statistics,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "ingest performance failed", "match_id", matchID, "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.leaderboardService.Invalidate(ctx)
	writeSuccess(ctx, w, http.StatusCreated, playerScoreToDTO(score))
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	query := usecase.LeaderboardQuery{
		ContestID: strings.TrimSpace(r.URL.Query().Get("contest_id")),
	}

	entries, err := h.leaderboardService.Leaderboard(ctx, query)
	if err != nil {
		h.logger.WarnContext(ctx, "get leaderboard failed", "contest_id", query.ContestID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaderboardToDTO(entries))
}

func (h *Handler) RunRefreshLiveJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRefreshLiveJob")
	defer span.End()

	if h.refreshService == nil {
		writeError(ctx, w, fmt.Errorf("%w: live refresh is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	result, err := h.refreshService.RefreshLive(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "run refresh live job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	h.leaderboardService.Invalidate(ctx)
	writeSuccess(ctx, w, http.StatusOK, result)
}
