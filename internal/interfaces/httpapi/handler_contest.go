package httpapi

import (
	"fmt"
	"net/http"

	"github.com/kemetion/fantasy-cricket/internal/usecase"
)

func (h *Handler) ListContests(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListContests")
	defer span.End()

	contests, err := h.contestService.List(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list contests failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]contestDTO, 0, len(contests))
	for _, c := range contests {
		items = append(items, contestToDTO(c))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) JoinContest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.JoinContest")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req joinContestRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	entry, err := h.contestService.Join(ctx, usecase.JoinContestInput{
		UserID:    principal.UserID,
		ContestID: req.ContestID,
		TeamID:    req.TeamID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "join contest failed", "user_id", principal.UserID, "contest_id", req.ContestID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.leaderboardService.Invalidate(ctx)
	writeSuccess(ctx, w, http.StatusCreated, contestEntryToDTO(entry))
}
