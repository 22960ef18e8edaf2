package api

import (
	"net/http"
	"strconv"

	"github.com/preplane/backend/internal/leaderboard"
)

type LeaderboardResponse struct {
	Entries []leaderboard.Entry `json:"entries"`
	// MyRank is the caller's own position, 0 when unranked.
	MyRank int64 `json:"my_rank"`
}

// GET /leaderboard
func (h *Handler) getLeaderboard(w http.ResponseWriter, r *http.Request) {
	if h.board == nil {
		respondError(w, http.StatusServiceUnavailable, "leaderboard is not enabled")
		return
	}

	limit := int64(10)
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 || n > 100 {
			respondError(w, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	entries, err := h.board.Top(r.Context(), limit)
	if err != nil {
		h.logger.Error("leaderboard top", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load leaderboard")
		return
	}
	if entries == nil {
		entries = []leaderboard.Entry{}
	}

	rank, err := h.board.Rank(r.Context(), UserID(r.Context()))
	if err != nil {
		h.logger.Error("leaderboard rank", "error", err)
		rank = 0
	}

	respondJSON(w, http.StatusOK, LeaderboardResponse{Entries: entries, MyRank: rank})
}
