package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"connect-four-server/internal/service/leaderboard"
)

type LeaderboardHandler struct {
	store leaderboard.Store
}

func NewLeaderboardHandler(store leaderboard.Store) *LeaderboardHandler {
	return &LeaderboardHandler{store: store}
}

// Top returns the highest win counts, default 10, capped at 100.
func (h *LeaderboardHandler) Top(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}
	if limit > 100 {
		limit = 100
	}

	entries, err := h.store.Top(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load leaderboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}
