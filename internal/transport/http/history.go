package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"connect-four-server/internal/repository/postgres"
)

type HistoryHandler struct {
	repo *postgres.GameRepo
}

func NewHistoryHandler(repo *postgres.GameRepo) *HistoryHandler {
	return &HistoryHandler{repo: repo}
}

// Recent lists the most recently finished games.
func (h *HistoryHandler) Recent(c *gin.Context) {
	limit := 20
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

	records, err := h.repo.RecentGames(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"games": records})
}
