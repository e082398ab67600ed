package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetStatistics handles GET /api/statistics (and its /api/stats alias).
func (h *Handler) GetStatistics(c *gin.Context) {
	stats, err := h.store.Statistics(c.Request.Context(), h.policy)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetHealth handles GET /api/health.
func (h *Handler) GetHealth(c *gin.Context) {
	count, err := h.store.CountBins(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "bins_count": count})
}
