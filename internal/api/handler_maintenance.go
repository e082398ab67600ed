package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"smartwaste-backend/internal/model"
	"smartwaste-backend/internal/store"
)

type scheduleMaintenanceRequest struct {
	Type        string     `json:"type"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	Notes       string     `json:"notes"`
}

// ScheduleMaintenance handles POST /api/bins/:id/maintenance.
//
// Omitted fields get documented defaults: type "collection", status
// pending, and a scheduled time on the next calendar day.
func (h *Handler) ScheduleMaintenance(c *gin.Context) {
	binID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid bin ID"})
		return
	}

	var req scheduleMaintenanceRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
	}

	if req.Type == "" {
		req.Type = "collection"
	}
	now := time.Now().UTC()
	scheduledAt := req.ScheduledAt
	if scheduledAt == nil {
		next := now.AddDate(0, 0, 1)
		scheduledAt = &next
	}

	record := model.MaintenanceRequest{
		BinID:       binID,
		Type:        req.Type,
		Status:      model.MaintenancePending,
		Notes:       req.Notes,
		RequestedAt: now,
		ScheduledAt: scheduledAt,
	}
	err = h.store.CreateMaintenance(c.Request.Context(), &record)
	if errors.Is(err, store.ErrNotFound) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Bin not found"})
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// ListMaintenance handles GET /api/maintenance.
func (h *Handler) ListMaintenance(c *gin.Context) {
	views, err := h.store.ListMaintenance(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	if views == nil {
		views = []store.MaintenanceView{}
	}
	c.JSON(http.StatusOK, views)
}
