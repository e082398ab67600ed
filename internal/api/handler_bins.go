package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"smartwaste-backend/internal/model"
	"smartwaste-backend/internal/status"
	"smartwaste-backend/internal/store"
)

// BinResponse is a bin with its derived status attached. Status is
// recomputed on every response so it can never disagree with the fill level.
type BinResponse struct {
	model.Bin
	Status status.Status `json:"status"`
}

func (h *Handler) binResponse(b model.Bin) BinResponse {
	return BinResponse{Bin: b, Status: h.policy.Compute(b.FillLevel, b.Capacity)}
}

// ListBins handles GET /api/bins.
//
// When the simulation is enabled this read is deliberately not idempotent:
// fill levels are perturbed and the new levels are persisted before the
// response is built, so the store and the response never diverge.
func (h *Handler) ListBins(c *gin.Context) {
	ctx := c.Request.Context()

	bins, err := h.store.ListBins(ctx)
	if err != nil {
		internalError(c, err)
		return
	}

	if h.sim != nil && h.sim.Enabled() {
		changed := h.sim.Perturb(bins, time.Now().UTC())
		if err := h.store.SaveFillLevels(ctx, changed); err != nil {
			internalError(c, err)
			return
		}
	}

	resp := make([]BinResponse, 0, len(bins))
	for _, b := range bins {
		resp = append(resp, h.binResponse(b))
	}
	c.JSON(http.StatusOK, resp)
}

type createBinRequest struct {
	City      string   `json:"city"`
	Name      string   `json:"name"` // accepted alias for city
	Lat       *float64 `json:"lat"`
	Lon       *float64 `json:"lon"`
	Lng       *float64 `json:"lng"` // accepted alias for lon
	Capacity  *int     `json:"capacity"`
	FillLevel *int     `json:"fill_level"`
}

// CreateBin handles POST /api/bins.
func (h *Handler) CreateBin(c *gin.Context) {
	var req createBinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	city := req.City
	if city == "" {
		city = req.Name
	}
	lon := req.Lon
	if lon == nil {
		lon = req.Lng
	}
	if city == "" || req.Lat == nil || lon == nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "city, lat and lon are required"})
		return
	}

	capacity := h.defaultCapacity
	if req.Capacity != nil {
		capacity = *req.Capacity
	}
	if capacity <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "capacity must be positive"})
		return
	}

	fill := 0
	if req.FillLevel != nil {
		fill = *req.FillLevel
	}
	if fill < 0 || fill > capacity {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "fill_level must be between 0 and capacity"})
		return
	}

	bin := model.Bin{
		City:        city,
		Lat:         *req.Lat,
		Lon:         *lon,
		Capacity:    capacity,
		FillLevel:   fill,
		LastUpdated: time.Now().UTC(),
	}
	if err := h.store.CreateBin(c.Request.Context(), &bin); err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.binResponse(bin))
}

// DeleteBin handles DELETE /api/bins/:id. Deleting a bin removes its
// maintenance requests with it.
func (h *Handler) DeleteBin(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid bin ID"})
		return
	}

	err = h.store.DeleteBin(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Bin not found"})
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bin deleted"})
}

// GetHeatmap handles GET /api/heatmap, returning [lat, lon, intensity]
// triples where intensity is the fill ratio.
func (h *Handler) GetHeatmap(c *gin.Context) {
	bins, err := h.store.ListBins(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}

	points := make([][3]float64, 0, len(bins))
	for _, b := range bins {
		capacity := b.Capacity
		if capacity <= 0 {
			capacity = h.defaultCapacity
		}
		points = append(points, [3]float64{b.Lat, b.Lon, float64(b.FillLevel) / float64(capacity)})
	}
	c.JSON(http.StatusOK, points)
}
