package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"smartwaste-backend/config"
	"smartwaste-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router around the handler.
func NewRouter(h *Handler, cfg *config.ServerConfig) *gin.Engine {
	r := gin.Default()

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Endpoint not found"})
	})

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	// Response caching only covers side-effect-free reads; the bin listing
	// may mutate fill levels and must always hit the store.
	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/bins", h.ListBins)
		api.POST("/bins", h.CreateBin)
		api.DELETE("/bins/:id", h.DeleteBin)

		api.POST("/bins/:id/maintenance", h.ScheduleMaintenance)
		api.GET("/maintenance", h.ListMaintenance)

		api.GET("/statistics", caching, h.GetStatistics)
		api.GET("/stats", caching, h.GetStatistics)
		api.GET("/heatmap", caching, h.GetHeatmap)

		api.GET("/route", h.GetRoute)
		api.GET("/health", h.GetHealth)
	}

	return r
}
