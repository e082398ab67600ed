package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"smartwaste-backend/internal/planner"
	"smartwaste-backend/internal/sim"
	"smartwaste-backend/internal/status"
	"smartwaste-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store           store.Store
	sim             *sim.Simulator
	assembler       *planner.Assembler
	policy          status.Policy
	defaultCapacity int
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, simulator *sim.Simulator, assembler *planner.Assembler, policy status.Policy, defaultCapacity int) *Handler {
	if defaultCapacity <= 0 {
		defaultCapacity = 100
	}
	return &Handler{
		store:           s,
		sim:             simulator,
		assembler:       assembler,
		policy:          policy,
		defaultCapacity: defaultCapacity,
	}
}

// internalError logs the underlying failure and returns the generic
// envelope; internal detail never reaches the client.
func internalError(c *gin.Context, err error) {
	log.Printf("internal error: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
