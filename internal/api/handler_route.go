package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RouteResponse is the payload of GET /api/route. RouteGeometry is a
// sequence of [lat, lon] pairs; it is empty when fewer than two bins
// qualify for collection.
type RouteResponse struct {
	Bins          []BinResponse `json:"bins"`
	RouteGeometry [][2]float64  `json:"route_geometry"`
}

// GetRoute handles GET /api/route. Provider outages never fail this
// endpoint; the planner degrades to a straight-line geometry.
func (h *Handler) GetRoute(c *gin.Context) {
	plan, err := h.assembler.PlanRoute(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}

	resp := RouteResponse{
		Bins:          make([]BinResponse, 0, len(plan.Bins)),
		RouteGeometry: make([][2]float64, 0, len(plan.Geometry)),
	}
	for _, b := range plan.Bins {
		resp.Bins = append(resp.Bins, h.binResponse(b))
	}
	for _, p := range plan.Geometry {
		resp.RouteGeometry = append(resp.RouteGeometry, [2]float64{p.Lat, p.Lon})
	}
	c.JSON(http.StatusOK, resp)
}
