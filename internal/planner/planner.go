// Package planner assembles collection routes over the bins that need
// emptying. It filters and orders bins deterministically and delegates all
// actual path optimization to the routing provider.
package planner

import (
	"context"
	"fmt"
	"log"

	"smartwaste-backend/internal/model"
	"smartwaste-backend/internal/routing"
	"smartwaste-backend/internal/store"
)

// Plan is the outcome of a single route assembly.
type Plan struct {
	Bins     []model.Bin
	Geometry []routing.Point
}

// Assembler selects bins above the collection threshold and turns them
// into a drivable route.
type Assembler struct {
	store     store.Store
	provider  routing.Provider
	threshold int
}

// New creates an Assembler. Bins with FillLevel strictly greater than
// threshold are selected for collection.
func New(s store.Store, p routing.Provider, threshold int) *Assembler {
	return &Assembler{store: s, provider: p, threshold: threshold}
}

// PlanRoute builds the current collection route.
//
// With fewer than two qualifying bins it returns an empty geometry without
// contacting the provider. Provider failures of any kind degrade to a
// straight-line geometry through the selected bins; only a store failure
// is surfaced as an error.
func (a *Assembler) PlanRoute(ctx context.Context) (Plan, error) {
	bins, err := a.store.ListBins(ctx)
	if err != nil {
		return Plan{}, fmt.Errorf("plan route: %w", err)
	}

	// ListBins returns ascending ids, so the selection keeps that order.
	selected := make([]model.Bin, 0)
	for _, b := range bins {
		if b.FillLevel > a.threshold {
			selected = append(selected, b)
		}
	}

	if len(selected) < 2 {
		return Plan{Bins: selected, Geometry: []routing.Point{}}, nil
	}

	waypoints := make([]routing.Point, len(selected))
	for i, b := range selected {
		waypoints[i] = routing.Point{Lat: b.Lat, Lon: b.Lon}
	}

	geometry, err := a.provider.FetchRoute(ctx, waypoints)
	if err != nil {
		// The route endpoint must keep working without the provider.
		log.Printf("routing provider unavailable, using straight-line fallback: %v", err)
		geometry = waypoints
	}
	return Plan{Bins: selected, Geometry: geometry}, nil
}
