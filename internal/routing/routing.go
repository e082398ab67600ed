// Package routing wraps the external OSRM-compatible routing provider.
// It is the only network dependency of the service.
package routing

import "context"

// Point is a geographic coordinate in (lat, lon) order, the order used
// everywhere inside this service and in API responses.
type Point struct {
	Lat float64
	Lon float64
}

// Provider returns one drivable geometry covering the given waypoints in
// the given order. Implementations must not reorder waypoints; any route
// optimization is the provider's concern.
type Provider interface {
	FetchRoute(ctx context.Context, waypoints []Point) ([]Point, error)
}
