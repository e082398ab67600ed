package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"smartwaste-backend/config"
)

// OSRMClient implements Provider against an OSRM route service.
//
// The HTTP client carries a hard timeout; a provider that hangs is
// indistinguishable from one that is down, and callers fall back either way.
type OSRMClient struct {
	client  *http.Client
	baseURL string
	profile string
}

// NewOSRMClient creates a client for the configured OSRM endpoint.
func NewOSRMClient(cfg config.RoutingConfig) *OSRMClient {
	return &OSRMClient{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		profile: cfg.Profile,
	}
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("routing provider returned status %d", e.code)
}

// osrmResponse models the subset of the OSRM route response we consume.
type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
}

// FetchRoute requests a single GeoJSON geometry covering all waypoints in
// order and returns it with coordinates swapped from the provider's
// (lon, lat) to (lat, lon).
func (c *OSRMClient) FetchRoute(ctx context.Context, waypoints []Point) ([]Point, error) {
	if len(waypoints) < 2 {
		return nil, fmt.Errorf("need at least 2 waypoints, got %d", len(waypoints))
	}

	// OSRM takes semicolon-separated lon,lat pairs in the path.
	coords := make([]string, 0, len(waypoints))
	for _, p := range waypoints {
		coords = append(coords,
			strconv.FormatFloat(p.Lon, 'f', -1, 64)+","+strconv.FormatFloat(p.Lat, 'f', -1, 64))
	}
	url := fmt.Sprintf("%s/route/v1/%s/%s?overview=full&geometries=geojson",
		c.baseURL, c.profile, strings.Join(coords, ";"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create route request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("route request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return nil, &statusError{code: resp.StatusCode}
	}

	var or osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&or); err != nil {
		return nil, fmt.Errorf("decode route response: %w", err)
	}
	if len(or.Routes) == 0 {
		return nil, fmt.Errorf("no routes in provider response (code %q)", or.Code)
	}

	// First route only; the provider's ranking is not ours to second-guess.
	raw := or.Routes[0].Geometry.Coordinates
	geometry := make([]Point, 0, len(raw))
	for _, pair := range raw {
		if len(pair) < 2 {
			return nil, fmt.Errorf("malformed coordinate pair in provider response")
		}
		geometry = append(geometry, Point{Lat: pair[1], Lon: pair[0]})
	}
	return geometry, nil
}
