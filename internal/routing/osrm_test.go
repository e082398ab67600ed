package routing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartwaste-backend/config"
)

func newTestClient(baseURL string) *OSRMClient {
	return NewOSRMClient(config.RoutingConfig{
		BaseURL: baseURL,
		Profile: "driving",
		Timeout: 2 * time.Second,
	})
}

func TestFetchRouteBuildsRequestAndSwapsCoordinates(t *testing.T) {
	var gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"code": "Ok",
			"routes": [
				{"geometry": {"coordinates": [[88.30, 22.50], [88.31, 22.51]]}},
				{"geometry": {"coordinates": [[0, 0]]}}
			]
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	geometry, err := client.FetchRoute(context.Background(), []Point{
		{Lat: 22.50, Lon: 88.30},
		{Lat: 22.51, Lon: 88.31},
	})
	require.NoError(t, err)

	// Waypoints go out as lon,lat pairs separated by semicolons.
	assert.Equal(t, "/route/v1/driving/88.3,22.5;88.31,22.51", gotPath)
	assert.Contains(t, gotQuery, "geometries=geojson")

	// Only the first route counts, swapped back to lat,lon.
	require.Len(t, geometry, 2)
	assert.Equal(t, Point{Lat: 22.50, Lon: 88.30}, geometry[0])
	assert.Equal(t, Point{Lat: 22.51, Lon: 88.31}, geometry[1])
}

func TestFetchRouteRejectsTooFewWaypoints(t *testing.T) {
	client := newTestClient("http://localhost:1")

	_, err := client.FetchRoute(context.Background(), []Point{{Lat: 1, Lon: 2}})
	assert.Error(t, err)
}

func TestFetchRouteNon2xxIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.FetchRoute(context.Background(), []Point{{Lat: 1, Lon: 2}, {Lat: 3, Lon: 4}})
	assert.Error(t, err)
}

func TestFetchRouteEmptyRoutesIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code": "NoRoute", "routes": []}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.FetchRoute(context.Background(), []Point{{Lat: 1, Lon: 2}, {Lat: 3, Lon: 4}})
	assert.Error(t, err)
}

func TestFetchRouteUnreachableProviderIsAnError(t *testing.T) {
	// Nothing listens on this port.
	client := newTestClient("http://127.0.0.1:1")

	_, err := client.FetchRoute(context.Background(), []Point{{Lat: 1, Lon: 2}, {Lat: 3, Lon: 4}})
	assert.Error(t, err)
}
