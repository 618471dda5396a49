package routing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safewalk-service/internal/domain"
)

const routeBody = `{
	"code": "Ok",
	"routes": [{
		"duration": 722.5,
		"geometry": {"coordinates": [[-112.074, 33.4484], [-112.073, 33.449], [-112.072, 33.4495]]}
	}]
}`

func TestGetWalkingRouteParsesGeometry(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.String()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(routeBody))
	}))
	defer server.Close()

	provider := NewOSRMRouteProvider(server.URL, "walking", "")

	start := domain.Coordinate{Lat: 33.4484, Lon: -112.074}
	dest := domain.Coordinate{Lat: 33.4495, Lon: -112.072}

	route, err := provider.GetWalkingRoute(context.Background(), start, dest, nil)
	require.NoError(t, err)
	require.NotNil(t, route)

	assert.True(t, strings.HasPrefix(gotPath, "/route/v1/walking/"), "path = %s", gotPath)
	assert.Contains(t, gotPath, "-112.074000,33.448400;-112.072000,33.449500")
	assert.Contains(t, gotPath, "geometries=geojson")

	assert.Equal(t, 722.5, route.DurationSeconds)
	require.Len(t, route.Points, 3)
	assert.Equal(t, domain.Coordinate{Lat: 33.4484, Lon: -112.074}, route.Points[0])
}

func TestGetWalkingRouteIncludesWaypoint(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.String()
		_, _ = w.Write([]byte(routeBody))
	}))
	defer server.Close()

	provider := NewOSRMRouteProvider(server.URL, "walking", "")

	via := domain.Coordinate{Lat: 33.45, Lon: -112.08}
	_, err := provider.GetWalkingRoute(
		context.Background(),
		domain.Coordinate{Lat: 33.4484, Lon: -112.074},
		domain.Coordinate{Lat: 33.4495, Lon: -112.072},
		&via,
	)
	require.NoError(t, err)

	// Ordered start;via;dest as lon,lat pairs.
	assert.Contains(t, gotPath, "-112.074000,33.448400;-112.080000,33.450000;-112.072000,33.449500")
}

func TestGetWalkingRouteNoRouteIsAbsentCandidate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code": "NoRoute", "routes": []}`))
	}))
	defer server.Close()

	provider := NewOSRMRouteProvider(server.URL, "walking", "")

	route, err := provider.GetWalkingRoute(
		context.Background(),
		domain.Coordinate{Lat: 0, Lon: 0},
		domain.Coordinate{Lat: 0, Lon: 0.01},
		nil,
	)
	require.NoError(t, err)
	assert.Nil(t, route)
}

func TestGetWalkingRouteHTTPErrorPropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	provider := NewOSRMRouteProvider(server.URL, "walking", "")

	_, err := provider.GetWalkingRoute(
		context.Background(),
		domain.Coordinate{Lat: 0, Lon: 0},
		domain.Coordinate{Lat: 0, Lon: 0.01},
		nil,
	)
	assert.Error(t, err)
}
