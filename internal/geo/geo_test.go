package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"safewalk-service/internal/domain"
)

func TestDistanceZeroForSamePoint(t *testing.T) {
	points := []domain.Coordinate{
		{Lat: 0, Lon: 0},
		{Lat: 33.4484, Lon: -112.074},
		{Lat: -45.5, Lon: 170.2},
	}

	for _, p := range points {
		assert.InDelta(t, 0, Distance(p, p), 1e-6)
	}
}

func TestDistanceSymmetric(t *testing.T) {
	a := domain.Coordinate{Lat: 33.4484, Lon: -112.074}
	b := domain.Coordinate{Lat: 33.5722, Lon: -112.088}

	assert.InDelta(t, Distance(a, b), Distance(b, a), 1e-9)
}

func TestDistanceKnownValue(t *testing.T) {
	// One hundredth of a degree of longitude on the equator is ~1113 m.
	a := domain.Coordinate{Lat: 0, Lon: 0}
	b := domain.Coordinate{Lat: 0, Lon: 0.01}

	assert.InDelta(t, 1113.2, Distance(a, b), 1.0)
}

func TestInitialBearingCardinalDirections(t *testing.T) {
	origin := domain.Coordinate{Lat: 0, Lon: 0}

	tests := []struct {
		name string
		to   domain.Coordinate
		want float64
	}{
		{"east", domain.Coordinate{Lat: 0, Lon: 0.01}, 90},
		{"north", domain.Coordinate{Lat: 0.01, Lon: 0}, 0},
		{"south", domain.Coordinate{Lat: -0.01, Lon: 0}, 180},
		{"west", domain.Coordinate{Lat: 0, Lon: -0.01}, 270},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := InitialBearing(origin, tc.to)
			assert.InDelta(t, tc.want, got, 0.01)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.Less(t, got, 360.0)
		})
	}
}

func TestDestinationRoundTrip(t *testing.T) {
	origin := domain.Coordinate{Lat: 33.4484, Lon: -112.074}

	for _, bearing := range []float64{0, 45, 90, 181.5, 270} {
		dest := Destination(origin, 1000, bearing)

		assert.InDelta(t, 1000, Distance(origin, dest), 0.5)
		assert.InDelta(t, bearing, InitialBearing(origin, dest), 0.1)
	}
}
