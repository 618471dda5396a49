package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safewalk-service/internal/adapters/routing"
	"safewalk-service/internal/domain"
	"safewalk-service/internal/ports"
)

type stubNarrator struct {
	note string
	err  error
}

func (s stubNarrator) SafetyNote(ctx context.Context, req ports.NarrativeRequest) (string, error) {
	return s.note, s.err
}

// Direct path straight along the equator from (0,0) to (0,0.01).
func directRoute(durationSeconds float64) *ports.WalkingRoute {
	return &ports.WalkingRoute{
		Points:          straightPath(11),
		DurationSeconds: durationSeconds,
	}
}

// A path bowed ~330 m north, clear of a midpoint hazard.
func bowedRoute(durationSeconds float64) *ports.WalkingRoute {
	return &ports.WalkingRoute{
		Points: []domain.Coordinate{
			{Lat: 0, Lon: 0},
			{Lat: 0.003, Lon: 0.0025},
			{Lat: 0.003, Lon: 0.005},
			{Lat: 0.003, Lon: 0.0075},
			{Lat: 0, Lon: 0.01},
		},
		DurationSeconds: durationSeconds,
	}
}

func planRequest() PlanRequest {
	return PlanRequest{
		Start:       domain.Coordinate{Lat: 0, Lon: 0},
		Destination: domain.Coordinate{Lat: 0, Lon: 0.01},
	}
}

// Hazard on the straight-line midpoint, well clear of both terminals.
func midpointHazard() []domain.HazardPin {
	return []domain.HazardPin{pin("mid", domain.SeverityDanger, 0, 0.005)}
}

func TestPlanSafeRouteCleanDirectPathWins(t *testing.T) {
	provider := &routing.MockRouteProvider{
		Direct: directRoute(600),
		Via: func(domain.Coordinate) (*ports.WalkingRoute, error) {
			t.Fatal("no detour candidates should be requested for a clean direct path")
			return nil, nil
		},
	}

	result, err := PlanSafeRoute(context.Background(), planRequest(), nil, provider, stubNarrator{note: "All clear."})
	require.NoError(t, err)

	assert.False(t, result.Detoured)
	assert.Equal(t, 0, result.ConflictCount)
	assert.Equal(t, "12 min walk", result.DurationText)
	assert.Equal(t, "All clear.", result.SafetyNote)
}

func TestPlanSafeRouteConflictsDominateDuration(t *testing.T) {
	// Direct: 300 s with 1 conflict, score 1,000,300.
	// Detour: 1,200 s with 0 conflicts, score 1,200. The slower clean
	// candidate must win.
	provider := &routing.MockRouteProvider{
		Direct: directRoute(300),
		Via: func(domain.Coordinate) (*ports.WalkingRoute, error) {
			return bowedRoute(1200), nil
		},
	}

	result, err := PlanSafeRoute(context.Background(), planRequest(), midpointHazard(), provider, stubNarrator{note: "ok"})
	require.NoError(t, err)

	assert.True(t, result.Detoured)
	assert.Equal(t, 0, result.ConflictCount)
	assert.Equal(t, bowedRoute(1200).Points, result.Path)
}

func TestPlanSafeRouteMidpointHazardAvoided(t *testing.T) {
	// End-to-end shape of the search: a hazard on the direct midpoint and a
	// provider that can only avoid it via waypoints north of the hazard.
	calls := 0
	provider := &routing.MockRouteProvider{
		Direct: directRoute(600),
		Via: func(via domain.Coordinate) (*ports.WalkingRoute, error) {
			calls++
			if via.Lat > 0 {
				return bowedRoute(900), nil
			}
			// Southern waypoints still funnel through the hazard.
			return directRoute(800), nil
		},
	}

	result, err := PlanSafeRoute(context.Background(), planRequest(), midpointHazard(), provider, stubNarrator{note: "ok"})
	require.NoError(t, err)

	assert.Equal(t, 8, calls, "all eight offset candidates are requested")
	assert.True(t, result.Detoured)
	assert.Equal(t, 0, result.ConflictCount)
}

func TestPlanSafeRouteToleratesCandidateFailures(t *testing.T) {
	// Every detour request fails; the conflicting direct path is still
	// returned rather than an error.
	provider := &routing.MockRouteProvider{
		Direct: directRoute(300),
		Via: func(domain.Coordinate) (*ports.WalkingRoute, error) {
			return nil, errors.New("provider timeout")
		},
	}

	result, err := PlanSafeRoute(context.Background(), planRequest(), midpointHazard(), provider, stubNarrator{err: errors.New("unreachable")})
	require.NoError(t, err)

	assert.False(t, result.Detoured)
	assert.Equal(t, 1, result.ConflictCount)
	assert.Equal(t, FallbackSafetyNote(1), result.SafetyNote)
}

func TestPlanSafeRouteNoDirectPath(t *testing.T) {
	_, err := PlanSafeRoute(context.Background(), planRequest(), nil, &routing.MockRouteProvider{}, stubNarrator{})
	assert.ErrorIs(t, err, ErrNoRoute)

	_, err = PlanSafeRoute(context.Background(), planRequest(), nil,
		&routing.MockRouteProvider{DirectErr: errors.New("connect timeout")}, stubNarrator{})
	assert.ErrorIs(t, err, ErrNoRoute)
}

func TestPlanSafeRouteNarratorFallbackWhenClean(t *testing.T) {
	provider := &routing.MockRouteProvider{Direct: directRoute(600)}

	result, err := PlanSafeRoute(context.Background(), planRequest(), nil, provider, stubNarrator{err: errors.New("bad json")})
	require.NoError(t, err)

	assert.Equal(t, FallbackSafetyNote(0), result.SafetyNote)
}
