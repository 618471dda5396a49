package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"safewalk-service/internal/domain"
	"safewalk-service/internal/geo"
	"safewalk-service/internal/platform/obs"
	"safewalk-service/internal/ports"
)

// ErrNoRoute reports that the routing provider found no direct walking path.
// It is the only error a route calculation surfaces; callers render it as an
// empty route with NoRouteApology.
var ErrNoRoute = errors.New("no walking route found")

// NoRouteApology is the fixed message shown when no route exists.
const NoRouteApology = "Sorry, we couldn't find a walking route for this trip."

// One avoidable danger-zone crossing outweighs any plausible duration
// difference, so conflicts dominate the ordering and duration only breaks
// ties among equal conflict counts.
const conflictScoreWeight = 1_000_000.0

// Perpendicular offsets tried around the focus hazard, in generation order.
var detourOffsetsMeters = [...]float64{300, 600, 1000, 1500}

// PlanRequest is one safe-route calculation: a start/destination pair
// evaluated against an immutable snapshot of the pin set.
type PlanRequest struct {
	Start       domain.Coordinate
	Destination domain.Coordinate
}

func scoreRoute(c domain.CandidateRoute) float64 {
	return float64(len(c.Conflicts))*conflictScoreWeight + c.DurationSeconds
}

// PlanSafeRoute computes a walking route from start to destination that
// avoids reported danger zones where a detour exists.
//
// The search is a bounded heuristic, not a shortest-safe-path algorithm: it
// only offsets around the first conflict detected on the direct path and
// never re-anchors on the chosen route's own remaining conflicts. That
// matches the product behavior; a route avoiding two independent hazards can
// be missed even when one exists.
func PlanSafeRoute(
	ctx context.Context,
	req PlanRequest,
	pins []domain.HazardPin,
	provider ports.RouteProvider,
	narrator ports.Narrator,
) (_ *domain.RouteResult, err error) {
	defer obs.Time(ctx, "planner.PlanSafeRoute")(&err)

	direct, err := provider.GetWalkingRoute(ctx, req.Start, req.Destination, nil)
	if err != nil {
		slog.Warn("direct path fetch failed", "error", err)
		return nil, fmt.Errorf("plan safe route: %w", ErrNoRoute)
	}
	if direct == nil {
		return nil, fmt.Errorf("plan safe route: %w", ErrNoRoute)
	}

	candidates := make([]domain.CandidateRoute, 0, 1+2*len(detourOffsetsMeters))
	candidates = append(candidates, domain.CandidateRoute{
		Points:          direct.Points,
		DurationSeconds: direct.DurationSeconds,
		Provenance:      domain.ProvenanceDirect,
		Conflicts:       DetectConflicts(direct.Points, pins, req.Start, req.Destination),
	})

	if len(candidates[0].Conflicts) > 0 {
		detours := fetchDetourCandidates(ctx, req, pins, candidates[0].Conflicts[0], provider)
		candidates = append(candidates, detours...)
	}

	// Stable minimum in generation order: direct first, then left/right at
	// increasing offsets.
	best := candidates[0]
	bestScore := scoreRoute(best)
	for _, c := range candidates[1:] {
		if s := scoreRoute(c); s < bestScore {
			best = c
			bestScore = s
		}
	}

	result := &domain.RouteResult{
		Path:          best.Points,
		DurationText:  FormatWalkDuration(best.DurationSeconds),
		ConflictCount: len(best.Conflicts),
		Detoured:      best.Provenance != domain.ProvenanceDirect,
	}

	note, noteErr := narrator.SafetyNote(ctx, ports.NarrativeRequest{
		Detoured:      result.Detoured,
		ConflictCount: result.ConflictCount,
		DurationText:  result.DurationText,
	})
	if noteErr != nil || note == "" {
		if noteErr != nil {
			slog.Debug("safety note generation failed", "error", noteErr)
		}
		note = FallbackSafetyNote(result.ConflictCount)
	}
	result.SafetyNote = note

	return result, nil
}

// fetchDetourCandidates projects eight waypoints perpendicular to the travel
// bearing around the focus hazard and requests a route through each,
// concurrently. A failed or absent route simply contributes no candidate;
// the join waits for every request to settle before scoring proceeds.
func fetchDetourCandidates(
	ctx context.Context,
	req PlanRequest,
	pins []domain.HazardPin,
	focus domain.HazardPin,
	provider ports.RouteProvider,
) []domain.CandidateRoute {
	bearing := geo.InitialBearing(req.Start, req.Destination)

	type detour struct {
		waypoint   domain.Coordinate
		provenance domain.Provenance
	}

	detours := make([]detour, 0, 2*len(detourOffsetsMeters))
	for _, offset := range detourOffsetsMeters {
		detours = append(detours, detour{
			waypoint:   geo.Destination(focus.Location, offset, bearing-90),
			provenance: domain.Provenance(fmt.Sprintf("left-%.0fm", offset)),
		})
		detours = append(detours, detour{
			waypoint:   geo.Destination(focus.Location, offset, bearing+90),
			provenance: domain.Provenance(fmt.Sprintf("right-%.0fm", offset)),
		})
	}

	routes := make([]*ports.WalkingRoute, len(detours))

	var g errgroup.Group
	for i, d := range detours {
		g.Go(func() error {
			route, err := provider.GetWalkingRoute(ctx, req.Start, req.Destination, &d.waypoint)
			if err != nil {
				slog.Debug("detour candidate fetch failed",
					"provenance", d.provenance, "error", err)
				return nil
			}
			routes[i] = route
			return nil
		})
	}
	// Goroutines never return errors; Wait is purely the fan-in barrier.
	_ = g.Wait()

	candidates := make([]domain.CandidateRoute, 0, len(detours))
	for i, route := range routes {
		if route == nil {
			continue
		}
		candidates = append(candidates, domain.CandidateRoute{
			Points:          route.Points,
			DurationSeconds: route.DurationSeconds,
			Provenance:      detours[i].provenance,
			Conflicts:       DetectConflicts(route.Points, pins, req.Start, req.Destination),
		})
	}

	return candidates
}

// FallbackSafetyNote is the deterministic caption used when the narrative
// service is unreachable or returns unparsable content.
func FallbackSafetyNote(conflictCount int) string {
	if conflictCount > 0 {
		return "This route passes near reported danger zones. Stay alert and consider traveling with others."
	}
	return "Route looks clear. Stay aware of your surroundings and enjoy the walk."
}
