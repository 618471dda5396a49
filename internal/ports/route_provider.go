package ports

import (
	"context"

	"safewalk-service/internal/domain"
)

// A raw walking path returned by the routing provider: ordered geometry plus
// total traversal time. Only the first provider alternative is consumed.
type WalkingRoute struct {
	Points          []domain.Coordinate
	DurationSeconds float64
}

// Contract for fetching walking paths from an external routing provider.
type RouteProvider interface {
	// Fetch a walking route from start to dest, optionally through a single
	// intermediate waypoint. A nil route with a nil error means the provider
	// found no route; that is an absent candidate, not a failure.
	GetWalkingRoute(ctx context.Context, start, dest domain.Coordinate, via *domain.Coordinate) (*WalkingRoute, error)
}
