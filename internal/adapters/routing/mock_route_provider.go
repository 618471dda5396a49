package routing

import (
	"context"

	"safewalk-service/internal/domain"
	"safewalk-service/internal/ports"
)

// MockRouteProvider is a test double for ports.RouteProvider.
// Direct/DirectErr answer waypoint-less requests; Via answers waypoint
// requests and defaults to "no route" when unset.
type MockRouteProvider struct {
	Direct    *ports.WalkingRoute
	DirectErr error
	Via       func(via domain.Coordinate) (*ports.WalkingRoute, error)
}

func (m *MockRouteProvider) GetWalkingRoute(
	ctx context.Context,
	start, dest domain.Coordinate,
	via *domain.Coordinate,
) (*ports.WalkingRoute, error) {
	if via == nil {
		return m.Direct, m.DirectErr
	}
	if m.Via == nil {
		return nil, nil
	}
	return m.Via(*via)
}
