package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safewalk-service/internal/domain"
)

// ~1.1 km straight path along the equator, evenly spaced points.
func straightPath(n int) []domain.Coordinate {
	path := make([]domain.Coordinate, 0, n)
	for i := 0; i < n; i++ {
		path = append(path, domain.Coordinate{Lat: 0, Lon: 0.01 * float64(i) / float64(n-1)})
	}
	return path
}

func pin(id string, sev domain.Severity, lat, lon float64) domain.HazardPin {
	return domain.HazardPin{
		ID:       id,
		Severity: sev,
		Location: domain.Coordinate{Lat: lat, Lon: lon},
	}
}

func TestDetectConflictsEmptyWhenNothingNearby(t *testing.T) {
	path := straightPath(11)
	start, end := path[0], path[len(path)-1]

	// ~1113 m north of the path, far outside the conflict radius.
	pins := []domain.HazardPin{pin("far", domain.SeverityDanger, 0.01, 0.005)}

	assert.Empty(t, DetectConflicts(path, pins, start, end))
}

func TestDetectConflictsWithinRadius(t *testing.T) {
	path := straightPath(11)
	start, end := path[0], path[len(path)-1]

	// ~111 m from the nearest path point, well clear of both terminals.
	pins := []domain.HazardPin{pin("near", domain.SeverityDanger, 0.001, 0.005)}

	conflicts := DetectConflicts(path, pins, start, end)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "near", conflicts[0].ID)
}

func TestDetectConflictsOutsideRadius(t *testing.T) {
	path := straightPath(11)
	start, end := path[0], path[len(path)-1]

	// ~223 m from the nearest path point.
	pins := []domain.HazardPin{pin("outside", domain.SeverityDanger, 0.002, 0.005)}

	assert.Empty(t, DetectConflicts(path, pins, start, end))
}

func TestDetectConflictsTerminalExclusion(t *testing.T) {
	path := straightPath(11)
	start, end := path[0], path[len(path)-1]

	// ~56 m from the start: directly on the walker's doorstep, unavoidable.
	pins := []domain.HazardPin{pin("doorstep", domain.SeverityDanger, 0, 0.0005)}

	assert.Empty(t, DetectConflicts(path, pins, start, end))
}

func TestDetectConflictsIgnoresNonDangerSeverities(t *testing.T) {
	path := straightPath(11)
	start, end := path[0], path[len(path)-1]

	// Both sit directly on the path but are not DANGER level.
	pins := []domain.HazardPin{
		pin("caution", domain.SeverityCaution, 0, 0.005),
		pin("safe", domain.SeveritySafe, 0, 0.004),
	}

	assert.Empty(t, DetectConflicts(path, pins, start, end))
}

func TestDetectConflictsDistinctPerPin(t *testing.T) {
	path := straightPath(21)
	start, end := path[0], path[len(path)-1]

	// A pin near many path points must still appear exactly once.
	pins := []domain.HazardPin{
		pin("a", domain.SeverityDanger, 0.0005, 0.004),
		pin("b", domain.SeverityDanger, 0.0005, 0.006),
	}

	conflicts := DetectConflicts(path, pins, start, end)
	require.Len(t, conflicts, 2)
	assert.Equal(t, "a", conflicts[0].ID)
	assert.Equal(t, "b", conflicts[1].ID)
}
