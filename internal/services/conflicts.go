package services

import (
	"safewalk-service/internal/domain"
	"safewalk-service/internal/geo"
)

const (
	// A path point within this distance of a DANGER pin is a conflict.
	conflictRadiusMeters = 150.0

	// Pins this close to the trip start or end cannot be avoided and are
	// excluded from conflict detection entirely.
	terminalRadiusMeters = 80.0
)

// DetectConflicts returns the distinct DANGER pins that at least one point of
// path passes within the conflict radius of, excluding pins inside the
// terminal radius of start or end.
//
// Every path point is checked against every DANGER pin. No sampling; path
// lengths and pin counts are small enough that accuracy is worth the work.
// Result order follows the input pin order, so the first detected conflict is
// deterministic.
func DetectConflicts(path []domain.Coordinate, pins []domain.HazardPin, start, end domain.Coordinate) []domain.HazardPin {
	conflicts := make([]domain.HazardPin, 0)

	for _, pin := range pins {
		if pin.Severity != domain.SeverityDanger {
			continue
		}

		if geo.Distance(pin.Location, start) < terminalRadiusMeters ||
			geo.Distance(pin.Location, end) < terminalRadiusMeters {
			continue
		}

		for _, p := range path {
			if geo.Distance(pin.Location, p) < conflictRadiusMeters {
				conflicts = append(conflicts, pin)
				break
			}
		}
	}

	return conflicts
}
