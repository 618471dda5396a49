package services

import (
	"fmt"
	"math"
)

// Pedestrian delays (crossings, signals) are not part of provider durations.
const walkTimeBuffer = 1.2

// FormatWalkDuration renders a provider duration as a human-readable walking
// estimate. The buffered value is rounded up to whole minutes so the estimate
// is never optimistic.
func FormatWalkDuration(seconds float64) string {
	minutes := int(math.Ceil(seconds * walkTimeBuffer / 60))

	if minutes < 60 {
		return fmt.Sprintf("%d min walk", minutes)
	}

	return fmt.Sprintf("%d hr %d min walk", minutes/60, minutes%60)
}
