package domain

import (
	"fmt"
	"time"
)

// Severity is the three-level rating attached to a hazard report.
type Severity string

const (
	SeveritySafe    Severity = "SAFE"
	SeverityCaution Severity = "CAUTION"
	SeverityDanger  Severity = "DANGER"
)

// ParseSeverity validates a severity value received from a client or a row.
func ParseSeverity(s string) (Severity, error) {
	switch Severity(s) {
	case SeveritySafe, SeverityCaution, SeverityDanger:
		return Severity(s), nil
	}
	return "", fmt.Errorf("parse severity: unknown value %q", s)
}

// HazardPin is a single community-submitted safety report.
// Pins are read-only after creation; the only mutation is deletion,
// and both are owned by the pin store.
type HazardPin struct {
	ID          string
	Location    Coordinate
	Severity    Severity
	Description string
	ReportedBy  string
	CreatedAt   time.Time
}

// PinSubmission is the user-supplied part of a new pin.
// The store assigns the identifier and creation timestamp.
type PinSubmission struct {
	Location    Coordinate
	Severity    Severity
	Description string
	ReportedBy  string
}
