package domain

// Provenance tags where a candidate route came from during the detour search.
// The direct path is always "direct"; offset candidates are tagged by side
// and distance, e.g. "left-300m".
type Provenance string

const ProvenanceDirect Provenance = "direct"

// CandidateRoute is one walkable path under consideration during a single
// route calculation. It is transient and never persisted.
type CandidateRoute struct {
	Points          []Coordinate
	DurationSeconds float64
	Provenance      Provenance
	Conflicts       []HazardPin
}

// RouteResult is the outcome of a safe-route calculation.
// A failed calculation carries an empty Path together with the apology note.
type RouteResult struct {
	Path          []Coordinate
	DurationText  string
	SafetyNote    string
	ConflictCount int
	Detoured      bool
}
