package ports

import (
	"context"

	"safewalk-service/internal/domain"
)

// NarrativeRequest describes the chosen route for safety-note generation.
type NarrativeRequest struct {
	Detoured      bool
	ConflictCount int
	DurationText  string
}

// Citation is one grounding source attached to an area summary.
type Citation struct {
	Title   string   `json:"title"`
	URI     string   `json:"uri"`
	Reviews []string `json:"reviews,omitempty"`
}

// AreaSummary is grounded narrative text describing the surroundings of a
// coordinate.
type AreaSummary struct {
	Text      string     `json:"text"`
	Citations []Citation `json:"citations"`
}

// PlaceSuggestion is a single result of a generative place search.
type PlaceSuggestion struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lng"`
	Address string  `json:"address,omitempty"`
}

// Contract for generating the one-sentence route caption. Callers substitute
// a deterministic fallback on any error; failures never propagate further.
type Narrator interface {
	SafetyNote(ctx context.Context, req NarrativeRequest) (string, error)
}

// Contract for grounded area descriptions.
type AreaDescriber interface {
	DescribeArea(ctx context.Context, center domain.Coordinate) (*AreaSummary, error)
}

// Contract for text-query place search around a center coordinate.
type PlaceFinder interface {
	FindPlaces(ctx context.Context, query string, center domain.Coordinate) ([]PlaceSuggestion, error)
}
