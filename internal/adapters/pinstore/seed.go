package pinstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"safewalk-service/internal/domain"
	"safewalk-service/internal/ports"
)

type seedPin struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Severity    string  `json:"severity"`
	Description string  `json:"description"`
	ReportedBy  string  `json:"reported_by"`
}

// SeedFromJSON loads demo pins from a JSON file into an empty store.
// A store that already holds pins is left untouched.
func SeedFromJSON(ctx context.Context, store ports.PinStore, path string) error {
	existing, err := store.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("seed pins: snapshot: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("seed pins: read %q: %w", path, err)
	}

	var seeds []seedPin
	if err := json.Unmarshal(raw, &seeds); err != nil {
		return fmt.Errorf("seed pins: parse %q: %w", path, err)
	}

	for _, s := range seeds {
		sub := domain.PinSubmission{
			Location:    domain.Coordinate{Lat: s.Lat, Lon: s.Lon},
			Severity:    domain.Severity(s.Severity),
			Description: s.Description,
			ReportedBy:  s.ReportedBy,
		}
		if _, err := store.Add(ctx, sub); err != nil {
			return fmt.Errorf("seed pins: add: %w", err)
		}
	}

	return nil
}
