package pinstore

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"safewalk-service/internal/domain"
	"safewalk-service/internal/ports"
)

func newTestStore(t *testing.T) *SqlitePinStore {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, InitSqliteSchema(db))
	return NewSqlitePinStore(db)
}

func submission(sev domain.Severity, desc string) domain.PinSubmission {
	return domain.PinSubmission{
		Location:    domain.Coordinate{Lat: 33.4484, Lon: -112.074},
		Severity:    sev,
		Description: desc,
		ReportedBy:  "user-1",
	}
}

func TestSqlitePinStoreAddAndSnapshot(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	pin, err := store.Add(ctx, submission(domain.SeverityDanger, "broken streetlight"))
	require.NoError(t, err)

	assert.NotEmpty(t, pin.ID)
	assert.False(t, pin.CreatedAt.IsZero())

	pins, err := store.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, pins, 1)

	assert.Equal(t, pin.ID, pins[0].ID)
	assert.Equal(t, domain.SeverityDanger, pins[0].Severity)
	assert.Equal(t, "broken streetlight", pins[0].Description)
	assert.Equal(t, pin.CreatedAt, pins[0].CreatedAt)
}

func TestSqlitePinStoreRejectsUnknownSeverity(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Add(context.Background(), submission("EXTREME", "x"))
	assert.Error(t, err)
}

func TestSqlitePinStoreRemove(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	pin, err := store.Add(ctx, submission(domain.SeverityCaution, "dim alley"))
	require.NoError(t, err)

	require.NoError(t, store.Remove(ctx, pin.ID))

	pins, err := store.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, pins)

	assert.ErrorIs(t, store.Remove(ctx, pin.ID), ports.ErrPinNotFound)
}

func TestSqlitePinStoreSubscribe(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	var deliveries [][]domain.HazardPin
	cancel, err := store.Subscribe(ctx, func(pins []domain.HazardPin) {
		deliveries = append(deliveries, pins)
	})
	require.NoError(t, err)

	// Initial snapshot arrives immediately.
	require.Len(t, deliveries, 1)
	assert.Empty(t, deliveries[0])

	pin, err := store.Add(ctx, submission(domain.SeverityDanger, "dark underpass"))
	require.NoError(t, err)
	require.Len(t, deliveries, 2)
	require.Len(t, deliveries[1], 1)
	assert.Equal(t, pin.ID, deliveries[1][0].ID)

	require.NoError(t, store.Remove(ctx, pin.ID))
	require.Len(t, deliveries, 3)
	assert.Empty(t, deliveries[2])

	// After cancel, mutations no longer notify.
	cancel()
	_, err = store.Add(ctx, submission(domain.SeveritySafe, "well lit"))
	require.NoError(t, err)
	assert.Len(t, deliveries, 3)
}

func TestSeedFromJSONOnlySeedsEmptyStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	path := t.TempDir() + "/pins.json"
	seed := `[
		{"lat": 33.44, "lon": -112.07, "severity": "DANGER", "description": "seeded", "reported_by": "seed"},
		{"lat": 33.45, "lon": -112.08, "severity": "CAUTION", "description": "seeded too", "reported_by": "seed"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(seed), 0o600))

	require.NoError(t, SeedFromJSON(ctx, store, path))

	pins, err := store.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, pins, 2)

	// Second run is a no-op.
	require.NoError(t, SeedFromJSON(ctx, store, path))
	pins, err = store.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, pins, 2)
}
