package pinstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"safewalk-service/internal/domain"
	"safewalk-service/internal/ports"
)

// SqlitePinStore is the local fallback implementation of the PinStore port,
// used when no cloud database is configured. Change notification is an
// in-process subscriber list; there is nothing else to notify.
type SqlitePinStore struct {
	DB *sql.DB

	mu      sync.Mutex
	nextSub int
	subs    map[int]func([]domain.HazardPin)
}

func NewSqlitePinStore(db *sql.DB) *SqlitePinStore {
	return &SqlitePinStore{
		DB:   db,
		subs: make(map[int]func([]domain.HazardPin)),
	}
}

// Snapshot returns the full current pin set.
func (s *SqlitePinStore) Snapshot(ctx context.Context) ([]domain.HazardPin, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite pin store: DB is nil")
	}

	q := `
	SELECT pin_id, lat, lon, severity, description, reported_by, created_at
	FROM pins
	ORDER BY created_at;
	`
	rows, err := s.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("snapshot pins: query pins table: %w", err)
	}
	defer rows.Close()

	pins := make([]domain.HazardPin, 0, 64)
	for rows.Next() {
		var p domain.HazardPin
		var severity, createdAt string
		if err := rows.Scan(&p.ID, &p.Location.Lat, &p.Location.Lon, &severity, &p.Description, &p.ReportedBy, &createdAt); err != nil {
			return nil, fmt.Errorf("snapshot pins: scan row: %w", err)
		}

		p.Severity = domain.Severity(severity)
		p.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("snapshot pins: parse created_at %q: %w", createdAt, err)
		}
		pins = append(pins, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("snapshot pins: row iteration: %w", err)
	}

	return pins, nil
}

// Add stores a submission under a fresh identifier and timestamp.
func (s *SqlitePinStore) Add(ctx context.Context, sub domain.PinSubmission) (domain.HazardPin, error) {
	severity, err := domain.ParseSeverity(string(sub.Severity))
	if err != nil {
		return domain.HazardPin{}, fmt.Errorf("add pin: %w", err)
	}

	pin := domain.HazardPin{
		ID:          uuid.NewString(),
		Location:    sub.Location,
		Severity:    severity,
		Description: sub.Description,
		ReportedBy:  sub.ReportedBy,
		CreatedAt:   time.Now().UTC(),
	}

	q := `
	INSERT INTO pins (pin_id, lat, lon, severity, description, reported_by, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?);
	`
	if _, err := s.DB.ExecContext(ctx, q,
		pin.ID, pin.Location.Lat, pin.Location.Lon, string(pin.Severity),
		pin.Description, pin.ReportedBy, pin.CreatedAt.Format(time.RFC3339Nano),
	); err != nil {
		return domain.HazardPin{}, fmt.Errorf("add pin: insert: %w", err)
	}

	s.notify(ctx)
	return pin, nil
}

// Remove deletes a pin by identifier.
func (s *SqlitePinStore) Remove(ctx context.Context, id string) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM pins WHERE pin_id = ?;`, id)
	if err != nil {
		return fmt.Errorf("remove pin %q: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove pin %q: rows affected: %w", id, err)
	}
	if affected == 0 {
		return ports.ErrPinNotFound
	}

	s.notify(ctx)
	return nil
}

// Subscribe delivers the current pin set immediately, then again after every
// local mutation.
func (s *SqlitePinStore) Subscribe(ctx context.Context, fn func([]domain.HazardPin)) (func(), error) {
	pins, err := s.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("subscribe pins: initial snapshot: %w", err)
	}

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	fn(pins)

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}, nil
}

// notify delivers a fresh snapshot to every subscriber. Callbacks run outside
// the lock; a subscriber may unsubscribe from within its callback.
func (s *SqlitePinStore) notify(ctx context.Context) {
	s.mu.Lock()
	fns := make([]func([]domain.HazardPin), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	if len(fns) == 0 {
		return
	}

	pins, err := s.Snapshot(ctx)
	if err != nil {
		slog.Warn("pin notify snapshot failed", "error", err)
		return
	}

	for _, fn := range fns {
		fn(pins)
	}
}
