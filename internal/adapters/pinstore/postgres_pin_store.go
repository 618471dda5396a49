package pinstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"safewalk-service/internal/domain"
	"safewalk-service/internal/platform/obs"
	"safewalk-service/internal/ports"
)

// DefaultSubject is the NATS subject pin-change events are published on.
const DefaultSubject = "safewalk.pins.changed"

// PostgresPinStore is the cloud implementation of the PinStore port.
//
// Mutations publish a change event to NATS; subscriptions re-read the full
// pin set on every event, so all replicas converge on the same snapshot
// without coordinating beyond the shared database.
type PostgresPinStore struct {
	DB      *sql.DB
	nc      *nats.Conn
	subject string
}

func NewPostgresPinStore(db *sql.DB, nc *nats.Conn) *PostgresPinStore {
	return &PostgresPinStore{DB: db, nc: nc, subject: DefaultSubject}
}

// Snapshot returns the full current pin set.
func (s *PostgresPinStore) Snapshot(ctx context.Context) (_ []domain.HazardPin, err error) {
	defer obs.Time(ctx, "pinstore.pg.Snapshot")(&err)

	if s.DB == nil {
		return nil, errors.New("postgres pin store: DB is nil")
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
		var severity string
		if err := rows.Scan(&p.ID, &p.Location.Lat, &p.Location.Lon, &severity, &p.Description, &p.ReportedBy, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("snapshot pins: scan row: %w", err)
		}
		p.Severity = domain.Severity(severity)
		pins = append(pins, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("snapshot pins: row iteration: %w", err)
	}

	return pins, nil
}

// Add stores a submission under a fresh identifier and timestamp.
func (s *PostgresPinStore) Add(ctx context.Context, sub domain.PinSubmission) (_ domain.HazardPin, err error) {
	defer obs.Time(ctx, "pinstore.pg.Add")(&err)

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
	VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	if _, err := s.DB.ExecContext(ctx, q,
		pin.ID, pin.Location.Lat, pin.Location.Lon, string(pin.Severity),
		pin.Description, pin.ReportedBy, pin.CreatedAt,
	); err != nil {
		return domain.HazardPin{}, fmt.Errorf("add pin: insert: %w", err)
	}

	s.notifyChange("add")
	return pin, nil
}

// Remove deletes a pin by identifier.
func (s *PostgresPinStore) Remove(ctx context.Context, id string) (err error) {
	defer obs.Time(ctx, "pinstore.pg.Remove")(&err)

	res, err := s.DB.ExecContext(ctx, `DELETE FROM pins WHERE pin_id = $1;`, id)
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

	s.notifyChange("remove")
	return nil
}

// Subscribe delivers the current pin set immediately, then again after every
// change event seen on the NATS subject.
func (s *PostgresPinStore) Subscribe(ctx context.Context, fn func([]domain.HazardPin)) (func(), error) {
	pins, err := s.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("subscribe pins: initial snapshot: %w", err)
	}
	fn(pins)

	if s.nc == nil {
		slog.Warn("pin subscription without NATS connection; updates unavailable")
		return func() {}, nil
	}

	natsSub, err := s.nc.Subscribe(s.subject, func(*nats.Msg) {
		pins, err := s.Snapshot(context.Background())
		if err != nil {
			slog.Warn("pin subscription snapshot failed", "error", err)
			return
		}
		fn(pins)
	})
	if err != nil {
		return nil, fmt.Errorf("subscribe pins: nats subscribe %q: %w", s.subject, err)
	}

	return func() {
		if err := natsSub.Unsubscribe(); err != nil {
			slog.Warn("pin unsubscribe failed", "error", err)
		}
	}, nil
}

func (s *PostgresPinStore) notifyChange(action string) {
	if s.nc == nil {
		return
	}
	if err := s.nc.Publish(s.subject, []byte(action)); err != nil {
		slog.Warn("pin change publish failed", "action", action, "error", err)
	}
}
