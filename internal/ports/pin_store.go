package ports

import (
	"context"
	"errors"

	"safewalk-service/internal/domain"
)

// ErrPinNotFound reports removal of an identifier the store does not hold.
var ErrPinNotFound = errors.New("pin not found")

// Port: a boundary for the hazard-pin collection.
//
// Two variants exist (cloud Postgres with NATS change notification, and a
// local SQLite fallback); call sites never branch on which one is in use.
type PinStore interface {
	// Snapshot returns the full current pin set. Insertion order is not
	// guaranteed observable.
	Snapshot(ctx context.Context) ([]domain.HazardPin, error)

	// Add stores a submitted pin, assigning a fresh identifier and creation
	// timestamp, and returns the stored pin.
	Add(ctx context.Context, sub domain.PinSubmission) (domain.HazardPin, error)

	// Remove deletes a pin by identifier. Removing an unknown identifier
	// returns ErrPinNotFound.
	Remove(ctx context.Context, id string) error

	// Subscribe registers fn to receive the full current pin set now and
	// after every change. The returned func cancels the subscription.
	Subscribe(ctx context.Context, fn func([]domain.HazardPin)) (func(), error)
}
