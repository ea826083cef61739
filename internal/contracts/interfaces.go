package contracts

import (
	"context"
	"time"
)

// EventStore reads dated delivery events. Implementations own their own
// timeout/retry policy; the core performs no retries of its own.
type EventStore interface {
	// DeliveryEvents returns every event of kind "delivery" with
	// occurred_on on or after the cutoff, for all clients.
	DeliveryEvents(ctx context.Context, since time.Time) ([]DeliveryEvent, error)

	// ClientEvents returns the delivery events of a single client within
	// the same window, ordered oldest first.
	ClientEvents(ctx context.Context, clientID int64, since time.Time) ([]DeliveryEvent, error)
}

// ReferenceStore reads per-client reference rows and triggers the upstream
// snapshot rebuild. The core never mutates reference data.
type ReferenceStore interface {
	// Clients returns one reference row per client matching the filter.
	Clients(ctx context.Context, filter Filter) ([]ClientReference, error)

	// RefreshSnapshot rebuilds the upstream consolidated dataset the
	// Clients query reads from. Maintenance operation, owned upstream.
	RefreshSnapshot(ctx context.Context) error
}
