// Package postgres implements the event and reference store contracts on
// top of the operational database. The analytics core only ever reads
// through these adapters.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/VerticalAgents/mischa-os-sub004/internal/contracts"
)

// EventStore reads delivery history rows.
type EventStore struct {
	pool *pgxpool.Pool
}

// NewEventStore creates a new event store over the shared pool.
func NewEventStore(pool *pgxpool.Pool) *EventStore {
	return &EventStore{pool: pool}
}

// DeliveryEvents returns every delivery event on or after the cutoff, for
// all clients. One query, no per-client round trips.
func (s *EventStore) DeliveryEvents(ctx context.Context, since time.Time) ([]contracts.DeliveryEvent, error) {
	query := `
		SELECT cliente_id, data_entrega, quantidade
		FROM historico_entregas
		WHERE tipo = 'delivery'
		  AND data_entrega >= $1
		ORDER BY data_entrega`

	rows, err := s.pool.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("query delivery events: %w", err)
	}
	defer rows.Close()

	var events []contracts.DeliveryEvent
	for rows.Next() {
		e := contracts.DeliveryEvent{Kind: contracts.KindDelivery}
		if err := rows.Scan(&e.ClientID, &e.OccurredOn, &e.Units); err != nil {
			return nil, fmt.Errorf("scan delivery event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate delivery events: %w", err)
	}

	return events, nil
}

// ClientEvents returns one client's delivery events within the window,
// ordered oldest first.
func (s *EventStore) ClientEvents(ctx context.Context, clientID int64, since time.Time) ([]contracts.DeliveryEvent, error) {
	query := `
		SELECT cliente_id, data_entrega, quantidade
		FROM historico_entregas
		WHERE tipo = 'delivery'
		  AND cliente_id = $1
		  AND data_entrega >= $2
		ORDER BY data_entrega`

	rows, err := s.pool.Query(ctx, query, clientID, since)
	if err != nil {
		return nil, fmt.Errorf("query client events: %w", err)
	}
	defer rows.Close()

	var events []contracts.DeliveryEvent
	for rows.Next() {
		e := contracts.DeliveryEvent{Kind: contracts.KindDelivery}
		if err := rows.Scan(&e.ClientID, &e.OccurredOn, &e.Units); err != nil {
			return nil, fmt.Errorf("scan client event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate client events: %w", err)
	}

	return events, nil
}
