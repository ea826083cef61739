package giro

import (
	"context"
	"time"

	"github.com/VerticalAgents/mischa-os-sub004/internal/contracts"
)

// Shared test fixtures for the analytics core.

var testNow = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

// fakeEventStore serves canned events and counts store round trips.
type fakeEventStore struct {
	events      []contracts.DeliveryEvent
	err         error
	scanCalls   int
	clientCalls int
}

func (f *fakeEventStore) DeliveryEvents(ctx context.Context, since time.Time) ([]contracts.DeliveryEvent, error) {
	f.scanCalls++
	if f.err != nil {
		return nil, f.err
	}

	var out []contracts.DeliveryEvent
	for _, e := range f.events {
		if !e.OccurredOn.Before(since) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventStore) ClientEvents(ctx context.Context, clientID int64, since time.Time) ([]contracts.DeliveryEvent, error) {
	f.clientCalls++
	if f.err != nil {
		return nil, f.err
	}

	var out []contracts.DeliveryEvent
	for _, e := range f.events {
		if e.ClientID == clientID && !e.OccurredOn.Before(since) {
			out = append(out, e)
		}
	}
	return out, nil
}

// fakeReferenceStore serves canned reference rows with in-memory filtering.
type fakeReferenceStore struct {
	refs         []contracts.ClientReference
	err          error
	clientCalls  int
	refreshCalls int
}

func (f *fakeReferenceStore) Clients(ctx context.Context, filter contracts.Filter) ([]contracts.ClientReference, error) {
	f.clientCalls++
	if f.err != nil {
		return nil, f.err
	}

	var out []contracts.ClientReference
	for _, ref := range f.refs {
		if filter.RepresentativeID != 0 && ref.RepresentativeID != filter.RepresentativeID {
			continue
		}
		if filter.RouteID != 0 && ref.RouteID != filter.RouteID {
			continue
		}
		if filter.CategoryID != 0 && ref.CategoryID != filter.CategoryID {
			continue
		}
		out = append(out, ref)
	}
	return out, nil
}

func (f *fakeReferenceStore) RefreshSnapshot(ctx context.Context) error {
	f.refreshCalls++
	return f.err
}

// delivery builds a qualifying event daysAgo days before testNow.
func delivery(clientID int64, daysAgo int, units int) contracts.DeliveryEvent {
	return contracts.DeliveryEvent{
		ClientID:   clientID,
		OccurredOn: testNow.AddDate(0, 0, -daysAgo),
		Units:      units,
		Kind:       contracts.KindDelivery,
	}
}

// weeklyDeliveries builds one event per week for the given weekly unit
// pattern, index 0 being the most recent week.
func weeklyDeliveries(clientID int64, unitsByWeek []int) []contracts.DeliveryEvent {
	events := make([]contracts.DeliveryEvent, 0, len(unitsByWeek))
	for week, units := range unitsByWeek {
		events = append(events, delivery(clientID, week*7+3, units))
	}
	return events
}
