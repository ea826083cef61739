package contracts

import (
	"fmt"
	"time"
)

// Domain constants for the turnover ("giro") window.
const (
	// WindowDays is the trailing lookback used for all historical aggregation.
	WindowDays = 84
	// MaxWeeks caps the divisor when converting summed units to a weekly average.
	MaxWeeks = 12
)

// KindDelivery is the only event kind that counts toward turnover.
const KindDelivery = "delivery"

// DeliveryEvent is one dated delivery recorded against a client.
// Events are read-only: the analytics core never writes them back.
type DeliveryEvent struct {
	ClientID   int64     `json:"client_id"`
	OccurredOn time.Time `json:"occurred_on"`
	Units      int       `json:"units"`
	Kind       string    `json:"kind"`
}

// Qualifies reports whether the event counts toward the turnover window
// ending at now.
func (e DeliveryEvent) Qualifies(now time.Time) bool {
	if e.Kind != KindDelivery || e.Units < 0 {
		return false
	}
	cutoff := now.AddDate(0, 0, -WindowDays)
	return !e.OccurredOn.Before(cutoff) && !e.OccurredOn.After(now)
}

// ClientReference is one row of the consolidated client reference data.
// Owned by the upstream store; the core only reads it.
type ClientReference struct {
	ClientID           int64   `json:"client_id"`
	Name               string  `json:"name"`
	Status             string  `json:"status"`
	Phone              string  `json:"phone,omitempty"`
	Email              string  `json:"email,omitempty"`
	WeeklyTarget       float64 `json:"weekly_target"`
	UnitPrice          float64 `json:"unit_price"`
	RouteID            int64   `json:"route_id,omitempty"`
	RouteName          string  `json:"route_name,omitempty"`
	RepresentativeID   int64   `json:"representative_id,omitempty"`
	RepresentativeName string  `json:"representative_name,omitempty"`
	CategoryID         int64   `json:"category_id,omitempty"`
	CategoryName       string  `json:"category_name,omitempty"`
	EnabledCategories  []int64 `json:"enabled_categories,omitempty"`
}

// AggregatedTurnover is the per-client output of the batch aggregator.
// All three figures come out of the same single pass over the event window.
type AggregatedTurnover struct {
	WeeklyAverage float64 `json:"weekly_average_units"`
	LastWeek      float64 `json:"last_week_units"`
	StdDev        float64 `json:"std_dev"`
}

// Filter narrows which clients an operation reports on. Filters apply to
// the reference rows before the turnover join, never to the event scan.
type Filter struct {
	RepresentativeID int64 `json:"representative_id,omitempty"`
	RouteID          int64 `json:"route_id,omitempty"`
	CategoryID       int64 `json:"category_id,omitempty"`
}

// IsZero reports whether the filter selects everything.
func (f Filter) IsZero() bool {
	return f.RepresentativeID == 0 && f.RouteID == 0 && f.CategoryID == 0
}

// CacheKey serializes the filter for result-cache keys. Identical filters
// must produce identical keys.
func (f Filter) CacheKey() string {
	return fmt.Sprintf("rep=%d:route=%d:cat=%d", f.RepresentativeID, f.RouteID, f.CategoryID)
}
