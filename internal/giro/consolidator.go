package giro

import (
	"sort"

	"github.com/VerticalAgents/mischa-os-sub004/internal/contracts"
	"github.com/VerticalAgents/mischa-os-sub004/pkg/logger"
)

// Consolidator joins client reference rows with the aggregated turnover
// mapping into one consolidated record per client.
type Consolidator struct {
	logger *logger.Logger
}

// NewConsolidator creates a new consolidation transformer.
func NewConsolidator(log *logger.Logger) *Consolidator {
	return &Consolidator{logger: log}
}

// Consolidate builds one record per reference row, defaulting to zero
// turnover for clients absent from the mapping, and returns the list sorted
// by weekly average descending. The sort is stable: ties keep the reference
// row order.
//
// Filtering happens upstream on the reference rows, never on the event
// scan, so a filtered view reports fewer clients over the same aggregation.
func (c *Consolidator) Consolidate(refs []contracts.ClientReference, turnover map[int64]contracts.AggregatedTurnover) []contracts.ConsolidatedClientRecord {
	records := make([]contracts.ConsolidatedClientRecord, 0, len(refs))
	for _, ref := range refs {
		agg := turnover[ref.ClientID] // zero value when absent
		records = append(records, contracts.NewConsolidatedRecord(ref, agg))
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].WeeklyAverage > records[j].WeeklyAverage
	})

	c.logger.WithFields(map[string]interface{}{
		"clients":  len(records),
		"turnover": len(turnover),
	}).Debug("consolidation completed")

	return records
}
