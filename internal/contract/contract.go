// Package contract provides interfaces and shared utilities for the Qualens
// engine's internal architecture.
package contract

import (
	"context"

	"github.com/qualens/qualens/schema"
)

// RecordStore defines the record fetcher collaborator boundary. The engine
// treats it as a passive, read-only data source; retry policy on fetch
// failures belongs to the caller.
type RecordStore interface {
	// FindRecords returns evaluation records matching the filter, capped at
	// the filter limit (or the store default) and ordered by creation time.
	FindRecords(ctx context.Context, filter schema.RecordFilter) ([]schema.EvaluationRecord, error)

	// InsertRecords writes records into the store. Only maintenance tooling
	// (seeding, tests) uses this; analyzers never persist anything.
	InsertRecords(ctx context.Context, records []schema.EvaluationRecord) error

	// GetStatus returns status information about the record store.
	GetStatus(ctx context.Context) (schema.StoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// ModelPrice is the per-token cost pair for one model.
type ModelPrice struct {
	InputPerToken  float64
	OutputPerToken float64
}

// PriceBook defines the pricing collaborator boundary. A missing model is a
// not-found sentinel, treated by callers as zero cost and logged as a
// warning rather than failing the analysis.
type PriceBook interface {
	// ModelPrice returns the per-token prices for a model identifier.
	ModelPrice(model string) (ModelPrice, bool)
}

// RecordCost computes the dollar cost of one record against a price book.
// Records without token counts, or with an unpriced model, cost zero.
func RecordCost(r *schema.EvaluationRecord, prices PriceBook) float64 {
	if prices == nil || r.Model == "" {
		return 0
	}
	price, ok := prices.ModelPrice(r.Model)
	if !ok {
		return 0
	}
	var cost float64
	if r.InputTokens != nil {
		cost += float64(*r.InputTokens) * price.InputPerToken
	}
	if r.OutputTokens != nil {
		cost += float64(*r.OutputTokens) * price.OutputPerToken
	}
	return cost
}
