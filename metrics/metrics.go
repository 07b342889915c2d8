package metrics

import (
	"context"
	"time"
)

// Metrics represents the current state of the registry.
type Metrics struct {
	// Webhooks is the number of registered hooks
	Webhooks int64 `json:"webhooks"`

	// Hits maps slug to the number of deliveries it has received
	Hits map[string]int64 `json:"hits"`

	// TotalHits is the sum of Hits
	TotalHits int64 `json:"total_hits"`

	// HitsLast24h counts retained entries captured in the last 24 hours
	HitsLast24h int64 `json:"hits_last_24h"`

	// Timestamp when metrics were collected
	Timestamp time.Time `json:"timestamp"`
}

// Collector defines the interface for collecting metrics from a registry.
type Collector interface {
	// Collect gathers current metrics from the system
	Collect(ctx context.Context) (Metrics, error)

	// GetHits returns the delivery count per slug
	GetHits(ctx context.Context) (map[string]int64, error)

	// GetTotals returns the hook count and deliveries in the last 24 hours
	GetTotals(ctx context.Context) (webhooks int64, hitsLast24h int64, err error)
}
