package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/marcelsud/hookbin/hook"
)

// RegistryCollector implements Collector over any registry engine
type RegistryCollector struct {
	reader hook.Reader
	now    func() time.Time
}

// NewRegistryCollector creates a new registry metrics collector
func NewRegistryCollector(reader hook.Reader) *RegistryCollector {
	return &RegistryCollector{
		reader: reader,
		now:    time.Now,
	}
}

// Collect gathers all metrics from the registry
func (c *RegistryCollector) Collect(ctx context.Context) (Metrics, error) {
	hits, err := c.GetHits(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("getting hits: %w", err)
	}

	webhooks, last24h, err := c.GetTotals(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("getting totals: %w", err)
	}

	var total int64
	for _, n := range hits {
		total += n
	}

	return Metrics{
		Webhooks:    webhooks,
		Hits:        hits,
		TotalHits:   total,
		HitsLast24h: last24h,
		Timestamp:   c.now(),
	}, nil
}

// GetHits returns the delivery count of every hook
func (c *RegistryCollector) GetHits(ctx context.Context) (map[string]int64, error) {
	all, err := c.reader.ListHooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing hooks: %w", err)
	}

	hits := make(map[string]int64, len(all))
	for _, s := range all {
		hits[s.Slug] = s.Hits
	}
	return hits, nil
}

// GetTotals returns registry wide counters
func (c *RegistryCollector) GetTotals(ctx context.Context) (int64, int64, error) {
	st, err := c.reader.GetStats(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("getting stats: %w", err)
	}
	return int64(st.TotalWebhooks), st.HitsLast24h, nil
}
