package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/marcelsud/hookbin/hook"
	"github.com/marcelsud/hookbin/hook/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRegistryCollector_Collect(t *testing.T) {
	ctx := context.Background()

	t.Run("aggregates hits and totals", func(t *testing.T) {
		repo := mocks.NewRegistry(t)
		repo.On("ListHooks", mock.Anything).Return([]hook.Summary{
			{Slug: "email", Hits: 3},
			{Slug: "orders", Hits: 5},
		}, nil)
		repo.On("GetStats", mock.Anything).Return(hook.Stats{TotalWebhooks: 2, TotalHits: 8, HitsLast24h: 5}, nil)

		now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		c := NewRegistryCollector(repo)
		c.now = func() time.Time { return now }

		m, err := c.Collect(ctx)
		require.NoError(t, err)

		assert.Equal(t, int64(2), m.Webhooks)
		assert.Equal(t, map[string]int64{"email": 3, "orders": 5}, m.Hits)
		assert.Equal(t, int64(8), m.TotalHits)
		assert.Equal(t, int64(5), m.HitsLast24h)
		assert.Equal(t, now, m.Timestamp)
	})

	t.Run("propagates reader errors", func(t *testing.T) {
		repo := mocks.NewRegistry(t)
		repo.On("ListHooks", mock.Anything).Return(nil, errors.New("connection refused"))

		_, err := NewRegistryCollector(repo).Collect(ctx)

		assert.ErrorContains(t, err, "getting hits")
	})

	t.Run("stats error", func(t *testing.T) {
		repo := mocks.NewRegistry(t)
		repo.On("ListHooks", mock.Anything).Return([]hook.Summary{}, nil)
		repo.On("GetStats", mock.Anything).Return(hook.Stats{}, errors.New("timeout"))

		_, err := NewRegistryCollector(repo).Collect(ctx)

		assert.ErrorContains(t, err, "getting totals")
	})
}

func TestOTelExporter(t *testing.T) {
	repo := mocks.NewRegistry(t)
	repo.On("ListHooks", mock.Anything).Return([]hook.Summary{
		{Slug: "email", Hits: 3},
		{Slug: "orders", Hits: 5},
	}, nil)
	repo.On("GetStats", mock.Anything).Return(hook.Stats{TotalWebhooks: 2, TotalHits: 8, HitsLast24h: 5}, nil)

	oe, err := NewOTelExporter(NewRegistryCollector(repo))
	require.NoError(t, err)
	defer oe.Shutdown(context.Background())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	oe.ServeHTTP().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "hookbin_webhooks")
	assert.Contains(t, body, `hook_slug="orders"`)
	assert.Contains(t, body, "hookbin_hits_last_24h")

	// a second exporter gets its own registry
	other, err := NewOTelExporter(NewRegistryCollector(repo))
	require.NoError(t, err)
	assert.NoError(t, other.Shutdown(context.Background()))
}
