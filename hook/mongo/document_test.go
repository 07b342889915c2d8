package mongo

import (
	"testing"
	"time"

	"github.com/marcelsud/hookbin/hook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNewRepository(t *testing.T) {
	t.Run("connection string is required", func(t *testing.T) {
		repo, err := NewRepository("")
		assert.Nil(t, repo)
		assert.ErrorIs(t, err, ErrMissingURI)
	})

	t.Run("defaults", func(t *testing.T) {
		repo, err := NewRepository("mongodb://localhost:27017")
		require.NoError(t, err)
		assert.Equal(t, DefaultDatabase, repo.database)
		assert.Equal(t, DefaultCollection, repo.collection)
		assert.Equal(t, hook.DefaultLogLimit, repo.logLimit)
	})

	t.Run("options", func(t *testing.T) {
		repo, err := NewRepository("mongodb://localhost:27017",
			WithDatabase("capture"),
			WithCollection("endpoints"),
			WithLogLimit(5),
			WithDatabase(""),
		)
		require.NoError(t, err)
		assert.Equal(t, "capture", repo.database)
		assert.Equal(t, "endpoints", repo.collection)
		assert.Equal(t, 5, repo.logLimit)
	})

	t.Run("operations before init fail", func(t *testing.T) {
		repo, err := NewRepository("mongodb://localhost:27017")
		require.NoError(t, err)
		_, err = repo.ListHooks(t.Context())
		assert.Error(t, err)
		assert.NoError(t, repo.Close(t.Context()))
	})
}

func TestSanitize(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	oid := primitive.NewObjectID()

	in := map[string]any{
		"team": "billing",
		"owner": primitive.D{
			{Key: "name", Value: "ops"},
			{Key: "since", Value: primitive.NewDateTimeFromTime(at)},
		},
		"tags":  primitive.A{"a", primitive.M{"nested": int32(2)}},
		"ref":   oid,
		"count": int32(7),
	}

	out := sanitizeMap(in)

	assert.Equal(t, map[string]any{
		"team": "billing",
		"owner": map[string]any{
			"name":  "ops",
			"since": at,
		},
		"tags":  []any{"a", map[string]any{"nested": int64(2)}},
		"ref":   oid.Hex(),
		"count": int64(7),
	}, out)
}

func TestHookDocument_ToHook(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	hit := created.Add(time.Hour)

	doc := hookDocument{
		ID:        "id-1",
		Slug:      "billing",
		Metadata:  nil,
		CreatedAt: created,
		Hits:      1,
		LastHit:   &hit,
		Logs: []entryDocument{
			{ID: "e1", Timestamp: hit, Body: "{}", BodyPreview: "{}", IsJSON: true, Formatted: "{}", ByteSize: 2},
		},
	}

	h := doc.toHook()

	assert.Equal(t, "billing", h.Slug)
	assert.NotNil(t, h.Metadata)
	require.NotNil(t, h.LastHit)
	assert.True(t, hit.Equal(*h.LastHit))
	require.Len(t, h.Logs, 1)
	assert.Equal(t, "e1", h.Logs[0].ID)
	assert.True(t, h.Logs[0].IsJSON)

	empty := hookDocument{ID: "id-2", Slug: "empty"}.toHook()
	assert.NotNil(t, empty.Logs)
	assert.Nil(t, empty.LastHit)
}

func TestStatsDocument_ToStats(t *testing.T) {
	st := statsDocument{}.toStats()
	assert.Equal(t, hook.Stats{}, st)

	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	st = statsDocument{TotalWebhooks: 2, TotalHits: 8, LastHitAt: &at, HitsLast24h: 5}.toStats()
	assert.Equal(t, 2, st.TotalWebhooks)
	assert.Equal(t, int64(8), st.TotalHits)
	assert.Equal(t, int64(5), st.HitsLast24h)
	require.NotNil(t, st.LastHitAt)
	assert.Nil(t, st.LastCreatedAt)
}
