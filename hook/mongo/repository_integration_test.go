//go:build integration

package mongo_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/marcelsud/hookbin/hook"
	"github.com/marcelsud/hookbin/hook/mongo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/sync/errgroup"
)

func TestRepository_Integration(t *testing.T) {
	ctx := context.Background()

	mongoContainer, cleanup := SetupMongoContainer(t, ctx)
	defer cleanup()

	t.Run("init is idempotent", func(t *testing.T) {
		repo := CreateTestRepository(t, mongoContainer.URI)
		defer repo.Close(ctx)

		require.NoError(t, repo.Init(ctx))

		hooks, err := repo.ListHooks(ctx)
		require.NoError(t, err)
		assert.Empty(t, hooks)
	})

	t.Run("create and get", func(t *testing.T) {
		repo := CreateTestRepository(t, mongoContainer.URI)
		defer repo.Close(ctx)

		created, err := repo.CreateHook(ctx, hook.CreateOptions{
			Slug:        "billing",
			Description: "Billing events",
			Metadata:    map[string]any{"team": "payments", "owner": map[string]any{"name": "ops"}},
		})
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Zero(t, created.Hits)
		assert.Nil(t, created.LastHit)

		got, err := repo.GetHook(ctx, "billing")
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "Billing events", got.Description)
		assert.Equal(t, map[string]any{"name": "ops"}, got.Metadata["owner"])
		assert.Empty(t, got.Logs)
	})

	t.Run("duplicate slug conflicts", func(t *testing.T) {
		repo := CreateTestRepository(t, mongoContainer.URI)
		defer repo.Close(ctx)

		_, err := repo.CreateHook(ctx, hook.CreateOptions{Slug: "dup"})
		require.NoError(t, err)

		_, err = repo.CreateHook(ctx, hook.CreateOptions{Slug: "dup"})
		assert.ErrorIs(t, err, hook.ErrConflict)
	})

	t.Run("missing hook", func(t *testing.T) {
		repo := CreateTestRepository(t, mongoContainer.URI)
		defer repo.Close(ctx)

		_, err := repo.GetHook(ctx, "ghost")
		assert.ErrorIs(t, err, hook.ErrNotFound)

		_, err = repo.RecordHit(ctx, "ghost", hook.NewEntry([]byte("x"), time.Now()))
		assert.ErrorIs(t, err, hook.ErrNotFound)

		_, err = repo.ClearLogs(ctx, "ghost")
		assert.ErrorIs(t, err, hook.ErrNotFound)

		removed, err := repo.DeleteHook(ctx, "ghost")
		require.NoError(t, err)
		assert.False(t, removed)
	})

	t.Run("log is bounded and newest first", func(t *testing.T) {
		repo := CreateTestRepository(t, mongoContainer.URI, mongo.WithLogLimit(3))
		defer repo.Close(ctx)

		_, err := repo.CreateHook(ctx, hook.CreateOptions{Slug: "bounded"})
		require.NoError(t, err)

		base := time.Now().UTC().Truncate(time.Millisecond)
		var last hook.Summary
		for i := 0; i < 5; i++ {
			last, err = repo.RecordHit(ctx, "bounded", hook.NewEntry([]byte(fmt.Sprintf(`{"n":%d}`, i)), base.Add(time.Duration(i)*time.Second)))
			require.NoError(t, err)
		}
		assert.Equal(t, int64(5), last.Hits)

		got, err := repo.GetHook(ctx, "bounded")
		require.NoError(t, err)
		require.Len(t, got.Logs, 3)
		assert.Equal(t, `{"n":4}`, got.Logs[0].Body)
		assert.Equal(t, `{"n":2}`, got.Logs[2].Body)
		require.NotNil(t, got.LastHit)
		assert.True(t, got.LastHit.Equal(got.Logs[0].Timestamp))
	})

	t.Run("concurrent hits are all counted", func(t *testing.T) {
		repo := CreateTestRepository(t, mongoContainer.URI)
		defer repo.Close(ctx)

		_, err := repo.CreateHook(ctx, hook.CreateOptions{Slug: "busy"})
		require.NoError(t, err)

		const n = 100
		var g errgroup.Group
		for i := 0; i < n; i++ {
			g.Go(func() error {
				_, err := repo.RecordHit(ctx, "busy", hook.NewEntry([]byte("ping"), time.Now()))
				return err
			})
		}
		require.NoError(t, g.Wait())

		got, err := repo.GetHook(ctx, "busy")
		require.NoError(t, err)
		assert.Equal(t, int64(n), got.Hits)
		assert.Len(t, got.Logs, hook.DefaultLogLimit)
	})

	t.Run("clear logs resets counters", func(t *testing.T) {
		repo := CreateTestRepository(t, mongoContainer.URI)
		defer repo.Close(ctx)

		_, err := repo.CreateHook(ctx, hook.CreateOptions{Slug: "reset"})
		require.NoError(t, err)
		_, err = repo.RecordHit(ctx, "reset", hook.NewEntry([]byte("a"), time.Now()))
		require.NoError(t, err)

		cleared, err := repo.ClearLogs(ctx, "reset")
		require.NoError(t, err)
		assert.Zero(t, cleared.Hits)
		assert.Nil(t, cleared.LastHit)
		assert.Empty(t, cleared.Logs)

		again, err := repo.ClearLogs(ctx, "reset")
		require.NoError(t, err)
		assert.Zero(t, again.Hits)
	})

	t.Run("recent entries and stats", func(t *testing.T) {
		now := time.Now().UTC().Truncate(time.Millisecond)
		repo := CreateTestRepository(t, mongoContainer.URI, mongo.WithClock(func() time.Time { return now }))
		defer repo.Close(ctx)

		_, err := repo.CreateHook(ctx, hook.CreateOptions{Slug: "email"})
		require.NoError(t, err)
		_, err = repo.CreateHook(ctx, hook.CreateOptions{Slug: "orders"})
		require.NoError(t, err)

		for i := 0; i < 3; i++ {
			_, err = repo.RecordHit(ctx, "email", hook.NewEntry([]byte("old"), now.Add(-48*time.Hour+time.Duration(i)*time.Minute)))
			require.NoError(t, err)
		}
		for i := 0; i < 5; i++ {
			_, err = repo.RecordHit(ctx, "orders", hook.NewEntry([]byte("new"), now.Add(-time.Duration(5-i)*time.Minute)))
			require.NoError(t, err)
		}

		recent, err := repo.ListRecentEntries(ctx, 4)
		require.NoError(t, err)
		require.Len(t, recent, 4)
		assert.Equal(t, "orders", recent[0].Slug)
		assert.True(t, recent[0].Timestamp.After(recent[1].Timestamp))

		st, err := repo.GetStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, st.TotalWebhooks)
		assert.Equal(t, int64(8), st.TotalHits)
		assert.Equal(t, int64(5), st.HitsLast24h)
		require.NotNil(t, st.LastHitAt)
		assert.True(t, st.LastHitAt.Equal(now.Add(-time.Minute)))
	})

	t.Run("stats on empty registry", func(t *testing.T) {
		repo := CreateTestRepository(t, mongoContainer.URI)
		defer repo.Close(ctx)

		st, err := repo.GetStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, hook.Stats{}, st)
	})

	t.Run("delete removes the hook", func(t *testing.T) {
		repo := CreateTestRepository(t, mongoContainer.URI)
		defer repo.Close(ctx)

		_, err := repo.CreateHook(ctx, hook.CreateOptions{Slug: "gone"})
		require.NoError(t, err)

		removed, err := repo.DeleteHook(ctx, "gone")
		require.NoError(t, err)
		assert.True(t, removed)

		_, err = repo.GetHook(ctx, "gone")
		assert.ErrorIs(t, err, hook.ErrNotFound)
	})

	t.Run("init trims logs above a lowered limit", func(t *testing.T) {
		db := fmt.Sprintf("hookbin_trim_%d", time.Now().UnixNano())
		repo := CreateTestRepository(t, mongoContainer.URI, mongo.WithDatabase(db))
		_, err := repo.CreateHook(ctx, hook.CreateOptions{Slug: "trim"})
		require.NoError(t, err)
		for i := 0; i < 6; i++ {
			_, err = repo.RecordHit(ctx, "trim", hook.NewEntry([]byte("x"), time.Now()))
			require.NoError(t, err)
		}
		require.NoError(t, repo.Close(ctx))

		reopened := CreateTestRepository(t, mongoContainer.URI, mongo.WithDatabase(db), mongo.WithLogLimit(2))
		defer reopened.Close(ctx)

		got, err := reopened.GetHook(ctx, "trim")
		require.NoError(t, err)
		assert.Len(t, got.Logs, 2)
		assert.Equal(t, int64(6), got.Hits)

		count, err := reopened.GetCollection().CountDocuments(ctx, bson.M{"logs.2": bson.M{"$exists": true}})
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}
