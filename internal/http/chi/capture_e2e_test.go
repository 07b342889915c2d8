package chi

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/marcelsud/hookbin/hook"
	"github.com/marcelsud/hookbin/hook/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureFlow_FileRegistry(t *testing.T) {
	ctx := context.Background()
	repo, err := file.NewRepository(filepath.Join(t.TempDir(), "webhooks.json"))
	require.NoError(t, err)
	require.NoError(t, repo.Init(ctx))
	defer repo.Close(ctx)

	h := Handlers(ctx, hook.NewService(repo), Options{})

	w := serve(t, h, http.MethodPost, "/hooks/email", `{"subject":"Weekly backup"}`, nil)
	require.Equal(t, http.StatusAccepted, w.Code)
	var captured captureResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &captured))
	assert.Equal(t, int64(1), captured.Hits)

	w = serve(t, h, http.MethodPost, "/hooks/email", "plain text", nil)
	require.Equal(t, http.StatusAccepted, w.Code)

	w = serve(t, h, http.MethodGet, "/api/hooks/email", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got hook.Hook
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, int64(2), got.Hits)
	require.Len(t, got.Logs, 2)
	assert.Equal(t, "plain text", got.Logs[0].Body)
	assert.False(t, got.Logs[0].IsJSON)
	assert.Equal(t, captured.EntryID, got.Logs[1].ID)
	assert.Equal(t, "{\n  \"subject\": \"Weekly backup\"\n}", got.Logs[1].Formatted)

	w = serve(t, h, http.MethodPost, "/api/hooks", `{"slug":"email"}`, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = serve(t, h, http.MethodPost, "/api/hooks/email/reset", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(t, h, http.MethodGet, "/api/stats", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var st hook.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	assert.Equal(t, 1, st.TotalWebhooks)
	assert.Zero(t, st.TotalHits)

	w = serve(t, h, http.MethodDelete, "/api/hooks/email", "", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = serve(t, h, http.MethodDelete, "/api/hooks/email", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCaptureFlow_MixedCaseSlug(t *testing.T) {
	ctx := context.Background()
	repo, err := file.NewRepository(filepath.Join(t.TempDir(), "webhooks.json"))
	require.NoError(t, err)
	require.NoError(t, repo.Init(ctx))
	defer repo.Close(ctx)

	h := Handlers(ctx, hook.NewService(repo), Options{})

	w := serve(t, h, http.MethodPost, "/hooks/Email1", "hello", nil)
	require.Equal(t, http.StatusAccepted, w.Code)

	w = serve(t, h, http.MethodGet, "/api/hooks/Email1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got hook.Hook
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "email1", got.Slug)
	assert.Equal(t, int64(1), got.Hits)

	w = serve(t, h, http.MethodDelete, "/api/hooks/EMAIL1", "", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = serve(t, h, http.MethodGet, "/api/hooks/email1", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
