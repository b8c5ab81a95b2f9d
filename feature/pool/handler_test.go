package pool

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"item-matcher/core/database"
	"item-matcher/feature/pool/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupTestApp builds a Fiber app with the pool feature loaded behind a
// lookup that accepts "valid-key" for any namespace.
func setupTestApp(t *testing.T, dbName string) (*fiber.App, *Service) {
	t.Helper()

	db, err := database.Connect(database.Config{
		Driver: "sqlite",
		Path:   fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", dbName),
	})
	require.NoError(t, err)

	lookup := func(ctx context.Context, apiKey, namespace string) (bool, error) {
		return apiKey == "valid-key", nil
	}

	app := fiber.New()
	feature := NewFeature(db, zap.NewNop(), lookup)
	require.NoError(t, feature.Load(app))

	return app, feature.service
}

func jsonRequest(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", "valid-key")
	return req
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestHandleMatch(t *testing.T) {
	app, svc := setupTestApp(t, "handler_match")
	seedPool(t, svc, "ns1", "a", "b")

	t.Run("Fresh Assignment", func(t *testing.T) {
		resp, err := app.Test(jsonRequest("POST", "/namespaces/ns1/match", models.MatchRequest{Requestor: "alice"}))
		require.NoError(t, err)
		require.Equal(t, 200, resp.StatusCode)

		body := decode[models.MatchResponse](t, resp)
		assert.True(t, body.Success)
		assert.Equal(t, "a", body.Item)
		assert.False(t, body.AlreadyAssigned)
		assert.Equal(t, MsgMatched, body.Message)
	})

	t.Run("Idempotent Repeat", func(t *testing.T) {
		resp, err := app.Test(jsonRequest("POST", "/namespaces/ns1/match", models.MatchRequest{Requestor: "alice"}))
		require.NoError(t, err)

		body := decode[models.MatchResponse](t, resp)
		assert.True(t, body.Success)
		assert.Equal(t, "a", body.Item)
		assert.True(t, body.AlreadyAssigned)
		assert.Equal(t, MsgAlreadyAssigned, body.Message)
	})

	t.Run("Pool Exhausted", func(t *testing.T) {
		_, err := app.Test(jsonRequest("POST", "/namespaces/ns1/match", models.MatchRequest{Requestor: "bob"}))
		require.NoError(t, err)

		resp, err := app.Test(jsonRequest("POST", "/namespaces/ns1/match", models.MatchRequest{Requestor: "carol"}))
		require.NoError(t, err)
		require.Equal(t, 200, resp.StatusCode)

		body := decode[models.MatchResponse](t, resp)
		assert.False(t, body.Success)
		assert.Empty(t, body.Item)
		assert.Equal(t, MsgNoneAvailable, body.Message)
	})

	t.Run("Missing Requestor", func(t *testing.T) {
		resp, err := app.Test(jsonRequest("POST", "/namespaces/ns1/match", models.MatchRequest{}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Rejects Missing Key", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/namespaces/ns1/match", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestHandleListItems(t *testing.T) {
	app, svc := setupTestApp(t, "handler_list")
	seedPool(t, svc, "ns1", "a", "b")

	_, err := svc.Match(context.Background(), "ns1", "alice")
	require.NoError(t, err)

	t.Run("All Items", func(t *testing.T) {
		resp, err := app.Test(jsonRequest("GET", "/namespaces/ns1/items", nil))
		require.NoError(t, err)
		require.Equal(t, 200, resp.StatusCode)

		body := decode[models.ListResponse](t, resp)
		require.Len(t, body.Items, 2)
		assert.Equal(t, "a", body.Items[0].Token)
		require.NotNil(t, body.Items[0].Requestor)
		assert.Equal(t, "alice", *body.Items[0].Requestor)
		assert.NotNil(t, body.Items[0].MatchedAt)
		assert.Nil(t, body.Items[1].Requestor)
	})

	t.Run("Filtered By Requestor", func(t *testing.T) {
		resp, err := app.Test(jsonRequest("GET", "/namespaces/ns1/items?requestor=alice", nil))
		require.NoError(t, err)

		body := decode[models.ListResponse](t, resp)
		require.Len(t, body.Items, 1)
		assert.Equal(t, "a", body.Items[0].Token)
	})

	t.Run("Filtered By Token", func(t *testing.T) {
		resp, err := app.Test(jsonRequest("GET", "/namespaces/ns1/items?token=b", nil))
		require.NoError(t, err)

		body := decode[models.ListResponse](t, resp)
		require.Len(t, body.Items, 1)
		assert.Nil(t, body.Items[0].Requestor)
	})
}

func TestHandleStats(t *testing.T) {
	app, svc := setupTestApp(t, "handler_stats")
	seedPool(t, svc, "ns1", "a", "b", "c")

	_, err := svc.Match(context.Background(), "ns1", "alice")
	require.NoError(t, err)

	resp, err := app.Test(jsonRequest("GET", "/namespaces/ns1/stats", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	body := decode[models.StatsResponse](t, resp)
	assert.Equal(t, int64(3), body.Total)
	assert.Equal(t, int64(1), body.Matched)
	assert.Equal(t, int64(2), body.Available)
}

func TestHandleBatchUpdate(t *testing.T) {
	app, svc := setupTestApp(t, "handler_batch")
	seedPool(t, svc, "ns1", "old")

	resp, err := app.Test(jsonRequest("PATCH", "/namespaces/ns1/items", models.BatchRequest{
		Add:    []string{"new", "old"},
		Remove: []string{"old"},
	}))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	body := decode[models.UpdateResponse](t, resp)
	assert.True(t, body.Success)
	assert.Contains(t, body.Message, "Added 1 items")
	assert.Contains(t, body.Message, "Skipped 1 duplicate tokens (old)")
	assert.Contains(t, body.Message, "Removed 1 items")
}

func TestHandleSyncSet(t *testing.T) {
	app, svc := setupTestApp(t, "handler_sync")
	seedPool(t, svc, "ns1", "a", "b")

	t.Run("Applies Diff", func(t *testing.T) {
		resp, err := app.Test(jsonRequest("PUT", "/namespaces/ns1/items", models.SyncRequest{
			Items: []string{"b", "c"},
		}))
		require.NoError(t, err)
		require.Equal(t, 200, resp.StatusCode)

		body := decode[models.UpdateResponse](t, resp)
		assert.True(t, body.Success)
		assert.Contains(t, body.Message, "Added 1 items")
		assert.Contains(t, body.Message, "Removed 1 items")

		tokens, err := svc.Store().LiveTokens(context.Background(), "ns1")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"b", "c"}, tokens)
	})

	t.Run("Repeat Is No-op", func(t *testing.T) {
		resp, err := app.Test(jsonRequest("PUT", "/namespaces/ns1/items", models.SyncRequest{
			Items: []string{"b", "c"},
		}))
		require.NoError(t, err)

		body := decode[models.UpdateResponse](t, resp)
		assert.True(t, body.Success)
		assert.Equal(t, "No changes made", body.Message)
	})

	t.Run("Missing Items Field", func(t *testing.T) {
		resp, err := app.Test(jsonRequest("PUT", "/namespaces/ns1/items", map[string]any{}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}
