package ratelimit

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp(cfg Config) *fiber.App {
	app := fiber.New()
	app.Use(New(cfg))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	return app
}

func TestRateLimit(t *testing.T) {
	t.Run("Allows Within Burst", func(t *testing.T) {
		app := setupApp(Config{PerSecond: 1, Burst: 3})

		for i := 0; i < 3; i++ {
			req := httptest.NewRequest("GET", "/", nil)
			req.Header.Set("X-Api-Key", "client-a")
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		}
	})

	t.Run("Rejects Over Burst", func(t *testing.T) {
		app := setupApp(Config{PerSecond: 1, Burst: 1})

		first := httptest.NewRequest("GET", "/", nil)
		first.Header.Set("X-Api-Key", "client-b")
		resp, err := app.Test(first)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		second := httptest.NewRequest("GET", "/", nil)
		second.Header.Set("X-Api-Key", "client-b")
		resp, err = app.Test(second)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	})

	t.Run("Keys Are Independent", func(t *testing.T) {
		app := setupApp(Config{PerSecond: 1, Burst: 1})

		a := httptest.NewRequest("GET", "/", nil)
		a.Header.Set("X-Api-Key", "client-c")
		resp, err := app.Test(a)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		b := httptest.NewRequest("GET", "/", nil)
		b.Header.Set("X-Api-Key", "client-d")
		resp, err = app.Test(b)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}
