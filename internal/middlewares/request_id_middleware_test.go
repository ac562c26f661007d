package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())

	var seen string
	app.Get("/", func(c fiber.Ctx) error {
		seen = GetRequestID(c)
		return c.SendStatus(fiber.StatusOK)
	})

	t.Run("generates an id", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, resp.Header.Get(RequestIDHeader))
	})

	t.Run("keeps the caller's id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "caller-id")

		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, "caller-id", seen)
		assert.Equal(t, "caller-id", resp.Header.Get(RequestIDHeader))
	})
}
