package middleware

import (
	"encoding/json"
	"io"
	"log"
	"net/http/httptest"
	"testing"
	"time"

	"ideahub/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(verifier jwt.Verifier) *fiber.App {
	app := fiber.New()
	app.Use(NewErrorMiddleware(log.New(io.Discard, "", 0)).Middleware())
	auth := NewAuthMiddleware(verifier)

	whoami := func(c fiber.Ctx) error {
		return c.SendString(UserID(c).String())
	}
	app.Get("/private", auth.Middleware(), whoami)
	app.Get("/public", auth.Optional(), whoami)
	app.Get("/boom", func(c fiber.Ctx) error { panic("boom") })
	app.Get("/conflict", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusConflict, "", nil, nil)
	})
	app.Get("/internal", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusInternalServerError, "db password leaked", nil, nil)
	})
	return app
}

func decode(t *testing.T, body io.Reader) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func TestAuthMiddleware(t *testing.T) {
	svc := jwt.NewHMACService("secret", time.Minute)
	app := newApp(svc)
	id := uuid.New()
	tok, err := svc.GenerateAccessToken(id, "a@example.com")
	require.NoError(t, err)

	t.Run("missing token", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/private", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Unauthorized", decode(t, resp.Body)["message"])
	})

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/private", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		b, _ := io.ReadAll(resp.Body)
		assert.Equal(t, id.String(), string(b))
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/private", nil)
		req.Header.Set("Authorization", "Bearer nope")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("optional anonymous", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/public", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		b, _ := io.ReadAll(resp.Body)
		assert.Equal(t, uuid.Nil.String(), string(b))
	})

	t.Run("optional with token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/public", nil)
		req.Header.Set("Authorization", "bearer "+tok)
		resp, err := app.Test(req)
		require.NoError(t, err)
		b, _ := io.ReadAll(resp.Body)
		assert.Equal(t, id.String(), string(b))
	})
}

func TestErrorMiddleware(t *testing.T) {
	app := newApp(jwt.NewHMACService("secret", time.Minute))

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/conflict", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "conflict", decode(t, resp.Body)["message"])

	resp, err = app.Test(httptest.NewRequest("GET", "/internal", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "internal server error", decode(t, resp.Body)["message"])
}

func TestBearerTokenFromHeader(t *testing.T) {
	tok, ok := bearerTokenFromHeader("  Bearer   abc ")
	assert.True(t, ok)
	assert.Equal(t, "abc", tok)

	for _, h := range []string{"", "Bearer", "Basic abc", "Bearer   "} {
		_, ok := bearerTokenFromHeader(h)
		assert.False(t, ok, h)
	}
}
