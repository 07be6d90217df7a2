package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"blogicum/internal/cache"
	"blogicum/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuth(t *testing.T) {
	t.Helper()
	InitMiddleware(&config.Config{SessionSecret: "test-secret-test-secret-test-secret"})
}

func sessionCookie(token string) *http.Cookie {
	return &http.Cookie{Name: SessionCookieName, Value: token}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestSessionRoundTrip(t *testing.T) {
	setupAuth(t)

	token, err := IssueSession(42)
	require.NoError(t, err)

	userID, jti, expires, err := ParseSession(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
	assert.NotEmpty(t, jti)
	assert.True(t, expires.After(time.Now()))
}

func TestParseSession_Garbage(t *testing.T) {
	setupAuth(t)

	_, _, _, err := ParseSession("not-a-token")
	assert.Error(t, err)
}

func TestParseSession_WrongSecret(t *testing.T) {
	setupAuth(t)
	token, err := IssueSession(42)
	require.NoError(t, err)

	InitMiddleware(&config.Config{SessionSecret: "a-completely-different-secret-string"})
	_, _, _, err = ParseSession(token)
	assert.Error(t, err)
}

func TestSessionAuthMiddleware(t *testing.T) {
	setupAuth(t)

	app := fiber.New()
	app.Use(SessionAuth())
	app.Get("/whoami", func(c *fiber.Ctx) error {
		if _, ok := c.Locals("userID").(uint); ok {
			return c.SendString("user")
		}
		return c.SendString("anonymous")
	})

	t.Run("no cookie is anonymous", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/whoami", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, "anonymous", readBody(t, resp))
	})

	t.Run("valid cookie sets user", func(t *testing.T) {
		token, err := IssueSession(42)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/whoami", nil)
		req.AddCookie(sessionCookie(token))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, "user", readBody(t, resp))
	})

	t.Run("tampered cookie is anonymous", func(t *testing.T) {
		token, err := IssueSession(42)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/whoami", nil)
		req.AddCookie(sessionCookie(token + "x"))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, "anonymous", readBody(t, resp))
	})

	t.Run("revoked cookie is anonymous", func(t *testing.T) {
		mr, err := miniredis.Run()
		require.NoError(t, err)
		t.Cleanup(mr.Close)
		prev := cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
		t.Cleanup(func() { cache.SetClient(prev) })

		token, err := IssueSession(42)
		require.NoError(t, err)
		_, jti, expires, err := ParseSession(token)
		require.NoError(t, err)
		require.NoError(t, cache.RevokeToken(t.Context(), jti, time.Until(expires)))

		req := httptest.NewRequest("GET", "/whoami", nil)
		req.AddCookie(sessionCookie(token))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, "anonymous", readBody(t, resp))
	})
}

func TestRevokeCurrentSession(t *testing.T) {
	setupAuth(t)

	newApp := func() *fiber.App {
		app := fiber.New()
		app.Post("/logout", func(c *fiber.Ctx) error {
			RevokeCurrentSession(c)
			return c.SendString("bye")
		})
		return app
	}

	t.Run("revokes the token", func(t *testing.T) {
		mr, err := miniredis.Run()
		require.NoError(t, err)
		t.Cleanup(mr.Close)
		prev := cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
		t.Cleanup(func() { cache.SetClient(prev) })

		token, err := IssueSession(42)
		require.NoError(t, err)
		_, jti, _, err := ParseSession(token)
		require.NoError(t, err)

		req := httptest.NewRequest("POST", "/logout", nil)
		req.AddCookie(sessionCookie(token))
		resp, err := newApp().Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.True(t, cache.IsTokenRevoked(t.Context(), jti))
	})

	t.Run("redis failure is logged, not swallowed", func(t *testing.T) {
		mr, err := miniredis.Run()
		require.NoError(t, err)
		prev := cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
		t.Cleanup(func() { cache.SetClient(prev) })
		mr.Close()

		var buf bytes.Buffer
		prevLogger := Logger
		Logger = slog.New(slog.NewTextHandler(&buf, nil))
		t.Cleanup(func() { Logger = prevLogger })

		token, err := IssueSession(42)
		require.NoError(t, err)

		req := httptest.NewRequest("POST", "/logout", nil)
		req.AddCookie(sessionCookie(token))
		resp, err := newApp().Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Contains(t, buf.String(), "session revocation failed")
	})
}

func TestRequireLogin(t *testing.T) {
	setupAuth(t)

	app := fiber.New()
	app.Use(SessionAuth())
	app.Get("/protected", RequireLogin(), func(c *fiber.Ctx) error {
		return c.SendString("secret")
	})

	t.Run("anonymous redirects to login", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusFound, resp.StatusCode)
		assert.Equal(t, "/auth/login/", resp.Header.Get("Location"))
	})

	t.Run("authenticated passes", func(t *testing.T) {
		token, err := IssueSession(42)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.AddCookie(sessionCookie(token))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}
