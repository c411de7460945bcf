package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sahilchouksey/institucion-api/utils/auth"
	"github.com/sahilchouksey/institucion-api/utils/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func guardedApp(m *auth.JWTManager) *fiber.App {
	app := fiber.New()
	app.Post("/", AdminGuard(m), func(c *fiber.Ctx) error {
		return c.SendString(Actor(c))
	})
	return app
}

func TestAdminGuard(t *testing.T) {
	m := auth.NewJWTManager(auth.JWTConfig{Secret: "s", Expiry: time.Hour, Issuer: "test"})
	admin, _, err := m.GenerateAccessToken("admin@test", auth.RoleAdmin)
	require.NoError(t, err)
	viewer, _, err := m.GenerateAccessToken("viewer@test", "viewer")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing token", "", fiber.StatusUnauthorized},
		{"bad format", "Token " + admin, fiber.StatusUnauthorized},
		{"garbage", "Bearer nope", fiber.StatusUnauthorized},
		{"wrong role", "Bearer " + viewer, fiber.StatusForbidden},
		{"admin", "Bearer " + admin, fiber.StatusOK},
	}

	app := guardedApp(m)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/", nil)
			if tt.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestAdminGuard_DisabledWithoutManager(t *testing.T) {
	resp, err := guardedApp(nil).Test(httptest.NewRequest("POST", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestWriteThrottle_FailsOpen(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	throttle := NewWriteThrottle(cache.NewRedisCacheFromClient(client), 1, time.Minute, nil)
	app := fiber.New()
	app.Post("/", throttle.Handler(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusCreated)
	})

	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest("POST", "/", nil), 5000)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}
}

func TestWriteThrottle_NilIsNoop(t *testing.T) {
	var throttle *WriteThrottle
	app := fiber.New()
	app.Post("/", throttle.Handler(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusCreated)
	})

	resp, err := app.Test(httptest.NewRequest("POST", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestSetupSecurity_SetsRequestID(t *testing.T) {
	app := fiber.New()
	SetupSecurity(app, SecurityConfig{AllowedOrigins: "http://localhost:3000"})
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
}
