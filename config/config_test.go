package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_DRIVER", "DB_HOST", "DB_PORT", "DB_SSL_MODE", "TIME_ZONE",
		"DEFAULT_PAGE_SIZE", "WRITE_RATE_LIMIT", "WRITE_RATE_WINDOW", "JWT_SECRET", "REDIS_URL", "JWT_ISSUER"} {
		t.Setenv(key, "")
	}
	t.Setenv("TIME_ZONE", "UTC")

	env, err := Get()
	require.NoError(t, err)

	assert.Equal(t, 8080, env.PORT)
	assert.Equal(t, "postgres", env.DB_DRIVER)
	assert.Equal(t, "localhost", env.DB_HOST)
	assert.Equal(t, "5432", env.DB_PORT)
	assert.Equal(t, "disable", env.DB_SSL_MODE)
	assert.Equal(t, 10, env.DEFAULT_PAGE_SIZE)
	assert.Equal(t, 60, env.WRITE_RATE_LIMIT)
	assert.Equal(t, time.Minute, env.WRITE_RATE_WINDOW)
	assert.Equal(t, "institucion-api", env.JWT_ISSUER)
	assert.Empty(t, env.JWT_SECRET)
	assert.Equal(t, "UTC", env.TIME_ZONE.String())
}

func TestGet_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/test.db")
	t.Setenv("WRITE_RATE_WINDOW", "30s")
	t.Setenv("TIME_ZONE", "UTC")

	env, err := Get()
	require.NoError(t, err)

	assert.Equal(t, 9090, env.PORT)
	assert.Equal(t, "sqlite", env.DB_DRIVER)
	assert.Equal(t, "/tmp/test.db", env.SQLITE_PATH)
	assert.Equal(t, 30*time.Second, env.WRITE_RATE_WINDOW)
}

func TestGet_InvalidValues(t *testing.T) {
	t.Run("time zone", func(t *testing.T) {
		t.Setenv("TIME_ZONE", "Mars/Olympus")
		_, err := Get()
		assert.Error(t, err)
	})

	t.Run("rate window", func(t *testing.T) {
		t.Setenv("TIME_ZONE", "UTC")
		t.Setenv("WRITE_RATE_WINDOW", "soon")
		_, err := Get()
		assert.Error(t, err)
	})
}
