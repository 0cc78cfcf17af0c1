package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp runs the test from an empty directory so no stray config.yaml
// or .env is picked up.
func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/autoservice?sslmode=disable")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.True(t, cfg.Database.MigrateOnStart)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 60, cfg.Scheduling.DefaultDuration)
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("DATABASE_URL", "postgres://db/autoservice")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://shop.example.com, https://admin.example.com")
	t.Setenv("SCHEDULING_DEFAULT_DURATION", "45")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, []string{"https://shop.example.com", "https://admin.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 45, cfg.Scheduling.DefaultDuration)
}

func TestLoad_RequiresDatabaseURLAndSecret(t *testing.T) {
	chdirTemp(t)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "s3cret")

	_, err := Load()
	assert.ErrorContains(t, err, "DATABASE_URL")

	t.Setenv("DATABASE_URL", "postgres://db/autoservice")
	t.Setenv("JWT_SECRET", "")
	_, err = Load()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")
	os.Unsetenv("DATABASE_URL")
	os.Unsetenv("JWT_SECRET")
	require.NoError(t, os.WriteFile(".env", []byte("DATABASE_URL=postgres://dotenv/db\nJWT_SECRET=fromfile\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("DATABASE_URL")
		os.Unsetenv("JWT_SECRET")
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://dotenv/db", cfg.Database.URL)
	assert.Equal(t, "fromfile", cfg.Auth.JWTSecret)
}
