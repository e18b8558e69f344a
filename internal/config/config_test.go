package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_EXPIRY", "")
	t.Setenv("SESSION_COOKIE_MAX_AGE", "")
	t.Setenv("COOKIE_SECURE", "")
	t.Setenv("LOG_LEVEL", "")

	cfg := Load()

	assert.Equal(t, time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 24*time.Hour, cfg.CookieMaxAge)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, "token", cfg.SessionCookie)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 30, cfg.LogRetentionDays)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_EXPIRY", "30m")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_RETENTION_DAYS", "7")
	t.Setenv("PORT", "9090")

	cfg := Load()

	assert.Equal(t, 30*time.Minute, cfg.JWTExpiry)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 7, cfg.LogRetentionDays)
	assert.Equal(t, "9090", cfg.Port)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("JWT_EXPIRY", "soon")
	t.Setenv("LOG_RETENTION_DAYS", "-3")

	cfg := Load()

	assert.Equal(t, time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 30, cfg.LogRetentionDays)
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBHost: "db", DBUser: "u", DBPassword: "p", DBName: "n", DBPort: "5432", DBSSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5432 sslmode=disable TimeZone=UTC", cfg.DSN())
}
