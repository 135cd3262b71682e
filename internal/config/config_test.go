package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"TELEGRAM_TOKEN", "DB_DSN", "ENV", "HTTP_ADDR", "REDIS_ADDR", "REDIS_PASSWORD",
	"ROSTER_PATH", "MIGRATIONS_PATH", "OPENING_HOUR", "CLOSING_HOUR",
	"THINK_DELAY_MS", "ALLOWED_CHAT_IDS", "SESSION_TTL_MIN",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DSN", "postgres://localhost/academy")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "./migrations", cfg.MigrationsPath)
	assert.Equal(t, 8, cfg.OpeningHour)
	assert.Equal(t, 22, cfg.ClosingHour)
	assert.Zero(t, cfg.ThinkDelay)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Empty(t, cfg.AllowedChatIDs)
	assert.False(t, cfg.UsesSQLite())
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DSN", "sqlite://data/academy.db")
	t.Setenv("ENV", "production")
	t.Setenv("OPENING_HOUR", "9")
	t.Setenv("CLOSING_HOUR", "20")
	t.Setenv("THINK_DELAY_MS", "1500")
	t.Setenv("ALLOWED_CHAT_IDS", "12, -100200 ,")
	t.Setenv("SESSION_TTL_MIN", "15")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, 9, cfg.OpeningHour)
	assert.Equal(t, 20, cfg.ClosingHour)
	assert.Equal(t, 1500*time.Millisecond, cfg.ThinkDelay)
	assert.Equal(t, []int64{12, -100200}, cfg.AllowedChatIDs)
	assert.Equal(t, 15*time.Minute, cfg.SessionTTL)
	assert.True(t, cfg.UsesSQLite())
	assert.Equal(t, "data/academy.db", cfg.SQLitePath())
}

func TestFromEnv_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing dsn", map[string]string{}},
		{"bad hour", map[string]string{"DB_DSN": "x", "OPENING_HOUR": "otto"}},
		{"inverted window", map[string]string{"DB_DSN": "x", "OPENING_HOUR": "22", "CLOSING_HOUR": "8"}},
		{"negative delay", map[string]string{"DB_DSN": "x", "THINK_DELAY_MS": "-1"}},
		{"zero ttl", map[string]string{"DB_DSN": "x", "SESSION_TTL_MIN": "0"}},
		{"bad chat id", map[string]string{"DB_DSN": "x", "ALLOWED_CHAT_IDS": "1,abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}
