package config_test

import (
	"testing"
	"time"

	"github.com/craigderington/m3data-api/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("TOKEN_EXPIRY_HOURS", "")
	t.Setenv("RABBITMQ_URL", "")
	t.Setenv("ALERT_RECIPIENTS", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "5880", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 24*time.Hour, cfg.TokenExpiry)
	assert.Empty(t, cfg.RabbitMQURL)
	assert.Empty(t, cfg.AlertRecipients)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("ENV", "production")
	t.Setenv("TOKEN_EXPIRY_HOURS", "72")
	t.Setenv("ALERT_RECIPIENTS", "ops@example.com, alerts@example.com")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 72*time.Hour, cfg.TokenExpiry)
	assert.Equal(t, []string{"ops@example.com", "alerts@example.com"}, cfg.AlertRecipients)
	assert.True(t, cfg.IsProduction())
}
