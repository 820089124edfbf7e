package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "http://localhost:3000", cfg.Server.CORSOrigin)
	assert.Equal(t, "database/pricing.db", cfg.Pricing.DatabasePath)
	assert.Equal(t, "Greece", cfg.Pricing.Region)
	assert.Empty(t, cfg.Pricing.LocationFactorsPath)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("PRICING_REGION", "Cyprus")
	t.Setenv("PRICING_DB_PATH", "/tmp/prices.db")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "Cyprus", cfg.Pricing.Region)
	assert.Equal(t, "/tmp/prices.db", cfg.Pricing.DatabasePath)
}
