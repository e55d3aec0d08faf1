package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.Debug)
	assert.Empty(t, cfg.APIKeyList())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9191")
	t.Setenv("DEBUG", "true")
	t.Setenv("ALLOWED_ORIGIN", "https://play.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9191", cfg.Port)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "https://play.example.com", cfg.AllowedOrigin)
}

func TestAPIKeyList(t *testing.T) {
	cfg := &Config{APIKeys: " alpha , beta,,gamma "}
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, cfg.APIKeyList())

	assert.Nil(t, (&Config{}).APIKeyList())
}
