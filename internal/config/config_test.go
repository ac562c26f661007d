package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadGatewayConfig(t *testing.T) {
	t.Run("defaults with token set", func(t *testing.T) {
		t.Setenv("MAPBOX_ACCESS_TOKEN", "pk.test")

		config, err := LoadGatewayConfig()
		require.NoError(t, err)

		assert.Equal(t, "pk.test", config.MapboxAccessToken)
		assert.Equal(t, 3002, config.Port)
		assert.Equal(t, "https://api.mapbox.com", config.MapboxBaseURL)
		assert.Equal(t, 10.0, config.MapboxRPS)
		assert.Equal(t, "*", config.CORSOrigin)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		t.Setenv("MAPBOX_ACCESS_TOKEN", "pk.test")
		t.Setenv("GATEWAY_PORT", "8080")
		t.Setenv("MAPBOX_BASE_URL", "http://localhost:9000")
		t.Setenv("CORS_ORIGIN", "https://example.com")

		config, err := LoadGatewayConfig()
		require.NoError(t, err)

		assert.Equal(t, 8080, config.Port)
		assert.Equal(t, "http://localhost:9000", config.MapboxBaseURL)
		assert.Equal(t, "https://example.com", config.CORSOrigin)
	})

	t.Run("missing token", func(t *testing.T) {
		t.Setenv("MAPBOX_ACCESS_TOKEN", "")

		_, err := LoadGatewayConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing required environment variables: MAPBOX_ACCESS_TOKEN")
	})
}

func TestLoadBridgeConfig(t *testing.T) {
	t.Run("defaults with key set", func(t *testing.T) {
		t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")

		config, err := LoadBridgeConfig()
		require.NoError(t, err)

		assert.Equal(t, "sk-ant-test", config.AnthropicAPIKey)
		assert.Equal(t, 3001, config.Port)
		assert.Equal(t, "claude-sonnet-4-20250514", config.AnthropicModel)
		assert.Equal(t, 4096, config.AnthropicMaxTokens)
		assert.Equal(t, "http://localhost:3002", config.GatewayURL)
		assert.Equal(t, 10, config.MaxToolRounds)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")
		t.Setenv("BRIDGE_PORT", "4001")
		t.Setenv("GATEWAY_URL", "http://gateway:3002")
		t.Setenv("MAX_TOOL_ROUNDS", "3")

		config, err := LoadBridgeConfig()
		require.NoError(t, err)

		assert.Equal(t, 4001, config.Port)
		assert.Equal(t, "http://gateway:3002", config.GatewayURL)
		assert.Equal(t, 3, config.MaxToolRounds)
	})

	t.Run("missing key", func(t *testing.T) {
		t.Setenv("ANTHROPIC_API_KEY", "")

		_, err := LoadBridgeConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing required environment variables: ANTHROPIC_API_KEY")
	})
}
