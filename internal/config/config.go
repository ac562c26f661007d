// Package config loads service configuration from the environment and an
// optional mapassist.yaml file. Each service has its own Load function so
// the gateway never needs an Anthropic key and the bridge never needs a
// Mapbox token.
package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// GatewayConfig holds everything the gateway service needs to run.
type GatewayConfig struct {
	Port              int
	MapboxAccessToken string
	MapboxBaseURL     string
	MapboxRPS         float64
	CORSOrigin        string
}

// BridgeConfig holds everything the bridge service needs to run.
type BridgeConfig struct {
	Port               int
	AnthropicAPIKey    string
	AnthropicModel     string
	AnthropicMaxTokens int
	GatewayURL         string
	MaxToolRounds      int
	CORSOrigin         string
}

// LoadGatewayConfig loads the gateway configuration from the environment
// and the optional config file.
func LoadGatewayConfig() (*GatewayConfig, error) {
	v := newViper(map[string]string{
		"Port":              "GATEWAY_PORT",
		"MapboxAccessToken": "MAPBOX_ACCESS_TOKEN",
		"MapboxBaseURL":     "MAPBOX_BASE_URL",
		"MapboxRPS":         "MAPBOX_RPS",
		"CORSOrigin":        "CORS_ORIGIN",
	})

	v.SetDefault("Port", 3002)
	v.SetDefault("MapboxBaseURL", "https://api.mapbox.com")
	v.SetDefault("MapboxRPS", 10.0)
	v.SetDefault("CORSOrigin", "*")

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	var config GatewayConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	var missingVars []string
	if config.MapboxAccessToken == "" {
		missingVars = append(missingVars, "MAPBOX_ACCESS_TOKEN")
	}
	if len(missingVars) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missingVars, ", "))
	}

	return &config, nil
}

// LoadBridgeConfig loads the bridge configuration from the environment
// and the optional config file.
func LoadBridgeConfig() (*BridgeConfig, error) {
	v := newViper(map[string]string{
		"Port":               "BRIDGE_PORT",
		"AnthropicAPIKey":    "ANTHROPIC_API_KEY",
		"AnthropicModel":     "ANTHROPIC_MODEL",
		"AnthropicMaxTokens": "ANTHROPIC_MAX_TOKENS",
		"GatewayURL":         "GATEWAY_URL",
		"MaxToolRounds":      "MAX_TOOL_ROUNDS",
		"CORSOrigin":         "CORS_ORIGIN",
	})

	v.SetDefault("Port", 3001)
	v.SetDefault("AnthropicModel", "claude-sonnet-4-20250514")
	v.SetDefault("AnthropicMaxTokens", 4096)
	v.SetDefault("GatewayURL", "http://localhost:3002")
	v.SetDefault("MaxToolRounds", 10)
	v.SetDefault("CORSOrigin", "*")

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	var config BridgeConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	var missingVars []string
	if config.AnthropicAPIKey == "" {
		missingVars = append(missingVars, "ANTHROPIC_API_KEY")
	}
	if len(missingVars) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missingVars, ", "))
	}

	return &config, nil
}

// newViper builds a viper instance with the environment bound before any
// config file is read, so environment variables win over file values.
func newViper(envMappings map[string]string) *viper.Viper {
	v := viper.New()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for configKey, envVar := range envMappings {
		if err := v.BindEnv(configKey, envVar); err != nil {
			log.Warn().Err(err).Msgf("Failed to bind environment variable %s for %s", envVar, configKey)
		}
	}

	return v
}

// readConfigFile reads the optional mapassist.yaml. A missing file is
// fine; a malformed one is not.
func readConfigFile(v *viper.Viper) error {
	v.SetConfigName("mapassist")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.mapassist")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		log.Debug().Msg("Config file not found, using environment variables and defaults")
	} else {
		log.Info().Msgf("Using config file: %s", v.ConfigFileUsed())
	}

	return nil
}
