package config

import (
	"fmt"
	"os"
)

type AuthConfig struct {
	Enabled bool
	APIKey  string
}

func GetAuthConfig() (*AuthConfig, error) {
	enabled := getEnvBool("API_AUTH_ENABLED")
	apiKey := os.Getenv("API_KEY")

	if enabled && apiKey == "" {
		return nil, fmt.Errorf("API_KEY must be set when API_AUTH_ENABLED is true")
	}

	return &AuthConfig{
		Enabled: enabled,
		APIKey:  apiKey,
	}, nil
}
