package config

import (
	"os"

	"arrows-engine/pkg/constants"
)

// Config holds process-wide settings for the HTTP server.
type Config struct {
	Port string
}

// Load reads configuration from environment variables, falling back to
// defaults for anything unset.
func Load() (*Config, error) {
	return &Config{
		Port: getEnv("PORT", constants.DefaultPort),
	}, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
