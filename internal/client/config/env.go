package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables recognized by the client.
const (
	envServerEndpointURL = "VAITI_SERVER_URL"
	envStateDBPath       = "VAITI_STATE_DB"
	envRequestTimeout    = "VAITI_REQUEST_TIMEOUT"
)

// parseEnv overlays Config with values from the process environment.
// A .env file in the working directory is loaded first when present;
// a missing file is not an error.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv(envServerEndpointURL); v != "" {
		cfg.ServerEndpointURL = v
	}
	if v := os.Getenv(envStateDBPath); v != "" {
		cfg.StateDBPath = v
	}
	if v := os.Getenv(envRequestTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
}
