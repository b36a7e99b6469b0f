package config

import "time"

// Config holds runtime settings for the vaiti CLI.
//
// Fields:
//   - ServerEndpointURL: base URL of the backend REST API. Exactly one
//     endpoint per running instance, resolved once at startup.
//   - StateDBPath: path of the local sqlite database holding persisted
//     client state (access token).
//   - RequestTimeout: per-request timeout of the HTTP client.
//   - LinkPollInterval: how often the hh.ru link flow re-checks link status.
type Config struct {
	ServerEndpointURL string
	StateDBPath       string
	RequestTimeout    time.Duration
	LinkPollInterval  time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointURL = "http://127.0.0.1:8080"
	c.StateDBPath = "vaiti.db"
	c.RequestTimeout = 15 * time.Second
	c.LinkPollInterval = 3 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment (including a .env file if present), a JSON file
// (if provided) and command-line flags. Later sources take precedence over
// earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
