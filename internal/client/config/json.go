package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/rodion-stepanov/vaiti-web/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations are
// specified as strings understood by time.ParseDuration ("15s", "2m").
type JsonConfig struct {
	ServerEndpointURL string `json:"server_endpoint_url"`
	StateDBPath       string `json:"state_db_path"`
	RequestTimeout    string `json:"request_timeout"`
	LinkPollInterval  string `json:"link_poll_interval"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// the -c/-config flag. When no file is named the function is a no-op; read
// or parse errors panic (the config is unusable at that point).
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointURL != "" {
		cfg.ServerEndpointURL = jc.ServerEndpointURL
	}
	if jc.StateDBPath != "" {
		cfg.StateDBPath = jc.StateDBPath
	}
	if jc.RequestTimeout != "" {
		d, err := time.ParseDuration(jc.RequestTimeout)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
	if jc.LinkPollInterval != "" {
		d, err := time.ParseDuration(jc.LinkPollInterval)
		if err != nil {
			panic(err)
		}
		cfg.LinkPollInterval = d
	}
}
