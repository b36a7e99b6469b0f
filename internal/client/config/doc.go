// Package config loads runtime configuration for the vaiti CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, including a .env file in the working directory
//     (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend REST API
//	-s string   path of the local state database
//	-t int      request timeout (seconds)
//
// # JSON schema
//
// Durations are strings understood by time.ParseDuration:
//
//	{
//	  "server_endpoint_url": "https://api.vaiti.example",
//	  "state_db_path": "vaiti.db",
//	  "request_timeout": "15s",
//	  "link_poll_interval": "3s"
//	}
package config
