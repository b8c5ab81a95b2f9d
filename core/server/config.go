package server

import "strings"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// MasterApiKeys is a comma-separated list of master API keys.
	// Master keys authorize the /admin endpoints and are never persisted.
	MasterApiKeys string `mapstructure:"master_api_keys" default:""`
	// RateLimitPerSecond caps requests per client API key. Zero disables limiting.
	RateLimitPerSecond float64 `mapstructure:"rate_limit_per_second" default:"0"`
	// RateLimitBurst is the burst size allowed on top of the steady rate.
	RateLimitBurst int `mapstructure:"rate_limit_burst" default:"10"`
}

// MasterKeys returns the configured master API keys as a slice,
// with empty entries dropped.
func (c Config) MasterKeys() []string {
	var keys []string
	for _, k := range strings.Split(c.MasterApiKeys, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
