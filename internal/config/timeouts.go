package config

import (
	"os"
	"time"
)

// Timeouts holds all configurable timeout values.
// These values can be customized via environment variables.
type Timeouts struct {
	HTTP              time.Duration // Timeout for each request to the panel
	AddressLookup     time.Duration // Timeout for each address echo endpoint
	AddressRetryDelay time.Duration // Pause between failed address echo endpoints
	Command           time.Duration // Timeout for each artisan invocation
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - PTERONODE_TIMEOUT_HTTP (default: 30s)
//   - PTERONODE_TIMEOUT_ADDRESS (default: 8s)
//   - PTERONODE_ADDRESS_RETRY_DELAY (default: 1s)
//   - PTERONODE_TIMEOUT_COMMAND (default: 5m)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		HTTP:              parseDuration("PTERONODE_TIMEOUT_HTTP", 30*time.Second),
		AddressLookup:     parseDuration("PTERONODE_TIMEOUT_ADDRESS", 8*time.Second),
		AddressRetryDelay: parseDuration("PTERONODE_ADDRESS_RETRY_DELAY", 1*time.Second),
		Command:           parseDuration("PTERONODE_TIMEOUT_COMMAND", 5*time.Minute),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return d
}
