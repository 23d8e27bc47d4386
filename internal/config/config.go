// Package config defines process configuration and its loading hooks.
//
// Conventions:
// - Defaults live in New; Load layers a YAML file and PSYCH_* env on top.
// - External errors are wrapped with this package's sentinel kinds.
package config

import "time"

// Store backends.
const (
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// DefaultProviderBaseURL is the public mirror of the WCA results export.
const DefaultProviderBaseURL = "https://raw.githubusercontent.com/robiningelbrecht/wca-rest-api/master/api/persons"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat selects text or json log records.
	LogFormat string `koanf:"log_format"`

	// ProviderBaseURL is the prefix for <base>/<id>.json lookups.
	ProviderBaseURL string `koanf:"provider_base_url"`
	// HTTPTimeoutMS bounds a single lookup attempt.
	HTTPTimeoutMS int `koanf:"http_timeout_ms"`
	// UserAgent is sent with every provider request.
	UserAgent string `koanf:"user_agent"`

	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int `koanf:"max_retries"`
	// RetryBaseDelayMS is multiplied by the attempt number between retries.
	RetryBaseDelayMS int `koanf:"retry_base_delay_ms"`

	// StoreBackend is one of file, redis, memory.
	StoreBackend string `koanf:"store_backend"`
	// StorePath is the JSON file used by the file backend.
	StorePath string `koanf:"store_path"`
	// StoreKey is the key (redis) holding the tracked identifiers.
	StoreKey string `koanf:"store_key"`

	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db"`

	// MetricsFile, when set, receives a Prometheus textfile after each command.
	MetricsFile string `koanf:"metrics_file"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "warn",
		LogFormat:        "text",
		ProviderBaseURL:  DefaultProviderBaseURL,
		HTTPTimeoutMS:    10_000,
		UserAgent:        "psych-sheet/1.0",
		MaxRetries:       2,
		RetryBaseDelayMS: 1_000,
		StoreBackend:     StoreFile,
		StorePath:        "wca_persons.json",
		StoreKey:         "wcaPersons",
		RedisAddr:        "localhost:6379",
	}
}

// HTTPTimeout returns the per-attempt timeout as a duration.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutMS) * time.Millisecond
}

// RetryBaseDelay returns the retry base delay as a duration.
func (c *Config) RetryBaseDelay() time.Duration {
	return time.Duration(c.RetryBaseDelayMS) * time.Millisecond
}
