// Package config holds the service configuration and its loader.
package config

// Config contains process configuration.
type Config struct {
	// Addr is the HTTP listen address, e.g. ":5000".
	Addr string `koanf:"addr"`

	// DatabaseDSN is a SQLite file path or a Postgres DSN/URL.
	DatabaseDSN string `koanf:"database_dsn"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// GinMode is one of debug, release, test.
	GinMode string `koanf:"gin_mode"`

	// SQLLog turns on gorm statement logging.
	SQLLog bool `koanf:"sql_log"`

	AllowedOrigins []string `koanf:"allowed_origins"`

	ShutdownTimeoutSec int `koanf:"shutdown_timeout_sec"`
}

// New returns a Config filled with defaults.
func New() *Config {
	return &Config{
		Addr:               ":5000",
		DatabaseDSN:        "cafes.db",
		LogLevel:           "info",
		GinMode:            "release",
		SQLLog:             false,
		AllowedOrigins:     []string{"http://localhost:3000"},
		ShutdownTimeoutSec: 10,
	}
}
