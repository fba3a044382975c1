package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration for the server.
type Config struct {
	Port   string
	Server ServerConfig
	ESPN   ESPNConfig
	NCAA   NCAAConfig
	Poller PollerConfig

	Metrics MetricsConfig
	Logging LoggingConfig

	CORSAllowedOrigins []string
	AdminToken         string
}

// ServerConfig controls the connector and the settings every provider shares.
type ServerConfig struct {
	// Sources is the provider priority order, highest first.
	Sources             []string
	Timezone            string
	ProviderTimeout     Duration
	HTTPTimeout         Duration
	ProviderMaxAttempts int
	UserAgent           string
}

// PollerConfig controls the scoreboard warm-up loop.
type PollerConfig struct {
	Enabled  bool
	Interval Duration
	Timeout  Duration
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with sensible defaults.
// Variables from an optional .env file (ENV_FILE) fill in anything the
// environment does not already set. A malformed .env file is reported as an
// error alongside the configuration built from the environment alone.
func Load() (Config, error) {
	path := envOrDefault(envDotEnvFile, defaultDotEnvFile)
	var err error
	if loadErr := loadDotEnv(path); loadErr != nil {
		err = fmt.Errorf("load env file %s: %w", path, loadErr)
	}

	return Config{
		Port: envOrDefault(envPort, defaultPort),
		Server: ServerConfig{
			Sources:             listEnvOrDefault(envSources, defaultSources),
			Timezone:            envOrDefault(envTimezone, defaultTimezone),
			ProviderTimeout:     durationEnvOrDefault(envProviderTimeout, defaultProviderTimeout),
			HTTPTimeout:         durationEnvOrDefault(envHTTPTimeout, defaultHTTPTimeout),
			ProviderMaxAttempts: intEnvOrDefault(envProviderAttempts, defaultProviderAttempts),
			UserAgent:           envOrDefault(envUserAgent, defaultUserAgent),
		},
		ESPN: loadESPN(),
		NCAA: loadNCAA(),
		Poller: PollerConfig{
			Enabled:  boolEnvOrDefault(envPollerEnabled, true),
			Interval: durationEnvOrDefault(envPollInterval, defaultPollInterval),
			Timeout:  durationEnvOrDefault(envPollTimeout, defaultPollTimeout),
		},
		Metrics: loadMetrics(),
		Logging: LoggingConfig{
			Level:  envOrDefault(envLogLevel, defaultLogLevel),
			Format: envOrDefault(envLogFormat, defaultLogFormat),
		},
		CORSAllowedOrigins: listEnvOrDefault(envCORSOrigins, nil),
		AdminToken:         os.Getenv(envAdminToken),
	}, err
}

// loadDotEnv loads path into the process environment without overriding
// variables that are already set. A missing file is not an error.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
