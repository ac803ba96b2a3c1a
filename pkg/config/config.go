package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config is the process configuration, loaded from environment variables.
type Config struct {
	// HTTPPort is the API listen port (PORT).
	HTTPPort int

	// Feeder device credentials. When DeviceID or Addr is empty the
	// server runs without a feeder and reports degraded health.
	FeederDeviceID string // FEEDER_DEVICE_ID
	FeederLocalKey string // FEEDER_LOCAL_KEY, 16 bytes
	FeederAddr     string // FEEDER_IP
	FeederPort     int    // FEEDER_PORT
	FeederVersion  string // FEEDER_VERSION

	// Lamp bridge. Empty BridgeAddr disables the lamp routes' backend.
	BridgeAddr     string // BRIDGE_ADDR
	BridgeUsername string // BRIDGE_USERNAME

	// DBPath overrides the default sqlite location (FEEDBOX_DB).
	DBPath string

	// JWTSecret signs bearer tokens (FEEDBOX_JWT_SECRET).
	JWTSecret string

	// AdminPassword seeds the admin account on first run
	// (FEEDBOX_ADMIN_PASSWORD).
	AdminPassword string

	// LogLevel is a zerolog level name (LOG_LEVEL).
	LogLevel string
}

// Defaults.
const (
	DefaultHTTPPort      = 3000
	DefaultFeederPort    = 6668
	DefaultFeederVersion = "3.3"
)

// Load reads configuration from the environment, applying defaults for
// anything unset.
func Load() (*Config, error) {
	cfg := &Config{
		FeederDeviceID: os.Getenv("FEEDER_DEVICE_ID"),
		FeederLocalKey: os.Getenv("FEEDER_LOCAL_KEY"),
		FeederAddr:     os.Getenv("FEEDER_IP"),
		FeederVersion:  envOr("FEEDER_VERSION", DefaultFeederVersion),
		BridgeAddr:     os.Getenv("BRIDGE_ADDR"),
		BridgeUsername: os.Getenv("BRIDGE_USERNAME"),
		DBPath:         os.Getenv("FEEDBOX_DB"),
		JWTSecret:      os.Getenv("FEEDBOX_JWT_SECRET"),
		AdminPassword:  os.Getenv("FEEDBOX_ADMIN_PASSWORD"),
		LogLevel:       envOr("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.HTTPPort, err = envInt("PORT", DefaultHTTPPort); err != nil {
		return nil, err
	}
	if cfg.FeederPort, err = envInt("FEEDER_PORT", DefaultFeederPort); err != nil {
		return nil, err
	}

	return cfg, nil
}

// HTTPAddress returns the listen address for the API server.
func (c *Config) HTTPAddress() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// FeederConfigured reports whether enough device credentials are present
// to construct a feeder client.
func (c *Config) FeederConfigured() bool {
	return c.FeederDeviceID != "" && c.FeederAddr != "" && c.FeederLocalKey != ""
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}
