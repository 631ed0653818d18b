package config

import (
	"fmt"
	"os"
	"strconv"
)

// Engines lists the rasterization engines a command can select.
var Engines = []string{"canvas", "oksvg"}

// Config holds defaults shared by the command line tools.
// Flags override these values.
type Config struct {
	Root     string `json:"root"`
	Engine   string `json:"engine"`
	Manifest string `json:"manifest"`
	NoColor  bool   `json:"no_color"`
}

// Load loads configuration from environment variables with defaults
func Load() (*Config, error) {
	cfg := &Config{
		Root:     getEnvString("NRD_PORTAL_ROOT", "."),
		Engine:   getEnvString("NRD_ICON_ENGINE", "canvas"),
		Manifest: getEnvString("NRD_MANIFEST", ""),
		NoColor:  getEnvBool("NO_COLOR", false),
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("root directory is required")
	}
	if !ValidEngine(c.Engine) {
		return fmt.Errorf("invalid engine: %s", c.Engine)
	}
	return nil
}

// ValidEngine reports whether name is a known engine.
func ValidEngine(name string) bool {
	for _, e := range Engines {
		if e == name {
			return true
		}
	}
	return false
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// NO_COLOR follows no-color.org: any non-empty value disables color,
// unless it parses as false.
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}
	return true
}
