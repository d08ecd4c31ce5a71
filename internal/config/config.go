// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Config holds application configuration
type Config struct {
	DataDir               string // Base directory for config.db (always absolute)
	CatalogPath           string // Empty means the catalog bundled in the binary
	CatalogReloadSchedule string
	QuoteBucket           string // Empty stores quote requests nowhere (logged only)
	QuotePrefix           string
	AWSRegion             string
	LogLevel              string
	Port                  int
	MaxPanels             int
	NoticeTTL             time.Duration
	DevMode               bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	dataDir, err := resolveDataDir(getEnv("CONFIGURATOR_DATA_DIR", "./data"))
	if err != nil {
		return nil, err
	}

	catalogPath := getEnv("CATALOG_PATH", "")
	if catalogPath != "" {
		if catalogPath, err = filepath.Abs(catalogPath); err != nil {
			return nil, fmt.Errorf("failed to resolve catalog path: %w", err)
		}
	}

	cfg := &Config{
		DataDir:               dataDir,
		CatalogPath:           catalogPath,
		CatalogReloadSchedule: getEnv("CATALOG_RELOAD_SCHEDULE", "@every 1h"),
		QuoteBucket:           getEnv("QUOTE_BUCKET", ""),
		QuotePrefix:           getEnv("QUOTE_PREFIX", "quotes/"),
		AWSRegion:             getEnv("AWS_REGION", ""),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		Port:                  getEnvAsInt("GO_PORT", 8001),
		MaxPanels:             getEnvAsInt("MAX_PANELS", 3),
		NoticeTTL:             time.Duration(getEnvAsInt("NOTICE_TTL_SECONDS", 3)) * time.Second,
		DevMode:               getEnvAsBool("DEV_MODE", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the loaded values
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.MaxPanels < 1 {
		return fmt.Errorf("MAX_PANELS must be at least 1, got %d", c.MaxPanels)
	}
	if c.NoticeTTL <= 0 {
		return fmt.Errorf("NOTICE_TTL_SECONDS must be positive")
	}
	if c.CatalogPath != "" {
		parser := cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
		if _, err := parser.Parse(c.CatalogReloadSchedule); err != nil {
			return fmt.Errorf("invalid CATALOG_RELOAD_SCHEDULE %q: %w", c.CatalogReloadSchedule, err)
		}
	}
	return nil
}

// DatabasePath returns the location of the configuration database
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "config.db")
}

func resolveDataDir(dataDir string) (string, error) {
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve data directory path: %w", err)
	}
	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	return absDataDir, nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
