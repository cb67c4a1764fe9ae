package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the console reads from the environment. The
// only required surface is the gateway base address; the rest are display
// and diagnostics knobs with sensible defaults.
type Config struct {
	GatewayURL  string        `env:"LIBRARIUM_GATEWAY_URL" default:"http://localhost:8080"`
	HTTPTimeout time.Duration `env:"LIBRARIUM_HTTP_TIMEOUT" default:"10s"`

	LogLevel  string `env:"LIBRARIUM_LOG_LEVEL" default:"warn"`
	LogFormat string `env:"LIBRARIUM_LOG_FORMAT" default:"console"`

	RecommendationLimit int `env:"LIBRARIUM_REC_LIMIT" default:"10"`
	StatCategories      int `env:"LIBRARIUM_STAT_CATEGORIES" default:"6"`
	TrendMonths         int `env:"LIBRARIUM_TREND_MONTHS" default:"6"`
}

// Load reads configuration from the environment, after loading a .env file
// when one is present. A missing .env file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{}

	if err := loadEnvString(&cfg.GatewayURL, "LIBRARIUM_GATEWAY_URL", "http://localhost:8080"); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&cfg.HTTPTimeout, "LIBRARIUM_HTTP_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if err := loadEnvString(&cfg.LogLevel, "LIBRARIUM_LOG_LEVEL", "warn"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&cfg.LogFormat, "LIBRARIUM_LOG_FORMAT", "console"); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&cfg.RecommendationLimit, "LIBRARIUM_REC_LIMIT", 10); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&cfg.StatCategories, "LIBRARIUM_STAT_CATEGORIES", 6); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&cfg.TrendMonths, "LIBRARIUM_TREND_MONTHS", 6); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadEnvString(target *string, key, defaultValue string) error {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}
	*target = value
	return nil
}

func loadEnvInt(target *int, key string, defaultValue int) error {
	value := os.Getenv(key)
	if value == "" {
		*target = defaultValue
		return nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid integer for %s: %q", key, value)
	}
	*target = parsed
	return nil
}

func loadEnvDuration(target *time.Duration, key string, defaultValue time.Duration) error {
	value := os.Getenv(key)
	if value == "" {
		*target = defaultValue
		return nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid duration for %s: %q", key, value)
	}
	*target = parsed
	return nil
}
