// Package config reads the CHOREBOARD_* environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
)

const envPrefix = "CHOREBOARD_"

type Config struct {
	// Server
	Port   string
	DBPath string

	// Logging
	LogLevel  string
	LogFormat string

	// Board
	RolloverInterval time.Duration
	AutoCredit       bool

	// Rate limiting for mutating API routes, per client IP
	RateLimit rate.Limit
	RateBurst int
}

// DefaultConfig returns configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Port:             "8080",
		DBPath:           "choreboard.db",
		LogLevel:         "info",
		LogFormat:        "text",
		RolloverInterval: 60 * time.Second,
		AutoCredit:       false,
		RateLimit:        10,
		RateBurst:        20,
	}
}

// Load reads an optional .env file and then the environment. A missing
// .env file is not an error.
func Load(files ...string) *Config {
	_ = godotenv.Load(files...)
	return LoadFromEnv()
}

// LoadFromEnv overlays CHOREBOARD_* variables on the defaults. Unparsable
// values are ignored.
func LoadFromEnv() *Config {
	cfg := DefaultConfig()

	if v := getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := getenv("DB_PATH"); v != "" {
		cfg.DBPath = v
	}

	if v := getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := getenv("LOG_FORMAT"); v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}

	if v := getenv("ROLLOVER_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.RolloverInterval = d
		}
	}
	if v := getenv("AUTO_CREDIT"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.AutoCredit = b
		}
	}

	if v := getenv("RATE_LIMIT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.RateLimit = rate.Limit(f)
		}
	}
	if v := getenv("RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RateBurst = n
		}
	}

	return cfg
}

// Addr is the listen address for Port.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getenv(key string) string {
	return strings.TrimSpace(os.Getenv(envPrefix + key))
}
