package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
)

type Config struct {
	DatabaseDSN string
	Env         string
}

// Load loads configuration from environment with sensible defaults.
// Precedence: explicit env var > .env file (if loaded by user) > default.
func Load() Config {
	cfg := Config{}
	cfg.DatabaseDSN = getEnv("DATABASE_DSN", defaultDSN())
	cfg.Env = getEnv("APP_ENV", "development")
	return cfg
}

// defaultDSN points at the per-user sqlite database file.
func defaultDSN() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "banner_tracker.db"
	}
	return filepath.Join(home, "banner_tracker.db")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// ParseBool reads an env var as bool with default.
func ParseBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %s", key, v)
			return def
		}
		return b
	}
	return def
}
