package db

import (
	"os"
	"strings"
)

// IsPostgresDSN reports whether a DSN selects the postgres driver. Anything
// else is treated as a sqlite file path or sqlite URI.
func IsPostgresDSN(dsn string) bool {
	lower := strings.ToLower(strings.TrimSpace(dsn))
	return strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://")
}

// NormalizeDSN trims quotes and whitespace around a DSN taken from the
// environment or a .env file.
func NormalizeDSN(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, "\"'")
	return s
}

// MigrateURL converts a gorm DSN into the URL form golang-migrate expects.
func MigrateURL(dsn string) string {
	if IsPostgresDSN(dsn) {
		return dsn
	}
	// sqlite file path; migrate's sqlite3 driver wants sqlite3://<path>
	return "sqlite3://" + strings.TrimPrefix(dsn, "file:")
}

// GetNormalizedDSN fetches DATABASE_DSN env var and normalizes it.
func GetNormalizedDSN() string { return NormalizeDSN(os.Getenv("DATABASE_DSN")) }
