// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// AutoMigrate applies pending goose migrations at startup. Defaults to true.
	AutoMigrate bool

	// GeocoderURL is the base URL of the Nominatim-compatible geocoder.
	GeocoderURL string
	// GeocoderUserAgent identifies this app to the geocoder, as Nominatim's
	// usage policy requires.
	GeocoderUserAgent string
	// GeocoderTimeout bounds each geocoder request. Defaults to 5s.
	GeocoderTimeout time.Duration
	// GeocoderRPS caps outbound geocoder requests per second. Defaults to 1.
	GeocoderRPS float64

	// SearchDebounce is how long a place search waits before querying, so
	// a newer keystroke can cancel it. Defaults to 300ms.
	SearchDebounce time.Duration

	// MaxBodyBytes limits request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64

	// RateLimitRPS is the per-client request rate. 0 disables limiting.
	// Defaults to 20.
	RateLimitRPS float64
}

// LoadDotEnv loads variables from the given .env files (".env" when none
// are given) without overriding variables already set. Missing files are
// not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config.LoadDotEnv: %s: %w", f, err)
		}
	}
	return nil
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set and any
// variables that could not be parsed.
func Load() (Config, error) {
	p := parser{}
	cfg := Config{
		Port:              getEnv("PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		CORSOrigins:       splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		AutoMigrate:       p.bool("AUTO_MIGRATE", true),
		GeocoderURL:       getEnv("GEOCODER_URL", "https://nominatim.openstreetmap.org"),
		GeocoderUserAgent: getEnv("GEOCODER_USER_AGENT", "trip-planner/1.0"),
		GeocoderTimeout:   p.duration("GEOCODER_TIMEOUT", 5*time.Second),
		GeocoderRPS:       p.float("GEOCODER_RPS", 1),
		SearchDebounce:    p.duration("SEARCH_DEBOUNCE", 300*time.Millisecond),
		MaxBodyBytes:      p.int64("MAX_BODY_BYTES", 1<<20),
		RateLimitRPS:      p.float("RATE_LIMIT_RPS", 20),
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}
	if len(p.invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(p.invalid, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// parser reads typed variables and records the names of any it could not parse.
type parser struct {
	invalid []string
}

func (p *parser) bool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.invalid = append(p.invalid, key)
		return fallback
	}
	return b
}

func (p *parser) duration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		p.invalid = append(p.invalid, key)
		return fallback
	}
	return d
}

func (p *parser) float(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		p.invalid = append(p.invalid, key)
		return fallback
	}
	return f
}

func (p *parser) int64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		p.invalid = append(p.invalid, key)
		return fallback
	}
	return n
}
