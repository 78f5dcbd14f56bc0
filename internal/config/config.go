// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used by the server and
// the recipectl command.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"recipebox/internal/persist"
)

// Storage backends selectable with STORE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendValkey   = "valkey"
	BackendS3       = "s3"
)

// Backends lists every supported STORE_BACKEND value.
var Backends = []string{BackendMemory, BackendFile, BackendSQLite, BackendPostgres, BackendValkey, BackendS3}

const defaultDBPassword = "changeme"

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host     string
	Port     string
	Env      string // "development", "production", "testing"
	LogLevel string // "debug", "info", "warn", "error"

	// Catalog storage
	Backend        string
	StoreKey       string
	StoreDir       string
	SQLitePath     string
	SeedFile       string // optional YAML seed replacing the built-in one
	ConnectTimeout time.Duration

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible cache)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// S3-compatible object storage
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3Prefix    string

	// Requests per minute per client IP on mutating API routes.
	APIRateLimit int

	// Origins allowed to call the JSON API from a browser. Empty allows any.
	CORSAllowedOrigins []string
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate, and validates the result.
func Load() (*Config, error) {
	cfg := &Config{
		Host:     envOrDefault("APP_HOST", "0.0.0.0"),
		Port:     envOrDefault("APP_PORT", "8080"),
		Env:      envOrDefault("APP_ENV", "development"),
		LogLevel: strings.ToLower(envOrDefault("LOG_LEVEL", "info")),

		Backend:    strings.ToLower(envOrDefault("STORE_BACKEND", BackendFile)),
		StoreKey:   envOrDefault("STORE_KEY", "recipes"),
		StoreDir:   envOrDefault("STORE_DIR", "data"),
		SQLitePath: envOrDefault("SQLITE_PATH", "data/recipebox.db"),
		SeedFile:   os.Getenv("SEED_FILE"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "recipebox"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", defaultDBPassword),
		DBName:     envOrDefault("POSTGRES_DB", "recipebox"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3Region:    envOrDefault("S3_REGION", "us-east-1"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3Bucket:    os.Getenv("S3_BUCKET"),
		S3Prefix:    os.Getenv("S3_PREFIX"),

		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
	}

	timeout, err := positiveInt("STORE_CONNECT_TIMEOUT", 30)
	if err != nil {
		return nil, err
	}
	cfg.ConnectTimeout = time.Duration(timeout) * time.Second

	if cfg.APIRateLimit, err = positiveInt("API_RATE_LIMIT", 60); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if _, ok := parseLevel(c.LogLevel); !ok {
		return fmt.Errorf("LOG_LEVEL %q is not one of debug, info, warn, error", c.LogLevel)
	}

	if c.StoreKey == "" {
		return fmt.Errorf("STORE_KEY must not be empty")
	}

	switch c.Backend {
	case BackendMemory, BackendSQLite, BackendValkey:
	case BackendFile:
		if !persist.ValidFileKey(c.StoreKey) {
			return fmt.Errorf("STORE_KEY %q may only contain letters, digits, '.', '_' and '-' with the file backend", c.StoreKey)
		}
	case BackendPostgres:
		if c.Env == "production" && c.DBPassword == defaultDBPassword {
			return fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
	case BackendS3:
		var missing []string
		for name, v := range map[string]string{
			"S3_ENDPOINT":   c.S3Endpoint,
			"S3_ACCESS_KEY": c.S3AccessKey,
			"S3_SECRET_KEY": c.S3SecretKey,
			"S3_BUCKET":     c.S3Bucket,
		} {
			if v == "" {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			slices.Sort(missing)
			return fmt.Errorf("s3 backend requires %s", strings.Join(missing, ", "))
		}
	default:
		return fmt.Errorf("STORE_BACKEND %q is not one of %s", c.Backend, strings.Join(Backends, ", "))
	}
	return nil
}

// splitList splits a comma-separated value, dropping blank entries.
func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// SlogLevel returns the configured log level.
func (c *Config) SlogLevel() slog.Level {
	level, _ := parseLevel(c.LogLevel)
	return level
}

func parseLevel(s string) (slog.Level, bool) {
	switch s {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// positiveInt reads a positive integer environment variable.
func positiveInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, v)
	}
	return n, nil
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
