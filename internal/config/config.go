// Package config reads server settings from the environment. A .env file,
// when present, fills in variables that are not already set.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Auth    AuthConfig
	Ledger  LedgerConfig
	Log     LogConfig
}

type ServerConfig struct {
	Port           int
	RequestTimeout time.Duration
	CORSOrigins    []string
}

type StorageConfig struct {
	Driver      string
	DBPath      string
	DatabaseURL string

	// Migrations runs the postgres migrations on startup.
	Migrations bool
}

type AuthConfig struct {
	JWTSecret string
	Required  bool
}

type LedgerConfig struct {
	// Location is used for renewal dates and monthly income buckets.
	Location *time.Location

	// CatalogPath is an optional JSON plan catalog; empty reads plans from storage.
	CatalogPath string
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads the configuration. Variables already in the environment win
// over the given .env files; missing files are skipped.
// Precedence: explicit env var > .env file > default.
func Load(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	cfg := Config{
		Server: ServerConfig{
			Port:           getInt("PORT", 8080),
			RequestTimeout: getDuration("REQUEST_TIMEOUT", 10*time.Second),
			CORSOrigins:    getList("CORS_ORIGINS", []string{"*"}),
		},
		Storage: StorageConfig{
			Driver:      strings.ToLower(getEnv("STORAGE_DRIVER", DriverSQLite)),
			DBPath:      getEnv("DB_PATH", "./data/gymdesk.db"),
			DatabaseURL: getEnv("DATABASE_URL", ""),
			Migrations:  getBool("MIGRATIONS", true),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
			Required:  getBool("AUTH_REQUIRED", false),
		},
		Ledger: LedgerConfig{
			Location:    time.Local,
			CatalogPath: getEnv("CATALOG_PATH", ""),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: strings.ToLower(getEnv("LOG_FORMAT", "text")),
		},
	}

	if tz := getEnv("TIMEZONE", ""); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TIMEZONE %q: %w", tz, err)
		}
		cfg.Ledger.Location = loc
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Storage.Driver {
	case DriverSQLite, DriverMemory:
	case DriverPostgres:
		if c.Storage.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}
	if c.Auth.Required && c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is required when AUTH_REQUIRED is set")
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("unknown LOG_FORMAT %q", c.Log.Format)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("Invalid boolean, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("Invalid integer, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("Invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func getList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
