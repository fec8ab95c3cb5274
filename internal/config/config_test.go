package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// clearEnv unsets every variable Load reads so the host environment does
// not leak into a test. t.Setenv restores them, including any a .env set.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "REQUEST_TIMEOUT", "CORS_ORIGINS", "STORAGE_DRIVER", "DB_PATH",
		"DATABASE_URL", "MIGRATIONS", "JWT_SECRET", "AUTH_REQUIRED", "CATALOG_PATH",
		"TIMEZONE", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 8080 || cfg.Server.RequestTimeout != 10*time.Second {
		t.Errorf("unexpected server config %+v", cfg.Server)
	}
	if cfg.Storage.Driver != DriverSQLite || !cfg.Storage.Migrations {
		t.Errorf("unexpected storage config %+v", cfg.Storage)
	}
	if cfg.Auth.Required {
		t.Error("expected auth to be optional by default")
	}
	if cfg.Ledger.Location != time.Local {
		t.Errorf("expected local time zone, got %v", cfg.Ledger.Location)
	}
	if cfg.Log.Format != "text" {
		t.Errorf("expected text logs, got %s", cfg.Log.Format)
	}
}

func TestLoadFromEnvAndDotEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")

	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "PORT=7070\nSTORAGE_DRIVER=postgres\nDATABASE_URL=postgres://gym@localhost/gym\nREQUEST_TIMEOUT=3s\nCORS_ORIGINS=http://a.test, http://b.test\nTIMEZONE=UTC\nLOG_FORMAT=JSON\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}

	cfg, err := Load(envFile, filepath.Join(dir, "missing.env"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected environment to win, got port %d", cfg.Server.Port)
	}
	if cfg.Storage.Driver != DriverPostgres || cfg.Storage.DatabaseURL == "" {
		t.Errorf("unexpected storage config %+v", cfg.Storage)
	}
	if cfg.Server.RequestTimeout != 3*time.Second {
		t.Errorf("expected 3s timeout, got %v", cfg.Server.RequestTimeout)
	}
	if len(cfg.Server.CORSOrigins) != 2 || cfg.Server.CORSOrigins[1] != "http://b.test" {
		t.Errorf("unexpected CORS origins %v", cfg.Server.CORSOrigins)
	}
	if cfg.Ledger.Location.String() != "UTC" || cfg.Log.Format != "json" {
		t.Errorf("unexpected ledger/log config %v %s", cfg.Ledger.Location, cfg.Log.Format)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown driver", map[string]string{"STORAGE_DRIVER": "mongo"}},
		{"postgres without url", map[string]string{"STORAGE_DRIVER": "postgres"}},
		{"auth without secret", map[string]string{"AUTH_REQUIRED": "true"}},
		{"bad timezone", map[string]string{"TIMEZONE": "Mars/Olympus"}},
		{"bad log format", map[string]string{"LOG_FORMAT": "xml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Error("expected error")
			}
		})
	}
}
