package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"crudconsole/internal/apiclient"
)

// These tests mutate the process environment, so they do not run in parallel.

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{EnvBaseURL, EnvTimeout, EnvLogFile, EnvLogLevel, EnvFormat, EnvPretty} {
		t.Setenv(k, "")
	}
	t.Setenv(EnvDataDir, "/tmp/crudconsole-test")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.BaseURL != apiclient.DefaultBaseURL {
		t.Fatalf("BaseURL: got %q", cfg.BaseURL)
	}
	if cfg.Timeout != 0 {
		t.Fatalf("Timeout should default to none; got %v", cfg.Timeout)
	}
	if cfg.DataDir != "/tmp/crudconsole-test" || cfg.Format != "json" || cfg.Pretty {
		t.Fatalf("unexpected defaults: %#v", cfg)
	}
}

func TestLoad_EnvFileThenRealEnvWins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "console.env")
	body := "CRUDCONSOLE_BASE_URL=http://localhost:9999\nCRUDCONSOLE_TIMEOUT=1500ms\nCRUDCONSOLE_PRETTY=true\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	// godotenv never overrides variables that are already set; clearing a
	// variable with Setenv("") still counts as set, so unset them instead.
	for _, k := range []string{EnvBaseURL, EnvTimeout, EnvPretty} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Setenv(EnvFormat, "edn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "http://localhost:9999" {
		t.Fatalf("BaseURL from file: got %q", cfg.BaseURL)
	}
	if cfg.Timeout != 1500*time.Millisecond {
		t.Fatalf("Timeout from file: got %v", cfg.Timeout)
	}
	if !cfg.Pretty || cfg.Format != "edn" {
		t.Fatalf("unexpected config: %#v", cfg)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.env")); err == nil {
		t.Fatalf("expected error for a missing explicit env file")
	}
}

func TestFromEnv_BadValues(t *testing.T) {
	t.Setenv(EnvTimeout, "soon")
	t.Setenv(EnvPretty, "maybe")

	cfg, err := FromEnv()
	if err == nil {
		t.Fatalf("expected an error for bad values")
	}
	if cfg.Timeout != 0 || cfg.Pretty {
		t.Fatalf("bad values must fall back to defaults; got %#v", cfg)
	}
}
