package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"crudconsole/internal/apiclient"
	"crudconsole/internal/store"

	"github.com/joho/godotenv"
)

// Environment variables read by Load. A .env file may provide any of them;
// real environment variables win over the file.
const (
	EnvFile     = "CRUDCONSOLE_ENV_FILE"
	EnvBaseURL  = "CRUDCONSOLE_BASE_URL"
	EnvTimeout  = "CRUDCONSOLE_TIMEOUT"
	EnvDataDir  = "CRUDCONSOLE_DATA_DIR"
	EnvLogFile  = "CRUDCONSOLE_LOG_FILE"
	EnvLogLevel = "CRUDCONSOLE_LOG_LEVEL"
	EnvFormat   = "CRUDCONSOLE_FORMAT"
	EnvPretty   = "CRUDCONSOLE_PRETTY"
)

const defaultEnvFile = ".env"

type Config struct {
	BaseURL string
	// Timeout bounds each request. Zero means no timeout.
	Timeout  time.Duration
	DataDir  string
	LogFile  string
	LogLevel string
	Format   string
	Pretty   bool
}

func Defaults() Config {
	dir, _ := store.DefaultDir()
	return Config{
		BaseURL:  apiclient.DefaultBaseURL,
		DataDir:  dir,
		LogLevel: "info",
		Format:   "json",
	}
}

// Load reads envFile (or ./.env when empty) into the process environment and
// builds a Config from defaults overridden by the environment. A missing
// ./.env is fine; a missing explicit file is an error.
func Load(envFile string) (Config, error) {
	envFile = strings.TrimSpace(envFile)
	if envFile == "" {
		if _, err := os.Stat(defaultEnvFile); err == nil {
			envFile = defaultEnvFile
		}
	}
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return Defaults(), fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from defaults overridden by the environment.
func FromEnv() (Config, error) {
	cfg := Defaults()
	cfg.BaseURL = envOr(EnvBaseURL, cfg.BaseURL)
	cfg.DataDir = envOr(EnvDataDir, cfg.DataDir)
	cfg.LogFile = envOr(EnvLogFile, cfg.LogFile)
	cfg.LogLevel = envOr(EnvLogLevel, cfg.LogLevel)
	cfg.Format = envOr(EnvFormat, cfg.Format)

	var errs []error
	if d, err := envDuration(EnvTimeout, cfg.Timeout); err != nil {
		errs = append(errs, err)
	} else {
		cfg.Timeout = d
	}
	if b, err := envBool(EnvPretty, cfg.Pretty); err != nil {
		errs = append(errs, err)
	} else {
		cfg.Pretty = b
	}
	return cfg, errors.Join(errs...)
}

func envOr(k, d string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return d
}

func envDuration(k string, d time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return d, nil
	}
	out, err := time.ParseDuration(v)
	if err != nil {
		return d, fmt.Errorf("%s: %w", k, err)
	}
	if out < 0 {
		return d, fmt.Errorf("%s: negative duration %s", k, v)
	}
	return out, nil
}

func envBool(k string, d bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return d, nil
	}
	out, err := strconv.ParseBool(v)
	if err != nil {
		return d, fmt.Errorf("%s: %w", k, err)
	}
	return out, nil
}
