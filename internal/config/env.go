package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables that override file settings.
const (
	EnvConfig         = "DOCBUILD_CONFIG"
	EnvRuntime        = "DOCBUILD_RUNTIME"
	EnvImage          = "DOCBUILD_IMAGE"
	EnvQuietWindow    = "DOCBUILD_QUIET_WINDOW"
	EnvSkipImageBuild = "DOCBUILD_SKIP_IMAGE_BUILD"
	EnvMetricsFile    = "DOCBUILD_METRICS_FILE"
	EnvLogLevel       = "DOCBUILD_LOG_LEVEL"
	EnvLogFormat      = "DOCBUILD_LOG_FORMAT"
)

var envFiles = []string{".env", ".env.local"}

// loadEnvFile loads the first readable .env file. Existing process
// environment variables are never overwritten.
func loadEnvFile() {
	for _, path := range envFiles {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			slog.Warn("Failed to load environment file", "path", path, "error", err)
			continue
		}
		slog.Debug("Loaded environment variables", "path", path)
		return
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvRuntime); v != "" {
		cfg.Runtime = v
	}
	if v := os.Getenv(EnvImage); v != "" {
		cfg.Image = v
	}
	if v := os.Getenv(EnvQuietWindow); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.QuietWindow = d
		} else {
			slog.Warn("Ignoring invalid quiet window", "value", v, "error", err)
		}
	}
	if v := os.Getenv(EnvSkipImageBuild); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.SkipImageBuild = b
		}
	}
	if v := os.Getenv(EnvMetricsFile); v != "" {
		cfg.MetricsFile = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = normalizeOrWarn(logLevelNormalizer, EnvLogLevel, v)
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.Logging.Format = normalizeOrWarn(logFormatNormalizer, EnvLogFormat, v)
	}
}
