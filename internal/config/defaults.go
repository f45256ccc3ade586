package config

import (
	"os"
	"path/filepath"
	"time"
)

// Defaults applied when neither the file nor the environment sets a value.
const (
	DefaultRuntime     = "docker"
	DefaultImage       = "docker.elastic.co/docs/build:1"
	DefaultRecipe      = "Dockerfile"
	DefaultQuietWindow = 3 * time.Second
	DefaultReadyMarker = "Serving on http://localhost:8000"
)

// DefaultEntrypoint is the inner build tool invocation inside the image.
var DefaultEntrypoint = []string{"/docs_build/build_docs.pl", "--in_standard_docker"}

func applyDefaults(cfg *Config) {
	if cfg.Runtime == "" {
		cfg.Runtime = DefaultRuntime
	}
	if cfg.Image == "" {
		cfg.Image = DefaultImage
	}
	if cfg.Recipe == "" {
		cfg.Recipe = DefaultRecipe
	}
	if cfg.Context == "" {
		cfg.Context = workingDir()
	}
	if cfg.ToolDir == "" {
		cfg.ToolDir = cfg.Context
	}
	if len(cfg.Entrypoint) == 0 {
		cfg.Entrypoint = append([]string(nil), DefaultEntrypoint...)
	}
	if cfg.QuietWindow == 0 {
		cfg.QuietWindow = DefaultQuietWindow
	}
	if cfg.ReadyMarker == "" {
		cfg.ReadyMarker = DefaultReadyMarker
	}
	cfg.Logging.Level = normalizeOrWarn(logLevelNormalizer, "logging.level", string(cfg.Logging.Level))
	cfg.Logging.Format = normalizeOrWarn(logFormatNormalizer, "logging.format", string(cfg.Logging.Format))
}

func workingDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	abs, err := filepath.Abs(wd)
	if err != nil {
		return wd
	}
	return abs
}
