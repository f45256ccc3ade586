package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docbuild/internal/foundation/errors"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "docbuild.yaml"

// Config describes the container environment the build runs in.
type Config struct {
	// Runtime is the container runtime CLI (docker or a compatible binary).
	Runtime string `yaml:"runtime"`
	// Image is the tag the environment image is built and run as.
	Image string `yaml:"image"`
	// Recipe is the image build file, relative to Context unless absolute.
	Recipe string `yaml:"recipe"`
	// Context is the image build context directory.
	Context string `yaml:"context"`
	// ToolDir holds the inner build tool; mounted at /docs_build.
	ToolDir string `yaml:"tool_dir"`
	// Entrypoint is the inner tool command run inside the container.
	Entrypoint []string `yaml:"entrypoint"`

	QuietWindow    time.Duration `yaml:"quiet_window"`
	ReadyMarker    string        `yaml:"ready_marker"`
	SkipImageBuild bool          `yaml:"skip_image_build"`
	MetricsFile    string        `yaml:"metrics_file"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig controls the process-wide slog handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads the configuration file at path. An empty path falls back to
// DefaultFile, which may be absent. A path given explicitly must exist.
func Load(path string) (*Config, error) {
	loadEnvFile()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		// Expand environment variables in the YAML content
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, errors.ConfigError("failed to parse configuration").
				WithCause(err).
				WithContext(errors.ContextPath, path).
				Build()
		}
		if err := resolveRelative(cfg, filepath.Dir(path)); err != nil {
			return nil, err
		}
	case os.IsNotExist(err) && !explicit:
		// defaults only
	case os.IsNotExist(err):
		return nil, errors.ConfigError("configuration file not found").
			WithContext(errors.ContextPath, path).
			Build()
	default:
		return nil, errors.ConfigError("failed to read configuration").
			WithCause(err).
			WithContext(errors.ContextPath, path).
			Build()
	}

	applyDefaults(cfg)
	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RecipePath returns the image build file resolved against Context.
func (c *Config) RecipePath() string {
	if filepath.IsAbs(c.Recipe) {
		return c.Recipe
	}
	return filepath.Join(c.Context, c.Recipe)
}

// resolveRelative anchors directory settings to the config file's directory so
// the tool works the same from any working directory.
func resolveRelative(cfg *Config, base string) error {
	abs, err := filepath.Abs(base)
	if err != nil {
		return fmt.Errorf("resolve config directory: %w", err)
	}
	for _, p := range []*string{&cfg.Context, &cfg.ToolDir} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(abs, *p)
		}
	}
	return nil
}
