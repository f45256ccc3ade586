package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docbuild/internal/config"
	"git.home.luguber.info/inful/docbuild/internal/logfields"
	"git.home.luguber.info/inful/docbuild/internal/metrics"
	"git.home.luguber.info/inful/docbuild/internal/moderator"
	"git.home.luguber.info/inful/docbuild/internal/orchestrator"
)

// Global carries process-wide state into commands.
type Global struct {
	Context context.Context
	Logger  *slog.Logger
	Stdout  io.Writer
	Stderr  io.Writer
}

// CLI definition & global flags. Global flags go before the command; every
// token after build or plan belongs to the inner build tool.
type CLI struct {
	Config         string           `short:"c" env:"DOCBUILD_CONFIG" help:"Configuration file path (docbuild.yaml is used when present)"`
	Verbose        bool             `short:"v" help:"Enable verbose logging"`
	Version        kong.VersionFlag `name:"version" help:"Show version and exit"`
	Image          string           `help:"Override the environment image tag"`
	SkipImageBuild bool             `name:"skip-image-build" help:"Run with the existing image instead of rebuilding it"`
	MetricsFile    string           `name:"metrics-file" help:"Write Prometheus metrics to this file when the run ends"`

	Build      BuildCmd `cmd:"" passthrough:"" help:"Build documentation in the container; all arguments go to the build tool"`
	Plan       PlanCmd  `cmd:"" passthrough:"" help:"Print the container command a build would run"`
	ImageBuild ImageCmd `cmd:"" name:"image" help:"Build the environment image only"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := config.NormalizeLogLevel(os.Getenv(config.EnvLogLevel)).SlogLevel()
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// load reads the configuration, applies root flag overrides and installs the
// configured logger.
func (c *CLI) load(g *Global) (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	if c.Image != "" {
		cfg.Image = c.Image
	}
	if c.SkipImageBuild {
		cfg.SkipImageBuild = true
	}
	if c.MetricsFile != "" {
		cfg.MetricsFile = c.MetricsFile
	}

	logger := cfg.Logging.NewLogger(os.Stderr, c.Verbose)
	slog.SetDefault(logger)
	g.Logger = logger
	return cfg, nil
}

// newOrchestrator wires an Orchestrator to the command's output streams. The
// returned flush writes the metrics file, if one is configured.
func (g *Global) newOrchestrator(cfg *config.Config) (*orchestrator.Orchestrator, func()) {
	var recorder metrics.Recorder = metrics.NoopRecorder{}
	flush := func() {}
	if cfg.MetricsFile != "" {
		prom := metrics.NewPrometheusRecorder(nil)
		recorder = prom
		flush = func() {
			if err := prom.WriteTextfile(cfg.MetricsFile); err != nil {
				g.Logger.Warn("Failed to write metrics file", logfields.Path(cfg.MetricsFile), logfields.Error(err))
			}
		}
	}

	o := orchestrator.New(cfg,
		orchestrator.WithLogger(g.Logger),
		orchestrator.WithRecorder(recorder),
		orchestrator.WithSink(moderator.WriterSink{Out: g.Stdout, Err: g.Stderr, Logger: g.Logger}),
	)
	return o, flush
}
