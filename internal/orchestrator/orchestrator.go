package orchestrator

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/docbuild/internal/browser"
	"git.home.luguber.info/inful/docbuild/internal/config"
	"git.home.luguber.info/inful/docbuild/internal/foundation/errors"
	"git.home.luguber.info/inful/docbuild/internal/invocation"
	"git.home.luguber.info/inful/docbuild/internal/logfields"
	"git.home.luguber.info/inful/docbuild/internal/metrics"
	"git.home.luguber.info/inful/docbuild/internal/moderator"
	"git.home.luguber.info/inful/docbuild/internal/supervisor"
)

// Orchestrator runs one build for one configuration.
type Orchestrator struct {
	cfg      *config.Config
	start    supervisor.Starter
	sink     moderator.Sink
	recorder metrics.Recorder
	opener   browser.Opener
	host     invocation.Host
	logger   *slog.Logger
	now      func() time.Time
	newID    func() string
	runID    string
}

// New returns an Orchestrator that talks to the real runtime, terminal and
// browser unless options say otherwise.
func New(cfg *config.Config, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		cfg:      cfg,
		start:    supervisor.Start,
		recorder: metrics.NoopRecorder{},
		opener:   browser.Open,
		host:     invocation.OSHost{},
		logger:   slog.Default(),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(o)
	}
	o.runID = o.newID()
	o.logger = o.logger.With(logfields.RunID(o.runID))
	if o.sink == nil {
		o.sink = moderator.WriterSink{Out: os.Stdout, Err: os.Stderr, Logger: o.logger}
	}
	return o
}

// BuildImage builds the environment image unless the configuration says it
// is already current.
func (o *Orchestrator) BuildImage(ctx context.Context) error {
	if o.cfg.SkipImageBuild {
		o.logger.Debug("Skipping image build", logfields.Image(o.cfg.Image))
		return nil
	}
	o.logger.Info("Building environment image", logfields.Image(o.cfg.Image), logfields.Path(o.cfg.RecipePath()))
	return o.supervise(ctx, stageRun{
		stage:   metrics.StageImage,
		label:   "image build",
		program: o.cfg.Runtime,
		args:    o.imageArgs(),
		input:   supervisor.FromReader(nil),
	})
}

// Plan translates tokens into the runtime command that would run the build.
func (o *Orchestrator) Plan(tokens []string) (*Command, error) {
	started := o.now()
	plan, err := invocation.NewBuilder(o.host, o.logger).Build(tokens)
	o.recorder.ObserveStageDuration(metrics.StagePlan, o.now().Sub(started))
	if err != nil {
		result := metrics.ResultFailed
		if errors.IsArgumentError(err) {
			result = metrics.ResultInvalidArgs
		}
		o.recorder.IncStageResult(metrics.StagePlan, result)
		return nil, err
	}
	o.recorder.IncStageResult(metrics.StagePlan, metrics.ResultSuccess)

	name := ContainerPrefix + o.runID
	return &Command{
		Program:       o.cfg.Runtime,
		Args:          o.runArgs(name, plan),
		ContainerName: name,
		Plan:          plan,
	}, nil
}

// RunID identifies this run in logs.
func (o *Orchestrator) RunID() string { return o.runID }

// Run builds the image, plans tokens and runs the build to completion. The
// returned error carries the exit code the process should end with.
func (o *Orchestrator) Run(ctx context.Context, tokens []string) error {
	// Argument problems are reported before any image work starts.
	cmd, err := o.Plan(tokens)
	if err != nil {
		return err
	}
	if err := o.BuildImage(ctx); err != nil {
		return err
	}

	o.logger.Debug("Running build",
		logfields.Program(cmd.Program),
		logfields.Args(cmd.Args),
		slog.String("container", cmd.ContainerName))

	return o.supervise(ctx, stageRun{
		stage:       metrics.StageBuild,
		label:       "docs build",
		program:     cmd.Program,
		args:        cmd.Args,
		input:       supervisor.Pipe(),
		expected:    cmd.Plan.ExpectedExitCode,
		openBrowser: cmd.Plan.OpenBrowserOnReady,
	})
}

type stageRun struct {
	stage       string
	label       string
	program     string
	args        []string
	input       supervisor.Input
	expected    int
	openBrowser bool
}

func (o *Orchestrator) supervise(ctx context.Context, r stageRun) error {
	started := o.now()
	logger := o.logger.With(logfields.Stage(r.stage))
	defer func() {
		o.recorder.ObserveStageDuration(r.stage, o.now().Sub(started))
	}()

	proc, err := o.start(ctx, r.program, r.args, r.input)
	if err != nil {
		o.recorder.IncStageResult(r.stage, metrics.ResultFailed)
		return errors.RuntimeError("could not start "+r.program).
			WithCause(err).
			WithContext("stage", r.stage).
			Build()
	}

	mod := moderator.New(o.sink, moderator.Options{
		QuietWindow: o.cfg.QuietWindow,
		Start:       started,
		Now:         o.now,
		OpenBrowser: r.openBrowser,
		ReadyMarker: o.cfg.ReadyMarker,
		URL:         moderator.DefaultURL,
		Opener:      o.opener,
		Logger:      logger,
	})

	interrupted := func() error {
		_ = proc.CloseInput()
		mod.Interrupt()
		o.recorder.AddOutputLines(r.stage, mod.Routed())
		o.recorder.IncStageResult(r.stage, metrics.ResultCanceled)
		logger.Debug("Interrupted", logfields.Lines(mod.Routed()))
		return errors.Interrupted().WithCause(ctx.Err()).Build()
	}

	lines := proc.Lines()
	for lines != nil {
		select {
		case line, ok := <-lines:
			if !ok {
				lines = nil
				continue
			}
			mod.Line(line)
		case <-ctx.Done():
			return interrupted()
		}
	}
	// The child may have finished in response to the interrupt.
	if ctx.Err() != nil {
		return interrupted()
	}

	code, err := proc.Wait()
	mod.Finish(code)
	o.recorder.AddOutputLines(r.stage, mod.Routed())
	if err != nil {
		o.recorder.IncStageResult(r.stage, metrics.ResultFailed)
		return errors.RuntimeError("could not wait for "+r.program).WithCause(err).Build()
	}
	if readErr := proc.ReadErr(); readErr != nil {
		logger.Warn("Output stream ended with an error", logfields.Error(readErr))
	}
	o.recorder.SetExitCode(code)

	logger.Debug("Process finished",
		logfields.ExitCode(code),
		logfields.Lines(mod.Routed()),
		logfields.Duration(o.now().Sub(started)))

	switch {
	case code == r.expected && code == 0:
		o.recorder.IncStageResult(r.stage, metrics.ResultSuccess)
		return nil
	case code == r.expected:
		o.recorder.IncStageResult(r.stage, metrics.ResultSuccess)
		return errors.ExpectedExit(code).Build()
	default:
		o.recorder.IncStageResult(r.stage, metrics.ResultFailed)
		return errors.SubprocessFailure(r.label, code).
			WithContext("stage", r.stage).
			Build()
	}
}
