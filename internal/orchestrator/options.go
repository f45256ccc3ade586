package orchestrator

import (
	"log/slog"
	"time"

	"git.home.luguber.info/inful/docbuild/internal/browser"
	"git.home.luguber.info/inful/docbuild/internal/invocation"
	"git.home.luguber.info/inful/docbuild/internal/metrics"
	"git.home.luguber.info/inful/docbuild/internal/moderator"
	"git.home.luguber.info/inful/docbuild/internal/supervisor"
)

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithStarter replaces the process starter.
func WithStarter(start supervisor.Starter) Option {
	return func(o *Orchestrator) { o.start = start }
}

// WithSink replaces where moderated output lines go.
func WithSink(sink moderator.Sink) Option {
	return func(o *Orchestrator) { o.sink = sink }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(o *Orchestrator) { o.recorder = r }
}

// WithOpener replaces the browser opener.
func WithOpener(open browser.Opener) Option {
	return func(o *Orchestrator) { o.opener = open }
}

// WithHost replaces the host facts used to build invocation plans.
func WithHost(h invocation.Host) Option {
	return func(o *Orchestrator) { o.host = h }
}

// WithLogger sets the logger for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// WithIDs replaces the generator for run ids and container names.
func WithIDs(newID func() string) Option {
	return func(o *Orchestrator) { o.newID = newID }
}
