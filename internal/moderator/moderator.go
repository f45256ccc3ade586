package moderator

import (
	"log/slog"
	"strings"
	"time"

	"git.home.luguber.info/inful/docbuild/internal/logfields"
)

const (
	// DefaultQuietWindow applies when Options.QuietWindow is negative.
	DefaultQuietWindow = 3 * time.Second
	// DefaultURL is where the preview server listens.
	DefaultURL = "http://localhost:8000"
)

// Options configures a Moderator.
type Options struct {
	// QuietWindow is measured from Start. Zero forwards everything at once.
	QuietWindow time.Duration
	Start       time.Time
	Now         func() time.Time

	// OpenBrowser enables opening URL the first time a forwarded line
	// contains ReadyMarker.
	OpenBrowser bool
	ReadyMarker string
	URL         string
	Opener      func(url string) error

	Logger *slog.Logger
}

// Moderator routes lines to a Sink.
type Moderator struct {
	sink     Sink
	opts     Options
	deadline time.Time
	held     []string
	live     bool
	opened   bool
	routed   int
}

// New returns a Moderator whose quiet window starts at opts.Start, or now
// when Start is zero.
func New(sink Sink, opts Options) *Moderator {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Start.IsZero() {
		opts.Start = opts.Now()
	}
	if opts.QuietWindow < 0 {
		opts.QuietWindow = DefaultQuietWindow
	}
	if opts.URL == "" {
		opts.URL = DefaultURL
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Moderator{
		sink:     sink,
		opts:     opts,
		deadline: opts.Start.Add(opts.QuietWindow),
	}
}

// Line routes one output line.
func (m *Moderator) Line(line string) {
	if m.live {
		m.forward(line)
		return
	}
	if m.opts.Now().Before(m.deadline) {
		m.held = append(m.held, line)
		return
	}
	m.live = true
	for _, h := range m.held {
		m.forward(h)
	}
	m.held = nil
	m.forward(line)
}

// Finish flushes whatever is still held once the producer has exited with
// exitCode.
func (m *Moderator) Finish(exitCode int) {
	if len(m.held) == 0 {
		return
	}
	emit := m.sink.Debug
	if exitCode != 0 {
		emit = m.sink.Error
	}
	for _, h := range m.held {
		emit(h)
		m.routed++
	}
	m.held = nil
}

// Interrupt flushes held lines to the info sink.
func (m *Moderator) Interrupt() {
	for _, h := range m.held {
		m.sink.Info(h)
		m.routed++
	}
	m.held = nil
}

// Live reports whether the quiet window has elapsed.
func (m *Moderator) Live() bool { return m.live }

// Held returns the number of lines currently held back.
func (m *Moderator) Held() int { return len(m.held) }

// Routed returns the number of lines handed to the sink so far.
func (m *Moderator) Routed() int { return m.routed }

// BrowserOpened reports whether the ready marker has been seen.
func (m *Moderator) BrowserOpened() bool { return m.opened }

func (m *Moderator) forward(line string) {
	m.sink.Info(line)
	m.routed++

	if !m.opts.OpenBrowser || m.opened || m.opts.ReadyMarker == "" {
		return
	}
	if !strings.Contains(line, m.opts.ReadyMarker) {
		return
	}
	m.opened = true
	if m.opts.Opener == nil {
		return
	}
	if err := m.opts.Opener(m.opts.URL); err != nil {
		m.opts.Logger.Warn("Could not open browser", logfields.URL(m.opts.URL), logfields.Error(err))
	}
}
