package invocation

import (
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/docbuild/internal/args"
	"git.home.luguber.info/inful/docbuild/internal/foundation/errors"
	"git.home.luguber.info/inful/docbuild/internal/logfields"
)

// Container paths with fixed meaning.
const (
	DocPath        = "/doc"
	ReferencePath  = "/reference"
	OutPath        = "/out"
	ResourcePrefix = "/resource_"

	// DefaultOutDir is created in the working directory when --out is absent.
	DefaultOutDir = "html_docs"
)

// Builder accumulates the plan for one command line. It is single use.
type Builder struct {
	host   Host
	logger *slog.Logger

	runtime     []string
	tool        []string
	mounts      []Mount
	expected    int
	openBrowser bool
	sawOut      bool
	resources   int
}

// NewBuilder returns a Builder that resolves paths through host.
func NewBuilder(host Host, logger *slog.Logger) *Builder {
	if host == nil {
		host = OSHost{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{host: host, logger: logger}
}

// Build translates tokens into a Plan. Any error aborts the whole
// translation; no partial plan is returned.
func Build(tokens []string, host Host, logger *slog.Logger) (*Plan, error) {
	return NewBuilder(host, logger).Build(tokens)
}

// Build translates tokens into a Plan.
func (b *Builder) Build(tokens []string) (*Plan, error) {
	stream, err := args.New(tokens)
	if err != nil {
		return nil, err
	}
	if err := b.scan(stream); err != nil {
		return nil, err
	}
	if !b.sawOut {
		if err := b.defaultOut(); err != nil {
			return nil, err
		}
	}
	return &Plan{
		RuntimeArgs:        b.runtime,
		ToolArgs:           b.tool,
		Mounts:             b.mounts,
		ExpectedExitCode:   b.expected,
		OpenBrowserOnReady: b.openBrowser,
	}, nil
}

func (b *Builder) scan(stream *args.Stream) error {
	for {
		tok, ok := stream.Next()
		if !ok {
			return nil
		}
		h, known := flagTable[tok]
		if !known {
			b.tool = append(b.tool, tok)
			continue
		}
		if h.arity == 0 {
			if _, err := h.apply(b, ""); err != nil {
				return err
			}
			b.tool = append(b.tool, tok)
			continue
		}
		value, err := stream.NextOrFail()
		if err != nil {
			return err
		}
		rewritten, err := h.apply(b, value)
		if err != nil {
			return err
		}
		b.tool = append(b.tool, tok, rewritten)
	}
}

// defaultOut mounts the parent of <cwd>/html_docs, the working directory
// itself, and points the tool at it. The mount may not exist yet.
func (b *Builder) defaultOut() error {
	wd, err := b.host.Getwd()
	if err != nil {
		return errors.RuntimeError("can't determine working directory").WithCause(err).Build()
	}
	if real, err := filepath.EvalSymlinks(wd); err == nil {
		wd = real
	}
	out := filepath.Join(wd, DefaultOutDir)
	if err := b.mount(filepath.Dir(out), OutPath, ModeDelegated); err != nil {
		return err
	}
	b.tool = append(b.tool, "--out", OutPath+"/"+DefaultOutDir)
	return nil
}

// mount records a bind mount. Binding the same container path twice is only
// allowed when the host path is identical; the duplicate is then dropped.
func (b *Builder) mount(host, container string, mode Mode) error {
	for _, m := range b.mounts {
		if m.ContainerPath != container {
			continue
		}
		if m.HostPath == host {
			return nil
		}
		return errors.ValidationError("conflicting paths for "+container).
			WithContext("existing", m.HostPath).
			WithContext(errors.ContextPath, host).
			Build()
	}
	m := Mount{HostPath: host, ContainerPath: container, Mode: mode}
	b.mounts = append(b.mounts, m)
	b.runtime = append(b.runtime, m.Args()...)
	b.logger.Debug("Declared mount", logfields.Mount(m.String()))
	return nil
}

// absolute anchors path at the host's working directory.
func (b *Builder) absolute(path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	wd, err := b.host.Getwd()
	if err != nil {
		return "", errors.RuntimeError("can't determine working directory").WithCause(err).Build()
	}
	return filepath.Join(wd, path), nil
}

// realPath resolves symlinks in path, failing with NotFound when it does not exist.
func (b *Builder) realPath(flag, path string) (string, error) {
	abs, err := b.absolute(path)
	if err != nil {
		return "", err
	}
	real, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", errors.NotFound(flag, path).WithCause(err).Build()
	}
	return real, nil
}

func (b *Builder) homeFile(elem ...string) (string, bool) {
	home, err := b.host.HomeDir()
	if err != nil || home == "" {
		return "", false
	}
	path := filepath.Join(append([]string{home}, elem...)...)
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}
