package supervisor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"git.home.luguber.info/inful/docbuild/internal/logfields"
)

// lineBuffer lets the reader run slightly ahead of a slow consumer.
const lineBuffer = 64

// Process is a started child.
type Process struct {
	cmd   *exec.Cmd
	name  string
	lines chan string
	stdin io.WriteCloser

	closeOnce sync.Once
	closeErr  error
	exited    chan struct{}
	readErr   error
}

// Starter starts a supervised process. Start satisfies it; tests substitute
// their own.
type Starter func(ctx context.Context, name string, args []string, in Input) (*Process, error)

// Start launches name with args. stdout and stderr share one pipe, so lines
// keep the order the child wrote them in.
func Start(ctx context.Context, name string, args []string, in Input) (*Process, error) {
	cmd := exec.Command(name, args...)

	p := &Process{
		cmd:    cmd,
		name:   name,
		lines:  make(chan string, lineBuffer),
		exited: make(chan struct{}),
	}

	if in.pipe {
		w, err := cmd.StdinPipe()
		if err != nil {
			return nil, fmt.Errorf("stdin pipe for %s: %w", name, err)
		}
		p.stdin = w
	} else {
		cmd.Stdin = in.reader
	}

	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("output pipe for %s: %w", name, err)
	}
	cmd.Stdout = pw
	cmd.Stderr = pw

	slog.Debug("Starting process", logfields.Program(name), logfields.Args(args))
	if err := cmd.Start(); err != nil {
		_ = pr.Close()
		_ = pw.Close()
		if p.stdin != nil {
			_ = p.stdin.Close()
		}
		return nil, fmt.Errorf("start %s: %w", name, err)
	}
	// The child holds its own copy of the write end.
	_ = pw.Close()

	go p.read(pr)
	go p.watch(ctx)
	return p, nil
}

// Lines yields each output line without its line terminator. The channel is
// closed once the child and every process sharing its output have closed it.
func (p *Process) Lines() <-chan string {
	return p.lines
}

// Stdin returns the writable end of the stdin pipe, or nil when the process
// was started with FromReader.
func (p *Process) Stdin() io.Writer {
	if p.stdin == nil {
		return nil
	}
	return p.stdin
}

// CloseInput closes the stdin pipe, signalling the child to finish. It is
// safe to call more than once.
func (p *Process) CloseInput() error {
	if p.stdin == nil {
		return nil
	}
	p.closeOnce.Do(func() {
		p.closeErr = p.stdin.Close()
		if errors.Is(p.closeErr, os.ErrClosed) {
			p.closeErr = nil
		}
	})
	return p.closeErr
}

// Pid returns the child's process id.
func (p *Process) Pid() int {
	return p.cmd.Process.Pid
}

// Wait blocks until the child exits and returns its exit code. A child
// terminated by a signal reports 1.
func (p *Process) Wait() (int, error) {
	err := p.cmd.Wait()
	close(p.exited)

	state := p.cmd.ProcessState
	if state == nil {
		return 1, fmt.Errorf("wait %s: %w", p.name, err)
	}
	code := state.ExitCode()
	if code < 0 {
		slog.Warn("Process terminated by signal", logfields.Program(p.name), "state", state.String())
		code = 1
	}
	return code, nil
}

// ReadErr reports a failure reading the output pipe, if any.
func (p *Process) ReadErr() error {
	return p.readErr
}

func (p *Process) read(r *os.File) {
	defer close(p.lines)
	defer func() { _ = r.Close() }()

	// Decode as UTF-8 whatever the host locale; invalid bytes become U+FFFD.
	br := bufio.NewReader(transform.NewReader(r, unicode.UTF8.NewDecoder()))
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			p.lines <- trimEOL(line)
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				p.readErr = err
			}
			return
		}
	}
}

func (p *Process) watch(ctx context.Context) {
	select {
	case <-ctx.Done():
		slog.Debug("Closing stdin of supervised process", logfields.Program(p.name))
		_ = p.CloseInput()
	case <-p.exited:
	}
}

func trimEOL(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
