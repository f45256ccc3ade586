package moderator

import (
	"fmt"
	"io"
	"log/slog"
)

// Sink receives routed output lines.
type Sink interface {
	Info(line string)
	Error(line string)
	Debug(line string)
}

// WriterSink writes info lines to Out, error lines to Err and debug lines to
// Logger at debug level.
type WriterSink struct {
	Out    io.Writer
	Err    io.Writer
	Logger *slog.Logger
}

func (s WriterSink) Info(line string)  { _, _ = fmt.Fprintln(s.Out, line) }
func (s WriterSink) Error(line string) { _, _ = fmt.Fprintln(s.Err, line) }

func (s WriterSink) Debug(line string) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug(line)
}
