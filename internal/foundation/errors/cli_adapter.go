package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// CLIErrorAdapter handles error presentation and exit code determination for CLI applications.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
	out     io.Writer
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
		out:     os.Stderr,
	}
}

// WithOutput redirects user-facing messages (stderr by default).
func (a *CLIErrorAdapter) WithOutput(w io.Writer) *CLIErrorAdapter {
	a.out = w
	return a
}

// ExitCodeFor determines the appropriate exit code for an error.
//
// Subprocess failures propagate the child's exit code verbatim; argument
// errors, interruptions and everything else exit with 1.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	if code, ok := ExitCode(err); ok {
		return code
	}
	return 1
}

// FormatError formats an error for user-friendly display. Interruptions
// and expected exits produce no message.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil || IsSilent(err) {
		return ""
	}

	if classified, ok := AsClassified(err); ok {
		return a.formatClassified(classified)
	}

	return fmt.Sprintf("Error: %v", err)
}

func (a *CLIErrorAdapter) formatClassified(err *ClassifiedError) string {
	if a.verbose {
		return err.Error()
	}

	switch err.Category() {
	case CategoryValidation, CategoryNotFound, CategoryConfig:
		return err.Message()
	case CategoryBuild:
		if code, ok := err.Context().GetInt(ContextExitCode); ok {
			return fmt.Sprintf("%s (exit code %d)", err.Message(), code)
		}
		return err.Message()
	default:
		if err.Cause() != nil {
			return fmt.Sprintf("%s: %s: %v", err.Category(), err.Message(), err.Cause())
		}
		return fmt.Sprintf("%s: %s", err.Category(), err.Message())
	}
}

// Report logs and prints an error and returns the exit code the process should use.
func (a *CLIErrorAdapter) Report(err error) int {
	if err == nil {
		return 0
	}

	if a.shouldLog(err) {
		a.logError(err)
	}
	if message := a.FormatError(err); message != "" {
		fmt.Fprintln(a.out, message)
	}
	return a.ExitCodeFor(err)
}

// HandleError processes an error and exits the program with appropriate code.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}
	os.Exit(a.Report(err))
}

func (a *CLIErrorAdapter) shouldLog(err error) bool {
	if IsSilent(err) {
		return false
	}
	if a.verbose {
		return true
	}
	if classified, ok := AsClassified(err); ok {
		return classified.Category() == CategoryInternal ||
			classified.Category() == CategoryRuntime
	}
	return true
}

func (a *CLIErrorAdapter) logError(err error) {
	if classified, ok := AsClassified(err); ok {
		level := a.slogLevelFromSeverity(classified.Severity())
		attrs := []slog.Attr{
			slog.String("category", string(classified.Category())),
		}
		for k, v := range classified.Context() {
			attrs = append(attrs, slog.Any(k, v))
		}
		if classified.Cause() != nil {
			attrs = append(attrs, slog.String("cause", classified.Cause().Error()))
		}
		a.logger.LogAttrs(context.Background(), level, classified.Message(), attrs...)
		return
	}

	a.logger.Error("Unclassified error", "error", err)
}

func (a *CLIErrorAdapter) slogLevelFromSeverity(severity ErrorSeverity) slog.Level {
	switch severity {
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarning:
		return slog.LevelWarn
	case SeverityError, SeverityFatal:
		return slog.LevelError
	default:
		return slog.LevelError
	}
}
