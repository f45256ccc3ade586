package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyStage      = "stage"
	KeyPath       = "path"
	KeyMount      = "mount"
	KeyFlag       = "flag"
	KeyImage      = "image"
	KeyProgram    = "program"
	KeyArgs       = "args"
	KeyExitCode   = "exit_code"
	KeyLines      = "lines"
	KeyURL        = "url"
	KeyCommit     = "commit"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Mount(m string) slog.Attr        { return slog.String(KeyMount, m) }
func Flag(f string) slog.Attr         { return slog.String(KeyFlag, f) }
func Image(i string) slog.Attr        { return slog.String(KeyImage, i) }
func Program(p string) slog.Attr      { return slog.String(KeyProgram, p) }
func Args(a []string) slog.Attr       { return slog.Any(KeyArgs, a) }
func ExitCode(c int) slog.Attr        { return slog.Int(KeyExitCode, c) }
func Lines(n int) slog.Attr           { return slog.Int(KeyLines, n) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Commit(c string) slog.Attr       { return slog.String(KeyCommit, c) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Duration(d time.Duration) slog.Attr {
	return DurationMS(float64(d.Microseconds()) / 1000)
}
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
