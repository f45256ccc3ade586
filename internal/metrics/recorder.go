package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess     ResultLabel = "success"
	ResultFailed      ResultLabel = "failed"
	ResultInvalidArgs ResultLabel = "invalid_args"
	ResultCanceled    ResultLabel = "canceled"
)

// Stage names shared by recorders and log fields.
const (
	StageImage = "image"
	StagePlan  = "plan"
	StageBuild = "build"
)

// Recorder defines observability hooks for a run. Implementations may forward
// to Prometheus or anything else.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	AddOutputLines(stage string, n int)
	SetExitCode(code int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) IncStageResult(string, ResultLabel) {}
func (NoopRecorder) AddOutputLines(string, int) {}
func (NoopRecorder) SetExitCode(int) {}
