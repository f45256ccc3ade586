package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg           *prom.Registry
	stageDuration *prom.HistogramVec
	stageResults  *prom.CounterVec
	outputLines   *prom.CounterVec
	exitCode      prom.Gauge
}

// NewPrometheusRecorder constructs and registers the metrics on reg (a fresh
// registry when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{reg: reg}
	pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: "docbuild",
		Name:      "stage_duration_seconds",
		Help:      "Duration of individual run stages",
		Buckets:   []float64{0.5, 1, 3, 10, 30, 60, 180, 600, 1800},
	}, []string{"stage"})
	pr.stageResults = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "docbuild",
		Name:      "stage_results_total",
		Help:      "Stage result counts by outcome",
	}, []string{"stage", "result"})
	pr.outputLines = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "docbuild",
		Name:      "output_lines_total",
		Help:      "Output lines read from supervised processes",
	}, []string{"stage"})
	pr.exitCode = prom.NewGauge(prom.GaugeOpts{
		Namespace: "docbuild",
		Name:      "last_exit_code",
		Help:      "Exit code of the last run",
	})
	reg.MustRegister(pr.stageDuration, pr.stageResults, pr.outputLines, pr.exitCode)
	return pr
}

// Registry exposes the underlying registry.
func (p *PrometheusRecorder) Registry() *prom.Registry {
	return p.reg
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil || p.stageResults == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) AddOutputLines(stage string, n int) {
	if p == nil || p.outputLines == nil || n <= 0 {
		return
	}
	p.outputLines.WithLabelValues(stage).Add(float64(n))
}

func (p *PrometheusRecorder) SetExitCode(code int) {
	if p == nil || p.exitCode == nil {
		return
	}
	p.exitCode.Set(float64(code))
}

// WriteTextfile writes the registry to path in the text exposition format.
// The write goes through a temporary file and a rename, so collectors never
// see a partial file.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	return prom.WriteToTextfile(path, p.reg)
}
