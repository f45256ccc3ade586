// Package metrics records how long each stage of a docbuild run took and how
// it ended.
//
// Components receive a Recorder and default to NoopRecorder, so nothing needs
// a nil check:
//
//	o := orchestrator.New(cfg, orchestrator.WithRecorder(metrics.NoopRecorder{}))
//
// When a metrics file is configured the CLI swaps in a PrometheusRecorder and
// writes its registry at the end of the run in the node-exporter textfile
// format, so CI hosts can pick up build durations without a long-running
// endpoint.
package metrics
