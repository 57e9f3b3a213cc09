// Package metrics exposes engine activity to Prometheus. Components take a
// Recorder; NoopRecorder is used when metrics are not configured.
package metrics

import "time"

// Result labels for command counters.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Recorder receives engine observations.
type Recorder interface {
	ObserveCommand(op, result string, d time.Duration)
	SetWindows(managed, visible, minimised int)
	IncSinkError(sink string)
}

// NoopRecorder discards everything.
type NoopRecorder struct{}

func (NoopRecorder) ObserveCommand(string, string, time.Duration) {}
func (NoopRecorder) SetWindows(int, int, int)                     {}
func (NoopRecorder) IncSinkError(string)                          {}
