// Package trace records per-phase timing as newline-delimited JSON, in
// the same shape the teacher's internal/indexer timing recorder uses.
// It is diagnostic-only: nothing else in the pipeline reads its output,
// and it is a no-op unless a trace file path is configured.
package trace

import (
	"encoding/json"
	"os"
	"sync"
	"time"
)

type event struct {
	Phase      string  `json:"phase"`
	StartMS    float64 `json:"start_ms"`
	DurationMS float64 `json:"duration_ms"`
	EndMS      float64 `json:"end_ms"`
}

// Recorder writes one JSON event per Record call to an underlying file.
// A nil *Recorder and a Recorder built with an empty path are both
// silent no-ops, so callers never need to branch on whether tracing is
// on.
type Recorder struct {
	start time.Time
	mu    sync.Mutex
	file  *os.File
	enc   *json.Encoder
	err   error
}

// New opens path for writing and returns a Recorder that timestamps
// events relative to now. If path is empty, the returned Recorder is
// disabled and every Record call is a no-op.
func New(path string) *Recorder {
	r := &Recorder{start: time.Now()}
	if path == "" {
		return r
	}
	f, err := os.Create(path)
	if err != nil {
		r.err = err
		return r
	}
	r.file = f
	r.enc = json.NewEncoder(f)
	return r
}

// Err reports a failure to open the trace file, if New's Create call failed.
func (r *Recorder) Err() error {
	if r == nil {
		return nil
	}
	return r.err
}

// Close releases the underlying file. Safe to call on a nil or disabled Recorder.
func (r *Recorder) Close() {
	if r == nil || r.file == nil {
		return
	}
	_ = r.file.Close()
}

// Record appends one timing event for phase, spanning [start, start+duration).
func (r *Recorder) Record(phase string, start time.Time, duration time.Duration) {
	if r == nil || r.enc == nil {
		return
	}
	startMS := msFromDuration(start.Sub(r.start))
	durationMS := msFromDuration(duration)
	e := event{Phase: phase, StartMS: startMS, DurationMS: durationMS, EndMS: startMS + durationMS}

	r.mu.Lock()
	defer r.mu.Unlock()
	_ = r.enc.Encode(e)
}

// Since is a convenience for the common Record(phase, start, time.Since(start)) pattern.
func (r *Recorder) Since(phase string, start time.Time) {
	r.Record(phase, start, time.Since(start))
}

func msFromDuration(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1_000_000.0
}
