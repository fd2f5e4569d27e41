package trace

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDisabledRecorderIsNoop(t *testing.T) {
	r := New("")
	if r.Err() != nil {
		t.Fatalf("unexpected error: %v", r.Err())
	}
	r.Record("lex_parse", time.Now(), time.Millisecond)
	r.Close()
}

func TestNilRecorderIsNoop(t *testing.T) {
	var r *Recorder
	if r.Err() != nil {
		t.Fatalf("nil recorder should report no error")
	}
	r.Record("lint", time.Now(), time.Millisecond)
	r.Close()
}

func TestRecordWritesOneJSONLinePerPhase(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trace.jsonl")

	r := New(path)
	if r.Err() != nil {
		t.Fatalf("unexpected error: %v", r.Err())
	}
	start := time.Now()
	r.Record("lex_parse", start, 2*time.Millisecond)
	r.Record("lint", start.Add(2*time.Millisecond), time.Millisecond)
	r.Close()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read trace file: %v", err)
	}
	lines := bytes.Split(bytes.TrimSpace(raw), []byte("\n"))
	if len(lines) != 2 {
		t.Fatalf("expected 2 events, got %d", len(lines))
	}

	var ev event
	if err := json.Unmarshal(lines[0], &ev); err != nil {
		t.Fatalf("parse event: %v", err)
	}
	if ev.Phase != "lex_parse" || ev.DurationMS <= 0 {
		t.Fatalf("got %+v", ev)
	}
}

func TestSinceRecordsElapsedDuration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trace.jsonl")
	r := New(path)
	start := time.Now()
	time.Sleep(time.Millisecond)
	r.Since("report", start)
	r.Close()

	raw, _ := os.ReadFile(path)
	var ev event
	if err := json.Unmarshal(bytes.TrimSpace(raw), &ev); err != nil {
		t.Fatalf("parse event: %v", err)
	}
	if ev.Phase != "report" || ev.DurationMS <= 0 {
		t.Fatalf("got %+v", ev)
	}
}
