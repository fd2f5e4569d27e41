package report

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrintCleanReport(t *testing.T) {
	var buf bytes.Buffer
	if err := Print(&buf, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, header) || !strings.Contains(out, cleanLine) || !strings.Contains(out, footer) {
		t.Fatalf("got %q", out)
	}
}

func TestPrintNumbersViolationsFromOne(t *testing.T) {
	var buf bytes.Buffer
	violations := []string{"first thing", "second thing"}
	if err := Print(&buf, violations); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "[1] first thing") || !strings.Contains(out, "[2] second thing") {
		t.Fatalf("got %q", out)
	}
	if strings.Contains(out, cleanLine) {
		t.Fatalf("clean message should not appear alongside violations: %q", out)
	}
}

func TestPrintPreservesOrderAndDuplicates(t *testing.T) {
	var buf bytes.Buffer
	violations := []string{"dup", "dup", "other"}
	Print(&buf, violations)
	out := buf.String()
	firstIdx := strings.Index(out, "[1] dup")
	secondIdx := strings.Index(out, "[2] dup")
	thirdIdx := strings.Index(out, "[3] other")
	if firstIdx == -1 || secondIdx == -1 || thirdIdx == -1 || !(firstIdx < secondIdx && secondIdx < thirdIdx) {
		t.Fatalf("expected duplicates preserved in order, got %q", out)
	}
}
