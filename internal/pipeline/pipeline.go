// Package pipeline wires the lex/parse/lint/report stages into the one
// session lifecycle spec.md §5 describes: one arena, one parse, one
// linter, no shared state across runs. It is the layer cmd/vlint calls
// into, kept separate from main() so internal/e2e can drive the same
// path without spawning a process.
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/robert-at-pretension-io/vlint/internal/ast"
	"github.com/robert-at-pretension-io/vlint/internal/lint"
	"github.com/robert-at-pretension-io/vlint/internal/parser"
	"github.com/robert-at-pretension-io/vlint/internal/report"
	"github.com/robert-at-pretension-io/vlint/internal/trace"
)

// Result is one session's outcome: the module the parser produced (nil
// on parse failure) and the violations the linter collected.
type Result struct {
	Module     *ast.Module
	Violations []string
}

// Run parses src as one Verilog module and lints it, recording phase
// timings to rec (a no-op *trace.Recorder is fine). It returns a
// *parser.SyntaxError unchanged on parse failure — the caller decides
// how to surface it, matching spec.md §7's split between fatal parse
// errors and collected lint violations.
func Run(src string, rec *trace.Recorder) (*Result, error) {
	arena := ast.NewArena()

	parseStart := time.Now()
	module, err := parser.Parse(src, arena)
	rec.Since("lex_parse", parseStart)
	if err != nil {
		return nil, err
	}

	lintStart := time.Now()
	linter := lint.New()
	linter.AnalyzeModule(module)
	rec.Since("lint", lintStart)

	return &Result{Module: module, Violations: linter.Violations()}, nil
}

// Report prints res's violations to w in the fixed banner format,
// recording the report phase's duration to rec.
func Report(w io.Writer, res *Result, rec *trace.Recorder) error {
	start := time.Now()
	err := report.Print(w, res.Violations)
	rec.Since("report", start)
	return err
}

// RunAndReport is the whole per-file session: parse, lint, print. On
// parse failure it returns the error unprinted so the caller can format
// it as spec.md §7's one-line stderr diagnostic instead of a report.
func RunAndReport(w io.Writer, src string, rec *trace.Recorder) (*Result, error) {
	res, err := Run(src, rec)
	if err != nil {
		return nil, err
	}
	if err := Report(w, res, rec); err != nil {
		return res, fmt.Errorf("writing report: %w", err)
	}
	return res, nil
}
