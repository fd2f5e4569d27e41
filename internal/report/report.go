// Package report renders a Linter's collected violations as the tool's
// one user-facing text artifact: a fixed banner, a numbered list (or a
// clean message when there is nothing to report), and a fixed footer.
// It has no knowledge of how violations were produced.
package report

import (
	"fmt"
	"io"
)

const (
	header    = "=== Verilog Lint Report ==="
	cleanLine = "No violations found."
	footer    = "=== End of Report ==="
)

// Print writes violations to w in the fixed banner/list/footer shape.
// violations is printed in the order given — callers own ordering and
// duplicate policy; this package never sorts or dedups.
func Print(w io.Writer, violations []string) error {
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}

	if len(violations) == 0 {
		if _, err := fmt.Fprintln(w, cleanLine); err != nil {
			return err
		}
	} else {
		for i, v := range violations {
			if _, err := fmt.Fprintf(w, "[%d] %s\n", i+1, v); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintln(w, footer)
	return err
}
