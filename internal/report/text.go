package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dando385/electrum-bench/internal/bench"
	"github.com/dando385/electrum-bench/internal/stats"
)

// Render formats r as the text report.
func Render(r Report) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Electrum Benchmark Results - %s\n", r.Timestamp.Local().Format(TimestampFormat))
	fmt.Fprintln(&buf, "--------------------------------------")
	if r.RunID != "" {
		fmt.Fprintf(&buf, "Run ID: %s\n", r.RunID)
	}
	if r.Server != "" {
		fmt.Fprintf(&buf, "Server: %s\n", r.Server)
	}
	if r.ScriptMode != "" {
		fmt.Fprintf(&buf, "Script Mode: %s\n", r.ScriptMode)
	}

	for _, run := range r.Runs() {
		fmt.Fprintln(&buf)
		renderRun(&buf, run)
	}

	return buf.Bytes()
}

func renderRun(w io.Writer, run bench.Run) {
	fmt.Fprintf(w, "%s:\n", run.Name)
	fmt.Fprintf(w, "  Sample Size: %d %s\n", run.SampleSize, run.Unit)
	fmt.Fprintf(w, "  Successful: %d\n", run.Successes)
	if run.InvalidInputs > 0 {
		fmt.Fprintf(w, "  Failed: %d (%d invalid input, %d remote)\n", run.Failures, run.InvalidInputs, run.RemoteFailures())
	} else {
		fmt.Fprintf(w, "  Failed: %d\n", run.Failures)
	}
	fmt.Fprintf(w, "  Total Time: %s\n", run.Duration)
	fmt.Fprintf(w, "  Average Time per %s: %s\n", capitalize(run.Item), FormatAverage(run))
}

// FormatAverage renders the per-item average of run, or stats.NotApplicable
// for an empty pass.
func FormatAverage(run bench.Run) string {
	avg, ok := run.Average()
	if !ok {
		return stats.NotApplicable
	}
	return avg.String()
}

func capitalize(s string) string {
	if s == "" {
		return "Item"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Write renders r to w.
func Write(w io.Writer, r Report) error {
	_, err := w.Write(Render(r))
	return err
}

// WriteFile writes the text report to path, replacing any previous content.
// Missing parent directories are created.
func WriteFile(path string, r Report) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}

	if err := Write(f, r); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
