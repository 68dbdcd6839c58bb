package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/rodaine/table"

	"github.com/dando385/electrum-bench/internal/bench"
	"github.com/dando385/electrum-bench/internal/stats"
)

// SummaryFormatter renders the end-of-run table.
type SummaryFormatter struct {
	Server string
	Runs   []bench.Run
}

// NewSummaryFormatter creates a formatter for the given passes.
func NewSummaryFormatter(server string, runs ...bench.Run) *SummaryFormatter {
	return &SummaryFormatter{Server: server, Runs: runs}
}

// Format writes the summary table to w.
func (f *SummaryFormatter) Format(w io.Writer) error {
	fmt.Fprintln(w)
	fmt.Fprintln(w, bold("Electrum Benchmark Summary"))
	if f.Server != "" {
		fmt.Fprintf(w, "  Server: %s\n", f.Server)
	}
	fmt.Fprintln(w, strings.Repeat("─", 78))

	headerFmt := color.New(color.FgCyan, color.Underline).SprintfFunc()
	tbl := table.New("Benchmark", "Samples", "OK", "Failed", "Invalid", "Total", "Avg")
	tbl.WithHeaderFormatter(headerFmt)
	tbl.WithWriter(w)

	for _, r := range f.Runs {
		avg := dim(stats.NotApplicable)
		if d, ok := r.Average(); ok {
			avg = ColorLatency(d)
		}

		samples := fmt.Sprintf("%d", r.SampleSize)
		if r.SampleSize < r.Requested {
			samples = fmt.Sprintf("%d/%d", r.SampleSize, r.Requested)
		}

		tbl.AddRow(
			r.Name,
			samples,
			r.Successes,
			ColorFailures(r.Failures),
			r.InvalidInputs,
			FormatDuration(r.Duration),
			avg,
		)
	}

	tbl.Print()
	fmt.Fprintln(w)

	for _, r := range f.Runs {
		if r.Interrupted {
			fmt.Fprintf(w, "%s %s interrupted after %d of %d %s\n",
				yellow("⚠"), r.Name, r.SampleSize, EffectiveCount(r), r.Unit)
		}
	}
	return nil
}

// EffectiveCount is the number of inputs r would have attempted had it run
// to completion.
func EffectiveCount(r bench.Run) int {
	return bench.EffectiveCount(r.Requested, r.Available)
}
