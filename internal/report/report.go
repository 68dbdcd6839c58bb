// Package report renders the results of a benchmark run: a human-readable
// text report that is overwritten on each run, and optional timestamped
// JSON reports for tracking results over time.
package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/dando385/electrum-bench/internal/bench"
)

// DefaultPath is the text report location used when none is configured.
const DefaultPath = "benchmark_results.txt"

// TimestampFormat is the layout of the report header timestamp (local time).
const TimestampFormat = "2006-01-02 15:04:05"

// Report is the outcome of one benchmark invocation. It is built once after
// both passes complete and never modified.
type Report struct {
	Timestamp   time.Time
	RunID       string
	Server      string
	ScriptMode  string
	Address     bench.Run
	Transaction bench.Run
}

// New stamps a report with the current time and a fresh run id.
func New(server, scriptMode string, address, transaction bench.Run) Report {
	return Report{
		Timestamp:   time.Now(),
		RunID:       uuid.NewString(),
		Server:      server,
		ScriptMode:  scriptMode,
		Address:     address,
		Transaction: transaction,
	}
}

// Runs returns both passes in execution order.
func (r Report) Runs() []bench.Run {
	return []bench.Run{r.Address, r.Transaction}
}
