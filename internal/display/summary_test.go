package display

import (
	"bytes"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dando385/electrum-bench/internal/bench"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

func TestSummaryFormatter(t *testing.T) {
	runs := []bench.Run{
		{
			Name:       bench.AddressPassName,
			Unit:       "addresses",
			Requested:  100,
			Available:  3,
			SampleSize: 3,
			Successes:  2,
			Failures:   1,
			Duration:   90 * time.Millisecond,
		},
		{
			Name:      bench.TransactionPassName,
			Unit:      "transactions",
			Requested: 100,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewSummaryFormatter("tcp://h:1", runs...).Format(&buf))
	out := buf.String()

	assert.Contains(t, out, "Server: tcp://h:1")
	assert.Contains(t, out, "Address UTXO Lookup")
	assert.Contains(t, out, "Transaction Fetch")
	assert.Contains(t, out, "30ms")
	assert.Contains(t, out, "n/a")
	assert.NotContains(t, out, "interrupted")
}

func TestSummaryFormatterInterrupted(t *testing.T) {
	run := bench.Run{
		Name:        bench.TransactionPassName,
		Unit:        "transactions",
		Requested:   100,
		Available:   50,
		SampleSize:  7,
		Successes:   7,
		Duration:    time.Second,
		Interrupted: true,
	}

	var buf bytes.Buffer
	require.NoError(t, NewSummaryFormatter("", run).Format(&buf))
	out := buf.String()

	assert.Contains(t, out, "7/100")
	assert.Contains(t, out, "Transaction Fetch interrupted after 7 of 50 transactions")
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{1234567890 * time.Nanosecond, "1.235s"},
		{12345678 * time.Nanosecond, "12.35ms"},
		{512 * time.Microsecond, "512µs"},
		{0, "0s"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.in))
		})
	}
}

func TestColorHelpersWithoutColor(t *testing.T) {
	assert.Equal(t, "0", ColorFailures(0))
	assert.Equal(t, "4", ColorFailures(4))
	assert.Equal(t, "250ms", ColorLatency(250*time.Millisecond))
}
