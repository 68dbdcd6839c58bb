package display

import (
	"fmt"
	"time"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

// ColorLatency colors a per-item latency by how slow it is.
func ColorLatency(d time.Duration) string {
	s := FormatDuration(d)
	switch {
	case d < 100*time.Millisecond:
		return green(s)
	case d < 300*time.Millisecond:
		return yellow(s)
	default:
		return red(s)
	}
}

// ColorFailures renders a failure count, red when non-zero.
func ColorFailures(n int) string {
	if n == 0 {
		return green("0")
	}
	return red(fmt.Sprintf("%d", n))
}

// FormatDuration rounds d for display.
func FormatDuration(d time.Duration) string {
	switch {
	case d >= time.Second:
		return d.Round(time.Millisecond).String()
	case d >= time.Millisecond:
		return d.Round(10 * time.Microsecond).String()
	default:
		return d.String()
	}
}
