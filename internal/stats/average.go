// Package stats computes summary figures from benchmark timings.
package stats

import "time"

// NotApplicable is the rendering used wherever an average does not exist.
const NotApplicable = "n/a"

// Average returns total divided by count.
//
// The second return value is false when count is zero or negative: a pass
// over an empty input list has a total but no per-item average, and callers
// must render that case explicitly instead of dividing.
func Average(total time.Duration, count int) (time.Duration, bool) {
	if count <= 0 {
		return 0, false
	}
	return total / time.Duration(count), true
}
