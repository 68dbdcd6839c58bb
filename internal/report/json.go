package report

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"
)

// Millis marshals a time.Duration as fractional milliseconds, rounded to
// the microsecond.
type Millis time.Duration

func (d Millis) MarshalJSON() ([]byte, error) {
	ms := float64(d) / float64(time.Millisecond)
	return json.Marshal(math.Round(ms*1000) / 1000)
}

// RunEntry is one pass in a JSON report.
type RunEntry struct {
	Name          string  `json:"name"`
	Unit          string  `json:"unit"`
	Requested     int     `json:"requested"`
	Available     int     `json:"available"`
	SampleSize    int     `json:"sample_size"`
	Successes     int     `json:"successes"`
	Failures      int     `json:"failures"`
	InvalidInputs int     `json:"invalid_inputs"`
	TotalMS       Millis  `json:"total_ms"`
	AverageMS     *Millis `json:"average_ms"` // null for an empty pass
}

// Document is the JSON-serializable form of a Report.
type Document struct {
	Timestamp  time.Time  `json:"timestamp"`
	RunID      string     `json:"run_id"`
	Server     string     `json:"server"`
	ScriptMode string     `json:"script_mode,omitempty"`
	Results    []RunEntry `json:"results"`
}

// NewDocument converts r for JSON output.
func NewDocument(r Report) Document {
	doc := Document{
		Timestamp:  r.Timestamp,
		RunID:      r.RunID,
		Server:     r.Server,
		ScriptMode: r.ScriptMode,
	}

	for _, run := range r.Runs() {
		entry := RunEntry{
			Name:          run.Name,
			Unit:          run.Unit,
			Requested:     run.Requested,
			Available:     run.Available,
			SampleSize:    run.SampleSize,
			Successes:     run.Successes,
			Failures:      run.Failures,
			InvalidInputs: run.InvalidInputs,
			TotalMS:       Millis(run.Duration),
		}
		if avg, ok := run.Average(); ok {
			ms := Millis(avg)
			entry.AverageMS = &ms
		}
		doc.Results = append(doc.Results, entry)
	}

	return doc
}

// WriteJSON pretty-prints data as JSON into a timestamped file in dir.
//
// Parameters:
//   - dir: Target directory, created if it doesn't exist
//   - prefix: Filename prefix (e.g., "electrum-bench")
//   - data: Any JSON-marshalable value to write
//
// Returns:
//   - string: The path to the written file
//   - error: Any error creating the directory, marshaling JSON, or writing the file
//
// Filenames follow: {prefix}-{YYYYMMDD-HHMMSS}.json
func WriteJSON(dir, prefix string, data any) (string, error) {
	if prefix == "" {
		prefix = "report"
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create reports directory: %w", err)
	}

	ts := time.Now().Format("20060102-150405")
	path := filepath.Join(dir, fmt.Sprintf("%s-%s.json", prefix, ts))

	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal JSON: %w", err)
	}

	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	return path, nil
}
