// Package bench runs timed, strictly sequential sampling passes against a
// remote server. Calls inside a pass are never parallelized: the pass
// duration is the serialized request latency being measured.
package bench

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dando385/electrum-bench/internal/stats"
)

// Logging cadence used by NewSampler.
const (
	DefaultProgressEvery = 100
	DefaultDetailLimit   = 5
)

// Operation performs one remote call for one input. It must not return
// errors out of band; every failure is reported through the Outcome.
type Operation func(ctx context.Context, input string) Outcome

// Pass describes one sampling pass.
type Pass struct {
	Name       string // e.g. "Address UTXO Lookup"
	Item       string // singular noun for log lines, e.g. "address"
	Unit       string // plural noun for reports, e.g. "addresses"
	Inputs     []string
	SampleSize int
	Op         Operation
}

// Run is the aggregate of a completed pass.
type Run struct {
	Name string
	Item string
	Unit string

	Requested int // sample size asked for
	Available int // length of the input list
	// SampleSize is the number of inputs actually attempted:
	// min(Requested, Available), or fewer if the pass was interrupted.
	SampleSize int

	Successes     int
	Failures      int
	InvalidInputs int // failures of kind FailureInvalidInput, included in Failures

	Duration    time.Duration
	Interrupted bool
}

// Average returns the mean duration per attempted input. It reports false
// for an empty pass.
func (r Run) Average() (time.Duration, bool) {
	return stats.Average(r.Duration, r.SampleSize)
}

// RemoteFailures returns the failures that reached the server.
func (r Run) RemoteFailures() int { return r.Failures - r.InvalidInputs }

// EffectiveCount returns how many inputs a pass processes.
func EffectiveCount(sampleSize, available int) int {
	if sampleSize < 0 {
		return 0
	}
	return min(sampleSize, available)
}

// Sampler executes passes.
type Sampler struct {
	log logrus.FieldLogger

	// ProgressEvery logs a progress line every N inputs; 0 disables.
	ProgressEvery int
	// DetailLimit logs the outcome of the first N inputs of each pass at
	// info level. Later failures are logged at debug level.
	DetailLimit int
}

// NewSampler creates a sampler with the default logging cadence.
func NewSampler(log logrus.FieldLogger) *Sampler {
	return &Sampler{
		log:           log.WithField("component", "sampler"),
		ProgressEvery: DefaultProgressEvery,
		DetailLimit:   DefaultDetailLimit,
	}
}

// Run executes p over the first EffectiveCount inputs in order, one call at
// a time. Failures are counted and the loop always moves on to the next
// input. If ctx is cancelled the pass stops before the next input and the
// returned Run is marked Interrupted. An input whose call fails after ctx was
// cancelled is not counted.
func (s *Sampler) Run(ctx context.Context, p Pass) Run {
	n := EffectiveCount(p.SampleSize, len(p.Inputs))
	inputs := p.Inputs[:n]

	run := Run{
		Name:      p.Name,
		Item:      p.Item,
		Unit:      p.Unit,
		Requested: p.SampleSize,
		Available: len(p.Inputs),
	}

	log := s.log.WithField("pass", p.Name)
	log.WithFields(logrus.Fields{
		"requested": p.SampleSize,
		"available": len(p.Inputs),
	}).Infof("Starting %s benchmark with %d %s", p.Name, n, p.Unit)

	start := time.Now()
	for i, input := range inputs {
		if ctx.Err() != nil {
			run.Interrupted = true
			break
		}

		if s.ProgressEvery > 0 && i%s.ProgressEvery == 0 {
			log.Infof("Processing %s %d/%d", p.Item, i, n)
		}

		out := p.Op(ctx, input)
		if !out.OK() && ctx.Err() != nil {
			// Cut short by cancellation, not answered by the server.
			run.Interrupted = true
			break
		}
		run.SampleSize++

		if out.OK() {
			run.Successes++
		} else {
			run.Failures++
			if out.Kind == FailureInvalidInput {
				run.InvalidInputs++
			}
		}

		s.logOutcome(log, i, p.Item, input, out)
	}
	run.Duration = time.Since(start)

	log.WithFields(logrus.Fields{
		"duration":       run.Duration,
		"successes":      run.Successes,
		"failures":       run.Failures,
		"invalid_inputs": run.InvalidInputs,
		"interrupted":    run.Interrupted,
	}).Infof("%s benchmark completed in %s", p.Name, run.Duration)

	return run
}

func (s *Sampler) logOutcome(log logrus.FieldLogger, i int, item, input string, out Outcome) {
	entry := log.WithFields(logrus.Fields{
		"index": i,
		item:    input,
	})

	switch {
	case i < s.DetailLimit && out.OK():
		entry.Info(out.Detail)
	case i < s.DetailLimit:
		entry.WithError(out.Err).Warnf("Lookup failed (%s)", out.Kind)
	case !out.OK():
		entry.WithError(out.Err).Debugf("Lookup failed (%s)", out.Kind)
	}
}
