package harness

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/ticktock/internal/testutil"
	"github.com/roach88/ticktock/internal/ticktock"
)

// Harness replays scenario steps against a timer on a manual clock.
type Harness struct {
	clock  *testutil.ManualClock
	timer  *ticktock.IntervalTimer
	logger *slog.Logger
}

// RunOption configures Run.
type RunOption func(*runConfig)

type runConfig struct {
	logger  *slog.Logger
	pairing *ticktock.Pairing
	strict  *bool
}

// WithRunLogger routes timer and harness logs to logger. By default they
// are discarded.
func WithRunLogger(l *slog.Logger) RunOption {
	return func(c *runConfig) { c.logger = l }
}

// WithPairingOverride replaces the scenario's pairing mode.
func WithPairingOverride(p ticktock.Pairing) RunOption {
	return func(c *runConfig) { c.pairing = &p }
}

// WithStrictOverride replaces the scenario's strict flag.
func WithStrictOverride(strict bool) RunOption {
	return func(c *runConfig) { c.strict = &strict }
}

// Run executes a scenario and returns the result.
//
// Each run gets a fresh timer and a clock starting at 0. A finalize error
// is not a Run error: it is recorded in the result and compared with the
// expect clause. Run only fails when the scenario itself is unusable.
func Run(scenario *Scenario, opts ...RunOption) (*Result, error) {
	cfg := &runConfig{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	pairing, err := scenario.PairingMode()
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
	}
	if cfg.pairing != nil {
		pairing = *cfg.pairing
	}
	strict := scenario.Strict
	if cfg.strict != nil {
		strict = *cfg.strict
	}

	clock := testutil.NewManualClock()
	h := &Harness{
		clock: clock,
		timer: ticktock.New(
			ticktock.WithClock(clock),
			ticktock.WithPairing(pairing),
			ticktock.WithStrict(strict),
			ticktock.WithLogger(cfg.logger),
		),
		logger: cfg.logger,
	}

	if err := h.executeSteps(scenario.Steps); err != nil {
		return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
	}

	result := NewResult()
	table, finalizeErr := h.timer.Finalize()
	result.Table = table
	result.Err = finalizeErr
	if finalizeErr != nil {
		result.Error = snapshotError(finalizeErr)
	} else {
		result.Rows = table.Records()
	}

	for _, msg := range CheckExpect(scenario.Expect, result) {
		result.AddError(msg)
	}

	h.logger.Debug("scenario finished",
		"scenario", scenario.Name,
		"steps", len(scenario.Steps),
		"pass", result.Pass,
	)
	return result, nil
}

func (h *Harness) executeSteps(steps []Step) error {
	for i, step := range steps {
		if ticktock.Instant(step.At) < h.clock.Now() {
			return fmt.Errorf("steps[%d]: at %d is before clock reading %d", i, step.At, h.clock.Now())
		}
		h.clock.Set(ticktock.Instant(step.At))

		var err error
		if step.Kind() == ticktock.KindTick {
			err = h.timer.Tick(step.Name())
		} else {
			err = h.timer.Tock(step.Name())
		}
		if err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
	}
	return nil
}
