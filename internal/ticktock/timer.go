package ticktock

import "log/slog"

// State is the lifecycle state of an IntervalTimer.
type State int

const (
	// StateOpen accepts ticks and tocks.
	StateOpen State = iota
	// StateFinalized rejects every further call.
	StateFinalized
)

// String returns "open" or "finalized".
func (s State) String() string {
	if s == StateFinalized {
		return "finalized"
	}
	return "open"
}

// Option configures an IntervalTimer.
type Option func(*IntervalTimer)

// WithClock sets the clock used to stamp events.
func WithClock(c Clock) Option {
	return func(t *IntervalTimer) { t.clock = c }
}

// WithPairing selects the pairing mode. The default is PairingFIFO.
func WithPairing(p Pairing) Option {
	return func(t *IntervalTimer) { t.pairing = p }
}

// WithStrict makes unclosed ticks a finalize error instead of dropping them.
func WithStrict(strict bool) Option {
	return func(t *IntervalTimer) { t.strict = strict }
}

// WithLogger sets the logger used during finalize.
func WithLogger(l *slog.Logger) Option {
	return func(t *IntervalTimer) { t.logger = l }
}

// IntervalTimer records tick and tock events and reconciles them into a
// ResultTable.
//
// Not safe for concurrent use.
type IntervalTimer struct {
	clock   Clock
	pairing Pairing
	strict  bool
	logger  *slog.Logger

	events []Event
	state  State
}

// New creates an open timer. Without WithClock it reads a MonotonicClock.
func New(opts ...Option) *IntervalTimer {
	t := &IntervalTimer{
		pairing: PairingFIFO,
		events:  make([]Event, 0, 64),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.clock == nil {
		t.clock = NewMonotonicClock()
	}
	if t.logger == nil {
		t.logger = slog.Default()
	}
	return t
}

// Tick records the start of an interval named name.
// It may be called any number of times for the same name before a tock.
func (t *IntervalTimer) Tick(name string) error {
	return t.record(name, KindTick)
}

// Tock records the end of an interval named name. Whether a tick is pending
// for it is only checked by Finalize.
func (t *IntervalTimer) Tock(name string) error {
	return t.record(name, KindTock)
}

func (t *IntervalTimer) record(name string, kind EventKind) error {
	if t.state == StateFinalized {
		return &FinalizedError{Op: kind.String(), Ticker: name}
	}

	// Keep the append outside the measured span: tocks read the clock
	// first, ticks read it last.
	var at Instant
	if kind == KindTock {
		at = t.clock.Now()
	}
	t.events = append(t.events, Event{
		Name: name,
		Kind: kind,
		At:   at,
		Seq:  int64(len(t.events) + 1),
	})
	if kind == KindTick {
		t.events[len(t.events)-1].At = t.clock.Now()
	}
	return nil
}

// Finalize reconciles the recorded events and returns the result table.
//
// Finalize is one-shot: the timer moves to StateFinalized whether or not
// reconciliation succeeds, and the event log is released.
func (t *IntervalTimer) Finalize() (*ResultTable, error) {
	if t.state == StateFinalized {
		return nil, &FinalizedError{Op: "finalize"}
	}
	t.state = StateFinalized

	events := t.events
	t.events = nil

	table, err := Reconcile(events, ReconcileOptions{
		Pairing: t.pairing,
		Strict:  t.strict,
		Logger:  t.logger,
	})
	if err != nil {
		t.logger.Debug("finalize failed", "events", len(events), "error", err)
		return nil, err
	}

	t.logger.Debug("timer finalized",
		"events", len(events),
		"records", table.Len(),
		"pairing", t.pairing.String(),
	)
	return table, nil
}

// State returns the timer's lifecycle state.
func (t *IntervalTimer) State() State {
	return t.state
}

// Len returns the number of events recorded so far. Zero after Finalize.
func (t *IntervalTimer) Len() int {
	return len(t.events)
}

// Pairing returns the timer's pairing mode.
func (t *IntervalTimer) Pairing() Pairing {
	return t.pairing
}
