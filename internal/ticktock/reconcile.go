package ticktock

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
)

// ErrClockSkew is returned when a tock's instant precedes the tick it
// closes, which only happens with a non-monotonic Clock.
var ErrClockSkew = errors.New("clock went backwards")

// ReconcileOptions controls a reconciliation pass.
type ReconcileOptions struct {
	Pairing Pairing
	Strict  bool

	// Logger receives debug output about dropped ticks. Nil means slog.Default().
	Logger *slog.Logger
}

// Reconcile pairs the ticks and tocks in events and returns the result table.
//
// Events are processed in Seq order; the input slice is not modified.
// Records are emitted in tock order. On error no table is returned.
func Reconcile(events []Event, opts ReconcileOptions) (*ResultTable, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ordered := slices.Clone(events)
	slices.SortStableFunc(ordered, func(a, b Event) int {
		switch {
		case a.Seq < b.Seq:
			return -1
		case a.Seq > b.Seq:
			return 1
		}
		return 0
	})

	pending := make(map[string]*pendingQueue)
	tockCount := make(map[string]int)
	records := make([]Record, 0, len(ordered)/2)

	for _, ev := range ordered {
		switch ev.Kind {
		case KindTick:
			q, ok := pending[ev.Name]
			if !ok {
				q = &pendingQueue{}
				pending[ev.Name] = q
			}
			q.push(ev.At)

		case KindTock:
			tockCount[ev.Name]++
			var (
				start Instant
				ok    bool
			)
			if q := pending[ev.Name]; q != nil {
				start, ok = q.pop(opts.Pairing)
			}
			if !ok {
				return nil, &UnmatchedTockError{
					Ticker:  ev.Name,
					Ordinal: tockCount[ev.Name],
					Seq:     ev.Seq,
				}
			}
			elapsed := ev.At.Sub(start)
			if elapsed < 0 {
				return nil, fmt.Errorf("%w: tock for %q at seq %d is %v before its tick", ErrClockSkew, ev.Name, ev.Seq, -elapsed)
			}
			records = append(records, Record{Ticker: ev.Name, Timer: elapsed.Nanoseconds()})

		default:
			return nil, fmt.Errorf("event seq %d: unknown kind %v", ev.Seq, ev.Kind)
		}
	}

	if err := checkLeftovers(ordered, pending, opts.Strict, logger); err != nil {
		return nil, err
	}

	return &ResultTable{records: records}, nil
}

// checkLeftovers handles ticks that were never tocked. They are dropped and
// logged, or reported as *UnclosedTickError in strict mode.
func checkLeftovers(ordered []Event, pending map[string]*pendingQueue, strict bool, logger *slog.Logger) error {
	var names []string
	counts := make(map[string]int)
	for _, ev := range ordered {
		if ev.Kind != KindTick {
			continue
		}
		if _, done := counts[ev.Name]; done {
			continue
		}
		q := pending[ev.Name]
		if q == nil || q.len() == 0 {
			continue
		}
		counts[ev.Name] = q.len()
		names = append(names, ev.Name)
	}

	if len(names) == 0 {
		return nil
	}
	if strict {
		return &UnclosedTickError{Pending: counts, Tickers: names}
	}
	for _, name := range names {
		logger.Debug("dropping unclosed ticks", "ticker", name, "count", counts[name])
	}
	return nil
}
