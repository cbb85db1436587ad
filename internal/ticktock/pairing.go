package ticktock

import "fmt"

// Pairing selects which pending tick a tock closes.
type Pairing int

const (
	// PairingFIFO closes the oldest pending tick for the name. This is the
	// default and fits repeated or overlapping intervals, e.g. a name ticked
	// inside a loop body and tocked once per iteration.
	PairingFIFO Pairing = iota

	// PairingNested closes the newest pending tick for the name (LIFO). Use it
	// only for strictly nested same-name intervals such as recursion.
	PairingNested
)

// String returns "fifo" or "nested".
func (p Pairing) String() string {
	switch p {
	case PairingFIFO:
		return "fifo"
	case PairingNested:
		return "nested"
	default:
		return fmt.Sprintf("Pairing(%d)", int(p))
	}
}

// ParsePairing parses "fifo" or "nested". The empty string means fifo.
func ParsePairing(s string) (Pairing, error) {
	switch s {
	case "", "fifo":
		return PairingFIFO, nil
	case "nested", "lifo":
		return PairingNested, nil
	default:
		return 0, fmt.Errorf("invalid pairing %q: must be one of [fifo nested]", s)
	}
}

// pendingQueue holds the unmatched tick instants for one name.
//
// Popping from the front uses a head index instead of reslicing so the
// backing array is reused once the queue drains.
type pendingQueue struct {
	ticks []Instant
	head  int
}

func (q *pendingQueue) push(at Instant) {
	q.ticks = append(q.ticks, at)
}

func (q *pendingQueue) len() int {
	return len(q.ticks) - q.head
}

// pop removes a pending tick according to the pairing mode.
// Returns false if nothing is pending.
func (q *pendingQueue) pop(p Pairing) (Instant, bool) {
	if q.len() == 0 {
		return 0, false
	}

	var at Instant
	if p == PairingNested {
		last := len(q.ticks) - 1
		at = q.ticks[last]
		q.ticks = q.ticks[:last]
	} else {
		at = q.ticks[q.head]
		q.head++
	}

	if q.len() == 0 {
		q.ticks = q.ticks[:0]
		q.head = 0
	}
	return at, true
}
