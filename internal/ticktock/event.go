package ticktock

import "fmt"

// EventKind distinguishes between event kinds.
type EventKind int

const (
	// KindTick marks the start of a named interval.
	KindTick EventKind = iota + 1
	// KindTock marks the end of a named interval.
	KindTock
)

// String returns "tick" or "tock".
func (k EventKind) String() string {
	switch k {
	case KindTick:
		return "tick"
	case KindTock:
		return "tock"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is one recorded tick or tock.
//
// Seq is the 1-based position of the event in call order. Pairing uses Seq
// for ordering, never At.
type Event struct {
	Name string
	Kind EventKind
	At   Instant
	Seq  int64
}

// TickEvent builds a tick event. Used when replaying a recorded log.
func TickEvent(name string, at Instant, seq int64) Event {
	return Event{Name: name, Kind: KindTick, At: at, Seq: seq}
}

// TockEvent builds a tock event. Used when replaying a recorded log.
func TockEvent(name string, at Instant, seq int64) Event {
	return Event{Name: name, Kind: KindTock, At: at, Seq: seq}
}
