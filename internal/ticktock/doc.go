// Package ticktock implements the interval-timing core.
//
// Callers mark the start (Tick) and end (Tock) of named intervals and call
// Finalize once at the end of the run. Finalize reconciles the recorded
// events into a ResultTable of (ticker, nanoseconds) rows.
//
// PAIRING:
//
// Ticks and tocks carry no interval ID. The only correlation signal is the
// name and the call order, so pairing is defined entirely by them:
//   - Events are walked in call order (Seq).
//   - A Tick pushes its instant onto the pending queue for its name.
//   - A Tock takes the oldest pending tick for its name (FIFO) and emits a
//     Record. Ticks recorded after the tock are never eligible.
//   - Records are emitted in tock arrival order.
//
// Leftover ticks are dropped silently; they are intervals that never closed.
// A tock with nothing pending fails Finalize with *UnmatchedTockError and no
// table is returned.
//
// Two alternate modes exist and must be selected explicitly:
//   - PairingNested takes the newest pending tick (LIFO), for recursively
//     nested intervals that share a name.
//   - WithStrict(true) turns leftover ticks into *UnclosedTickError.
//
// CONCURRENCY:
//
// IntervalTimer is single-writer and does no locking. Give each goroutine its
// own timer.
package ticktock
