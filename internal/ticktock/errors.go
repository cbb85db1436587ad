package ticktock

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes timer errors.
type ErrorCode string

const (
	// ErrCodeUnmatchedTock indicates a tock with no pending tick for its name.
	ErrCodeUnmatchedTock ErrorCode = "UNMATCHED_TOCK"

	// ErrCodeFinalized indicates a call on a timer that was already finalized.
	ErrCodeFinalized ErrorCode = "TIMER_FINALIZED"

	// ErrCodeUnclosedTick indicates ticks left pending in strict mode.
	ErrCodeUnclosedTick ErrorCode = "UNCLOSED_TICK"
)

// ErrFinalized is matched by errors.Is for every *FinalizedError.
var ErrFinalized = errors.New("timer already finalized")

// UnmatchedTockError reports a tock that had no pending tick at the point it
// was recorded.
type UnmatchedTockError struct {
	// Ticker is the name of the offending tock.
	Ticker string

	// Ordinal is the 1-based position of the tock among tocks of Ticker.
	Ordinal int

	// Seq is the position of the tock in the whole event log.
	Seq int64
}

// Error implements the error interface.
func (e *UnmatchedTockError) Error() string {
	return fmt.Sprintf("%s: tock #%d for %q has no pending tick (seq=%d)", ErrCodeUnmatchedTock, e.Ordinal, e.Ticker, e.Seq)
}

// Code returns ErrCodeUnmatchedTock.
func (e *UnmatchedTockError) Code() ErrorCode { return ErrCodeUnmatchedTock }

// FinalizedError reports an operation attempted after Finalize ran.
type FinalizedError struct {
	// Op is the rejected operation: "tick", "tock" or "finalize".
	Op string

	// Ticker is the name passed to tick or tock. Empty for finalize.
	Ticker string
}

// Error implements the error interface.
func (e *FinalizedError) Error() string {
	if e.Ticker != "" {
		return fmt.Sprintf("%s: %s(%q) after finalize", ErrCodeFinalized, e.Op, e.Ticker)
	}
	return fmt.Sprintf("%s: %s after finalize", ErrCodeFinalized, e.Op)
}

// Is reports whether target is ErrFinalized.
func (e *FinalizedError) Is(target error) bool {
	return target == ErrFinalized
}

// Code returns ErrCodeFinalized.
func (e *FinalizedError) Code() ErrorCode { return ErrCodeFinalized }

// UnclosedTickError reports ticks that were never tocked. Only returned in
// strict mode; the default mode drops them.
type UnclosedTickError struct {
	// Pending maps each ticker to its number of unclosed ticks.
	Pending map[string]int

	// Tickers lists the keys of Pending in order of first unclosed tick.
	Tickers []string
}

// Error implements the error interface.
func (e *UnclosedTickError) Error() string {
	total := 0
	for _, n := range e.Pending {
		total += n
	}
	if len(e.Tickers) == 1 {
		return fmt.Sprintf("%s: %d tick(s) for %q never tocked", ErrCodeUnclosedTick, total, e.Tickers[0])
	}
	return fmt.Sprintf("%s: %d tick(s) never tocked across %v", ErrCodeUnclosedTick, total, e.Tickers)
}

// Code returns ErrCodeUnclosedTick.
func (e *UnclosedTickError) Code() ErrorCode { return ErrCodeUnclosedTick }

// IsUnmatchedTock returns true if err is or wraps an *UnmatchedTockError.
func IsUnmatchedTock(err error) bool {
	var ue *UnmatchedTockError
	return errors.As(err, &ue)
}

// IsFinalized returns true if err is or wraps a *FinalizedError.
func IsFinalized(err error) bool {
	return errors.Is(err, ErrFinalized)
}

// IsUnclosedTick returns true if err is or wraps an *UnclosedTickError.
func IsUnclosedTick(err error) bool {
	var ue *UnclosedTickError
	return errors.As(err, &ue)
}

// CodeOf extracts the ErrorCode from err. Uses errors.As so wrapped errors
// are found. Returns "" for errors that did not come from this package.
func CodeOf(err error) ErrorCode {
	var coded interface{ Code() ErrorCode }
	if errors.As(err, &coded) {
		return coded.Code()
	}
	return ""
}
