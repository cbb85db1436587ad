package harness

import (
	"errors"

	"github.com/roach88/ticktock/internal/ticktock"
)

// ErrorSnapshot is the reportable part of a finalize error.
type ErrorSnapshot struct {
	Code    string `json:"code"`
	Ticker  string `json:"ticker,omitempty"`
	Ordinal int    `json:"ordinal,omitempty"`
	Message string `json:"message"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if the finalize outcome matched the expect clause.
	Pass bool `json:"pass"`

	// Rows holds the result table when finalize succeeded.
	Rows []ticktock.Record `json:"rows,omitempty"`

	// Error describes the finalize error, if any.
	Error *ErrorSnapshot `json:"error,omitempty"`

	// Errors lists expectation mismatches. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Table is the finalized table, nil when finalize failed.
	Table *ticktock.ResultTable `json:"-"`

	// Err is the raw finalize error.
	Err error `json:"-"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a mismatch and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// snapshotError extracts code, ticker and ordinal from a finalize error.
func snapshotError(err error) *ErrorSnapshot {
	if err == nil {
		return nil
	}
	snap := &ErrorSnapshot{
		Code:    string(ticktock.CodeOf(err)),
		Message: err.Error(),
	}

	var ue *ticktock.UnmatchedTockError
	if errors.As(err, &ue) {
		snap.Ticker = ue.Ticker
		snap.Ordinal = ue.Ordinal
	}
	var ce *ticktock.UnclosedTickError
	if errors.As(err, &ce) && len(ce.Tickers) > 0 {
		snap.Ticker = ce.Tickers[0]
	}
	return snap
}
