package harness

import (
	"fmt"

	"github.com/roach88/ticktock/internal/ticktock"
)

// CheckExpect compares a result against an expect clause and returns one
// message per mismatch.
func CheckExpect(expect Expect, result *Result) []string {
	if expect.Error != nil {
		return checkError(*expect.Error, result)
	}
	if result.Error != nil {
		return []string{fmt.Sprintf("expected success, finalize failed: %s", result.Error.Message)}
	}
	return checkRows(expect.Rows, result.Rows)
}

func checkError(want ExpectError, result *Result) []string {
	got := result.Error
	if got == nil {
		return []string{fmt.Sprintf("expected error %s, finalize succeeded with %d row(s)", want.Code, len(result.Rows))}
	}

	var errs []string
	if got.Code != want.Code {
		errs = append(errs, fmt.Sprintf("error code: expected %s, got %s", want.Code, got.Code))
	}
	if want.Ticker != "" && got.Ticker != want.Ticker {
		errs = append(errs, fmt.Sprintf("error ticker: expected %q, got %q", want.Ticker, got.Ticker))
	}
	if want.Ordinal != 0 && got.Ordinal != want.Ordinal {
		errs = append(errs, fmt.Sprintf("error ordinal: expected %d, got %d", want.Ordinal, got.Ordinal))
	}
	return errs
}

// checkRows requires an exact, ordered match.
func checkRows(want, got []ticktock.Record) []string {
	var errs []string
	if len(want) != len(got) {
		errs = append(errs, fmt.Sprintf("row count: expected %d, got %d", len(want), len(got)))
	}

	n := min(len(want), len(got))
	for i := 0; i < n; i++ {
		if want[i] != got[i] {
			errs = append(errs, fmt.Sprintf("row %d: expected %s=%d, got %s=%d",
				i+1, want[i].Ticker, want[i].Timer, got[i].Ticker, got[i].Timer))
		}
	}
	for i := n; i < len(got); i++ {
		errs = append(errs, fmt.Sprintf("row %d: unexpected %s=%d", i+1, got[i].Ticker, got[i].Timer))
	}
	for i := n; i < len(want); i++ {
		errs = append(errs, fmt.Sprintf("row %d: missing %s=%d", i+1, want[i].Ticker, want[i].Timer))
	}
	return errs
}
