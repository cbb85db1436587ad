// Package report renders result tables for people and for downstream tools.
package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/roach88/ticktock/internal/canonical"
	"github.com/roach88/ticktock/internal/ticktock"
)

// WriteTable renders table as a text grid, one row per record in tock order.
func WriteTable(w io.Writer, table *ticktock.ResultTable) error {
	if table.Len() == 0 {
		_, err := fmt.Fprintln(w, "No intervals recorded")
		return err
	}

	tw := tablewriter.NewWriter(w)
	tw.Header("#", "Ticker", "Timer (ns)", "Elapsed")

	for i, rec := range table.Records() {
		if err := tw.Append(
			strconv.Itoa(i+1),
			rec.Ticker,
			strconv.FormatInt(rec.Timer, 10),
			FormatDuration(rec.Duration()),
		); err != nil {
			return fmt.Errorf("render row %d: %w", i+1, err)
		}
	}

	return tw.Render()
}

// FormatDuration formats a duration for display.
func FormatDuration(d time.Duration) string {
	if d < time.Microsecond {
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}

// ColumnView is the table as two parallel columns.
type ColumnView struct {
	Ticker []string `json:"ticker"`
	Timer  []int64  `json:"timer"`
}

// Columns returns the two-column view of table.
func Columns(table *ticktock.ResultTable) ColumnView {
	tickers, timers := table.Columns()
	return ColumnView{Ticker: tickers, Timer: timers}
}

// Rows converts table into plain maps for canonical JSON.
func Rows(table *ticktock.ResultTable) []any {
	records := table.Records()
	rows := make([]any, len(records))
	for i, rec := range records {
		rows[i] = map[string]any{
			"ticker": rec.Ticker,
			"timer":  rec.Timer,
		}
	}
	return rows
}

// MarshalCanonical renders table as canonical JSON:
//
//	{"rows":[{"ticker":"io","timer":20},...]}
func MarshalCanonical(table *ticktock.ResultTable) ([]byte, error) {
	return canonical.Marshal(map[string]any{"rows": Rows(table)})
}
