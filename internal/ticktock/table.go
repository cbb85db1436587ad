package ticktock

import "time"

// Record is one reconciled interval.
type Record struct {
	// Ticker is the interval name.
	Ticker string `json:"ticker"`

	// Timer is the elapsed time in nanoseconds. Never negative.
	Timer int64 `json:"timer"`
}

// Duration returns Timer as a time.Duration.
func (r Record) Duration() time.Duration {
	return time.Duration(r.Timer)
}

// ResultTable is the immutable output of Finalize.
// Rows are in tock arrival order. Accessors return copies.
type ResultTable struct {
	records []Record
}

// NewResultTable builds a table from records, copying the slice.
// Adapters use it to rebuild a table read back from storage.
func NewResultTable(records []Record) *ResultTable {
	rs := make([]Record, len(records))
	copy(rs, records)
	return &ResultTable{records: rs}
}

// Len returns the number of rows.
func (t *ResultTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

// At returns row i. Panics if i is out of range.
func (t *ResultTable) At(i int) Record {
	return t.records[i]
}

// Records returns a copy of all rows.
func (t *ResultTable) Records() []Record {
	if t == nil {
		return []Record{}
	}
	rs := make([]Record, len(t.records))
	copy(rs, t.records)
	return rs
}

// Columns returns the table as two parallel columns, the shape a host data
// frame expects.
func (t *ResultTable) Columns() (tickers []string, timers []int64) {
	tickers = make([]string, t.Len())
	timers = make([]int64, t.Len())
	for i := 0; i < t.Len(); i++ {
		tickers[i] = t.records[i].Ticker
		timers[i] = t.records[i].Timer
	}
	return tickers, timers
}

// Tickers returns the distinct ticker names in order of first appearance.
func (t *ResultTable) Tickers() []string {
	seen := make(map[string]bool)
	names := []string{}
	for i := 0; i < t.Len(); i++ {
		name := t.records[i].Ticker
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// Timers returns the durations recorded for one ticker, in row order.
func (t *ResultTable) Timers(ticker string) []int64 {
	timers := []int64{}
	for i := 0; i < t.Len(); i++ {
		if t.records[i].Ticker == ticker {
			timers = append(timers, t.records[i].Timer)
		}
	}
	return timers
}
