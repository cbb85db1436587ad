package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/ticktock/internal/ticktock"
)

// createTestStore creates a new store in a temp directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// ioCPUTable is the table produced by the interleaved io/cpu run.
func ioCPUTable() *ticktock.ResultTable {
	return ticktock.NewResultTable([]ticktock.Record{
		{Ticker: "io", Timer: 20},
		{Ticker: "cpu", Timer: 35},
		{Ticker: "io", Timer: 30},
	})
}
