package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpen_ReopenKeepsBindings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bind.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := s.Bind(ctx, "timings", "run-1", "fifo", ioCPUTable()); err != nil {
		t.Fatalf("Bind() failed: %v", err)
	}
	s.Close()

	// A second open must not re-run the schema over existing data.
	for i := 0; i < 2; i++ {
		s, err = Open(path)
		if err != nil {
			t.Fatalf("reopen %d failed: %v", i, err)
		}
		b, err := s.Lookup(ctx, "timings")
		s.Close()
		if err != nil {
			t.Fatalf("Lookup() after reopen %d: %v", i, err)
		}
		if b.Table.Len() != 3 {
			t.Errorf("reopen %d: %d rows, want 3", i, b.Table.Len())
		}
	}
}

func TestOpen_InvalidPath(t *testing.T) {
	_, err := Open("/nonexistent/dir/test.db")
	if err == nil {
		t.Error("expected error for invalid path, got nil")
	}
}

func TestClose_NilDB(t *testing.T) {
	s := &Store{db: nil}
	if err := s.Close(); err != nil {
		t.Errorf("Close() on nil db should not error: %v", err)
	}
}

// Pragma tests

func TestPragmas(t *testing.T) {
	s := createTestStore(t)

	for _, st := range settings {
		got, err := s.pragma(st.pragma)
		if err != nil {
			t.Fatal(err)
		}
		if got != st.want {
			t.Errorf("%s = %q, want %q", st.pragma, got, st.want)
		}
	}
}

func TestPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bind.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if s.Path() != path {
		t.Errorf("Path() = %q, want %q", s.Path(), path)
	}
}

// Schema tests

func TestSchema_RecordsRejectNegativeTimer(t *testing.T) {
	s := createTestStore(t)

	if _, err := s.db.Exec(`INSERT INTO bindings (name, run_id, pairing, row_count) VALUES ('b', 'r', 'fifo', 1)`); err != nil {
		t.Fatalf("insert binding: %v", err)
	}
	_, err := s.db.Exec(`INSERT INTO records (binding, ordinal, ticker, timer_ns) VALUES ('b', 1, 'io', -1)`)
	if err == nil {
		t.Fatal("expected CHECK constraint failure for negative timer")
	}
	if !strings.Contains(err.Error(), "CHECK") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSchema_RecordsRequireBinding(t *testing.T) {
	s := createTestStore(t)

	_, err := s.db.Exec(`INSERT INTO records (binding, ordinal, ticker, timer_ns) VALUES ('missing', 1, 'io', 5)`)
	if err == nil {
		t.Fatal("expected foreign key failure for unknown binding")
	}
}

// Migration tests

func TestMigration_SchemaVersion(t *testing.T) {
	s := createTestStore(t)

	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		t.Fatalf("failed to get user_version: %v", err)
	}
	if version != schemaVersion {
		t.Errorf("user_version = %d, want %d", version, schemaVersion)
	}
}

func TestMigration_RejectsNewerSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if _, err := db.Exec("PRAGMA user_version = 99"); err != nil {
		t.Fatalf("failed to set user_version: %v", err)
	}
	db.Close()

	_, err = Open(path)
	if err == nil {
		t.Fatal("expected error opening database with newer schema")
	}
	if !strings.Contains(err.Error(), "newer than supported") {
		t.Errorf("unexpected error: %v", err)
	}
}
