package store

import (
	"context"
	"errors"
	"testing"

	"github.com/roach88/ticktock/internal/ticktock"
)

func TestBind_LookupRoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if err := s.Bind(ctx, "clock", "run-1", "fifo", ioCPUTable()); err != nil {
		t.Fatalf("Bind() failed: %v", err)
	}

	b, err := s.Lookup(ctx, "clock")
	if err != nil {
		t.Fatalf("Lookup() failed: %v", err)
	}

	if b.Name != "clock" || b.RunID != "run-1" || b.Pairing != "fifo" || b.Rows != 3 {
		t.Errorf("unexpected binding info: %+v", b.BindingInfo)
	}

	tickers, timers := b.Table.Columns()
	wantTickers := []string{"io", "cpu", "io"}
	wantTimers := []int64{20, 35, 30}
	for i := range wantTickers {
		if tickers[i] != wantTickers[i] || timers[i] != wantTimers[i] {
			t.Errorf("row %d = (%s, %d), want (%s, %d)", i, tickers[i], timers[i], wantTickers[i], wantTimers[i])
		}
	}
}

func TestBind_ReplacesPreviousTable(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if err := s.Bind(ctx, "clock", "run-1", "fifo", ioCPUTable()); err != nil {
		t.Fatalf("first Bind() failed: %v", err)
	}

	second := ticktock.NewResultTable([]ticktock.Record{{Ticker: "fib", Timer: 7}})
	if err := s.Bind(ctx, "clock", "run-2", "nested", second); err != nil {
		t.Fatalf("second Bind() failed: %v", err)
	}

	b, err := s.Lookup(ctx, "clock")
	if err != nil {
		t.Fatalf("Lookup() failed: %v", err)
	}
	if b.RunID != "run-2" || b.Pairing != "nested" {
		t.Errorf("binding not replaced: %+v", b.BindingInfo)
	}
	if b.Table.Len() != 1 || b.Table.At(0) != (ticktock.Record{Ticker: "fib", Timer: 7}) {
		t.Errorf("rows not replaced: %+v", b.Table.Records())
	}

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM records").Scan(&count); err != nil {
		t.Fatalf("count records: %v", err)
	}
	if count != 1 {
		t.Errorf("old rows left behind: %d records", count)
	}
}

func TestBind_EmptyTable(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if err := s.Bind(ctx, "empty", "run-1", "fifo", ticktock.NewResultTable(nil)); err != nil {
		t.Fatalf("Bind() failed: %v", err)
	}

	b, err := s.Lookup(ctx, "empty")
	if err != nil {
		t.Fatalf("Lookup() failed: %v", err)
	}
	if b.Rows != 0 || b.Table.Len() != 0 {
		t.Errorf("expected empty table, got %d rows", b.Table.Len())
	}
}

func TestBind_Validation(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if err := s.Bind(ctx, "", "run-1", "fifo", ioCPUTable()); err == nil {
		t.Error("expected error for empty name")
	}
	if err := s.Bind(ctx, "clock", "", "fifo", ioCPUTable()); err == nil {
		t.Error("expected error for empty run id")
	}
}

func TestLookup_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.Lookup(context.Background(), "missing")
	if !errors.Is(err, ErrBindingNotFound) {
		t.Errorf("expected ErrBindingNotFound, got %v", err)
	}
}

func TestList_OrderedByName(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	infos, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if infos == nil || len(infos) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", infos)
	}

	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := s.Bind(ctx, name, "run-"+name, "fifo", ioCPUTable()); err != nil {
			t.Fatalf("Bind(%s) failed: %v", name, err)
		}
	}

	infos, err = s.List(ctx)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	want := []string{"alpha", "mid", "zeta"}
	if len(infos) != len(want) {
		t.Fatalf("got %d bindings, want %d", len(infos), len(want))
	}
	for i, name := range want {
		if infos[i].Name != name {
			t.Errorf("infos[%d].Name = %q, want %q", i, infos[i].Name, name)
		}
		if infos[i].Rows != 3 {
			t.Errorf("infos[%d].Rows = %d, want 3", i, infos[i].Rows)
		}
	}
}

func TestUnbind(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if err := s.Bind(ctx, "clock", "run-1", "fifo", ioCPUTable()); err != nil {
		t.Fatalf("Bind() failed: %v", err)
	}
	if err := s.Unbind(ctx, "clock"); err != nil {
		t.Fatalf("Unbind() failed: %v", err)
	}
	if _, err := s.Lookup(ctx, "clock"); !errors.Is(err, ErrBindingNotFound) {
		t.Errorf("expected binding gone, got %v", err)
	}
	if err := s.Unbind(ctx, "clock"); !errors.Is(err, ErrBindingNotFound) {
		t.Errorf("expected ErrBindingNotFound on second Unbind, got %v", err)
	}
}
