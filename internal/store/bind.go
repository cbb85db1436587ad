package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/ticktock/internal/ticktock"
)

// ErrBindingNotFound is returned by Lookup and Unbind for unknown names.
var ErrBindingNotFound = errors.New("binding not found")

// BindingInfo describes a bound table without its rows.
type BindingInfo struct {
	Name    string `json:"name"`
	RunID   string `json:"run_id"`
	Pairing string `json:"pairing"`
	Rows    int    `json:"rows"`
}

// Binding is a bound table read back from the store.
type Binding struct {
	BindingInfo
	Table *ticktock.ResultTable
}

// Bind stores table under name, replacing any table already bound to it.
// The replacement happens in one transaction, so readers see either the old
// table or the new one.
func (s *Store) Bind(ctx context.Context, name, runID, pairing string, table *ticktock.ResultTable) error {
	if name == "" {
		return fmt.Errorf("bind: name is required")
	}
	if runID == "" {
		return fmt.Errorf("bind %q: run id is required", name)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("bind %q: begin: %w", name, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	// ON DELETE CASCADE removes the previous rows.
	if _, err := tx.ExecContext(ctx, `DELETE FROM bindings WHERE name = ?`, name); err != nil {
		return fmt.Errorf("bind %q: clear previous: %w", name, err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO bindings (name, run_id, pairing, row_count)
		VALUES (?, ?, ?, ?)
	`, name, runID, pairing, table.Len()); err != nil {
		return fmt.Errorf("bind %q: insert binding: %w", name, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (binding, ordinal, ticker, timer_ns)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("bind %q: prepare: %w", name, err)
	}
	defer stmt.Close()

	for i, rec := range table.Records() {
		if _, err := stmt.ExecContext(ctx, name, i+1, rec.Ticker, rec.Timer); err != nil {
			return fmt.Errorf("bind %q: insert row %d: %w", name, i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("bind %q: commit: %w", name, err)
	}
	return nil
}

// Lookup returns the table bound to name.
// Returns ErrBindingNotFound if nothing is bound.
func (s *Store) Lookup(ctx context.Context, name string) (*Binding, error) {
	var info BindingInfo
	err := s.db.QueryRowContext(ctx, `
		SELECT name, run_id, pairing, row_count
		FROM bindings
		WHERE name = ?
	`, name).Scan(&info.Name, &info.RunID, &info.Pairing, &info.Rows)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("lookup %q: %w", name, ErrBindingNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("lookup %q: %w", name, err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT ticker, timer_ns
		FROM records
		WHERE binding = ?
		ORDER BY ordinal ASC
	`, name)
	if err != nil {
		return nil, fmt.Errorf("lookup %q: query records: %w", name, err)
	}
	defer rows.Close()

	records := make([]ticktock.Record, 0, info.Rows)
	for rows.Next() {
		var rec ticktock.Record
		if err := rows.Scan(&rec.Ticker, &rec.Timer); err != nil {
			return nil, fmt.Errorf("lookup %q: scan record: %w", name, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("lookup %q: iterate records: %w", name, err)
	}

	return &Binding{BindingInfo: info, Table: ticktock.NewResultTable(records)}, nil
}

// List returns every binding ordered by name.
// Returns an empty slice (not nil) when nothing is bound.
func (s *Store) List(ctx context.Context) ([]BindingInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, run_id, pairing, row_count
		FROM bindings
		ORDER BY name COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list bindings: %w", err)
	}
	defer rows.Close()

	infos := []BindingInfo{}
	for rows.Next() {
		var info BindingInfo
		if err := rows.Scan(&info.Name, &info.RunID, &info.Pairing, &info.Rows); err != nil {
			return nil, fmt.Errorf("list bindings: scan: %w", err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list bindings: iterate: %w", err)
	}
	return infos, nil
}

// Unbind removes the table bound to name.
// Returns ErrBindingNotFound if nothing is bound.
func (s *Store) Unbind(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM bindings WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("unbind %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unbind %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("unbind %q: %w", name, ErrBindingNotFound)
	}
	return nil
}
