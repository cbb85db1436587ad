// Package store binds finalized result tables to names in a SQLite database.
//
// It is the adapter that stands in for assigning a result table to a host
// variable: Bind(name, table) makes the table available under name, and a
// later Bind under the same name replaces it. The timing core does not
// depend on this package.
//
// # Tables
//
//   - bindings: one row per bound name (run id, pairing mode, row count)
//   - records: the bound rows, keyed by (binding, ordinal)
//
// Reads return rows ORDER BY ordinal ASC, which is the tock order the table
// was produced in.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
