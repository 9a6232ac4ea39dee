// Package dialect defines the storage-backend abstraction gom's SQL layer
// is built against: Driver, Tx, and ExecQuerier.
//
// gom speaks exactly one dialect, SQLite (dialect.SQLite), but the
// interfaces stay dialect-shaped rather than SQLite-specific so the command
// builder and migration packages depend on behavior, not on
// modernc.org/sqlite directly — the same separation the teacher draws
// between dialect and dialect/sql.
package dialect
