// Package sql implements gom's SQL layer: a dialect.Driver adapter over
// database/sql, a Filter/Sorting algebra, and the Command Builder that
// compiles both into parameterized SQLite statements.
//
// # Driver
//
// Driver wraps a *sql.DB (or a DATA-DOG/go-sqlmock connection in tests)
// behind dialect.Driver:
//
//	drv, err := sql.Open(dialect.SQLite, "file:gom.db?_pragma=foreign_keys(1)")
//
// # Filters
//
// Filters are a small discriminated tree — Comparison, NullCheck, RawSql,
// And, Or — built with constructors rather than a fluent selector:
//
//	sql.And(
//	    sql.Eq("User", "status", "active"),
//	    sql.Or(sql.Gt("User", "age", 18), sql.Eq("User", "role", "admin")),
//	    sql.IsNotNull("User", "email"),
//	)
//
// Compiling a Filter never trusts a column name verbatim: every property
// reference is resolved against the schema registry first, so a filter
// naming a property the queried entity does not own fails before any SQL is
// built (schema.UnknownColumnError).
//
// # Sorting and the Command Builder
//
// Sorting compiles a list of (entity, property, direction) terms into
// ORDER BY. Command assembles a Filter, a Sorting, and an Entity into one of
// CREATE TABLE, ALTER TABLE, INSERT, UPDATE, DELETE, SELECT, or
// SELECT COUNT('<table>'.'<pk>'), with deterministic placeholder ordering so the same
// Filter always binds its parameters in the same sequence.
package sql
