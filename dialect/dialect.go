package dialect

import "context"

// SQLite is the only dialect gom speaks. The constant is kept (rather than
// inlining the literal) because driver.go matches against it when
// classifying telemetry-wrapped driver names, the same pattern the teacher
// applies across its three dialects.
const SQLite = "sqlite"

// Driver is the interface every storage adapter must satisfy: execute a
// statement, run a query, start a transaction, and report its dialect name.
type Driver interface {
	Exec(ctx context.Context, query string, args, v any) error
	Query(ctx context.Context, query string, args, v any) error
	Tx(ctx context.Context) (Tx, error)
	Close() error
	Dialect() string
}

// Tx extends Driver with transaction completion.
type Tx interface {
	Driver
	Commit() error
	Rollback() error
}

// ExecQuerier is implemented by both Driver and Tx; the Command Builder
// depends only on this, so it runs the same whether it is building inside an
// open transaction or directly against the pool.
type ExecQuerier interface {
	Exec(ctx context.Context, query string, args, v any) error
	Query(ctx context.Context, query string, args, v any) error
}
