// Package schema drives gom's migration protocol: a version ledger table
// plus a transactional step loop that runs a caller-provided migrator for
// every version between the current and target (spec.md §4.6, Migration
// protocol). It is grounded on the teacher's dialect/sql/schema package,
// trimmed from a full Atlas-backed schema differ down to the additive,
// version-stamped model gom's original adapter implemented by hand in
// gom_adapter_sqlite_create.
package schema

import (
	"context"
	"database/sql"
	"fmt"

	gomsql "github.com/syssam/gom/dialect/sql"
	entschema "github.com/syssam/gom/schema"
)

// VersionTable is the ledger table name (spec.md §4.6 / §6).
const VersionTable = "_gom_version"

// Migrator runs one migration step against tx, the transaction the whole
// migration run shares (spec.md §4.6 step 5: any step's failure rolls back
// every step already applied in this run, not just the ledger insert). step
// is the version being migrated to.
type Migrator func(ctx context.Context, tx *sql.Tx, step int) error

// CurrentVersion returns the highest recorded version, creating the ledger
// table on first contact (spec.md §4.6). A ledger with no rows reports
// version 0.
func CurrentVersion(ctx context.Context, drv *gomsql.Driver) (int, error) {
	createLedger := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (version INTEGER)", VersionTable)
	if _, err := drv.DB().ExecContext(ctx, createLedger); err != nil {
		return 0, fmt.Errorf("dialect/sql/schema: create version ledger: %w", err)
	}

	var version gomsql.NullInt64
	row := drv.DB().QueryRowContext(ctx, fmt.Sprintf("SELECT MAX(version) FROM %s", VersionTable))
	if err := row.Scan(&version); err != nil {
		return 0, fmt.Errorf("dialect/sql/schema: read current version: %w", err)
	}
	if !version.Valid {
		return 0, nil
	}
	return int(version.Int64), nil
}

// Migrate advances drv from its current recorded version to target,
// invoking migrate once for each step from max(current, 1) through target
// inclusive (so the current step runs again) inside a single transaction,
// recording each completed step in the ledger (spec.md §4.6). A target at
// or below the current version is a no-op that succeeds immediately.
func Migrate(ctx context.Context, drv *gomsql.Driver, target int, migrate Migrator) error {
	current, err := CurrentVersion(ctx, drv)
	if err != nil {
		return err
	}
	if current >= target {
		return nil
	}

	tx, err := drv.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("dialect/sql/schema: begin migration transaction: %w", err)
	}

	start := current
	if start < 1 {
		start = 1
	}
	for step := start; step <= target; step++ {
		if err := migrate(ctx, tx, step); err != nil {
			tx.Rollback()
			return &StepFailedError{Step: step, Cause: err}
		}
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("INSERT INTO %s VALUES (?)", VersionTable), step); err != nil {
			tx.Rollback()
			return &StepFailedError{Step: step, Cause: err}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("dialect/sql/schema: commit migration: %w", err)
	}
	return nil
}

// StepFailedError reports which migration step failed and why.
type StepFailedError struct {
	Step  int
	Cause error
}

func (e *StepFailedError) Error() string {
	return fmt.Sprintf("dialect/sql/schema: migration step %d failed: %v", e.Step, e.Cause)
}

func (e *StepFailedError) Unwrap() error { return e.Cause }

// AutomaticMigrator builds the built-in migrator from §4.6: at step 1 it
// creates every entity's table (IF NOT EXISTS, so re-running step 1 against
// an existing table is benign); at step s > 1 it runs the ALTER list for
// columns introduced at that version.
func AutomaticMigrator(entities []*entschema.Entity) Migrator {
	return func(ctx context.Context, tx *sql.Tx, step int) error {
		for _, e := range entities {
			if step == 1 {
				cmd, err := gomsql.CreateTable(e)
				if err != nil {
					return err
				}
				if _, err := tx.ExecContext(ctx, cmd.SQL, cmd.Binds...); err != nil {
					return fmt.Errorf("dialect/sql/schema: create table %q: %w", e.Table, err)
				}
				continue
			}
			cmds, err := gomsql.AlterTable(e, step)
			if err != nil {
				return err
			}
			for _, cmd := range cmds {
				if _, err := tx.ExecContext(ctx, cmd.SQL, cmd.Binds...); err != nil {
					return fmt.Errorf("dialect/sql/schema: alter table %q: %w", e.Table, err)
				}
			}
		}
		return nil
	}
}
