package gom

import (
	"errors"
	"fmt"

	gomsql "github.com/syssam/gom/dialect/sql"
)

// ErrNoSql is the error value for a command dispatched with no SQL text
// (spec.md §7, NoSql). No function in this module returns it: Command.Exec
// and Command.Query hand empty SQL text to the driver unchanged.
var ErrNoSql = errors.New("gom: command has no SQL text")

// ErrEmptyResult is returned by FindOne when the query matched no row.
var ErrEmptyResult = errors.New("gom: no matching row")

// SqliteError reports an engine-level failure: its result code, message,
// and the offending SQL text, per spec.md §7's SqliteError(code, message,
// sql).
type SqliteError struct {
	Code    int
	Message string
	SQL     string
	Err     error
}

func (e *SqliteError) Error() string {
	if e.SQL != "" {
		return fmt.Sprintf("gom: sqlite error %d: %s (sql: %s)", e.Code, e.Message, e.SQL)
	}
	return fmt.Sprintf("gom: sqlite error %d: %s", e.Code, e.Message)
}

func (e *SqliteError) Unwrap() error { return e.Err }

// MigrationFailedError reports which migration step failed and why
// (spec.md §7, MigrationFailed(step, cause)).
type MigrationFailedError struct {
	Step  int
	Cause error
}

func (e *MigrationFailedError) Error() string {
	return fmt.Sprintf("gom: migration step %d failed: %v", e.Step, e.Cause)
}

func (e *MigrationFailedError) Unwrap() error { return e.Cause }

// RowMaterialiseFailedError reports a cursor column whose storage class was
// incompatible with the destination property's value kind.
type RowMaterialiseFailedError struct {
	Entity   string
	Property string
	Err      error
}

func (e *RowMaterialiseFailedError) Error() string {
	return fmt.Sprintf("gom: materialising %s.%s: %v", e.Entity, e.Property, e.Err)
}

func (e *RowMaterialiseFailedError) Unwrap() error { return e.Err }

// wrapSqliteError turns a constraint violation reported by the driver into
// a *SqliteError carrying the offending SQL text, so Resource.Save/Delete
// surface spec.md §7's taxonomy instead of a bare driver error (spec.md §8,
// scenario S2). Any other error is returned unchanged.
func wrapSqliteError(err error, sqlText string) error {
	if err == nil || !gomsql.IsConstraintError(err) {
		return err
	}
	code, _ := gomsql.ErrorCode(err)
	return &SqliteError{Code: code, Message: err.Error(), SQL: sqlText, Err: err}
}

// IsEmptyResult reports whether err is, or wraps, ErrEmptyResult.
func IsEmptyResult(err error) bool { return errors.Is(err, ErrEmptyResult) }

// IsSqliteError reports whether err is, or wraps, a *SqliteError.
func IsSqliteError(err error) bool {
	var e *SqliteError
	return errors.As(err, &e)
}

// IsMigrationFailed reports whether err is, or wraps, a *MigrationFailedError.
func IsMigrationFailed(err error) bool {
	var e *MigrationFailedError
	return errors.As(err, &e)
}

// IsRowMaterialiseFailed reports whether err is, or wraps, a
// *RowMaterialiseFailedError.
func IsRowMaterialiseFailed(err error) bool {
	var e *RowMaterialiseFailedError
	return errors.As(err, &e)
}
