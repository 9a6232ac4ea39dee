package sql

import (
	"errors"
	"strings"
)

// errorCoder is implemented by modernc.org/sqlite's error type, which
// reports the underlying SQLite extended result code.
type errorCoder interface {
	Code() int
}

// SQLite extended result codes for constraint violations
// (https://www.sqlite.org/rescode.html#constraint).
const (
	sqliteConstraintUnique     = 2067 // SQLITE_CONSTRAINT_UNIQUE
	sqliteConstraintPrimaryKey = 1555 // SQLITE_CONSTRAINT_PRIMARYKEY
	sqliteConstraintForeignKey = 787  // SQLITE_CONSTRAINT_FOREIGNKEY
	sqliteConstraintCheck      = 275  // SQLITE_CONSTRAINT_CHECK
)

// sqliteConstraint is the primary SQLITE_CONSTRAINT result code; every
// extended constraint code carries it in its low byte.
const sqliteConstraint = 19

// IsConstraintError reports whether err resulted from any SQLite constraint
// violation.
func IsConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if e, ok := asError[errorCoder](err); ok && e.Code()&0xff == sqliteConstraint {
		return true
	}
	return IsUniqueConstraintError(err) ||
		IsForeignKeyConstraintError(err) ||
		IsCheckConstraintError(err) ||
		containsAny(err.Error(), "constraint failed")
}

// IsUniqueConstraintError reports whether err resulted from a UNIQUE or
// PRIMARY KEY constraint violation (spec.md §8, scenario S2).
func IsUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if e, ok := asError[errorCoder](err); ok {
		switch e.Code() {
		case sqliteConstraintUnique, sqliteConstraintPrimaryKey:
			return true
		}
	}
	return containsAny(err.Error(), "UNIQUE constraint failed", "PRIMARY KEY constraint failed")
}

// IsForeignKeyConstraintError reports whether err resulted from a FOREIGN
// KEY constraint violation.
func IsForeignKeyConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if e, ok := asError[errorCoder](err); ok {
		if e.Code() == sqliteConstraintForeignKey {
			return true
		}
	}
	return containsAny(err.Error(), "FOREIGN KEY constraint failed")
}

// IsCheckConstraintError reports whether err resulted from a CHECK
// constraint violation.
func IsCheckConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if e, ok := asError[errorCoder](err); ok {
		if e.Code() == sqliteConstraintCheck {
			return true
		}
	}
	return containsAny(err.Error(), "CHECK constraint failed")
}

// ErrorCode returns the SQLite extended result code carried by err, if the
// driver reported one (modernc.org/sqlite's error type implements
// errorCoder). Used by callers that need the raw code to build their own
// typed error, e.g. gom.SqliteError.
func ErrorCode(err error) (int, bool) {
	e, ok := asError[errorCoder](err)
	if !ok {
		return 0, false
	}
	return e.Code(), true
}

// asError walks err's Unwrap tree (including errors.Join trees) for the
// first value implementing T.
func asError[T any](err error) (T, bool) {
	var target T
	if errors.As(err, &target) {
		return target, true
	}
	return target, false
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
