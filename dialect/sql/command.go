package sql

import (
	"context"
	"errors"

	"github.com/syssam/gom/dialect"
)

// ErrCommandAlreadyExecuted is returned when Exec or Query is called a
// second time on the same Command without an intervening Reset (spec.md §3,
// Command: "one-shot: execute may be invoked once per binding set").
var ErrCommandAlreadyExecuted = errors.New("dialect/sql: command already executed, call Reset to rebind")

// Command is SQL text with numbered ? placeholders plus its ordered bind
// list (spec.md §3, Command).
type Command struct {
	SQL      string
	Binds    []any
	executed bool
}

// NewCommand wraps sqlText and binds into a one-shot Command.
func NewCommand(sqlText string, binds []any) *Command {
	return &Command{SQL: sqlText, Binds: binds}
}

// Reset rebinds the command with a new value list, clearing the
// already-executed guard.
func (c *Command) Reset(binds []any) {
	c.Binds = binds
	c.executed = false
}

// Exec runs the command for its side effects (INSERT/UPDATE/DELETE/DDL).
func (c *Command) Exec(ctx context.Context, ex dialect.ExecQuerier) (Result, error) {
	if c.executed {
		return nil, ErrCommandAlreadyExecuted
	}
	c.executed = true
	var res Result
	if err := ex.Exec(ctx, c.SQL, c.Binds, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// Query runs the command and returns its result rows.
func (c *Command) Query(ctx context.Context, ex dialect.ExecQuerier) (*Rows, error) {
	if c.executed {
		return nil, ErrCommandAlreadyExecuted
	}
	c.executed = true
	rows := &Rows{}
	if err := ex.Query(ctx, c.SQL, c.Binds, rows); err != nil {
		return nil, err
	}
	return rows, nil
}
