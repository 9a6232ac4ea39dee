package sql

import (
	"fmt"
	"strings"

	"github.com/syssam/gom/schema"
)

// TableRewrite maps a real table name to the alias it should be compiled
// under — the mechanism that lets a many-to-many SELECT compile a filter
// against its aliased ancestor joins (spec.md §4.3, "the table_rewrite_map
// argument supports the many-to-many aliasing described in §4.4").
type TableRewrite map[string]string

func (rw TableRewrite) apply(table string) string {
	if alias, ok := rw[table]; ok {
		return alias
	}
	return table
}

// Filter is a composable, typed predicate tree that compiles to a SQL
// fragment and an ordered bind list (spec.md §3, Filter Tree). The interface
// is unexported-method-sealed: the only implementations are the ones in this
// package, built through the constructor functions below.
type Filter interface {
	compile(reg *schema.Registry, rw TableRewrite) (string, []any, error)
}

// Operator is a Comparison leaf's relational operator.
type Operator int

const (
	OpEq Operator = iota + 1
	OpNeq
	OpGt
	OpGte
	OpLt
	OpLte
	OpLike
	OpGlob
)

func (o Operator) sql() (string, error) {
	switch o {
	case OpEq:
		return "=", nil
	case OpNeq:
		return "!=", nil
	case OpGt:
		return ">", nil
	case OpGte:
		return ">=", nil
	case OpLt:
		return "<", nil
	case OpLte:
		return "<=", nil
	case OpLike:
		return "LIKE", nil
	case OpGlob:
		return "GLOB", nil
	default:
		return "", fmt.Errorf("dialect/sql: unknown operator %d", o)
	}
}

// Comparison is a leaf filter comparing one property to a bound value.
type Comparison struct {
	Entity   string
	Property string
	Op       Operator
	Value    any
}

func (c *Comparison) compile(reg *schema.Registry, rw TableRewrite) (string, []any, error) {
	table, column, err := ownerColumn(reg, c.Entity, c.Property)
	if err != nil {
		return "", nil, err
	}
	opSQL, err := c.Op.sql()
	if err != nil {
		return "", nil, err
	}
	sql := fmt.Sprintf("'%s'.'%s' %s ?", rw.apply(table), column, opSQL)
	return sql, []any{c.Value}, nil
}

// NullCheck is a leaf filter testing a property for NULL.
type NullCheck struct {
	Entity   string
	Property string
	IsNull   bool
}

func (n *NullCheck) compile(reg *schema.Registry, rw TableRewrite) (string, []any, error) {
	table, column, err := ownerColumn(reg, n.Entity, n.Property)
	if err != nil {
		return "", nil, err
	}
	polarity := "IS NOT NULL"
	if n.IsNull {
		polarity = "IS NULL"
	}
	return fmt.Sprintf("'%s'.'%s' %s", rw.apply(table), column, polarity), nil, nil
}

// RawSql is a leaf filter passing an already-written SQL fragment and its
// binds straight through.
type RawSql struct {
	SQL   string
	Binds []any
}

func (r *RawSql) compile(*schema.Registry, TableRewrite) (string, []any, error) {
	return r.SQL, r.Binds, nil
}

// junction is the shared implementation of And/Or: a non-empty ordered list
// of children joined by a connective, every non-leaf parenthesised so
// (A AND B) OR C and A AND (B OR C) never collide in the emitted SQL
// (spec.md §4.3, "Operator precedence").
type junction struct {
	connective string
	children   []Filter
}

func (j *junction) compile(reg *schema.Registry, rw TableRewrite) (string, []any, error) {
	if len(j.children) == 0 {
		return "", nil, fmt.Errorf("dialect/sql: empty %s filter", j.connective)
	}
	if len(j.children) == 1 {
		return j.children[0].compile(reg, rw)
	}
	var parts []string
	var binds []any
	for _, c := range j.children {
		frag, cbinds, err := c.compile(reg, rw)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, frag)
		binds = append(binds, cbinds...)
	}
	return "(" + strings.Join(parts, " "+j.connective+" ") + ")", binds, nil
}

func ownerColumn(reg *schema.Registry, entityType, property string) (table, column string, err error) {
	owner, prop, err := reg.ResolveProperty(entityType, property)
	if err != nil {
		return "", "", err
	}
	return owner.Table, prop.Column, nil
}

// ToSQL compiles f against reg, applying rw to every resolved table name.
// rw may be nil, in which case no table is rewritten.
func ToSQL(f Filter, reg *schema.Registry, rw TableRewrite) (string, []any, error) {
	if f == nil {
		return "", nil, nil
	}
	return f.compile(reg, rw)
}

// Eq, Neq, Gt, Gte, Lt, Lte, Like, and Glob build Comparison leaves.
func Eq(entity, property string, v any) Filter   { return &Comparison{entity, property, OpEq, v} }
func Neq(entity, property string, v any) Filter  { return &Comparison{entity, property, OpNeq, v} }
func Gt(entity, property string, v any) Filter   { return &Comparison{entity, property, OpGt, v} }
func Gte(entity, property string, v any) Filter  { return &Comparison{entity, property, OpGte, v} }
func Lt(entity, property string, v any) Filter   { return &Comparison{entity, property, OpLt, v} }
func Lte(entity, property string, v any) Filter  { return &Comparison{entity, property, OpLte, v} }
func Like(entity, property string, v any) Filter { return &Comparison{entity, property, OpLike, v} }
func Glob(entity, property string, v any) Filter { return &Comparison{entity, property, OpGlob, v} }

// IsNull and IsNotNull build NullCheck leaves.
func IsNull(entity, property string) Filter {
	return &NullCheck{entity, property, true}
}

func IsNotNull(entity, property string) Filter {
	return &NullCheck{entity, property, false}
}

// Raw builds a RawSql leaf, passing sql and its binds straight through.
func Raw(sql string, binds ...any) Filter {
	return &RawSql{SQL: sql, Binds: binds}
}

// And and Or build junction nodes. Each requires at least one child; an
// empty call is a construction-time error surfaced when the filter is
// compiled, per spec.md §4.3.
func And(children ...Filter) Filter { return &junction{connective: "AND", children: children} }
func Or(children ...Filter) Filter  { return &junction{connective: "OR", children: children} }
