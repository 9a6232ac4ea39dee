package sql

import (
	"fmt"
	"strings"

	"github.com/syssam/gom/schema"
)

// writableColumns returns the columns an INSERT or UPDATE touches: every
// property declared directly on e, excluding the auto-generated primary key
// (spec.md §4.4.5, "every mapped property that belongs to the entity type...
// and is not the auto-generated primary key"). Order follows declaration
// order, the sole source of column order for these two statements.
func writableColumns(e *schema.Entity) []*schema.Property {
	var out []*schema.Property
	for _, p := range e.Properties {
		if p.PrimaryKey && p.AutoGenerated {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Insert builds the INSERT command for e, binding values in column
// declaration order (spec.md §4.4.5).
func Insert(e *schema.Entity, values map[string]any) (*Command, error) {
	cols := writableColumns(e)
	names := make([]string, 0, len(cols))
	placeholders := make([]string, 0, len(cols))
	binds := make([]any, 0, len(cols))
	for _, p := range cols {
		v, ok := values[p.Name]
		if !ok {
			return nil, fmt.Errorf("dialect/sql: insert into %q: missing value for %q", e.Table, p.Name)
		}
		names = append(names, fmt.Sprintf("'%s'", p.Column))
		placeholders = append(placeholders, "?")
		binds = append(binds, v)
	}
	sqlText := fmt.Sprintf("INSERT INTO '%s' (%s) VALUES (%s)",
		e.Table, strings.Join(names, ", "), strings.Join(placeholders, ", "))
	return NewCommand(sqlText, binds), nil
}

// Update builds the UPDATE command for e, setting every writable column to
// its current value and filtering by primary key (spec.md §4.4.6).
func Update(e *schema.Entity, values map[string]any, pkValue any) (*Command, error) {
	cols := writableColumns(e)
	sets := make([]string, 0, len(cols))
	binds := make([]any, 0, len(cols)+1)
	for _, p := range cols {
		v, ok := values[p.Name]
		if !ok {
			return nil, fmt.Errorf("dialect/sql: update %q: missing value for %q", e.Table, p.Name)
		}
		sets = append(sets, fmt.Sprintf("'%s' = ?", p.Column))
		binds = append(binds, v)
	}
	binds = append(binds, pkValue)
	sqlText := fmt.Sprintf("UPDATE '%s' SET %s WHERE '%s'.'%s' = ?",
		e.Table, strings.Join(sets, ", "), e.Table, e.PrimaryKey.Column)
	return NewCommand(sqlText, binds), nil
}

// Delete builds the DELETE command for e. A nil filter deletes every row,
// which spec.md §4.4.4 permits explicitly.
func Delete(e *schema.Entity, reg *schema.Registry, f Filter) (*Command, error) {
	where, binds, err := ToSQL(f, reg, nil)
	if err != nil {
		return nil, err
	}
	sqlText := fmt.Sprintf("DELETE FROM '%s'", e.Table)
	if where != "" {
		sqlText += " WHERE " + where
	}
	return NewCommand(sqlText, binds), nil
}
