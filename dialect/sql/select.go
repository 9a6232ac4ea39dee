package sql

import (
	"fmt"
	"strings"

	"github.com/syssam/gom/schema"
)

// JunctionTable describes the many-to-many join-table plumbing for a SELECT
// (spec.md §4.4.2). The join table's columns follow the "<ownerTable>:
// <ownerPk>" / "<elementTable>:<elementPk>" naming convention of §6.
type JunctionTable struct {
	// Table is the join table's name.
	Table string
	// Element is the entity schema on the far side of the join.
	Element *schema.Entity
}

// SelectOptions describes one SELECT or COUNT statement.
type SelectOptions struct {
	Entity   *schema.Entity
	Registry *schema.Registry
	Filter   Filter
	Sorting  Sorting
	Limit    int
	Offset   int
	Junction *JunctionTable
	// Rewrite redirects filter/sorting table resolution onto the aliased
	// join tables introduced by Junction (spec.md §4.3, TableRewrite).
	Rewrite TableRewrite
	// Distinct asks for one row per owner even when Junction's join fans
	// out to multiple element rows, emitted as a GROUP BY on the owner's
	// primary key (spec.md §12, build_select_sql's many-to-many distinct
	// rows behaviour). Ignored when Junction is nil.
	Distinct bool
}

// groupBy emits the GROUP BY clause for a distinct many-to-many select, or
// "" when none is requested.
func (o SelectOptions) groupBy() string {
	if !o.Distinct || o.Junction == nil {
		return ""
	}
	return fmt.Sprintf("'%s'.'%s'", o.Entity.Table, o.Entity.PrimaryKey.Column)
}

func (o SelectOptions) fromAndJoins() (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "FROM '%s'", o.Entity.Table)
	for _, anc := range o.Entity.Ancestors() {
		fmt.Fprintf(&sb, " JOIN '%s' ON '%s'.'%s' = '%s'.'%s'",
			anc.Table, o.Entity.Table, o.Entity.PrimaryKey.Column, anc.Table, anc.PrimaryKey.Column)
	}
	if o.Junction != nil {
		selfTable, selfPK := o.Entity.Table, o.Entity.PrimaryKey.Column
		fmt.Fprintf(&sb, " JOIN '%s' ON '%s'.'%s' = '%s'.'%s:%s'",
			o.Junction.Table, selfTable, selfPK, o.Junction.Table, selfTable, selfPK)

		prefix := o.Junction.Element.Table
		chain := append(reversedAncestors(o.Junction.Element), o.Junction.Element)
		for _, b := range chain {
			alias := fmt.Sprintf("%s_%s", o.Junction.Table, b.Table)
			fmt.Fprintf(&sb, " JOIN '%s' AS '%s' ON '%s'.'%s' = '%s'.'%s:%s'",
				b.Table, alias, alias, b.PrimaryKey.Column, o.Junction.Table, prefix, selfPK)
		}
	}
	return sb.String(), nil
}

func reversedAncestors(e *schema.Entity) []*schema.Entity {
	anc := e.Ancestors()
	out := make([]*schema.Entity, len(anc))
	for i, a := range anc {
		out[len(anc)-1-i] = a
	}
	return out
}

// fieldList emits '<owner-table>'.'<column>' AS '<column>' for every mapped
// property of the entity and its ancestors, skipping any property whose
// storage kind cannot be determined (spec.md §4.4.2).
func (o SelectOptions) fieldList() string {
	var parts []string
	for _, m := range o.Entity.Mapped() {
		if _, err := storageOf(m.Property); err != nil {
			continue
		}
		parts = append(parts, fmt.Sprintf("'%s'.'%s' AS '%s'", m.Owner.Table, m.Property.Column, m.Property.Column))
	}
	return strings.Join(parts, ", ")
}

func (o SelectOptions) whereOrderLimit() (whereSQL string, binds []any, orderSQL string, err error) {
	whereSQL, binds, err = ToSQL(o.Filter, o.Registry, o.Rewrite)
	if err != nil {
		return "", nil, "", err
	}
	orderSQL, err = o.Sorting.ToSQL(o.Registry, o.Rewrite)
	if err != nil {
		return "", nil, "", err
	}
	return whereSQL, binds, orderSQL, nil
}

// Select builds the SELECT command described by o (spec.md §4.4.2).
func Select(o SelectOptions) (*Command, error) {
	from, err := o.fromAndJoins()
	if err != nil {
		return nil, err
	}
	where, binds, order, err := o.whereOrderLimit()
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s %s", o.fieldList(), from)
	if where != "" {
		fmt.Fprintf(&sb, " WHERE %s", where)
	}
	if group := o.groupBy(); group != "" {
		fmt.Fprintf(&sb, " GROUP BY %s", group)
	}
	if order != "" {
		fmt.Fprintf(&sb, " ORDER BY %s", order)
	}
	if o.Limit != 0 {
		fmt.Fprintf(&sb, " LIMIT %d", o.Limit)
	}
	if o.Offset != 0 {
		fmt.Fprintf(&sb, " OFFSET %d", o.Offset)
	}
	return NewCommand(sb.String(), binds), nil
}

// Count builds the SELECT COUNT('<table>'.'<pk>') command reusing o's
// FROM/JOIN/WHERE composition (spec.md §4.4.3).
func Count(o SelectOptions) (*Command, error) {
	from, err := o.fromAndJoins()
	if err != nil {
		return nil, err
	}
	where, binds, _, err := o.whereOrderLimit()
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT COUNT('%s'.'%s') %s", o.Entity.Table, o.Entity.PrimaryKey.Column, from)
	if where != "" {
		fmt.Fprintf(&sb, " WHERE %s", where)
	}
	if o.Limit != 0 {
		fmt.Fprintf(&sb, " LIMIT %d", o.Limit)
	}
	if o.Offset != 0 {
		fmt.Fprintf(&sb, " OFFSET %d", o.Offset)
	}
	return NewCommand(sb.String(), binds), nil
}
