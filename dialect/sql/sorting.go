package sql

import (
	"fmt"
	"strings"

	"github.com/syssam/gom/schema"
)

// Direction is a Sorting term's ordering direction.
type Direction int

const (
	Ascending Direction = iota + 1
	Descending
)

// SortTerm is one (entity, property, direction) triple.
type SortTerm struct {
	Entity    string
	Property  string
	Direction Direction
}

// Sorting is an ordered, non-empty list of SortTerms (spec.md §3, Sorting).
// A nil or empty Sorting compiles to an empty ORDER BY fragment.
type Sorting []SortTerm

// By is a convenience constructor for a Sorting value.
func By(terms ...SortTerm) Sorting { return Sorting(terms) }

// Asc and Desc build one SortTerm each.
func Asc(entity, property string) SortTerm  { return SortTerm{entity, property, Ascending} }
func Desc(entity, property string) SortTerm { return SortTerm{entity, property, Descending} }

// ToSQL compiles the Sorting into an ORDER BY fragment (without the
// "ORDER BY" keyword), comma-separating terms in declared order.
func (s Sorting) ToSQL(reg *schema.Registry, rw TableRewrite) (string, error) {
	if len(s) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(s))
	for _, term := range s {
		table, column, err := ownerColumn(reg, term.Entity, term.Property)
		if err != nil {
			return "", err
		}
		frag := fmt.Sprintf("'%s'.'%s'", rw.apply(table), column)
		if term.Direction == Descending {
			frag += " DESC"
		}
		parts = append(parts, frag)
	}
	return strings.Join(parts, ", "), nil
}
