package gom

import (
	"context"

	"github.com/syssam/gom/codec"
	gomsql "github.com/syssam/gom/dialect/sql"
	"github.com/syssam/gom/schema"
)

// ResourceGroup is a counted, lazily-materialised view over a filtered and
// optionally sorted query (spec.md §4.7, Resource Group). Its count is a
// snapshot taken at construction and never refreshes.
type ResourceGroup struct {
	repo    *Repository
	entity  *schema.Entity
	filter  gomsql.Filter
	sorting gomsql.Sorting
	count   int
	index   map[int]*Resource
}

// GetCount returns the group's snapshot row count.
func (g *ResourceGroup) GetCount() int { return g.count }

// GetIndex returns the entity materialised at row i, or false if that row
// has not been fetched yet (spec.md §4.7, "get_index").
func (g *ResourceGroup) GetIndex(i int) (*Resource, bool) {
	res, ok := g.index[i]
	return res, ok
}

// Fetch runs a SELECT over the group's filter, sorting, and the given
// LIMIT/OFFSET, materialising one Resource per row into the group's sparse
// index map at offset+row-ordinal (spec.md §4.7, "fetch"). Two overlapping
// fetches replace earlier materialisations at overlapping indices.
func (g *ResourceGroup) Fetch(offset, count int) error {
	cmd, err := gomsql.Select(gomsql.SelectOptions{
		Entity:   g.entity,
		Registry: g.repo.registry,
		Filter:   g.filter,
		Sorting:  g.sorting,
		Limit:    count,
		Offset:   offset,
	})
	if err != nil {
		return err
	}

	return g.repo.adapter.Read(func(drv *gomsql.Driver) error {
		ctx := context.Background()
		rows, err := cmd.Query(ctx, drv)
		if err != nil {
			return err
		}
		defer rows.Close()

		cols, err := rows.Columns()
		if err != nil {
			return err
		}

		ordinal := 0
		for rows.Next() {
			res, err := materialise(g.repo, g.entity, cols, rows)
			if err != nil {
				return err
			}
			g.index[offset+ordinal] = res
			ordinal++
		}
		return rows.Err()
	})
}

func lookupByColumn(e *schema.Entity, column string) (*schema.Entity, *schema.Property, bool) {
	for _, p := range e.Properties {
		if p.Column == column {
			return e, p, true
		}
	}
	for _, anc := range e.Ancestors() {
		for _, p := range anc.Properties {
			if p.Column == column {
				return anc, p, true
			}
		}
	}
	return nil, nil, false
}

func materialise(repo *Repository, e *schema.Entity, cols []string, rows *gomsql.Rows) (*Resource, error) {
	raws := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range raws {
		ptrs[i] = &raws[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, err
	}

	res := &Resource{
		repo:      repo,
		entity:    e,
		values:    make(map[string]any, len(cols)),
		dirty:     make(map[string]bool),
		persisted: true,
	}
	for i, col := range cols {
		owner, prop, found := lookupByColumn(e, col)
		if !found {
			continue
		}
		v, err := codec.Read(prop.Kind, true, raws[i], prop.Transform, prop.EnumValues)
		if err != nil {
			return nil, &RowMaterialiseFailedError{Entity: owner.TypeName, Property: prop.Name, Err: err}
		}
		res.values[prop.Name] = v
	}
	return res, nil
}
