package gom

import (
	"context"
	"errors"
	"fmt"

	"github.com/syssam/gom/adapter"
	gomsql "github.com/syssam/gom/dialect/sql"
	gomschema "github.com/syssam/gom/dialect/sql/schema"
	"github.com/syssam/gom/schema"
)

// Repository composes an Adapter with a schema Registry to carry out
// migrations and hand back counted Resource Groups (spec.md §4.6,
// Repository).
type Repository struct {
	adapter  *adapter.Adapter
	registry *schema.Registry
}

// NewRepository returns a Repository backed by a (already-opened) adapter
// and a populated registry.
func NewRepository(a *adapter.Adapter, reg *schema.Registry) *Repository {
	return &Repository{adapter: a, registry: reg}
}

// Registry returns the repository's entity schema registry.
func (r *Repository) Registry() *schema.Registry { return r.registry }

// New returns a fresh, not-yet-persisted Resource of the named entity type.
func (r *Repository) New(typeName string) (*Resource, error) {
	e, ok := r.registry.Lookup(typeName)
	if !ok {
		return nil, fmt.Errorf("gom: unknown entity %q", typeName)
	}
	return &Resource{
		repo:   r,
		entity: e,
		values: make(map[string]any),
		dirty:  make(map[string]bool),
	}, nil
}

// AutomaticMigrate runs the built-in migrator (spec.md §4.6) for the named
// entity types up to target.
func (r *Repository) AutomaticMigrate(ctx context.Context, target int, typeNames []string) error {
	entities := make([]*schema.Entity, 0, len(typeNames))
	for _, name := range typeNames {
		e, ok := r.registry.Lookup(name)
		if !ok {
			return fmt.Errorf("gom: unknown entity %q", name)
		}
		entities = append(entities, e)
	}
	return r.Migrate(ctx, target, gomschema.AutomaticMigrator(entities))
}

// Migrate advances the database to target using a caller-provided migrator,
// inside the transactional step loop described in spec.md §4.6.
func (r *Repository) Migrate(ctx context.Context, target int, migrator gomschema.Migrator) error {
	err := r.adapter.Write(func(drv *gomsql.Driver) error {
		return gomschema.Migrate(ctx, drv, target, migrator)
	})
	var stepErr *gomschema.StepFailedError
	if errors.As(err, &stepErr) {
		return &MigrationFailedError{Step: stepErr.Step, Cause: stepErr.Cause}
	}
	return err
}

// Find builds a Resource Group for typeName filtered by f, with no
// declared sort order (spec.md §4.6, "find").
func (r *Repository) Find(typeName string, f gomsql.Filter) (*ResourceGroup, error) {
	return r.FindSorted(typeName, f, nil)
}

// FindSorted is Find with an explicit Sorting applied to every subsequent
// fetch (spec.md §4.6, "find_sorted").
func (r *Repository) FindSorted(typeName string, f gomsql.Filter, sorting gomsql.Sorting) (*ResourceGroup, error) {
	e, ok := r.registry.Lookup(typeName)
	if !ok {
		return nil, fmt.Errorf("gom: unknown entity %q", typeName)
	}

	count, err := r.Count(typeName, f)
	if err != nil {
		return nil, err
	}

	return &ResourceGroup{
		repo:    r,
		entity:  e,
		filter:  f,
		sorting: sorting,
		count:   count,
		index:   make(map[int]*Resource),
	}, nil
}

// FindOne returns the single row matching f, or ErrEmptyResult if none
// matched (spec.md §4.6, "find_one").
func (r *Repository) FindOne(typeName string, f gomsql.Filter) (*Resource, error) {
	group, err := r.FindSorted(typeName, f, nil)
	if err != nil {
		return nil, err
	}
	if err := group.Fetch(0, 1); err != nil {
		return nil, err
	}
	res, ok := group.GetIndex(0)
	if !ok {
		return nil, ErrEmptyResult
	}
	return res, nil
}

// Count executes a COUNT command for typeName filtered by f.
func (r *Repository) Count(typeName string, f gomsql.Filter) (int, error) {
	e, ok := r.registry.Lookup(typeName)
	if !ok {
		return 0, fmt.Errorf("gom: unknown entity %q", typeName)
	}

	cmd, err := gomsql.Count(gomsql.SelectOptions{Entity: e, Registry: r.registry, Filter: f})
	if err != nil {
		return 0, err
	}

	var n int
	err = r.adapter.Read(func(drv *gomsql.Driver) error {
		rows, err := cmd.Query(context.Background(), drv)
		if err != nil {
			return err
		}
		defer rows.Close()
		if !rows.Next() {
			if err := rows.Err(); err != nil {
				return err
			}
			return nil
		}
		return rows.Scan(&n)
	})
	return n, err
}
