package gom

import (
	"context"
	"fmt"

	"github.com/syssam/gom/codec"
	gomsql "github.com/syssam/gom/dialect/sql"
	"github.com/syssam/gom/schema"
)

// Resource is one live entity instance: its schema, its current slot
// values, and dirty-tracking against the last save (spec.md §4.7,
// Resource).
type Resource struct {
	repo      *Repository
	entity    *schema.Entity
	values    map[string]any
	dirty     map[string]bool
	persisted bool
}

// Entity returns the schema this resource was instantiated from.
func (res *Resource) Entity() *schema.Entity { return res.entity }

// Persisted reports whether this resource has been saved at least once.
func (res *Resource) Persisted() bool { return res.persisted }

// Get returns the current value of a property, searching this entity's own
// schema and then its ancestors (spec.md §4.3, table(T,p)).
func (res *Resource) Get(name string) (any, error) {
	if _, _, err := res.repo.registry.ResolveProperty(res.entity.TypeName, name); err != nil {
		return nil, err
	}
	return res.values[name], nil
}

// Set assigns a new value to a property declared directly on this entity
// and marks it dirty. Properties inherited from a parent are not settable
// through the child resource (spec.md §4.4.5, INSERT/UPDATE only ever touch
// the owning type's own columns).
func (res *Resource) Set(name string, value any) error {
	if _, found := res.entity.Property(name); !found {
		return &schema.UnknownColumnError{Entity: res.entity.TypeName, Property: name}
	}
	res.values[name] = value
	res.dirty[name] = true
	return nil
}

func (res *Resource) isDirty() bool {
	for _, d := range res.dirty {
		if d {
			return true
		}
	}
	return false
}

// bindValues converts every writable property's current slot value into
// its SQLite-ready bind representation.
func (res *Resource) bindValues() (map[string]any, error) {
	out := make(map[string]any, len(res.entity.Properties))
	for _, p := range res.entity.Properties {
		if p.PrimaryKey && p.AutoGenerated {
			continue
		}
		v, err := codec.Bind(p.Kind, res.values[p.Name], p.Transform, p.EnumValues)
		if err != nil {
			return nil, fmt.Errorf("gom: binding %s.%s: %w", res.entity.TypeName, p.Name, err)
		}
		out[p.Name] = v
	}
	return out, nil
}

// saveReferences recursively saves every related-entity reference property
// that currently holds an unsaved *Resource, then replaces the slot with
// the related resource's primary key (spec.md §4.7, save step 1). A cycle
// among references is caller error and is not detected.
func (res *Resource) saveReferences(ctx context.Context) error {
	for _, p := range res.entity.Properties {
		if p.Kind != codec.KindReference {
			continue
		}
		v, ok := res.values[p.Name]
		if !ok || v == nil {
			continue
		}
		related, ok := v.(*Resource)
		if !ok {
			continue
		}
		if err := related.Save(ctx); err != nil {
			return err
		}
		pk, err := related.Get(related.entity.PrimaryKey.Name)
		if err != nil {
			return err
		}
		res.values[p.Name] = pk
		res.dirty[p.Name] = true
	}
	return nil
}

// applyDefaults fills any unset property carrying a Default (spec.md §3,
// "identifier fields") before the first save, the client-generated
// counterpart to an AutoGenerated integer primary key.
func (res *Resource) applyDefaults() {
	for _, p := range res.entity.Properties {
		if p.Default == nil {
			continue
		}
		if v, ok := res.values[p.Name]; ok && v != nil {
			continue
		}
		res.values[p.Name] = p.Default()
		res.dirty[p.Name] = true
	}
}

// Save persists this resource (spec.md §4.7): related references are saved
// first, then an INSERT is issued for a new resource or an UPDATE for a
// dirty, already-persisted one.
func (res *Resource) Save(ctx context.Context) error {
	if err := res.saveReferences(ctx); err != nil {
		return err
	}

	if !res.persisted {
		res.applyDefaults()
		binds, err := res.bindValues()
		if err != nil {
			return err
		}
		cmd, err := gomsql.Insert(res.entity, binds)
		if err != nil {
			return err
		}
		var lastInsertID int64
		err = res.repo.adapter.Write(func(drv *gomsql.Driver) error {
			result, execErr := cmd.Exec(ctx, drv)
			if execErr != nil {
				return execErr
			}
			if res.entity.PrimaryKey.AutoGenerated {
				lastInsertID, execErr = result.LastInsertId()
			}
			return execErr
		})
		if err != nil {
			return wrapSqliteError(err, cmd.SQL)
		}
		if res.entity.PrimaryKey.AutoGenerated {
			res.values[res.entity.PrimaryKey.Name] = lastInsertID
		}
		res.persisted = true
		res.dirty = make(map[string]bool)
		return nil
	}

	if !res.isDirty() {
		return nil
	}
	binds, err := res.bindValues()
	if err != nil {
		return err
	}
	pkValue, err := codec.Bind(res.entity.PrimaryKey.Kind, res.values[res.entity.PrimaryKey.Name], nil, nil)
	if err != nil {
		return fmt.Errorf("gom: binding %s primary key: %w", res.entity.TypeName, err)
	}
	cmd, err := gomsql.Update(res.entity, binds, pkValue)
	if err != nil {
		return err
	}
	if err := res.repo.adapter.Write(func(drv *gomsql.Driver) error {
		_, execErr := cmd.Exec(ctx, drv)
		return execErr
	}); err != nil {
		return wrapSqliteError(err, cmd.SQL)
	}
	res.dirty = make(map[string]bool)
	return nil
}

// Delete removes this resource's row. It is a no-op on a resource that was
// never persisted (spec.md §4.7, "delete").
func (res *Resource) Delete(ctx context.Context) error {
	if !res.persisted {
		return nil
	}
	pkValue, err := codec.Bind(res.entity.PrimaryKey.Kind, res.values[res.entity.PrimaryKey.Name], nil, nil)
	if err != nil {
		return fmt.Errorf("gom: binding %s primary key: %w", res.entity.TypeName, err)
	}
	f := gomsql.Eq(res.entity.TypeName, res.entity.PrimaryKey.Name, pkValue)
	cmd, err := gomsql.Delete(res.entity, res.repo.registry, f)
	if err != nil {
		return err
	}
	if err := res.repo.adapter.Write(func(drv *gomsql.Driver) error {
		_, execErr := cmd.Exec(ctx, drv)
		return execErr
	}); err != nil {
		return wrapSqliteError(err, cmd.SQL)
	}
	res.persisted = false
	return nil
}
