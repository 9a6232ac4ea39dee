package schema

import "github.com/syssam/gom/schema/field"

// Property is the registered metadata for one entity attribute (spec.md §3).
// The concrete type lives in the field package; schema re-exports it so
// callers can write schema.Property without importing field directly,
// mirroring the teacher's re-export doc comment in schema/doc.go.
type Property = field.Descriptor

// Entity is the declared shape of one table: its properties, primary key,
// and optional parent for inheritance-style joins (spec.md §3, Entity
// Schema; §4.4, parent-joins).
type Entity struct {
	TypeName   string
	Table      string
	Properties []*Property
	PrimaryKey *Property
	ParentType string

	parent *Entity
}

// Parent returns the resolved parent entity schema, or nil if this entity
// has none.
func (e *Entity) Parent() *Entity { return e.parent }

// Property looks up a property declared directly on this entity (not its
// ancestors) by name.
func (e *Entity) Property(name string) (*Property, bool) {
	for _, p := range e.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// Ancestors returns this entity's parent chain, nearest first.
func (e *Entity) Ancestors() []*Entity {
	var out []*Entity
	for p := e.parent; p != nil; p = p.parent {
		out = append(out, p)
	}
	return out
}

// Mapped returns every property that participates in SELECT field lists:
// this entity's own properties plus every ancestor's, in the order spec.md
// §4.4.2 requires (own type mapped properties, then ancestors).
func (e *Entity) Mapped() []struct {
	Owner    *Entity
	Property *Property
} {
	var out []struct {
		Owner    *Entity
		Property *Property
	}
	for _, p := range e.Properties {
		out = append(out, struct {
			Owner    *Entity
			Property *Property
		}{e, p})
	}
	for _, anc := range e.Ancestors() {
		for _, p := range anc.Properties {
			out = append(out, struct {
				Owner    *Entity
				Property *Property
			}{anc, p})
		}
	}
	return out
}

// OwnerTable resolves the table that owns a named property: this entity's
// own table if it declares the property, otherwise the table of the nearest
// ancestor that declares it (spec.md §4.3, table(T, p)).
func (e *Entity) OwnerTable(name string) (table string, ok bool) {
	if _, found := e.Property(name); found {
		return e.Table, true
	}
	for _, anc := range e.Ancestors() {
		if _, found := anc.Property(name); found {
			return anc.Table, true
		}
	}
	return "", false
}

// PropertiesAtVersion returns the properties introduced at exactly version
// v, in declaration order (spec.md §4.4.1, ALTER generation).
func (e *Entity) PropertiesAtVersion(v int) []*Property {
	var out []*Property
	for _, p := range e.Properties {
		if p.VersionIntroduced == v && !p.PrimaryKey {
			out = append(out, p)
		}
	}
	return out
}
