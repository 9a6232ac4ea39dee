package schema

import (
	"fmt"

	"github.com/syssam/gom/codec"
)

// InvalidTableNameError reports a table name that fails spec.md §3's
// identifier grammar.
type InvalidTableNameError struct {
	Name string
}

func (e *InvalidTableNameError) Error() string {
	return fmt.Sprintf("schema: invalid table name %q", e.Name)
}

// UnknownColumnError reports a property name that does not resolve against
// an entity's own schema or any ancestor's (spec.md §4.4, "A filter that
// references a property not owned by the queried entity... is a
// compile-time error").
type UnknownColumnError struct {
	Entity   string
	Property string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("schema: unknown column %q on entity %q", e.Property, e.Entity)
}

// Registry is the process-wide, append-only catalogue of entity schemas
// (spec.md §4.2). It is populated once at program start, before any
// Repository opens, and is safe for concurrent reads thereafter without
// locking — the same single-phase-startup discipline the teacher's code
// generator applies to its own schema graph, just evaluated at runtime
// instead of via `go generate`.
type Registry struct {
	entities map[string]*Entity
	order    []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entities: make(map[string]*Entity)}
}

// Register validates and adds one entity schema. table may be empty, in
// which case it defaults to the snake_case form of typeName
// (schema.DefaultTableName). parentType may be empty (no inheritance) or
// name another entity — registered already or not yet (forward
// declaration is permitted for parents and reference targets alike,
// spec.md §4.2).
func (r *Registry) Register(typeName, table, parentType string, props ...*Property) (*Entity, error) {
	if _, exists := r.entities[typeName]; exists {
		return nil, fmt.Errorf("schema: entity %q already registered", typeName)
	}
	if table == "" {
		table = DefaultTableName(typeName)
	}
	result := &ValidationResult{}
	if !ValidTableName(table) {
		result.add(typeName, "", fmt.Sprintf("table name %q is not a valid identifier", table))
	}

	var pk *Property
	seen := make(map[string]bool, len(props))
	for _, p := range props {
		if seen[p.Name] {
			result.add(typeName, p.Name, "duplicate property name")
		}
		seen[p.Name] = true
		if p.VersionIntroduced < 1 {
			result.add(typeName, p.Name, "version_introduced must be >= 1")
		}
		if p.PrimaryKey {
			if pk != nil {
				result.add(typeName, p.Name, fmt.Sprintf("entity already has primary key %q", pk.Name))
			}
			pk = p
		}
	}
	if pk == nil {
		result.add(typeName, "", "entity has no primary-key property")
	} else if pk.AutoGenerated && !isIntegerKind(pk.Kind) {
		result.add(typeName, pk.Name, "auto-generated primary key must have an integer value kind")
	}
	if result.HasErrors() {
		return nil, result.AsError()
	}

	e := &Entity{
		TypeName:   typeName,
		Table:      table,
		Properties: props,
		PrimaryKey: pk,
		ParentType: parentType,
	}
	r.entities[typeName] = e
	r.order = append(r.order, typeName)
	r.resolveParents()
	return e, nil
}

func (r *Registry) resolveParents() {
	for _, e := range r.entities {
		if e.ParentType != "" && e.parent == nil {
			if parent, ok := r.entities[e.ParentType]; ok {
				e.parent = parent
			}
		}
	}
}

// Lookup returns the registered entity for typeName, if any.
func (r *Registry) Lookup(typeName string) (*Entity, bool) {
	e, ok := r.entities[typeName]
	return e, ok
}

// Types returns every registered type name, in registration order.
func (r *Registry) Types() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// ResolveProperty finds the property named name on the entity typeName, or
// on one of its ancestors, returning the entity schema (own or ancestor)
// that owns it.
func (r *Registry) ResolveProperty(typeName, name string) (owner *Entity, prop *Property, err error) {
	e, ok := r.entities[typeName]
	if !ok {
		return nil, nil, fmt.Errorf("schema: entity %q is not registered", typeName)
	}
	if p, found := e.Property(name); found {
		return e, p, nil
	}
	for _, anc := range e.Ancestors() {
		if p, found := anc.Property(name); found {
			return anc, p, nil
		}
	}
	return nil, nil, &UnknownColumnError{Entity: typeName, Property: name}
}

func isIntegerKind(k codec.Kind) bool {
	switch k {
	case codec.KindInt8, codec.KindInt16, codec.KindInt32, codec.KindInt64,
		codec.KindUint8, codec.KindUint16, codec.KindUint32, codec.KindUint64:
		return true
	default:
		return false
	}
}
