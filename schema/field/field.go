// Package field provides fluent builders for declaring the properties of a
// gom entity schema (spec.md §3, Property). Field names follow database
// conventions; a property's Go-side value kind and its SQLite storage class
// are kept distinct so that codec.Kind alone drives encoding (see
// github.com/syssam/gom/codec).
package field

import (
	"github.com/google/uuid"

	"github.com/syssam/gom/codec"
)

// Reference describes the REFERENCES target of a related-entity property:
// the table and column of the entity being pointed to.
type Reference struct {
	Table  string
	Column string
}

// Descriptor is the fully resolved metadata for one property, as registered
// in an entity schema (spec.md §3, Property). It is re-exported by the
// schema package as schema.Property.
type Descriptor struct {
	Name              string
	Column            string
	Kind              codec.Kind
	PrimaryKey        bool
	Unique            bool
	NotNull           bool
	AutoGenerated     bool
	Eager             bool
	VersionIntroduced int
	Reference         *Reference
	Transform         *codec.Transform
	EnumValues        []string

	// Default, when set, supplies a value for the property at save time if
	// it is still unset. Used for client-generated primary keys such as
	// UUID, which SQLite has no server-side equivalent of (spec.md §4.7,
	// "a property without AutoGenerated is the caller's responsibility to
	// populate before Save").
	Default func() any
}

// Builder is a chainable property descriptor under construction.
type Builder struct {
	d *Descriptor
}

func newBuilder(name string, kind codec.Kind) *Builder {
	return &Builder{d: &Descriptor{
		Name:              name,
		Column:            name,
		Kind:              kind,
		VersionIntroduced: 1,
	}}
}

// Descriptor returns the built property descriptor.
func (b *Builder) Descriptor() *Descriptor { return b.d }

// Primary marks the property as the entity's primary key.
func (b *Builder) Primary() *Builder {
	b.d.PrimaryKey = true
	b.d.NotNull = true
	return b
}

// Unique adds a UNIQUE constraint to the column.
func (b *Builder) Unique() *Builder {
	b.d.Unique = true
	return b
}

// NotNull adds a NOT NULL constraint to the column.
func (b *Builder) NotNull() *Builder {
	b.d.NotNull = true
	return b
}

// AutoGenerated marks an integer primary key as SQLite AUTOINCREMENT.
func (b *Builder) AutoGenerated() *Builder {
	b.d.AutoGenerated = true
	return b
}

// Eager marks the property for eager-load (spec.md §3, property flag
// "eager-load"). gom's core does not implement eager traversal itself; the
// flag is carried for collaborators that do.
func (b *Builder) Eager() *Builder {
	b.d.Eager = true
	return b
}

// Version sets the schema version this property was introduced in.
func (b *Builder) Version(v int) *Builder {
	b.d.VersionIntroduced = v
	return b
}

// Column overrides the default column name (which is the property name).
func (b *Builder) Column(name string) *Builder {
	b.d.Column = name
	return b
}

// References marks a property as a foreign key into another entity's table
// and column.
func (b *Builder) References(table, column string) *Builder {
	b.d.Reference = &Reference{Table: table, Column: column}
	return b
}

// Transform installs a custom byte transform; the property always stores as
// BLOB once a transform is set (spec.md §3).
func (b *Builder) Transform(toBlob func(any) ([]byte, error), fromBlob func([]byte) (any, error)) *Builder {
	b.d.Transform = &codec.Transform{ToBlob: toBlob, FromBlob: fromBlob}
	return b
}

// Values declares the ordinal-ordered member names of an enumeration
// property.
func (b *Builder) Values(vs ...string) *Builder {
	b.d.EnumValues = vs
	return b
}

func Int8(name string) *Builder   { return newBuilder(name, codec.KindInt8) }
func Int16(name string) *Builder  { return newBuilder(name, codec.KindInt16) }
func Int32(name string) *Builder  { return newBuilder(name, codec.KindInt32) }
func Int64(name string) *Builder  { return newBuilder(name, codec.KindInt64) }
func Uint8(name string) *Builder  { return newBuilder(name, codec.KindUint8) }
func Uint16(name string) *Builder { return newBuilder(name, codec.KindUint16) }
func Uint32(name string) *Builder { return newBuilder(name, codec.KindUint32) }
func Uint64(name string) *Builder { return newBuilder(name, codec.KindUint64) }
func Bool(name string) *Builder   { return newBuilder(name, codec.KindBool) }

func Float32(name string) *Builder { return newBuilder(name, codec.KindFloat32) }
func Float64(name string) *Builder { return newBuilder(name, codec.KindFloat64) }

func Text(name string) *Builder { return newBuilder(name, codec.KindText) }
func Blob(name string) *Builder { return newBuilder(name, codec.KindBlob) }
func Time(name string) *Builder { return newBuilder(name, codec.KindTime) }

// StringList declares a []string property, BLOB-encoded per spec.md §4.1.
func StringList(name string) *Builder { return newBuilder(name, codec.KindStringList) }

// Enum declares a named-enumeration property; the ordinal stored is the
// index of the active value within vs.
func Enum(name string, vs ...string) *Builder {
	b := newBuilder(name, codec.KindEnum)
	b.d.EnumValues = vs
	return b
}

// ReferenceField declares a related-entity reference property: an integer
// foreign key column pointing at another entity's primary key (spec.md §3,
// "related-entity reference"). gom models references as integer columns,
// the common case of an auto-generated owning-side primary key; a
// text-keyed parent is still reachable through a plain Text property with
// References attached.
func ReferenceField(name, targetTable, targetColumn string) *Builder {
	b := newBuilder(name, codec.KindReference)
	b.d.Reference = &Reference{Table: targetTable, Column: targetColumn}
	return b
}

// UUID declares a text property whose value defaults to a freshly generated
// random UUID if left unset through Save, the common shape for a
// client-generated primary key (spec.md §3, "identifier fields"; grounded
// on github.com/google/uuid, used for id columns throughout the teacher's
// generated schema code).
func UUID(name string) *Builder {
	b := newBuilder(name, codec.KindText)
	b.d.Default = func() any { return uuid.NewString() }
	return b
}
