// Package schema holds the entity schema registry: the catalogue of
// registered entity types, the properties each declares, and the validation
// rules applied when an entity is registered.
//
// Declare an entity's properties with the field package's builders, then
// register it once, at program start:
//
//	r := schema.NewRegistry()
//	note, err := r.Register("Note", "", "",
//	    field.Int64("id").Primary().AutoGenerated().Descriptor(),
//	    field.Text("title").NotNull().Descriptor(),
//	    field.Text("body").Version(2).Descriptor(),
//	)
//
// Register validates the declaration immediately: the table name must be a
// legal identifier, exactly one property must be a primary key, an
// auto-generated primary key must hold an integer value kind, property names
// must be unique within the entity, and every property's VersionIntroduced
// must be at least 1. Any failure is returned as a *ValidationResult before
// Register touches the database.
//
// Entities may declare a parent type for inheritance-style joins
// (spec.md §4.4's "parent entity" rule): a property declared on the parent
// is read through the parent's table rather than duplicated onto the child.
// Parent types may be registered before or after their children; Registry
// resolves the link as soon as both sides exist.
package schema
