// Package field provides the fluent builder API for gom entity properties.
//
// A schema lists its properties by calling a builder per property and
// chaining constraints:
//
//	field.Int64("id").Primary().AutoGenerated()
//	field.Text("first_name")
//	field.Text("surname").NotNull()
//	field.Text("email").Unique().NotNull()
//	field.Enum("status", "pending", "active", "inactive").Version(2)
//	field.ReferenceField("author_id", "users", "id")
//
// See github.com/syssam/gom/schema for how a list of these descriptors
// becomes a registered entity schema.
package field
