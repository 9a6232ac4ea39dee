package schema

import (
	"regexp"

	"github.com/go-openapi/inflect"
)

var tableNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidTableName reports whether name matches spec.md §3's table-name
// grammar: `[A-Za-z_][A-Za-z0-9_]*`.
func ValidTableName(name string) bool {
	return tableNameRe.MatchString(name)
}

// DefaultTableName derives a table name from a Go-style type identifier
// using the same snake_case inflection the teacher applies to generated
// column and type names (github.com/go-openapi/inflect, used throughout
// velox's code generator).
func DefaultTableName(typeName string) string {
	return inflect.Underscore(typeName)
}
