package schema

import (
	"fmt"
	"strings"
)

// ValidationError represents one problem found while registering an entity
// schema (spec.md §4.2, "Validation performed at registration time").
//
// Adapted from the teacher's dialect/sql/schema ValidationError/
// ValidationResult pair; the introspection-diff checks that package built on
// top of it (comparing a live DB schema against a desired one) are dropped,
// since gom's schema flows in one direction only, from declarations to DDL
// (spec.md §1, Non-goals) — there is never a "current" schema to diff
// against.
type ValidationError struct {
	Entity   string
	Property string
	Message  string
}

func (e *ValidationError) Error() string {
	if e.Property != "" {
		return fmt.Sprintf("schema: %s.%s: %s", e.Entity, e.Property, e.Message)
	}
	return fmt.Sprintf("schema: %s: %s", e.Entity, e.Message)
}

// ValidationResult collects every error found while registering one entity
// schema. A non-empty result aborts the registration before any SQL is
// generated from it (spec.md §7, "Construction-time validation errors...
// abort the operation before any SQL is issued").
type ValidationResult struct {
	Errors []*ValidationError
}

func (r *ValidationResult) add(entity, property, message string) {
	r.Errors = append(r.Errors, &ValidationError{Entity: entity, Property: property, Message: message})
}

// HasErrors reports whether any validation error was recorded.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// Error implements the error interface, joining every recorded error into
// one message.
func (r *ValidationResult) Error() string {
	var sb strings.Builder
	for i, e := range r.Errors {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(e.Error())
	}
	return sb.String()
}

// AsError returns r as an error if it recorded any validation failures, or
// nil otherwise — the form callers return from Register.
func (r *ValidationResult) AsError() error {
	if !r.HasErrors() {
		return nil
	}
	return r
}
