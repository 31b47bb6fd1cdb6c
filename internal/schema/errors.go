package schema

import "fmt"

// FieldNotDeclaredError reports a lookup of an identifier the entity does
// not declare.
type FieldNotDeclaredError struct {
	Entity string
	Field  string
}

func (e *FieldNotDeclaredError) Error() string {
	return fmt.Sprintf("field %q is not declared on entity %q", e.Field, e.Entity)
}

// NotRegisteredError reports a lookup of an entity missing from a registry.
type NotRegisteredError struct {
	Name string
}

func (e *NotRegisteredError) Error() string {
	return fmt.Sprintf("entity %q is not registered", e.Name)
}

// AlreadyRegisteredError reports a second registration under a name (or
// remote name) that is already taken.
type AlreadyRegisteredError struct {
	Name   string
	Remote bool // true when the remote name collided
}

func (e *AlreadyRegisteredError) Error() string {
	if e.Remote {
		return fmt.Sprintf("remote name %q is already registered", e.Name)
	}
	return fmt.Sprintf("entity %q is already registered", e.Name)
}

// NullFieldError reports a nil value for a field that is not nullable.
type NullFieldError struct {
	Field string // remote name
}

func (e *NullFieldError) Error() string {
	return fmt.Sprintf("%s is unexpectedly null", e.Field)
}

// CoerceError reports a value that cannot be converted to a column's kind.
type CoerceError struct {
	Field string // remote name
	Kind  Kind
	Value any
	Err   error
}

func (e *CoerceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("coerce %s to %s: %v (%v)", e.Field, e.Kind, e.Value, e.Err)
	}
	return fmt.Sprintf("coerce %s to %s: unsupported value %v (%T)", e.Field, e.Kind, e.Value, e.Value)
}

func (e *CoerceError) Unwrap() error {
	return e.Err
}
