package path

import "fmt"

// NotRelationshipError reports a relationship traversal through a column.
type NotRelationshipError struct {
	Entity string
	Field  string
}

func (e *NotRelationshipError) Error() string {
	return fmt.Sprintf("%s.%s is a column, not a relationship", e.Entity, e.Field)
}

// NotColumnError reports a column lookup that named a relationship.
type NotColumnError struct {
	Entity string
	Field  string
}

func (e *NotColumnError) Error() string {
	return fmt.Sprintf("%s.%s is a relationship, not a column", e.Entity, e.Field)
}
