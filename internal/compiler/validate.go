package compiler

import (
	"fmt"
	"regexp"

	"github.com/roach88/soql/internal/schema"
)

// Validation error codes (E200-E299)
const (
	ErrUnresolvedTarget = "E201" // relationship target is not registered
	ErrNoColumns        = "E202" // entity declares no columns
	ErrInvalidName      = "E203" // remote name cannot be rendered in a path
)

// Remote names are joined with "." in column paths, so they must be plain
// identifiers.
var remoteNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// ValidationError represents a schema validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Line    int    `json:"line,omitempty"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] line %d: %s: %s", e.Code, e.Line, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks every registered entity. Returns all errors found (does
// not fail-fast).
func Validate(reg *schema.Registry) []ValidationError {
	var errs []ValidationError
	for _, e := range reg.Entities() {
		errs = append(errs, validateEntity(e)...)
	}
	return errs
}

func validateEntity(e *schema.Entity) []ValidationError {
	var errs []ValidationError

	// E202: at least one column, so the entity has default columns to select
	if len(e.Columns()) == 0 {
		errs = append(errs, ValidationError{
			Field:   e.Name(),
			Message: "entity declares no columns",
			Code:    ErrNoColumns,
		})
	}

	// E203: entity remote name
	if !remoteNamePattern.MatchString(e.RemoteName()) {
		errs = append(errs, ValidationError{
			Field:   e.Name(),
			Message: fmt.Sprintf("invalid remote name %q", e.RemoteName()),
			Code:    ErrInvalidName,
		})
	}

	for _, f := range e.Fields() {
		field := e.Name() + "." + f.Name()

		// E203: field remote name
		if !remoteNamePattern.MatchString(f.RemoteName()) {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("invalid remote name %q", f.RemoteName()),
				Code:    ErrInvalidName,
			})
		}

		// E201: relationship target resolves
		if rel, ok := f.(*schema.Relationship); ok {
			if _, err := rel.Related(); err != nil {
				errs = append(errs, ValidationError{
					Field:   field,
					Message: fmt.Sprintf("target %q: %v", rel.TargetName(), err),
					Code:    ErrUnresolvedTarget,
				})
			}
		}
	}

	return errs
}
