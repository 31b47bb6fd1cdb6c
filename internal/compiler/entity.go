package compiler

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/soql/internal/schema"
)

// CompileSchema compiles every entity under the top-level "entity" struct,
// in declaration order. Relationship targets are late-bound by name, so
// entities may reference each other in any order.
func CompileSchema(v cue.Value) ([]*schema.Entity, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	entitiesVal := v.LookupPath(cue.ParsePath("entity"))
	if !entitiesVal.Exists() {
		return nil, &CompileError{
			Field:   "entity",
			Message: "no entities declared",
			Pos:     v.Pos(),
		}
	}

	iter, err := entitiesVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var entities []*schema.Entity
	for iter.Next() {
		e, err := CompileEntity(iter.Value())
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}
	return entities, nil
}

// CompileEntity parses a CUE value into an entity.
//
// The CUE value should be the entity struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`entity: Child: { fields: { ... } }`)
//	e, err := CompileEntity(v.LookupPath(cue.ParsePath("entity.Child")))
func CompileEntity(v cue.Value) (*schema.Entity, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	// Entity name from struct label
	var name string
	labels := v.Path().Selectors()
	if len(labels) > 0 {
		name = normalize(labels[len(labels)-1].String())
	}

	// Remote name (optional, defaults to the entity name)
	remote, err := optionalString(v, "remote")
	if err != nil {
		return nil, err
	}

	// Fields (required)
	fieldsVal := v.LookupPath(cue.ParsePath("fields"))
	if !fieldsVal.Exists() {
		return nil, &CompileError{
			Field:   "fields",
			Message: fmt.Sprintf("entity %s: fields are required", name),
			Pos:     v.Pos(),
		}
	}

	iter, err := fieldsVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var fields []schema.Field
	for iter.Next() {
		f, err := parseField(normalize(iter.Label()), iter.Value())
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}

	e, err := schema.NewEntity(name, remote, fields...)
	if err != nil {
		return nil, &CompileError{Field: "entity", Message: err.Error(), Pos: v.Pos()}
	}
	return e, nil
}

// parseField builds a column or relationship. Exactly one of "column" and
// "relationship" must be present.
func parseField(name string, v cue.Value) (schema.Field, error) {
	column, err := optionalString(v, "column")
	if err != nil {
		return nil, err
	}
	relationship, err := optionalString(v, "relationship")
	if err != nil {
		return nil, err
	}

	var opts []schema.FieldOption
	nullable, err := optionalBool(v, "nullable")
	if err != nil {
		return nil, err
	}
	if nullable {
		opts = append(opts, schema.Nullable())
	}

	switch {
	case column != "" && relationship != "":
		return nil, &CompileError{
			Field:   "fields." + name,
			Message: "column and relationship are mutually exclusive",
			Pos:     v.Pos(),
		}

	case column != "":
		kindName, err := optionalString(v, "type")
		if err != nil {
			return nil, err
		}
		kind := schema.KindString
		if kindName != "" {
			kind, err = schema.ParseKind(kindName)
			if err != nil {
				return nil, &CompileError{Field: "type", Message: err.Error(), Pos: v.Pos()}
			}
		}
		return schema.NewColumn(name, column, kind, opts...), nil

	case relationship != "":
		to, err := optionalString(v, "to")
		if err != nil {
			return nil, err
		}
		if to == "" {
			return nil, &CompileError{
				Field:   "fields." + name + ".to",
				Message: "relationship target is required",
				Pos:     v.Pos(),
			}
		}
		many, err := optionalBool(v, "many")
		if err != nil {
			return nil, err
		}
		return schema.NewRelationship(name, relationship, schema.Ref(to), many, opts...), nil

	default:
		return nil, &CompileError{
			Field:   "fields." + name,
			Message: "one of column or relationship is required",
			Pos:     v.Pos(),
		}
	}
}

func optionalString(v cue.Value, field string) (string, error) {
	val := v.LookupPath(cue.ParsePath(field))
	if !val.Exists() {
		return "", nil
	}
	s, err := val.String()
	if err != nil {
		return "", formatCUEError(err)
	}
	return normalize(s), nil
}

func optionalBool(v cue.Value, field string) (bool, error) {
	val := v.LookupPath(cue.ParsePath(field))
	if !val.Exists() {
		return false, nil
	}
	b, err := val.Bool()
	if err != nil {
		return false, formatCUEError(err)
	}
	return b, nil
}

// normalize applies NFC so identifiers typed with combining marks match
// their precomposed spelling.
func normalize(s string) string {
	return norm.NFC.String(s)
}

// CompileError represents a compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	// CUE errors may contain multiple errors
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	// Return first error with position info
	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
