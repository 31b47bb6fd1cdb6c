// Package queryspec reads query documents written in YAML and builds them
// into selects against a schema registry.
//
// A document names the entity to select from and, optionally, the columns,
// joins, filters, ordering and pagination:
//
//	name: adult_children
//	entity: Child
//	join: [mom]
//	where:
//	  - field: mom.age
//	    op: ">="
//	    value: 18
//	order_by:
//	  - field: name
//	    direction: asc
//	limit: 10
package queryspec

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is a declarative query.
type Document struct {
	// Name identifies the query; it keys the statement catalog and golden
	// files.
	Name string `yaml:"name"`

	// Entity is the local name of the entity to select from.
	Entity string `yaml:"entity"`

	// Columns overrides the default column list. Each entry is a dotted
	// path relative to Entity ending in a column, e.g. "mom.name".
	Columns []string `yaml:"columns,omitempty"`

	// Join lists dotted relationship paths to expand, e.g. "teacher.students".
	Join []string `yaml:"join,omitempty"`

	// Where filters are AND-joined.
	Where []Filter `yaml:"where,omitempty"`

	OrderBy []Order `yaml:"order_by,omitempty"`
	Limit   *int    `yaml:"limit,omitempty"`
	Offset  *int    `yaml:"offset,omitempty"`

	// Count selects COUNT() instead of columns.
	Count bool `yaml:"count,omitempty"`
}

// Filter is either a comparison (Field, Op and one of Value, Values or
// Select) or a boolean combination (exactly one of And, Or, Not).
type Filter struct {
	Field string `yaml:"field,omitempty"`
	Op    string `yaml:"op,omitempty"`

	// Value is kept as a node so an explicit null is distinguishable from
	// an absent value.
	Value  yaml.Node `yaml:"value,omitempty"`
	Values []any     `yaml:"values,omitempty"`
	Select *Document `yaml:"select,omitempty"`

	And []Filter `yaml:"and,omitempty"`
	Or  []Filter `yaml:"or,omitempty"`
	Not *Filter  `yaml:"not,omitempty"`
}

// HasValue reports whether the document set value, including to null.
func (f *Filter) HasValue() bool { return f.Value.Kind != 0 }

// Order is one ordering clause.
type Order struct {
	Field     string `yaml:"field"`
	Direction string `yaml:"direction,omitempty"` // asc | desc
	Nulls     string `yaml:"nulls,omitempty"`     // first | last
}

// Parse decodes a document, rejecting unknown fields.
func Parse(r io.Reader) (*Document, error) {
	var doc Document
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateDocument(&doc); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}
	return &doc, nil
}

// LoadFile reads and parses a document file.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read query file: %w", err)
	}
	doc, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// validateDocument checks structure only; names are resolved when the
// document is built against a registry.
func validateDocument(d *Document) error {
	if d.Entity == "" {
		return fmt.Errorf("entity is required")
	}
	if d.Limit != nil && *d.Limit < 0 {
		return fmt.Errorf("limit must not be negative")
	}
	if d.Offset != nil && *d.Offset < 0 {
		return fmt.Errorf("offset must not be negative")
	}

	for i, f := range d.Where {
		if err := validateFilter(fmt.Sprintf("where[%d]", i), &f); err != nil {
			return err
		}
	}

	for i, o := range d.OrderBy {
		if o.Field == "" {
			return fmt.Errorf("order_by[%d]: field is required", i)
		}
		if _, err := parseDirection(o.Direction); err != nil {
			return fmt.Errorf("order_by[%d]: %w", i, err)
		}
		if _, err := parseNulls(o.Nulls); err != nil {
			return fmt.Errorf("order_by[%d]: %w", i, err)
		}
	}
	return nil
}

func validateFilter(at string, f *Filter) error {
	forms := 0
	if f.Field != "" {
		forms++
	}
	if len(f.And) > 0 {
		forms++
	}
	if len(f.Or) > 0 {
		forms++
	}
	if f.Not != nil {
		forms++
	}
	if forms != 1 {
		return fmt.Errorf("%s: exactly one of field, and, or, not is required", at)
	}

	switch {
	case f.Field != "":
		if f.Op == "" {
			return fmt.Errorf("%s: op is required", at)
		}
		operands := 0
		if f.HasValue() {
			operands++
		}
		if f.Values != nil {
			operands++
		}
		if f.Select != nil {
			operands++
		}
		if operands != 1 {
			return fmt.Errorf("%s: exactly one of value, values, select is required", at)
		}
		if f.Select != nil {
			if err := validateDocument(f.Select); err != nil {
				return fmt.Errorf("%s.select: %w", at, err)
			}
		}

	case len(f.And) > 0:
		return validateGroup(at+".and", f.And)

	case len(f.Or) > 0:
		return validateGroup(at+".or", f.Or)

	case f.Not != nil:
		return validateFilter(at+".not", f.Not)
	}
	return nil
}

func validateGroup(at string, filters []Filter) error {
	if len(filters) < 2 {
		return fmt.Errorf("%s: at least two filters are required", at)
	}
	for i, f := range filters {
		if err := validateFilter(fmt.Sprintf("%s[%d]", at, i), &f); err != nil {
			return err
		}
	}
	return nil
}
