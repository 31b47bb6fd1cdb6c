package queryspec

import (
	"fmt"
	"strings"

	"github.com/roach88/soql/internal/path"
	"github.com/roach88/soql/internal/query"
	"github.com/roach88/soql/internal/schema"
	"github.com/roach88/soql/internal/soql"
)

// Build resolves the document against reg.
func (d *Document) Build(reg *schema.Registry) (*query.Select, error) {
	entity, err := reg.Entity(d.Entity)
	if err != nil {
		return nil, err
	}
	root := path.From(entity)
	q := query.From(entity)

	if len(d.Columns) > 0 {
		cols := make([]soql.Node, 0, len(d.Columns))
		for i, c := range d.Columns {
			ref, err := resolveColumn(root, c)
			if err != nil {
				return nil, fmt.Errorf("columns[%d]: %w", i, err)
			}
			cols = append(cols, ref)
		}
		q = q.Columns(cols...)
	}

	for i, j := range d.Join {
		p, err := resolveRelationship(root, j)
		if err != nil {
			return nil, fmt.Errorf("join[%d]: %w", i, err)
		}
		q = q.Join(p)
	}

	for i := range d.Where {
		at := fmt.Sprintf("where[%d]", i)
		expr, err := buildFilter(reg, root, at, &d.Where[i])
		if err != nil {
			return nil, err
		}
		q = q.Where(expr)
	}

	for i, o := range d.OrderBy {
		ref, err := resolveColumn(root, o.Field)
		if err != nil {
			return nil, fmt.Errorf("order_by[%d]: %w", i, err)
		}
		var opts []soql.OrderOption
		dir, err := parseDirection(o.Direction)
		if err != nil {
			return nil, fmt.Errorf("order_by[%d]: %w", i, err)
		}
		if dir != "" {
			opts = append(opts, dir)
		}
		nulls, err := parseNulls(o.Nulls)
		if err != nil {
			return nil, fmt.Errorf("order_by[%d]: %w", i, err)
		}
		if nulls != "" {
			opts = append(opts, nulls)
		}
		q = q.OrderBy(ref, opts...)
	}

	if d.Limit != nil {
		q = q.Limit(*d.Limit)
	}
	if d.Offset != nil {
		q = q.Offset(*d.Offset)
	}
	if d.Count {
		q = q.Count()
	}
	return q, q.Err()
}

// Render builds the document and renders it as a statement, or as a
// parenthesized subquery when subquery is set.
func (d *Document) Render(reg *schema.Registry, subquery bool) (string, error) {
	q, err := d.Build(reg)
	if err != nil {
		return "", err
	}
	if subquery {
		sub, err := q.AsSubquery()
		if err != nil {
			return "", err
		}
		return sub.Render(), nil
	}
	return q.Render()
}

func resolveColumn(root *path.Path, dotted string) (*path.ColumnRef, error) {
	node, err := root.Resolve(strings.Split(dotted, ".")...)
	if err != nil {
		return nil, err
	}
	ref, ok := node.(*path.ColumnRef)
	if !ok {
		return nil, fmt.Errorf("%s names a relationship, not a column", dotted)
	}
	return ref, nil
}

func resolveRelationship(root *path.Path, dotted string) (*path.Path, error) {
	node, err := root.Resolve(strings.Split(dotted, ".")...)
	if err != nil {
		return nil, err
	}
	p, ok := node.(*path.Path)
	if !ok {
		return nil, fmt.Errorf("%s names a column, not a relationship", dotted)
	}
	return p, nil
}

func buildFilter(reg *schema.Registry, root *path.Path, at string, f *Filter) (soql.Node, error) {
	switch {
	case len(f.And) > 0:
		return buildGroup(reg, root, at+".and", f.And, soql.And)
	case len(f.Or) > 0:
		return buildGroup(reg, root, at+".or", f.Or, soql.Or)
	case f.Not != nil:
		inner, err := buildFilter(reg, root, at+".not", f.Not)
		if err != nil {
			return nil, err
		}
		return soql.Not(inner), nil
	default:
		expr, err := buildComparison(reg, root, f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", at, err)
		}
		return expr, nil
	}
}

type combinator func(a, b soql.Node, rest ...soql.Node) *soql.Composite

func buildGroup(reg *schema.Registry, root *path.Path, at string, filters []Filter, combine combinator) (soql.Node, error) {
	if len(filters) < 2 {
		return nil, fmt.Errorf("%s: at least two filters are required", at)
	}
	nodes := make([]soql.Node, len(filters))
	for i := range filters {
		n, err := buildFilter(reg, root, fmt.Sprintf("%s[%d]", at, i), &filters[i])
		if err != nil {
			return nil, err
		}
		nodes[i] = n
	}
	return combine(nodes[0], nodes[1], nodes[2:]...), nil
}

func buildComparison(reg *schema.Registry, root *path.Path, f *Filter) (soql.Node, error) {
	ref, err := resolveColumn(root, f.Field)
	if err != nil {
		return nil, err
	}
	op, ok := soql.ParseOp(strings.ToUpper(strings.TrimSpace(f.Op)))
	if !ok {
		return nil, fmt.Errorf("unknown operator %q", f.Op)
	}

	switch op {
	case soql.OpEq, soql.OpNe, soql.OpLt, soql.OpLte, soql.OpGt, soql.OpGte,
		soql.OpLike, soql.OpIs, soql.OpIsNot:
		if !f.HasValue() {
			return nil, fmt.Errorf("operator %s takes a single value", op)
		}
		var raw any
		if err := f.Value.Decode(&raw); err != nil {
			return nil, fmt.Errorf("value: %w", err)
		}
		v, err := coerce(ref.Column(), raw)
		if err != nil {
			return nil, err
		}
		return soql.Binary(ref, op, v), nil

	case soql.OpIn, soql.OpNotIn, soql.OpIncludes, soql.OpExcludes:
		set, err := buildSet(reg, ref.Column(), f)
		if err != nil {
			return nil, err
		}
		return soql.Binary(ref, op, set), nil

	default:
		return nil, fmt.Errorf("operator %s is not a comparison", op)
	}
}

func buildSet(reg *schema.Registry, col *schema.Column, f *Filter) (soql.Node, error) {
	if f.Select != nil {
		q, err := f.Select.Build(reg)
		if err != nil {
			return nil, fmt.Errorf("select: %w", err)
		}
		return q.AsSubquery()
	}
	if len(f.Values) == 0 {
		return nil, fmt.Errorf("values must not be empty")
	}
	values := make([]any, len(f.Values))
	for i, raw := range f.Values {
		v, err := coerce(col, raw)
		if err != nil {
			return nil, fmt.Errorf("values[%d]: %w", i, err)
		}
		values[i] = v
	}
	return soql.Array(values...), nil
}

// coerce converts a document value through the column's kind. Null stays
// null so IS NULL style filters work on any column.
func coerce(col *schema.Column, raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	return col.Coerce(raw)
}

func parseDirection(s string) (soql.Direction, error) {
	switch strings.ToLower(s) {
	case "":
		return "", nil
	case "asc":
		return soql.Asc, nil
	case "desc":
		return soql.Desc, nil
	}
	return "", fmt.Errorf("unknown direction %q", s)
}

func parseNulls(s string) (soql.Nulls, error) {
	switch strings.ToLower(s) {
	case "":
		return "", nil
	case "first":
		return soql.NullsFirst, nil
	case "last":
		return soql.NullsLast, nil
	}
	return "", fmt.Errorf("unknown nulls position %q", s)
}
