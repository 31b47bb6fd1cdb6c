package query

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/soql/internal/path"
	"github.com/roach88/soql/internal/schema"
)

// family is a small schema with to-one chains, a to-many relationship and
// forward references.
type family struct {
	grandparent *schema.Entity
	parent      *schema.Entity
	child       *schema.Entity
	teacher     *schema.Entity
}

func newFamily(t *testing.T) family {
	t.Helper()

	f := family{}
	f.grandparent = schema.Define("Grandparent",
		schema.Integer("id", "Id"),
	)
	f.parent = schema.Define("Parent",
		schema.Integer("id", "Id"),
		schema.String("name", "Name"),
		schema.Integer("age", "Age"),
		schema.ToOne("mom", "Mom", f.grandparent),
		schema.ToMany("children", "Children", schema.Ref("Child")),
	)
	f.child = schema.Define("Child",
		schema.Integer("id", "Id"),
		schema.String("name", "Name"),
		schema.ToOne("mom", "Mom", f.parent),
		schema.ToOne("dad", "Dad", f.parent),
		schema.ToOne("teacher", "Teacher", schema.Ref("Teacher")),
	)
	f.teacher = schema.Define("Teacher",
		schema.Integer("id", "Id"),
		schema.ToMany("students", "Students", f.child),
	)

	reg := schema.NewRegistry()
	require.NoError(t, reg.Register(f.grandparent, f.parent, f.child, f.teacher))
	return f
}

// rel follows ids from e.
func rel(e *schema.Entity, ids ...string) *path.Path {
	p := path.From(e)
	for _, id := range ids {
		p = p.MustRel(id)
	}
	return p
}

// col resolves the column id after following rels from e.
func col(e *schema.Entity, id string, rels ...string) *path.ColumnRef {
	return rel(e, rels...).MustCol(id)
}

func mustRender(t *testing.T, s *Select) string {
	t.Helper()
	text, err := s.Render()
	require.NoError(t, err)
	return text
}
