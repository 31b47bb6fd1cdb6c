package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/soql/internal/path"
)

func TestGraph_With(t *testing.T) {
	g := NewGraph()
	assert.True(t, g.Empty())

	g1 := g.With("students", "mom")
	g2 := g1.With("students", "dad").With("teacher")

	assert.True(t, g.Empty())
	assert.Equal(t, [][]string{{"students", "mom"}}, g1.Paths())
	assert.Equal(t, [][]string{{"students", "mom"}, {"students", "dad"}, {"teacher"}}, g2.Paths())
}

func TestGraph_WithIsIdempotent(t *testing.T) {
	g := NewGraph().With("students", "mom")

	assert.Same(t, g, g.With("students", "mom"))
	assert.Same(t, g, g.With("students"))
	assert.Same(t, g, g.With())
}

func TestGraph_DivergentSnapshots(t *testing.T) {
	base := NewGraph().With("students")
	left := base.With("students", "mom")
	right := base.With("students", "dad")

	assert.Equal(t, [][]string{{"students"}}, base.Paths())
	assert.Equal(t, [][]string{{"students", "mom"}}, left.Paths())
	assert.Equal(t, [][]string{{"students", "dad"}}, right.Paths())
}

func TestCompileJoins_UnknownRelationship(t *testing.T) {
	f := newFamily(t)

	_, err := CompileJoins(path.From(f.child), NewGraph().With("uncle"))
	assert.Error(t, err)

	nodes, err := CompileJoins(path.From(f.child), NewGraph())
	require.NoError(t, err)
	assert.Empty(t, nodes)
}
