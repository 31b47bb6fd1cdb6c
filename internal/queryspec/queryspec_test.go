package queryspec

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/soql/internal/compiler"
	"github.com/roach88/soql/internal/query"
	"github.com/roach88/soql/internal/schema"
)

func loadSchool(t *testing.T) *schema.Registry {
	t.Helper()

	src, err := os.ReadFile(filepath.Join("testdata", "schema", "school.cue"))
	require.NoError(t, err)

	v := cuecontext.New().CompileBytes(src)
	require.NoError(t, v.Err())

	entities, err := compiler.CompileSchema(v)
	require.NoError(t, err)

	reg := schema.NewRegistry()
	require.NoError(t, reg.Register(entities...))
	require.Empty(t, compiler.Validate(reg))
	return reg
}

func parse(t *testing.T, src string) *Document {
	t.Helper()
	doc, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

func TestGoldenQueries(t *testing.T) {
	reg := loadSchool(t)

	files, err := filepath.Glob(filepath.Join("testdata", "queries", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			doc, err := LoadFile(file)
			require.NoError(t, err)
			require.NoError(t, AssertGolden(t, reg, doc))
		})
	}
}

func TestParseRejectsInvalidDocuments(t *testing.T) {
	testCases := []struct {
		name    string
		src     string
		message string
	}{
		{"unknown field", "entity: Child\nlimt: 3\n", "limt"},
		{"missing entity", "name: x\n", "entity is required"},
		{"negative limit", "entity: Child\nlimit: -1\n", "limit"},
		{"two forms", "entity: Child\nwhere:\n  - field: id\n    op: '='\n    value: 1\n    not: {field: id, op: '=', value: 2}\n", "exactly one of field"},
		{"no operand", "entity: Child\nwhere:\n  - field: id\n    op: '='\n", "exactly one of value"},
		{"two operands", "entity: Child\nwhere:\n  - field: id\n    op: IN\n    value: 1\n    values: [1]\n", "exactly one of value"},
		{"missing op", "entity: Child\nwhere:\n  - field: id\n    value: 1\n", "op is required"},
		{"lonely and", "entity: Child\nwhere:\n  - and:\n      - {field: id, op: '=', value: 1}\n", "at least two"},
		{"bad direction", "entity: Child\norder_by:\n  - field: id\n    direction: up\n", "direction"},
		{"bad nulls", "entity: Child\norder_by:\n  - field: id\n    nulls: middle\n", "nulls"},
		{"nested select without entity", "entity: Child\nwhere:\n  - field: id\n    op: IN\n    select: {columns: [id]}\n", "select"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.message)
		})
	}
}

func TestBuildErrors(t *testing.T) {
	reg := loadSchool(t)

	testCases := []struct {
		name    string
		src     string
		message string
	}{
		{"unknown entity", "entity: Uncle\n", "Uncle"},
		{"unknown column", "entity: Child\ncolumns: [nickname]\n", "nickname"},
		{"relationship as column", "entity: Child\ncolumns: [mom]\n", "names a relationship"},
		{"column as join", "entity: Child\njoin: [name]\n", "names a column"},
		{"extend past column", "entity: Child\njoin: [name.first]\n", "cannot be extended"},
		{"unknown operator", "entity: Child\nwhere:\n  - {field: id, op: '~', value: 1}\n", "unknown operator"},
		{"logical operator as comparison", "entity: Child\nwhere:\n  - {field: id, op: AND, value: 1}\n", "not a comparison"},
		{"set operator with value", "entity: Child\nwhere:\n  - {field: id, op: IN, value: 1}\n", "values"},
		{"scalar operator with values", "entity: Child\nwhere:\n  - {field: id, op: '=', values: [1]}\n", "single value"},
		{"empty values", "entity: Child\nwhere:\n  - {field: id, op: IN, values: []}\n", "must not be empty"},
		{"uncoercible value", "entity: Child\nwhere:\n  - {field: id, op: '=', value: twelve}\n", "coerce"},
		{"ordered subquery", "entity: Child\nwhere:\n  - field: mom.id\n    op: IN\n    select: {entity: Parent, columns: [id], limit: 1}\n", "not a valid subquery"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			doc := parse(t, tc.src)
			_, err := doc.Render(reg, false)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.message)
		})
	}
}

func TestBuildSubqueryError(t *testing.T) {
	reg := loadSchool(t)
	doc := parse(t, "entity: Parent\norder_by: [{field: age}]\n")

	_, err := doc.Render(reg, true)
	var invalid *query.SubqueryNotValidError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, []string{"order by"}, invalid.Reasons)
}

func TestRenderSubquery(t *testing.T) {
	reg := loadSchool(t)
	doc := parse(t, "entity: Parent\ncolumns: [name]\nwhere:\n  - {field: age, op: IS NOT, value: null}\n")

	text, err := doc.Render(reg, true)
	require.NoError(t, err)
	assert.Equal(t, "(SELECT Parent.Name FROM Parent WHERE Parent.Age IS NOT NULL)", text)
}

func TestBuildIsImmutableAcrossRenders(t *testing.T) {
	reg := loadSchool(t)
	doc := parse(t, "entity: Child\njoin: [mom]\nlimit: 5\n")

	q, err := doc.Build(reg)
	require.NoError(t, err)

	first, err := q.Render()
	require.NoError(t, err)
	second, err := q.Count().Render()
	require.NoError(t, err)
	third, err := q.Render()
	require.NoError(t, err)

	assert.Equal(t, first, third)
	assert.Equal(t, "SELECT COUNT() FROM Child LIMIT 5", second)
}
