package cli

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/soql/internal/store"
)

func TestRenderSingleQuery(t *testing.T) {
	stdout, _, err := execute(t, "render", schemaDir, childrenQuery)
	require.NoError(t, err)
	assert.Equal(t, childrenStatement+"\n", stdout)
}

func TestRenderMultipleQueries(t *testing.T) {
	stdout, _, err := execute(t, "render", schemaDir, childrenQuery, rosterQuery)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, childrenStatement, lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "SELECT Teacher.Id, (SELECT Child.Id,"), lines[1])
	assert.True(t, strings.HasSuffix(lines[1], "FROM Teacher.Students) FROM Teacher"), lines[1])
}

func TestRenderJSON(t *testing.T) {
	stdout, _, err := execute(t, "--format", "json", "render", schemaDir, childrenQuery)
	require.NoError(t, err)

	var resp struct {
		Status string         `json:"status"`
		Data   []RenderResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, RenderResult{
		Name:   "children_with_moms",
		Entity: "Child",
		Text:   childrenStatement,
	}, resp.Data[0])
}

func TestRenderSubquery(t *testing.T) {
	stdout, _, err := execute(t, "render", "--subquery", schemaDir, rosterQuery)
	require.NoError(t, err)

	text := strings.TrimSpace(stdout)
	assert.True(t, strings.HasPrefix(text, "(SELECT Teacher.Id, (SELECT Child.Id,"), text)
	assert.True(t, strings.HasSuffix(text, "FROM Teacher)"), text)
}

func TestRenderSubqueryRejectsOrderedQuery(t *testing.T) {
	stdout, _, err := execute(t, "render", "--subquery", schemaDir, childrenQuery)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, ErrCodeBuildQuery)
	assert.Contains(t, stdout, "order by, limit, offset")
}

func TestRenderErrors(t *testing.T) {
	dir := t.TempDir()
	invalid := writeFile(t, dir, "invalid.yaml", "entity: Child\nlimt: 1\n")
	unresolved := writeFile(t, dir, "unresolved.yaml", "entity: Child\njoin: [uncle]\n")
	unnamed := writeFile(t, dir, "unnamed.yaml", "entity: Child\n")

	brokenSchema := t.TempDir()
	writeFile(t, brokenSchema, "school.cue", "package test\n\nentity: Child: fields: {id: {column: \"Id\"}, mom: {relationship: \"Mom\", to: \"Parent\"}}\n")

	tests := []struct {
		name string
		args []string
		code string
		exit int
	}{
		{"missing schema", []string{"render", "/nonexistent/schema", childrenQuery}, ErrCodeNotFound, ExitCommandError},
		{"missing query", []string{"render", schemaDir, filepath.Join(dir, "missing.yaml")}, ErrCodeNotFound, ExitCommandError},
		{"invalid document", []string{"render", schemaDir, invalid}, ErrCodeInvalidQuery, ExitFailure},
		{"unresolved join", []string{"render", schemaDir, unresolved}, ErrCodeBuildQuery, ExitFailure},
		{"invalid schema", []string{"render", brokenSchema, childrenQuery}, "E201", ExitFailure},
		{"save without db", []string{"render", "--save", schemaDir, childrenQuery}, ErrCodeGeneric, ExitCommandError},
		{"save unnamed", []string{"render", "--save", "--db", filepath.Join(dir, "c.db"), schemaDir, unnamed}, ErrCodeInvalidQuery, ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.exit, GetExitCode(err))
			assert.Contains(t, stdout, tt.code)
		})
	}
}

func TestRenderSave(t *testing.T) {
	db := filepath.Join(t.TempDir(), "catalog.db")

	stdout, _, err := execute(t, "--format", "json", "render", "--db", db, "--save", schemaDir, childrenQuery, rosterQuery)
	require.NoError(t, err)

	var resp struct {
		Data []RenderResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	require.Len(t, resp.Data, 2)
	assert.NotEmpty(t, resp.Data[0].ID)
	assert.NotEmpty(t, resp.Data[1].ID)

	st, err := store.Open(db)
	require.NoError(t, err)
	defer st.Close()

	saved, err := st.Get(context.Background(), "children_with_moms")
	require.NoError(t, err)
	assert.Equal(t, childrenStatement, saved.Text)
	assert.Equal(t, "Child", saved.Entity)
	assert.Equal(t, resp.Data[0].ID, saved.ID)

	all, err := st.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "teacher_roster", all[1].Name)
}
