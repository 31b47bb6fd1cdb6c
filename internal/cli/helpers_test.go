package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	schemaDir     = filepath.Join("testdata", "schema")
	childrenQuery = filepath.Join("testdata", "queries", "children_with_moms.yaml")
	rosterQuery   = filepath.Join("testdata", "queries", "teacher_roster.yaml")
)

const childrenStatement = "SELECT Child.Id, Child.Name, Child.Birthday, Child.Mom.Id, Child.Mom.Name, Child.Mom.Age " +
	"FROM Child WHERE Child.Mom.Age >= 30 ORDER BY Child.Name DESC NULLS LAST LIMIT 10 OFFSET 20"

// execute runs the root command with args and returns stdout, stderr and
// the command error.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeFile writes content to name inside dir and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
