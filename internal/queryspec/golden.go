package queryspec

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/soql/internal/schema"
)

// AssertGolden renders doc and compares the statement against a golden
// file stored in testdata/golden/{doc.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/queryspec -update
//
// Returns error if the document does not build or render; a mismatch
// fails the test through goldie.
func AssertGolden(t *testing.T, reg *schema.Registry, doc *Document) error {
	t.Helper()

	text, err := doc.Render(reg, false)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, doc.Name, []byte(text+"\n"))

	return nil
}
