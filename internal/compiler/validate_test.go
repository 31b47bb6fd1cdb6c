package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/soql/internal/schema"
)

func codes(errs []ValidationError) []string {
	var out []string
	for _, e := range errs {
		out = append(out, e.Code)
	}
	return out
}

func TestValidateValid(t *testing.T) {
	reg := schema.NewRegistry()
	reg.MustRegister(
		schema.Define("Child",
			schema.Integer("id", "Id"),
			schema.ToOne("mom", "Mom", schema.Ref("Parent")),
		),
		schema.DefineAs("Parent", "Parent__c", schema.Integer("id", "Id")),
	)

	errs := Validate(reg)
	assert.Empty(t, errs, "valid registry should have no errors")
}

func TestValidateUnresolvedTarget(t *testing.T) {
	reg := schema.NewRegistry()
	reg.MustRegister(schema.Define("Child",
		schema.Integer("id", "Id"),
		schema.ToOne("mom", "Mom", schema.Ref("Parent")),
	))

	errs := Validate(reg)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrUnresolvedTarget, errs[0].Code)
	assert.Equal(t, "Child.mom", errs[0].Field)
	assert.Contains(t, errs[0].Message, "Parent")
}

func TestValidateNoColumns(t *testing.T) {
	reg := schema.NewRegistry()
	reg.MustRegister(
		schema.Define("Link", schema.ToOne("next", "Next", schema.Ref("Node"))),
		schema.Define("Node", schema.Integer("id", "Id")),
	)

	errs := Validate(reg)
	assert.Equal(t, []string{ErrNoColumns}, codes(errs))
}

func TestValidateInvalidRemoteNames(t *testing.T) {
	reg := schema.NewRegistry()
	reg.MustRegister(schema.DefineAs("Odd", "Odd Thing",
		schema.Integer("id", "Id"),
		schema.String("name", "Full.Name"),
	))

	errs := Validate(reg)
	assert.Equal(t, []string{ErrInvalidName, ErrInvalidName}, codes(errs))
	assert.Equal(t, "Odd", errs[0].Field)
	assert.Equal(t, "Odd.name", errs[1].Field)
}

func TestValidationErrorFormat(t *testing.T) {
	err := ValidationError{Field: "Child.mom", Message: "bad", Code: ErrUnresolvedTarget}
	assert.Equal(t, "[E201] Child.mom: bad", err.Error())

	err.Line = 4
	assert.Equal(t, "[E201] line 4: Child.mom: bad", err.Error())
}
