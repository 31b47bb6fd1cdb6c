package schema

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/soql/internal/soql"
)

func TestColumn_Coerce(t *testing.T) {
	testCases := []struct {
		name   string
		column *Column
		input  any
		want   any
	}{
		{"string", String("name", "Name"), "Jill", "Jill"},
		{"string from number", String("code", "Code"), json.Number("42"), "42"},
		{"integer from float", Integer("age", "Age"), 12.0, int64(12)},
		{"integer truncates fraction", Integer("age", "Age"), 1.5, int64(1)},
		{"integer from text", Integer("age", "Age"), "12", int64(12)},
		{"integer from json number", Integer("age", "Age"), json.Number("12"), int64(12)},
		{"float from int", Float("amount", "Amount"), 3, 3.0},
		{"float from json number", Float("amount", "Amount"), json.Number("1.5"), 1.5},
		{"boolean", Boolean("active", "Active"), true, true},
		{"boolean from text", Boolean("active", "Active"), "false", false},
		{"date from text", Date("birthday", "Birthday"), "2020-03-04",
			soql.Date{Year: 2020, Month: time.March, Day: 4}},
		{"date from timestamp text", Date("birthday", "Birthday"), "2020-03-04T10:00:00.000+0000",
			soql.Date{Year: 2020, Month: time.March, Day: 4}},
		{"datetime with offset", DateTime("created", "CreatedDate"), "2020-01-02T03:04:05.000+0000",
			time.Date(2020, 1, 2, 3, 4, 5, 0, time.FixedZone("", 0))},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.column.Coerce(tc.input)
			require.NoError(t, err)
			if want, ok := tc.want.(time.Time); ok {
				assert.True(t, want.Equal(got.(time.Time)), "got %v", got)
				return
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestColumn_CoerceNaiveDateTimeIsUTC(t *testing.T) {
	col := DateTime("created", "CreatedDate")

	got, err := col.Coerce("2020-01-02T03:04:05")
	require.NoError(t, err)

	ts := got.(time.Time)
	assert.Equal(t, time.UTC, ts.Location())
	assert.Equal(t, "2020-01-02T03:04:05+00:00", soql.FormatTimestamp(ts))
}

func TestColumn_CoerceNull(t *testing.T) {
	got, err := String("nickname", "Nickname", Nullable()).Coerce(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = String("name", "Name").Coerce(nil)
	var nullErr *NullFieldError
	require.True(t, errors.As(err, &nullErr))
	assert.Equal(t, "Name", nullErr.Field)
	assert.Equal(t, "Name is unexpectedly null", err.Error())
}

func TestColumn_CoerceRejectsBadValues(t *testing.T) {
	testCases := []struct {
		name   string
		column *Column
		input  any
	}{
		{"integer from words", Integer("age", "Age"), "twelve"},
		{"integer from huge float", Integer("age", "Age"), 1e300},
		{"integer from huge negative float", Integer("age", "Age"), -1e300},
		{"integer from NaN", Integer("age", "Age"), math.NaN()},
		{"integer from huge json number", Integer("age", "Age"), json.Number("1e300")},
		{"boolean from words", Boolean("active", "Active"), "maybe"},
		{"date from garbage", Date("birthday", "Birthday"), "03/04/2020"},
		{"datetime from int", DateTime("created", "CreatedDate"), 12},
		{"float from bool", Float("amount", "Amount"), true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.column.Coerce(tc.input)
			var coerceErr *CoerceError
			require.True(t, errors.As(err, &coerceErr), "got %v", err)
			assert.Equal(t, tc.column.Kind(), coerceErr.Kind)
		})
	}
}

func TestColumn_Serialize(t *testing.T) {
	date := Date("birthday", "Birthday")
	assert.Equal(t, "2020-03-04", date.Serialize(soql.Date{Year: 2020, Month: time.March, Day: 4}))

	created := DateTime("created", "CreatedDate")
	ts := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.Equal(t, "2020-01-02T03:04:05+00:00", created.Serialize(ts))

	assert.Equal(t, int64(4), Integer("age", "Age").Serialize(int64(4)))
}

func TestRelationship_CoerceNull(t *testing.T) {
	_, err := ToOne("mom", "Mom", Ref("Parent")).Coerce(nil)
	assert.Error(t, err)

	got, err := ToOne("mom", "Mom", Ref("Parent"), Nullable()).Coerce(nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}
