package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/roach88/soql/internal/soql"
)

// Layouts accepted when coercing text to a timestamp. Layouts without an
// offset parse as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000-0700", // remote API format
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Coerce converts v to the column's Go representation:
//
//	string   -> string
//	integer  -> int64
//	float    -> float64
//	boolean  -> bool
//	date     -> soql.Date
//	datetime -> time.Time (UTC when the input has no offset)
//
// nil is returned unchanged for nullable columns and rejected otherwise.
func (c *Column) Coerce(v any) (any, error) {
	if v == nil {
		if c.nullable {
			return nil, nil
		}
		return nil, &NullFieldError{Field: c.remote}
	}

	var (
		out any
		err error
	)
	switch c.kind {
	case KindString:
		out, err = coerceString(v)
	case KindInteger:
		out, err = coerceInteger(v)
	case KindFloat:
		out, err = coerceFloat(v)
	case KindBoolean:
		out, err = coerceBoolean(v)
	case KindDate:
		out, err = coerceDate(v)
	case KindDateTime:
		out, err = coerceDateTime(v)
	default:
		err = fmt.Errorf("unknown kind")
	}
	if err != nil {
		return nil, &CoerceError{Field: c.remote, Kind: c.kind, Value: v, Err: err}
	}
	if out == nil {
		return nil, &CoerceError{Field: c.remote, Kind: c.kind, Value: v}
	}
	return out, nil
}

// Serialize converts a coerced value to its wire form: dates and
// timestamps become ISO-8601 text, everything else is returned as-is.
func (c *Column) Serialize(v any) any {
	switch val := v.(type) {
	case soql.Date:
		return val.String()
	case time.Time:
		return soql.FormatTimestamp(val)
	default:
		return v
	}
}

// Coerce enforces nullability on a relationship value. The value itself is
// a record or a slice of records and is returned unchanged.
func (r *Relationship) Coerce(v any) (any, error) {
	if v == nil && !r.nullable {
		return nil, &NullFieldError{Field: r.remote}
	}
	return v, nil
}

func coerceString(v any) (any, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case json.Number:
		return val.String(), nil
	case fmt.Stringer:
		return val.String(), nil
	case bool, int, int32, int64, uint, uint64:
		return fmt.Sprint(val), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	}
	return nil, nil
}

func coerceInteger(v any) (any, error) {
	switch val := v.(type) {
	case int:
		return int64(val), nil
	case int32:
		return int64(val), nil
	case int64:
		return val, nil
	case uint:
		return int64(val), nil
	case uint64:
		if val > math.MaxInt64 {
			return nil, fmt.Errorf("overflows int64")
		}
		return int64(val), nil
	case float64:
		return truncateFloat(val)
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return n, nil
		}
		f, err := val.Float64()
		if err != nil {
			return nil, err
		}
		return truncateFloat(f)
	case string:
		return strconv.ParseInt(val, 10, 64)
	}
	return nil, nil
}

// truncateFloat drops the fraction of f. Values outside the int64 range
// are rejected.
func truncateFloat(f float64) (int64, error) {
	if math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("%g overflows int64", f)
	}
	return int64(f), nil
}

func coerceFloat(v any) (any, error) {
	switch val := v.(type) {
	case float64:
		return val, nil
	case float32:
		return float64(val), nil
	case int:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case json.Number:
		return val.Float64()
	case string:
		return strconv.ParseFloat(val, 64)
	}
	return nil, nil
}

func coerceBoolean(v any) (any, error) {
	switch val := v.(type) {
	case bool:
		return val, nil
	case string:
		return strconv.ParseBool(val)
	case int:
		return val != 0, nil
	case int64:
		return val != 0, nil
	case float64:
		return val != 0, nil
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return nil, err
		}
		return f != 0, nil
	}
	return nil, nil
}

func coerceDate(v any) (any, error) {
	switch val := v.(type) {
	case soql.Date:
		return val, nil
	case time.Time:
		return soql.DateOf(val), nil
	case string:
		if d, err := soql.ParseDate(val); err == nil {
			return d, nil
		}
		t, err := parseTimestamp(val)
		if err != nil {
			return nil, err
		}
		return soql.DateOf(t), nil
	}
	return nil, nil
}

func coerceDateTime(v any) (any, error) {
	switch val := v.(type) {
	case time.Time:
		return val, nil
	case soql.Date:
		return val.Time(), nil
	case string:
		return parseTimestamp(val)
	}
	return nil, nil
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
