package soql

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	timestampLayout       = "2006-01-02T15:04:05-07:00"
	timestampMicrosLayout = "2006-01-02T15:04:05.000000-07:00"
	dateLayout            = "2006-01-02"
)

// Date is a calendar date without a time of day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the date t falls on in its own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// String renders the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Time returns midnight UTC on d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// FormatTimestamp renders t as an ISO-8601 timestamp with an explicit
// offset. Sub-second precision is kept to microseconds and only emitted
// when non-zero.
func FormatTimestamp(t time.Time) string {
	if t.Nanosecond()/int(time.Microsecond) != 0 {
		return t.Format(timestampMicrosLayout)
	}
	return t.Format(timestampLayout)
}

// Literal renders a Go value as a literal of the remote dialect.
func Literal(v any) string {
	switch val := v.(type) {
	case nil:
		return KwNull
	case Node:
		return val.Render()
	case string:
		return Quote(val)
	case bool:
		if val {
			return KwTrue
		}
		return KwFalse
	case time.Time:
		return FormatTimestamp(val)
	case *time.Time:
		if val == nil {
			return KwNull
		}
		return FormatTimestamp(*val)
	case Date:
		return val.String()
	case int:
		return strconv.Itoa(val)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

// Quote renders s as a single-quoted string literal. Backslashes, quotes
// and control characters are backslash-escaped.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\'', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}
