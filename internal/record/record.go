// Package record holds entity instances and loads them from API payloads.
//
// A Record tracks three states per field: set, unset (never provided) and
// unloaded (absent from the payload it was loaded from). Reading an unset
// or unloaded field fails with ErrNotSet or ErrNotLoaded.
package record

import (
	"errors"
	"fmt"
	"time"

	"github.com/roach88/soql/internal/schema"
)

var (
	ErrNotSet    = errors.New("field was never set")
	ErrNotLoaded = errors.New("field was not loaded")
)

type unloadedValue struct{}

// Unloaded marks a field as not loaded when passed to New.
var Unloaded any = unloadedValue{}

// Record is an instance of an entity. Column values hold the column's
// coerced Go representation; to-one relationships hold a *Record and
// to-many relationships a []*Record.
type Record struct {
	entity   *schema.Entity
	values   map[string]any
	unloaded map[string]bool
	changed  map[string]bool
}

// New builds a record from values keyed by field name. Column values are
// coerced; fields missing from values are unset.
func New(entity *schema.Entity, values map[string]any) (*Record, error) {
	r := &Record{
		entity:   entity,
		values:   make(map[string]any, len(values)),
		unloaded: make(map[string]bool),
		changed:  make(map[string]bool),
	}
	for name := range values {
		if _, err := entity.Field(name); err != nil {
			return nil, err
		}
	}
	for _, f := range entity.Fields() {
		v, ok := values[f.Name()]
		switch {
		case !ok:
			continue
		case v == Unloaded:
			r.unloaded[f.Name()] = true
		default:
			coerced, err := coerce(f, v)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", entity.Name(), f.Name(), err)
			}
			r.values[f.Name()] = coerced
		}
	}
	return r, nil
}

// MustNew is New that panics on failure.
func MustNew(entity *schema.Entity, values map[string]any) *Record {
	r, err := New(entity, values)
	if err != nil {
		panic(err)
	}
	return r
}

func coerce(f schema.Field, v any) (any, error) {
	switch field := f.(type) {
	case *schema.Column:
		return field.Coerce(v)
	case *schema.Relationship:
		if _, err := field.Coerce(v); err != nil {
			return nil, err
		}
		return checkRelated(field, v)
	}
	return nil, fmt.Errorf("unsupported field type %T", f)
}

func checkRelated(rel *schema.Relationship, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	if rel.Many() {
		records, ok := v.([]*Record)
		if !ok {
			return nil, fmt.Errorf("%s: expected []*Record, got %T", rel.RemoteName(), v)
		}
		return append([]*Record(nil), records...), nil
	}
	rec, ok := v.(*Record)
	if !ok {
		return nil, fmt.Errorf("%s: expected *Record, got %T", rel.RemoteName(), v)
	}
	return rec, nil
}

// Entity returns the record's entity.
func (r *Record) Entity() *schema.Entity { return r.entity }

// Get returns a field's value.
func (r *Record) Get(name string) (any, error) {
	if _, err := r.entity.Field(name); err != nil {
		return nil, err
	}
	if r.unloaded[name] {
		return nil, fmt.Errorf("%s.%s: %w", r.entity.Name(), name, ErrNotLoaded)
	}
	v, ok := r.values[name]
	if !ok {
		return nil, fmt.Errorf("%s.%s: %w", r.entity.Name(), name, ErrNotSet)
	}
	return v, nil
}

// One returns a to-one relationship's record, which may be nil.
func (r *Record) One(name string) (*Record, error) {
	v, err := r.Get(name)
	if err != nil || v == nil {
		return nil, err
	}
	rec, ok := v.(*Record)
	if !ok {
		return nil, fmt.Errorf("%s.%s is not a to-one relationship", r.entity.Name(), name)
	}
	return rec, nil
}

// Many returns a to-many relationship's records.
func (r *Record) Many(name string) ([]*Record, error) {
	v, err := r.Get(name)
	if err != nil || v == nil {
		return nil, err
	}
	recs, ok := v.([]*Record)
	if !ok {
		return nil, fmt.Errorf("%s.%s is not a to-many relationship", r.entity.Name(), name)
	}
	return recs, nil
}

// Set assigns a field. Column values are coerced and recorded as a change
// when they differ from the current value. Relationship assignments are
// not tracked.
func (r *Record) Set(name string, v any) error {
	f, err := r.entity.Field(name)
	if err != nil {
		return err
	}
	coerced, err := coerce(f, v)
	if err != nil {
		return fmt.Errorf("%s.%s: %w", r.entity.Name(), name, err)
	}

	if _, isColumn := f.(*schema.Column); isColumn {
		old, had := r.values[name]
		if !had || r.unloaded[name] || !valueEqual(old, coerced) {
			r.changed[name] = true
		}
	}
	delete(r.unloaded, name)
	r.values[name] = coerced
	return nil
}

// Changes returns the changed columns keyed by remote name, serialized for
// the wire.
func (r *Record) Changes() map[string]any {
	out := make(map[string]any, len(r.changed))
	for _, col := range r.entity.Columns() {
		if r.changed[col.Name()] {
			out[col.RemoteName()] = col.Serialize(r.values[col.Name()])
		}
	}
	return out
}

// ResetChanges forgets all tracked changes.
func (r *Record) ResetChanges() {
	r.changed = make(map[string]bool)
}

// Equal reports whether both records are of the same entity and hold the
// same field states and values.
func (r *Record) Equal(other *Record) bool {
	if r == nil || other == nil {
		return r == other
	}
	if r.entity != other.entity || len(r.values) != len(other.values) || len(r.unloaded) != len(other.unloaded) {
		return false
	}
	for name := range r.unloaded {
		if !other.unloaded[name] {
			return false
		}
	}
	for name, v := range r.values {
		ov, ok := other.values[name]
		if !ok || !valueEqual(v, ov) {
			return false
		}
	}
	return true
}

func valueEqual(a, b any) bool {
	switch av := a.(type) {
	case *Record:
		bv, ok := b.(*Record)
		return ok && av.Equal(bv)
	case []*Record:
		bv, ok := b.([]*Record)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !av[i].Equal(bv[i]) {
				return false
			}
		}
		return true
	case time.Time:
		bv, ok := b.(time.Time)
		return ok && av.Equal(bv)
	}
	return a == b
}

func (r *Record) String() string {
	return fmt.Sprintf("%s%v", r.entity.Name(), r.values)
}
