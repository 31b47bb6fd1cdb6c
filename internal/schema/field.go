package schema

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Kind is the value type of a column.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindFloat
	KindBoolean
	KindDate
	KindDateTime
)

var kindNames = map[Kind]string{
	KindString:   "string",
	KindInteger:  "integer",
	KindFloat:    "float",
	KindBoolean:  "boolean",
	KindDate:     "date",
	KindDateTime: "datetime",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a kind name ("string", "integer", ...) to its Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(name, s) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown column type %q", s)
}

// Field is a Column or a Relationship.
type Field interface {
	// Name is the local identifier used to build paths.
	Name() string
	// RemoteName is the name rendered into query text.
	RemoteName() string
	Nullable() bool

	field()
}

// FieldOption configures a field at declaration.
type FieldOption func(*fieldBase)

// Nullable allows the field to hold nil.
func Nullable() FieldOption {
	return func(b *fieldBase) { b.nullable = true }
}

type fieldBase struct {
	name     string
	remote   string
	nullable bool
}

func newFieldBase(name, remote string, opts []FieldOption) fieldBase {
	b := fieldBase{name: name, remote: remote}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func (b *fieldBase) Name() string       { return b.name }
func (b *fieldBase) RemoteName() string { return b.remote }
func (b *fieldBase) Nullable() bool     { return b.nullable }

// Column is a scalar leaf field.
type Column struct {
	fieldBase
	kind Kind
}

func (*Column) field() {}

// Kind returns the column's value kind.
func (c *Column) Kind() Kind { return c.kind }

// NewColumn declares a column of the given kind.
func NewColumn(name, remote string, kind Kind, opts ...FieldOption) *Column {
	return &Column{fieldBase: newFieldBase(name, remote, opts), kind: kind}
}

func String(name, remote string, opts ...FieldOption) *Column {
	return NewColumn(name, remote, KindString, opts...)
}

func Integer(name, remote string, opts ...FieldOption) *Column {
	return NewColumn(name, remote, KindInteger, opts...)
}

func Float(name, remote string, opts ...FieldOption) *Column {
	return NewColumn(name, remote, KindFloat, opts...)
}

func Boolean(name, remote string, opts ...FieldOption) *Column {
	return NewColumn(name, remote, KindBoolean, opts...)
}

func Date(name, remote string, opts ...FieldOption) *Column {
	return NewColumn(name, remote, KindDate, opts...)
}

func DateTime(name, remote string, opts ...FieldOption) *Column {
	return NewColumn(name, remote, KindDateTime, opts...)
}

// Target identifies the entity a relationship points at: either an
// *Entity or a late-bound Ref.
type Target interface {
	resolve(reg *Registry) (*Entity, error)
	targetName() string
}

// Ref names a related entity that is looked up in the registry when the
// relationship is first traversed.
type Ref string

func (r Ref) resolve(reg *Registry) (*Entity, error) {
	if reg == nil {
		return nil, fmt.Errorf("resolve %q: relationship is not attached to a registry", string(r))
	}
	return reg.Entity(string(r))
}

func (r Ref) targetName() string { return string(r) }

// Relationship references another entity.
type Relationship struct {
	fieldBase
	many   bool
	target Target

	// registry is set when the owning entity is registered.
	registry atomic.Pointer[Registry]
}

func (*Relationship) field() {}

// NewRelationship declares a relationship. many selects to-many.
func NewRelationship(name, remote string, target Target, many bool, opts ...FieldOption) *Relationship {
	return &Relationship{
		fieldBase: newFieldBase(name, remote, opts),
		many:      many,
		target:    target,
	}
}

// ToOne declares a to-one relationship.
func ToOne(name, remote string, target Target, opts ...FieldOption) *Relationship {
	return NewRelationship(name, remote, target, false, opts...)
}

// ToMany declares a to-many relationship.
func ToMany(name, remote string, target Target, opts ...FieldOption) *Relationship {
	return NewRelationship(name, remote, target, true, opts...)
}

// Many reports whether the relationship is to-many.
func (r *Relationship) Many() bool { return r.many }

// TargetName is the name of the related entity as declared.
func (r *Relationship) TargetName() string { return r.target.targetName() }

// Related resolves the related entity. Ref targets are looked up in the
// registry of the entity that declares the relationship.
func (r *Relationship) Related() (*Entity, error) {
	related, err := r.target.resolve(r.registry.Load())
	if err != nil {
		return nil, fmt.Errorf("relationship %s: %w", r.remote, err)
	}
	return related, nil
}
