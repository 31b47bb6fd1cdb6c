package schema

import "fmt"

// Entity is a declared record shape. Its fields keep declaration order.
type Entity struct {
	name   string
	remote string
	fields []Field
	index  map[string]Field
}

// NewEntity declares an entity. remote defaults to name when empty.
// Field identifiers must be unique within the entity.
func NewEntity(name, remote string, fields ...Field) (*Entity, error) {
	if name == "" {
		return nil, fmt.Errorf("entity name is required")
	}
	if remote == "" {
		remote = name
	}

	e := &Entity{
		name:   name,
		remote: remote,
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]Field, len(fields)),
	}
	for _, f := range fields {
		if f == nil {
			return nil, fmt.Errorf("entity %s: nil field", name)
		}
		if f.Name() == "" || f.RemoteName() == "" {
			return nil, fmt.Errorf("entity %s: field name and remote name are required", name)
		}
		if _, dup := e.index[f.Name()]; dup {
			return nil, fmt.Errorf("entity %s: duplicate field %q", name, f.Name())
		}
		e.fields = append(e.fields, f)
		e.index[f.Name()] = f
	}
	return e, nil
}

// Define is NewEntity with the remote name equal to name. It panics on an
// invalid declaration, so it suits package-level schema variables.
func Define(name string, fields ...Field) *Entity {
	return DefineAs(name, "", fields...)
}

// DefineAs is Define with an explicit remote name.
func DefineAs(name, remote string, fields ...Field) *Entity {
	e, err := NewEntity(name, remote, fields...)
	if err != nil {
		panic(err)
	}
	return e
}

func (e *Entity) resolve(*Registry) (*Entity, error) { return e, nil }
func (e *Entity) targetName() string                 { return e.name }

// Name is the local entity name.
func (e *Entity) Name() string { return e.name }

// RemoteName is the entity name rendered into query text.
func (e *Entity) RemoteName() string { return e.remote }

// Field looks up a declared field by identifier.
func (e *Entity) Field(name string) (Field, error) {
	f, ok := e.index[name]
	if !ok {
		return nil, &FieldNotDeclaredError{Entity: e.name, Field: name}
	}
	return f, nil
}

// Fields returns all fields in declaration order.
func (e *Entity) Fields() []Field {
	out := make([]Field, len(e.fields))
	copy(out, e.fields)
	return out
}

// Columns returns the column fields in declaration order. These are the
// columns selected by default.
func (e *Entity) Columns() []*Column {
	var cols []*Column
	for _, f := range e.fields {
		if c, ok := f.(*Column); ok {
			cols = append(cols, c)
		}
	}
	return cols
}

// Relationships returns the relationship fields in declaration order.
func (e *Entity) Relationships() []*Relationship {
	var rels []*Relationship
	for _, f := range e.fields {
		if r, ok := f.(*Relationship); ok {
			rels = append(rels, r)
		}
	}
	return rels
}

func (e *Entity) String() string { return e.name }
