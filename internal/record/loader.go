package record

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/roach88/soql/internal/schema"
)

// Payload is a decoded API object or query result.
type Payload = map[string]any

// ExpectedColumnMissingError reports a payload without one of the
// entity's columns. Columns are always selected, so a missing key means
// the payload does not match the schema.
type ExpectedColumnMissingError struct {
	Entity string
	Column string // remote name
	Keys   []string
}

func (e *ExpectedColumnMissingError) Error() string {
	return fmt.Sprintf("expected %s for entity %s, payload has %v", e.Column, e.Entity, e.Keys)
}

// DecodePayload decodes a JSON object. Numbers are kept as json.Number so
// integer columns never pass through float64.
func DecodePayload(r io.Reader) (Payload, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var p Payload
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return p, nil
}

// Load builds a record from a single API object. The entity is found by
// the remote name in attributes.type.
func Load(reg *schema.Registry, data Payload) (*Record, error) {
	typ, err := objectType(data)
	if err != nil {
		return nil, err
	}
	entity, err := reg.ByRemoteName(typ)
	if err != nil {
		return nil, err
	}
	return LoadAs(reg, entity, data)
}

// LoadMany loads every object under records.
func LoadMany(reg *schema.Registry, data Payload) ([]*Record, error) {
	raw, ok := data["records"]
	if !ok {
		return nil, fmt.Errorf("payload has no records")
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("records: expected a list, got %T", raw)
	}

	out := make([]*Record, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("records[%d]: expected an object, got %T", i, item)
		}
		rec, err := Load(reg, obj)
		if err != nil {
			return nil, fmt.Errorf("records[%d]: %w", i, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// TotalCount returns totalSize from a query result.
func TotalCount(data Payload) (int, error) {
	raw, ok := data["totalSize"]
	if !ok {
		return 0, fmt.Errorf("payload has no totalSize")
	}
	switch n := raw.(type) {
	case json.Number:
		v, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("totalSize: %w", err)
		}
		return int(v), nil
	case float64:
		return int(n), nil
	case int:
		return n, nil
	}
	return 0, fmt.Errorf("totalSize: expected a number, got %T", raw)
}

// LoadAs builds a record of entity from data. Every column must be
// present; relationships missing from data are marked unloaded.
func LoadAs(reg *schema.Registry, entity *schema.Entity, data Payload) (*Record, error) {
	values := make(map[string]any, len(entity.Fields()))

	for _, f := range entity.Fields() {
		raw, present := data[f.RemoteName()]
		switch field := f.(type) {
		case *schema.Column:
			if !present {
				return nil, &ExpectedColumnMissingError{
					Entity: entity.Name(),
					Column: field.RemoteName(),
					Keys:   keys(data),
				}
			}
			values[f.Name()] = raw
		case *schema.Relationship:
			if !present {
				values[f.Name()] = Unloaded
				continue
			}
			v, err := loadRelated(reg, field, raw)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", entity.Name(), f.Name(), err)
			}
			values[f.Name()] = v
		}
	}
	return New(entity, values)
}

func loadRelated(reg *schema.Registry, rel *schema.Relationship, raw any) (any, error) {
	if raw == nil {
		if rel.Many() {
			return []*Record{}, nil
		}
		return nil, nil
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected an object, got %T", raw)
	}

	if rel.Many() {
		return loadManyRelated(reg, rel, obj)
	}
	return loadOneRelated(reg, rel, obj)
}

// loadOneRelated prefers attributes.type and falls back to the declared
// target when the object carries no type.
func loadOneRelated(reg *schema.Registry, rel *schema.Relationship, obj Payload) (*Record, error) {
	if _, err := objectType(obj); err == nil {
		return Load(reg, obj)
	}
	target, err := rel.Related()
	if err != nil {
		return nil, err
	}
	return LoadAs(reg, target, obj)
}

func loadManyRelated(reg *schema.Registry, rel *schema.Relationship, obj Payload) ([]*Record, error) {
	raw, ok := obj["records"].([]any)
	if !ok {
		return nil, fmt.Errorf("expected records list")
	}
	out := make([]*Record, 0, len(raw))
	for i, item := range raw {
		child, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("records[%d]: expected an object, got %T", i, item)
		}
		rec, err := loadOneRelated(reg, rel, child)
		if err != nil {
			return nil, fmt.Errorf("records[%d]: %w", i, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func objectType(data Payload) (string, error) {
	attrs, ok := data["attributes"].(map[string]any)
	if !ok {
		return "", fmt.Errorf("payload has no attributes")
	}
	typ, ok := attrs["type"].(string)
	if !ok || typ == "" {
		return "", fmt.Errorf("payload has no attributes.type")
	}
	return typ, nil
}

func keys(data Payload) []string {
	out := make([]string, 0, len(data))
	for k := range data {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
