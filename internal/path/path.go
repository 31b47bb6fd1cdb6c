// Package path resolves chains of field identifiers against a schema.
//
// A Path starts at a root entity and follows relationships one identifier
// at a time. Naming a relationship yields a longer Path; naming a column
// yields a terminal ColumnRef:
//
//	p := path.From(Child)
//	mom, _ := p.Rel("mom")
//	name, _ := mom.Col("name") // Child.Mom.Name
//
// Paths are immutable and safe to share.
package path

import (
	"fmt"

	"github.com/roach88/soql/internal/schema"
	"github.com/roach88/soql/internal/soql"
)

// step is one traversed relationship and the entity it reached.
type step struct {
	id     string
	rel    *schema.Relationship
	entity *schema.Entity
}

// Path is a chain of relationship traversals from a root entity.
type Path struct {
	root  *schema.Entity
	steps []step
}

// From starts an empty path at root.
func From(root *schema.Entity) *Path {
	return &Path{root: root}
}

// Root returns the entity the path starts at.
func (p *Path) Root() *schema.Entity { return p.root }

// Len is the number of relationships followed.
func (p *Path) Len() int { return len(p.steps) }

// Identifiers returns the relationship identifiers in traversal order.
func (p *Path) Identifiers() []string {
	ids := make([]string, len(p.steps))
	for i, s := range p.steps {
		ids[i] = s.id
	}
	return ids
}

// Last returns the entity reached after the full path.
func (p *Path) Last() *schema.Entity {
	if len(p.steps) == 0 {
		return p.root
	}
	return p.steps[len(p.steps)-1].entity
}

// Extend follows id from the path's last entity. A relationship yields a
// *Path, a column yields a *ColumnRef.
func (p *Path) Extend(id string) (soql.Node, error) {
	f, err := p.Last().Field(id)
	if err != nil {
		return nil, err
	}
	switch field := f.(type) {
	case *schema.Relationship:
		return p.follow(id, field)
	case *schema.Column:
		return p.column(field), nil
	default:
		return nil, fmt.Errorf("extend %s: unsupported field type %T", id, f)
	}
}

// Rel follows a relationship. It fails if id is not declared or names a
// column.
func (p *Path) Rel(id string) (*Path, error) {
	f, err := p.Last().Field(id)
	if err != nil {
		return nil, err
	}
	rel, ok := f.(*schema.Relationship)
	if !ok {
		return nil, &NotRelationshipError{Entity: p.Last().Name(), Field: id}
	}
	return p.follow(id, rel)
}

// Col resolves a column on the path's last entity. It fails if id is not
// declared or names a relationship.
func (p *Path) Col(id string) (*ColumnRef, error) {
	f, err := p.Last().Field(id)
	if err != nil {
		return nil, err
	}
	col, ok := f.(*schema.Column)
	if !ok {
		return nil, &NotColumnError{Entity: p.Last().Name(), Field: id}
	}
	return p.column(col), nil
}

// Resolve follows a chain of identifiers. Every identifier but the last
// must name a relationship; the result is a *Path or a *ColumnRef.
func (p *Path) Resolve(ids ...string) (soql.Node, error) {
	var node soql.Node = p
	for i, id := range ids {
		cur, ok := node.(*Path)
		if !ok {
			return nil, fmt.Errorf("resolve %v: %s is a column and cannot be extended", ids, ids[i-1])
		}
		next, err := cur.Extend(id)
		if err != nil {
			return nil, err
		}
		node = next
	}
	return node, nil
}

// MustRel is Rel that panics on failure, for statically known schemas.
func (p *Path) MustRel(id string) *Path {
	next, err := p.Rel(id)
	if err != nil {
		panic(err)
	}
	return next
}

// MustCol is Col that panics on failure, for statically known schemas.
func (p *Path) MustCol(id string) *ColumnRef {
	col, err := p.Col(id)
	if err != nil {
		panic(err)
	}
	return col
}

func (p *Path) follow(id string, rel *schema.Relationship) (*Path, error) {
	related, err := rel.Related()
	if err != nil {
		return nil, err
	}
	steps := make([]step, len(p.steps), len(p.steps)+1)
	copy(steps, p.steps)
	steps = append(steps, step{id: id, rel: rel, entity: related})
	return &Path{root: p.root, steps: steps}, nil
}

func (p *Path) column(col *schema.Column) *ColumnRef {
	elements := append(p.remoteNames(), col.RemoteName())
	return &ColumnRef{ColumnPath: soql.NewColumnPath(elements...), column: col}
}

func (p *Path) remoteNames() []string {
	names := make([]string, 0, len(p.steps)+2)
	names = append(names, p.root.RemoteName())
	for _, s := range p.steps {
		names = append(names, s.rel.RemoteName())
	}
	return names
}

// bound converts an index into the number of steps it covers: i covers
// steps 0..i inclusive, -1 covers the whole path.
func (p *Path) bound(i int) int {
	n := i + 1
	if i < 0 {
		n = len(p.steps) + i + 1
	}
	return max(0, min(n, len(p.steps)))
}

// EntityAt returns the entity reached after following relationships 0
// through i. -1 means the full path; an empty path always yields the root.
func (p *Path) EntityAt(i int) *schema.Entity {
	n := p.bound(i)
	if n == 0 {
		return p.root
	}
	return p.steps[n-1].entity
}

// RelationshipAt returns the relationship followed at step i, or nil when
// the path is empty. -1 means the last relationship.
func (p *Path) RelationshipAt(i int) *schema.Relationship {
	n := p.bound(i)
	if n == 0 {
		return nil
	}
	return p.steps[n-1].rel
}

// Node renders the path as a dotted column path: root remote name followed
// by each relationship's remote name.
func (p *Path) Node() *soql.ColumnPath {
	return soql.NewColumnPath(p.remoteNames()...)
}

// Render implements soql.Node.
func (p *Path) Render() string { return p.Node().Render() }

// String implements fmt.Stringer.
func (p *Path) String() string { return p.Render() }

// DefaultColumns returns a ColumnRef for every column of the last entity,
// in declaration order.
func (p *Path) DefaultColumns() []*ColumnRef {
	cols := p.Last().Columns()
	refs := make([]*ColumnRef, len(cols))
	for i, c := range cols {
		refs[i] = p.column(c)
	}
	return refs
}

// Nodes converts column refs to soql nodes.
func Nodes(refs []*ColumnRef) []soql.Node {
	nodes := make([]soql.Node, len(refs))
	for i, r := range refs {
		nodes[i] = r
	}
	return nodes
}

// ColumnRef is a terminal column reached through a path. It renders like
// the underlying column path and carries its comparison operators.
type ColumnRef struct {
	*soql.ColumnPath
	column *schema.Column
}

// Column returns the schema column the reference resolves to.
func (c *ColumnRef) Column() *schema.Column { return c.column }
