// Package query builds SELECT statements from a schema.
//
// A Select is an immutable snapshot: every builder method returns a new
// Select and leaves the receiver untouched, so a base query can be shared
// and specialized freely, including across goroutines.
//
//	q := query.From(Child).
//		Join(path.From(Child).MustRel("mom")).
//		Where(path.From(Child).MustCol("name").Eq("Jill")).
//		Limit(10)
//	text, err := q.Render()
package query

import (
	"github.com/roach88/soql/internal/path"
	"github.com/roach88/soql/internal/schema"
	"github.com/roach88/soql/internal/soql"
)

// Select is a query snapshot.
type Select struct {
	entity  *schema.Entity
	columns []soql.Node
	filters []soql.Node
	graph   *Graph
	orders  []soql.Node
	limit   *int
	offset  *int
	count   bool

	// err is the first builder misuse; it is reported when rendering.
	err error
}

// From starts a query selecting every column of entity.
func From(entity *schema.Entity) *Select {
	return &Select{
		entity:  entity,
		columns: path.Nodes(path.From(entity).DefaultColumns()),
		graph:   NewGraph(),
	}
}

// clone copies the snapshot. Slices are reallocated so appends on the copy
// never reach the receiver's backing arrays; the graph is persistent and
// shared.
func (s *Select) clone() *Select {
	c := *s
	c.columns = cloneNodes(s.columns)
	c.filters = cloneNodes(s.filters)
	c.orders = cloneNodes(s.orders)
	return &c
}

func cloneNodes(nodes []soql.Node) []soql.Node {
	if nodes == nil {
		return nil
	}
	out := make([]soql.Node, len(nodes))
	copy(out, nodes)
	return out
}

// Entity returns the selected entity.
func (s *Select) Entity() *schema.Entity { return s.entity }

// Err returns the first builder misuse recorded on this snapshot.
func (s *Select) Err() error { return s.err }

// Join requests expansion of every relationship along p. p must start at
// the selected entity. Joining the same path twice has no further effect.
func (s *Select) Join(p *path.Path) *Select {
	c := s.clone()
	if c.err != nil {
		return c
	}
	if p == nil {
		c.err = ErrNilPath
		return c
	}
	if p.Root() != s.entity {
		c.err = &RootMismatchError{Selected: s.entity.Name(), Root: p.Root().Name(), Op: "join"}
		return c
	}
	c.graph = s.graph.With(p.Identifiers()...)
	return c
}

// Where adds filters. Filters accumulate and render AND-joined.
func (s *Select) Where(exprs ...soql.Node) *Select {
	c := s.clone()
	c.filters = append(c.filters, exprs...)
	return c
}

// OrderBy adds an ordering clause. opts are soql.Asc/soql.Desc and
// soql.NullsFirst/soql.NullsLast.
func (s *Select) OrderBy(column soql.Node, opts ...soql.OrderOption) *Select {
	c := s.clone()
	c.orders = append(c.orders, soql.OrderBy(column, opts...))
	return c
}

// Limit caps the number of rows returned.
func (s *Select) Limit(n int) *Select {
	c := s.clone()
	c.limit = &n
	return c
}

// Offset skips the first n rows.
func (s *Select) Offset(n int) *Select {
	c := s.clone()
	c.offset = &n
	return c
}

// Count switches to count mode: the select list becomes COUNT() and any
// selected or joined columns are ignored.
func (s *Select) Count() *Select {
	c := s.clone()
	c.count = true
	return c
}

// Columns replaces the default column list. Joined columns are still
// appended after these.
func (s *Select) Columns(columns ...soql.Node) *Select {
	c := s.clone()
	c.columns = cloneNodes(columns)
	if c.columns == nil {
		c.columns = []soql.Node{}
	}
	return c
}

// selectList is COUNT() in count mode, else the columns followed by the
// compiled joins.
func (s *Select) selectList() ([]soql.Node, error) {
	if s.count {
		return []soql.Node{soql.Count()}, nil
	}
	joins, err := CompileJoins(path.From(s.entity), s.graph)
	if err != nil {
		return nil, err
	}
	out := make([]soql.Node, 0, len(s.columns)+len(joins))
	out = append(out, s.columns...)
	return append(out, joins...), nil
}

// Statement assembles the statement node.
func (s *Select) Statement() (*soql.Statement, error) {
	if s.err != nil {
		return nil, s.err
	}
	columns, err := s.selectList()
	if err != nil {
		return nil, err
	}
	return soql.NewStatement(soql.Clauses{
		Columns: columns,
		From:    soql.Token(s.entity.RemoteName()),
		Where:   s.filters,
		OrderBy: s.orders,
		Limit:   s.limit,
		Offset:  s.offset,
	}), nil
}

// Render returns the statement text.
func (s *Select) Render() (string, error) {
	stmt, err := s.Statement()
	if err != nil {
		return "", err
	}
	return stmt.Render(), nil
}

// String implements fmt.Stringer. A snapshot carrying an error renders as
// the error message.
func (s *Select) String() string {
	text, err := s.Render()
	if err != nil {
		return "!error: " + err.Error()
	}
	return text
}

// AsSubquery renders the select as a parenthesized subquery, suitable as
// the operand of In or NotIn. It fails if ordering, limit, or offset is
// set.
func (s *Select) AsSubquery() (*soql.Subquery, error) {
	if s.err != nil {
		return nil, s.err
	}

	var reasons []string
	if len(s.orders) > 0 {
		reasons = append(reasons, "order by")
	}
	if s.limit != nil {
		reasons = append(reasons, "limit")
	}
	if s.offset != nil {
		reasons = append(reasons, "offset")
	}
	if len(reasons) > 0 {
		return nil, &SubqueryNotValidError{Reasons: reasons}
	}

	columns, err := s.selectList()
	if err != nil {
		return nil, err
	}
	return soql.NewSubquery(columns, soql.Token(s.entity.RemoteName()), s.filters), nil
}
