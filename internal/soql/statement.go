package soql

import "strconv"

// Direction is the sort direction of an ordering clause.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Nulls places null values first or last in an ordering clause.
type Nulls string

const (
	NullsFirst Nulls = "NULLS FIRST"
	NullsLast  Nulls = "NULLS LAST"
)

// OrderOption is a Direction or a Nulls position.
type OrderOption interface {
	applyOrder(*orderSpec)
}

type orderSpec struct {
	direction Direction
	nulls     Nulls
}

func (d Direction) applyOrder(s *orderSpec) { s.direction = d }
func (n Nulls) applyOrder(s *orderSpec)     { s.nulls = n }

// OrderClause renders "column [direction] [nulls]".
type OrderClause struct {
	composite
}

// OrderBy builds an ordering clause. Direction and nulls position are
// optional and always render in that order.
func OrderBy(column Node, opts ...OrderOption) *OrderClause {
	var spec orderSpec
	for _, opt := range opts {
		opt.applyOrder(&spec)
	}
	children := []Node{column}
	if spec.direction != "" {
		children = append(children, Token(spec.direction))
	}
	if spec.nulls != "" {
		children = append(children, Token(spec.nulls))
	}
	return &OrderClause{newComposite(" ", children)}
}

// Clauses holds the parts of a SELECT statement. Optional parts left empty
// (or nil) are omitted from the render.
type Clauses struct {
	Columns []Node
	From    Node
	Where   []Node
	OrderBy []Node
	Limit   *int
	Offset  *int
}

// Statement is a complete SELECT statement.
type Statement struct {
	composite
}

// NewStatement assembles a statement:
//
//	SELECT cols FROM from [WHERE a AND b] [ORDER BY x, y] [LIMIT n] [OFFSET m]
func NewStatement(c Clauses) *Statement {
	nodes := []Node{
		Token(KwSelect),
		CommaList(c.Columns...),
		Token(KwFrom),
		c.From,
	}
	if len(c.Where) > 0 {
		nodes = append(nodes, Token(KwWhere), AndList(c.Where...))
	}
	if len(c.OrderBy) > 0 {
		nodes = append(nodes, Token(KwOrderBy), CommaList(c.OrderBy...))
	}
	if c.Limit != nil {
		nodes = append(nodes, Token(KwLimit), Token(strconv.Itoa(*c.Limit)))
	}
	if c.Offset != nil {
		nodes = append(nodes, Token(KwOffset), Token(strconv.Itoa(*c.Offset)))
	}
	return &Statement{newComposite(" ", nodes)}
}

// String implements fmt.Stringer.
func (s *Statement) String() string { return s.Render() }

// Subquery is a parenthesized statement usable as a select column or as the
// operand of a containment check.
type Subquery struct {
	composite
}

// NewSubquery builds (SELECT cols FROM from [WHERE ...]). Subqueries never
// carry ordering or pagination.
func NewSubquery(columns []Node, from Node, where []Node) *Subquery {
	stmt := NewStatement(Clauses{Columns: columns, From: from, Where: where})
	return &Subquery{newComposite("", []Node{Group(stmt)})}
}

// String implements fmt.Stringer.
func (s *Subquery) String() string { return s.Render() }
