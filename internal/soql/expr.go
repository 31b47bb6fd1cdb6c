package soql

// Expr is a binary expression: lhs op rhs.
type Expr struct {
	composite
}

// String implements fmt.Stringer.
func (e *Expr) String() string { return e.Render() }

// Binary builds "lhs op rhs". Operands that are Nodes render as-is; any
// other value is rendered with Literal.
func Binary(lhs any, op Op, rhs any) *Expr {
	return &Expr{newComposite(" ", []Node{
		Token(Literal(lhs)),
		Token(op),
		Token(Literal(rhs)),
	})}
}

// Eq builds lhs = value.
func Eq(lhs Node, value any) *Expr { return Binary(lhs, OpEq, value) }

// Ne builds lhs != value.
func Ne(lhs Node, value any) *Expr { return Binary(lhs, OpNe, value) }

// Lt builds lhs < value.
func Lt(lhs Node, value any) *Expr { return Binary(lhs, OpLt, value) }

// Le builds lhs <= value.
func Le(lhs Node, value any) *Expr { return Binary(lhs, OpLte, value) }

// Gt builds lhs > value.
func Gt(lhs Node, value any) *Expr { return Binary(lhs, OpGt, value) }

// Ge builds lhs >= value.
func Ge(lhs Node, value any) *Expr { return Binary(lhs, OpGte, value) }

// Like builds lhs LIKE pattern.
func Like(lhs Node, pattern any) *Expr { return Binary(lhs, OpLike, pattern) }

// Is builds lhs IS value.
func Is(lhs Node, value any) *Expr { return Binary(lhs, OpIs, value) }

// IsNot builds lhs IS NOT value.
func IsNot(lhs Node, value any) *Expr { return Binary(lhs, OpIsNot, value) }

// In builds lhs IN set. See Set for how the operand is rendered.
func In(lhs Node, values ...any) *Expr { return Binary(lhs, OpIn, Set(values...)) }

// NotIn builds lhs NOT IN set.
func NotIn(lhs Node, values ...any) *Expr { return Binary(lhs, OpNotIn, Set(values...)) }

// Includes builds lhs INCLUDES set, for multi-select columns.
func Includes(lhs Node, values ...any) *Expr { return Binary(lhs, OpIncludes, Set(values...)) }

// Excludes builds lhs EXCLUDES set.
func Excludes(lhs Node, values ...any) *Expr { return Binary(lhs, OpExcludes, Set(values...)) }

// Set builds the right-hand operand of a containment check. A single Node
// (typically a subquery) is used as-is; anything else becomes a
// parenthesized list of literals.
func Set(values ...any) Node {
	if len(values) == 1 {
		if n, ok := values[0].(Node); ok {
			return n
		}
	}
	return Array(values...)
}

// And folds two or more expressions left-associatively with AND and
// groups the result: (a AND b AND c).
func And(a, b Node, rest ...Node) *Composite {
	return logical(OpAnd, a, b, rest)
}

// Or folds two or more expressions with OR: (a OR b OR c).
func Or(a, b Node, rest ...Node) *Composite {
	return logical(OpOr, a, b, rest)
}

func logical(op Op, a, b Node, rest []Node) *Composite {
	expr := Binary(a, op, b)
	for _, n := range rest {
		expr = Binary(expr, op, n)
	}
	return Group(expr)
}

// Not prefixes n with NOT.
func Not(n Node) *Composite {
	return Join(" ", Token(OpNot), n)
}
