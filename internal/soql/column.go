package soql

// ColumnPath is a dot-joined reference such as Child.Mom.Name. It is the
// usual left-hand side of a filter and carries the comparison operators.
type ColumnPath struct {
	composite
	elements []string
}

// NewColumnPath joins elements with ".".
func NewColumnPath(elements ...string) *ColumnPath {
	owned := make([]string, len(elements))
	copy(owned, elements)
	children := make([]Node, len(owned))
	for i, e := range owned {
		children[i] = Token(e)
	}
	return &ColumnPath{composite: newComposite(".", children), elements: owned}
}

// Elements returns a copy of the path's elements.
func (c *ColumnPath) Elements() []string {
	out := make([]string, len(c.elements))
	copy(out, c.elements)
	return out
}

// String implements fmt.Stringer.
func (c *ColumnPath) String() string { return c.Render() }

// Comparison operators, each delegating to the package-level function of
// the same name.

func (c *ColumnPath) Eq(value any) *Expr           { return Eq(c, value) }
func (c *ColumnPath) Ne(value any) *Expr           { return Ne(c, value) }
func (c *ColumnPath) Lt(value any) *Expr           { return Lt(c, value) }
func (c *ColumnPath) Le(value any) *Expr           { return Le(c, value) }
func (c *ColumnPath) Gt(value any) *Expr           { return Gt(c, value) }
func (c *ColumnPath) Ge(value any) *Expr           { return Ge(c, value) }
func (c *ColumnPath) Like(pattern any) *Expr       { return Like(c, pattern) }
func (c *ColumnPath) Is(value any) *Expr           { return Is(c, value) }
func (c *ColumnPath) IsNot(value any) *Expr        { return IsNot(c, value) }
func (c *ColumnPath) In(values ...any) *Expr       { return In(c, values...) }
func (c *ColumnPath) NotIn(values ...any) *Expr    { return NotIn(c, values...) }
func (c *ColumnPath) Includes(values ...any) *Expr { return Includes(c, values...) }
func (c *ColumnPath) Excludes(values ...any) *Expr { return Excludes(c, values...) }
