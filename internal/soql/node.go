package soql

import "strings"

// Node is anything that renders to query text.
type Node interface {
	Render() string
}

// Token is a literal fragment rendered verbatim.
type Token string

// Render implements Node.
func (t Token) Render() string { return string(t) }

// composite joins the renders of its children with sep and wraps the
// result in open/close. All composite node kinds share this rendering.
type composite struct {
	children []Node
	sep      string
	open     string
	close    string
}

func newComposite(sep string, children []Node) composite {
	// Copy so later changes to a caller's slice never leak into the tree.
	owned := make([]Node, len(children))
	copy(owned, children)
	return composite{children: owned, sep: sep}
}

// Render implements Node.
func (c composite) Render() string {
	var b strings.Builder
	b.WriteString(c.open)
	for i, child := range c.children {
		if i > 0 {
			b.WriteString(c.sep)
		}
		b.WriteString(child.Render())
	}
	b.WriteString(c.close)
	return b.String()
}

// Composite is a generic list node: grouped, comma-separated,
// AND-separated, function calls and unary prefixes are all Composites.
type Composite struct {
	composite
}

// String implements fmt.Stringer.
func (c *Composite) String() string { return c.Render() }

// Join returns a node rendering items separated by sep.
func Join(sep string, items ...Node) *Composite {
	return &Composite{newComposite(sep, items)}
}

// Group wraps n in parentheses.
func Group(n Node) *Composite {
	c := newComposite("", []Node{n})
	c.open, c.close = "(", ")"
	return &Composite{c}
}

// CommaList renders items separated by ", ".
func CommaList(items ...Node) *Composite {
	return Join(", ", items...)
}

// AndList renders items separated by " AND ".
func AndList(items ...Node) *Composite {
	return Join(" "+string(OpAnd)+" ", items...)
}

// Array renders values as a parenthesized list of literals, e.g.
// ('Jin', 'Jan').
func Array(values ...any) *Composite {
	items := make([]Node, len(values))
	for i, v := range values {
		items[i] = Token(Literal(v))
	}
	return Group(CommaList(items...))
}

// Func renders a function call: NAME(arg, arg).
func Func(name Function, args ...Node) *Composite {
	return Join("", Token(name), Group(CommaList(args...)))
}

// Count renders COUNT().
func Count() *Composite {
	return Func(FnCount)
}

// CountOf renders COUNT(field).
func CountOf(field Node) *Composite {
	return Func(FnCount, field)
}
