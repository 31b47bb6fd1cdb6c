// Package soql provides the composable text-node model used to build
// statements in the remote query dialect.
//
// Every node renders itself to text. Composite nodes hold an ordered list of
// children and a separator, optionally wrapped in a delimiter pair:
//
//	Group(n)            "(" n ")"
//	CommaList(a, b)     "a, b"
//	AndList(a, b)       "a AND b"
//	Binary(l, op, r)    "l op r"
//	Func(name, args...) "NAME(args)"
//	NewColumnPath(...)  "Entity.Rel.Column"
//
// Nodes are immutable once constructed. Rendering is pure and deterministic:
// the same tree always renders the same text, no matter how many times
// Render is called.
//
// VALUE LITERALS:
//
// Go values embedded in expressions are rendered with Literal:
//
//	nil          NULL
//	string       'text' (backslash-escaped)
//	bool         TRUE / FALSE
//	time.Time    ISO-8601 timestamp with explicit offset
//	Date         YYYY-MM-DD
//	Node         rendered as-is
//	other        default textual form
//
// EXPRESSIONS:
//
// Column paths carry the comparison operators, so filters read naturally:
//
//	name := soql.NewColumnPath("Child", "Name")
//	soql.And(name.Eq("Jill"), name.In("Jack", "Jill"))
//	// (Child.Name = 'Jill' AND Child.Name IN ('Jack', 'Jill'))
package soql
