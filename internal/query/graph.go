package query

// Graph is the tree of relationship traversals requested for one query.
// The root stands for the queried entity itself; each child is keyed by a
// relationship identifier and children keep first-seen order.
//
// Graphs are persistent: With returns a new graph sharing every untouched
// subtree with the receiver, so snapshots never observe each other's
// additions.
type Graph struct {
	root *graphNode
}

type graphNode struct {
	id       string // empty for the root
	children []*graphNode
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{root: &graphNode{}}
}

// With returns a graph that also contains the chain ids. Adding a chain
// already present returns the receiver.
func (g *Graph) With(ids ...string) *Graph {
	root := g.root.with(ids)
	if root == g.root {
		return g
	}
	return &Graph{root: root}
}

// Empty reports whether no traversal has been added.
func (g *Graph) Empty() bool { return len(g.root.children) == 0 }

// Paths lists every root-to-leaf chain in insertion order.
func (g *Graph) Paths() [][]string {
	var out [][]string
	var walk func(n *graphNode, prefix []string)
	walk = func(n *graphNode, prefix []string) {
		if len(n.children) == 0 && len(prefix) > 0 {
			out = append(out, append([]string(nil), prefix...))
			return
		}
		for _, c := range n.children {
			walk(c, append(prefix, c.id))
		}
	}
	walk(g.root, nil)
	return out
}

func (n *graphNode) child(id string) (int, *graphNode) {
	for i, c := range n.children {
		if c.id == id {
			return i, c
		}
	}
	return -1, nil
}

// with never modifies n; it copies the nodes along ids that change.
func (n *graphNode) with(ids []string) *graphNode {
	if len(ids) == 0 {
		return n
	}

	i, existing := n.child(ids[0])
	if existing != nil {
		updated := existing.with(ids[1:])
		if updated == existing {
			return n
		}
		children := make([]*graphNode, len(n.children))
		copy(children, n.children)
		children[i] = updated
		return &graphNode{id: n.id, children: children}
	}

	added := (&graphNode{id: ids[0]}).with(ids[1:])
	children := make([]*graphNode, len(n.children), len(n.children)+1)
	copy(children, n.children)
	children = append(children, added)
	return &graphNode{id: n.id, children: children}
}
