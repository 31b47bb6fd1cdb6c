package query

import (
	"github.com/roach88/soql/internal/path"
	"github.com/roach88/soql/internal/soql"
)

// CompileJoins expands the graph into select-list nodes for a query rooted
// at p's entity.
//
// Every joined relationship contributes its entity's default columns
// followed by its nested to-one joins (flat columns) and then its nested
// to-many joins, each as a correlated subquery selecting from the dotted
// relationship path.
func CompileJoins(p *path.Path, g *Graph) ([]soql.Node, error) {
	return compileNode(p, g.root, true)
}

func compileNode(p *path.Path, n *graphNode, root bool) ([]soql.Node, error) {
	var joins []soql.Node

	for _, child := range n.children {
		childPath, err := p.Rel(child.id)
		if err != nil {
			return nil, err
		}
		rel := childPath.RelationshipAt(-1)

		if rel.Many() {
			// Subqueries select relative to the related entity.
			nested, err := compileNode(path.From(childPath.Last()), child, false)
			if err != nil {
				return nil, err
			}
			joins = append(joins, soql.NewSubquery(nested, childPath.Node(), nil))
			continue
		}

		columns, err := compileNode(childPath, child, false)
		if err != nil {
			return nil, err
		}
		joins = append(columns, joins...)
	}

	if root {
		return joins, nil
	}
	return append(path.Nodes(p.DefaultColumns()), joins...), nil
}
