package graph

import (
	"github.com/zboralski/lattice"
	"github.com/zboralski/lattice/render"

	"ilflow/internal/blocks"
)

// Func holds the data needed to place one function in a call graph.
type Func struct {
	Name string
	Tree *blocks.MethodBlocks
}

// CallGraph constructs a lattice.Graph from parsed functions.
// Each function becomes a node. Each call site becomes an edge to the
// callee name reported by the instruction.
func CallGraph(funcs []Func) *lattice.Graph {
	g := &lattice.Graph{}
	for _, f := range funcs {
		g.Nodes = append(g.Nodes, f.Name)
		if f.Tree == nil {
			continue
		}
		for _, in := range f.Tree.Instructions() {
			c, ok := in.(Caller)
			if !ok {
				continue
			}
			callee, ok := c.Callee()
			if !ok || callee == "" {
				continue
			}
			g.Edges = append(g.Edges, lattice.Edge{
				Caller: f.Name,
				Callee: callee,
			})
		}
	}
	g.Dedup()
	return g
}

// CallGraphDOT renders the call graph of funcs.
func CallGraphDOT(funcs []Func, title string) string {
	return render.DOT(CallGraph(funcs), title)
}
