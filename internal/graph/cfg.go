// Package graph converts block trees into lattice control flow and call
// graphs.
package graph

import (
	"github.com/zboralski/lattice"
	"github.com/zboralski/lattice/render"

	"ilflow/internal/blocks"
)

// Caller is implemented by instructions that transfer to another function.
type Caller interface {
	Callee() (string, bool)
}

// ToLattice maps a block tree to a lattice.FuncCFG. Block IDs, ranges and
// call offsets are instruction indices; exception scopes are flattened.
func ToLattice(name string, m *blocks.MethodBlocks) *lattice.FuncCFG {
	lcfg := &lattice.FuncCFG{Name: name}
	for _, db := range m.Blocks() {
		r := db.Range()
		lb := &lattice.BasicBlock{
			ID:    db.ID,
			Start: r.Start,
			End:   r.End,
		}

		cond := db.LastInstr().Shape() == blocks.ShapeCondBranch
		for _, t := range db.Targets {
			s := lattice.Successor{BlockID: t.ID}
			if cond {
				s.Cond = "T"
			}
			lb.Succs = append(lb.Succs, s)
		}
		if db.FallThrough != nil {
			s := lattice.Successor{BlockID: db.FallThrough.ID}
			if cond {
				s.Cond = "F"
			}
			lb.Succs = append(lb.Succs, s)
		}
		lb.Term = len(lb.Succs) == 0

		for i, in := range db.Instrs {
			if c, ok := in.(Caller); ok {
				if callee, ok := c.Callee(); ok {
					lb.Calls = append(lb.Calls, lattice.CallSite{Offset: r.Start + i, Callee: callee})
				}
			}
		}
		lcfg.Blocks = append(lcfg.Blocks, lb)
	}
	return lcfg
}

// DOT renders one method through the lattice CFG renderer.
func DOT(name string, m *blocks.MethodBlocks) string {
	cg := &lattice.CFGGraph{Funcs: []*lattice.FuncCFG{ToLattice(name, m)}}
	return render.DOTCFG(cg, name)
}
