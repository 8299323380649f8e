package blocks

import (
	"fmt"
	"slices"
)

// Nodes returns the children of n in layout order, or nil for a Block.
func Nodes(n Node) []Node {
	if s, ok := n.(Scope); ok {
		return s.Children()
	}
	return nil
}

// Walk visits n and its descendants in document order. Returning false from
// fn skips the node's descendants.
func Walk(n Node, fn func(Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range Nodes(n) {
		Walk(c, fn)
	}
}

// Blocks returns every basic block under n in document order.
func Blocks(n Node) []*Block {
	var out []*Block
	Walk(n, func(n Node) bool {
		if b, ok := n.(*Block); ok {
			out = append(out, b)
		}
		return true
	})
	return out
}

// Blocks returns every basic block of the method in document order.
func (m *MethodBlocks) Blocks() []*Block { return Blocks(m) }

// Flatten returns the instructions under n in document order.
func Flatten(n Node) []Instruction {
	var out []Instruction
	for _, b := range Blocks(n) {
		out = append(out, b.Instrs...)
	}
	return out
}

// Depth returns the number of try bodies and handlers enclosing n.
func Depth(n Node) int {
	d := 0
	for p := n.Parent(); p != nil; p = p.Parent() {
		switch p.(type) {
		case *TryBlock, *TryHandlerBlock:
			d++
		}
	}
	return d
}

// Stats summarises a block tree.
type Stats struct {
	Instructions int
	Blocks       int
	Tries        int
	Handlers     int
	Filters      int
	MaxDepth     int
}

// Stats counts the nodes of the tree.
func (m *MethodBlocks) Stats() Stats {
	st := Stats{Instructions: len(m.instrs)}
	Walk(m, func(n Node) bool {
		switch n := n.(type) {
		case *Block:
			st.Blocks++
			if d := Depth(n); d > st.MaxDepth {
				st.MaxDepth = d
			}
		case *TryBlock:
			st.Tries++
		case *TryHandlerBlock:
			st.Handlers++
		case *FilterHandlerBlock:
			st.Filters++
		}
		return true
	})
	return st
}

// Verify checks the structural invariants of the tree: children of every
// scope are contiguous and cover the scope exactly, parent links point at the
// owner, try regions and their handlers reference each other and are all in
// the tree, the flattened blocks reproduce the instruction list, and every
// edge points at a block of the tree.
func (m *MethodBlocks) Verify() error {
	if err := verifyScope(m); err != nil {
		return err
	}
	if err := verifyHandlers(m); err != nil {
		return err
	}

	blocks := m.Blocks()
	inTree := make(map[*Block]bool, len(blocks))
	pos := 0
	for _, b := range blocks {
		inTree[b] = true
		for _, in := range b.Instrs {
			if pos >= len(m.instrs) || m.instrs[pos] != in {
				return fmt.Errorf("%w: instruction %d out of place in block %d", ErrNonContiguousRegion, pos, b.ID)
			}
			pos++
		}
	}
	if pos != len(m.instrs) {
		return fmt.Errorf("%w: blocks cover %d of %d instructions", ErrNonContiguousRegion, pos, len(m.instrs))
	}
	for _, b := range blocks {
		for _, s := range b.Succs() {
			if !inTree[s] {
				return fmt.Errorf("%w: block %d edge to foreign block %d", ErrNonContiguousRegion, b.ID, s.ID)
			}
		}
		if b.raw != nil {
			return fmt.Errorf("%w: block %d has unresolved targets", ErrNonContiguousRegion, b.ID)
		}
	}
	return nil
}

func verifyScope(s Node) error {
	kids := Nodes(s)
	rng := s.Range()
	if len(kids) == 0 {
		if _, ok := s.(*Block); ok || rng.Len() == 0 {
			return nil
		}
		return fmt.Errorf("%w: empty %s %s", ErrNonContiguousRegion, KindOf(s), rng)
	}
	at := rng.Start
	for _, c := range kids {
		if c.Parent() != s.(Scope) {
			return fmt.Errorf("%w: %s %s has wrong parent", ErrNonContiguousRegion, KindOf(c), c.Range())
		}
		cr := c.Range()
		if cr.Start != at || cr.End <= cr.Start {
			return fmt.Errorf("%w: %s %s in %s %s, expected start %d",
				ErrNonContiguousRegion, KindOf(c), cr, KindOf(s), rng, at)
		}
		at = cr.End
		if err := verifyScope(c); err != nil {
			return err
		}
	}
	if at != rng.End {
		return fmt.Errorf("%w: children of %s %s end at %d", ErrNonContiguousRegion, KindOf(s), rng, at)
	}
	return nil
}

func verifyHandlers(m *MethodBlocks) error {
	inTree := make(map[Node]bool)
	Walk(m, func(n Node) bool {
		inTree[n] = true
		return true
	})

	var err error
	Walk(m, func(n Node) bool {
		if err != nil {
			return false
		}
		switch n := n.(type) {
		case *TryBlock:
			for _, h := range n.Handlers {
				if h.Try != n || !inTree[h] {
					err = fmt.Errorf("%w: try %s has a detached handler %s", ErrNonContiguousRegion, n.rng, h.rng)
					return false
				}
			}
		case *TryHandlerBlock:
			if n.Try == nil || !inTree[n.Try] || !slices.Contains(n.Try.Handlers, n) {
				err = fmt.Errorf("%w: %s handler %s has no try region", ErrNonContiguousRegion, n.Kind(), n.rng)
				return false
			}
		}
		return true
	})
	return err
}
