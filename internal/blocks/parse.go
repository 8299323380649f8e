package blocks

// Parse builds the block tree of one method body.
//
// The algorithm:
//  1. Index the instructions by identity.
//  2. Register branch targets, the instruction after every control transfer
//     and every exception region boundary as block boundaries.
//  3. Partition the instructions into blocks at the boundaries.
//  4. Resolve branch operands into block edges and set fall-through edges.
//  5. Group exception handlers by try region, innermost first.
//  6. Carve each group into try, handler and filter scopes.
//  7. Collect the remaining top-level nodes under the root.
//
// Parse never returns a partial tree: on error the tree is nil.
func Parse(instrs []Instruction, handlers []ExceptionHandler) (*MethodBlocks, error) {
	idx, err := newInstrIndex(instrs)
	if err != nil {
		return nil, err
	}
	table, err := findBranchTargets(idx, handlers)
	if err != nil {
		return nil, err
	}
	blocks, starts, err := partition(idx, table)
	if err != nil {
		return nil, err
	}
	if err := resolveTargets(blocks, starts); err != nil {
		return nil, err
	}
	groups, err := sortRegions(idx, handlers)
	if err != nil {
		return nil, err
	}

	segs := &segments{list: make([]segment, 0, len(blocks))}
	for _, b := range blocks {
		if err := segs.add(b); err != nil {
			return nil, err
		}
	}
	if err := buildScopes(segs, groups); err != nil {
		return nil, err
	}
	return assemble(idx, segs, blocks), nil
}

// assemble moves the remaining segments under a new root and drops the
// working state left on the blocks.
func assemble(idx *instrIndex, segs *segments, blocks []*Block) *MethodBlocks {
	m := &MethodBlocks{instrs: idx.instrs}
	m.rng = Range{Start: 0, End: idx.len()}
	m.children = segs.nodes()
	for _, n := range m.children {
		n.setParent(m)
	}
	for _, b := range blocks {
		b.raw = nil
	}
	return m
}
