package blocks

import "fmt"

// partition cuts the instruction list into basic blocks. A block starts at
// index 0 and at every boundary of the table. The returned map resolves a
// block start index to its block.
func partition(idx *instrIndex, table *TargetTable) ([]*Block, map[int]*Block, error) {
	var blocks []*Block
	starts := make(map[int]*Block)

	var cur *Block
	for i, in := range idx.instrs {
		if cur == nil || table.IsBoundary(i) {
			if cur != nil {
				cur.rng.End = i
			}
			cur = &Block{ID: len(blocks), rng: Range{Start: i}}
			blocks = append(blocks, cur)
			starts[i] = cur
		}
		cur.Instrs = append(cur.Instrs, in)
	}
	if cur != nil {
		cur.rng.End = idx.len()
	}

	for _, b := range blocks {
		raw, err := targetIndices(idx, b.LastInstr())
		if err != nil {
			return nil, nil, fmt.Errorf("block %d: %w", b.ID, err)
		}
		b.raw = raw
	}
	return blocks, starts, nil
}

// resolveTargets rewrites each block's raw target indices into block edges
// and sets the fall-through successor.
func resolveTargets(blocks []*Block, starts map[int]*Block) error {
	for i, b := range blocks {
		for _, ti := range b.raw {
			target, ok := starts[ti]
			if !ok {
				// Every target index is registered as a boundary, so this
				// means the table and the partition disagree.
				return fmt.Errorf("%w: block %d targets index %d inside a block", ErrNonContiguousRegion, b.ID, ti)
			}
			b.Targets = append(b.Targets, target)
		}
		if b.LastInstr().Shape().FallsThrough() && i+1 < len(blocks) {
			b.FallThrough = blocks[i+1]
		}
	}
	return nil
}
