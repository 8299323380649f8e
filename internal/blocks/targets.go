package blocks

import (
	"fmt"
	"sort"
)

// TargetTable maps an instruction index to the indices of the instructions
// that transfer control to it. Every index present in the table is a
// mandatory block boundary, even with no sources.
type TargetTable struct {
	sources map[int][]int
}

func newTargetTable() *TargetTable {
	return &TargetTable{sources: make(map[int][]int)}
}

// add registers source as a predecessor of target.
func (t *TargetTable) add(target, source int) {
	srcs := t.sources[target]
	for _, s := range srcs {
		if s == source {
			return
		}
	}
	t.sources[target] = append(srcs, source)
}

// mark registers target as a boundary without adding a source.
func (t *TargetTable) mark(target int) {
	if _, ok := t.sources[target]; !ok {
		t.sources[target] = nil
	}
}

// IsBoundary reports whether a block must start at index i.
func (t *TargetTable) IsBoundary(i int) bool {
	_, ok := t.sources[i]
	return ok
}

// Sources returns the source indices registered for target, in
// registration order.
func (t *TargetTable) Sources(target int) []int {
	return t.sources[target]
}

// Boundaries returns all boundary indices in ascending order.
func (t *TargetTable) Boundaries() []int {
	out := make([]int, 0, len(t.sources))
	for i := range t.sources {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Len returns the number of boundaries.
func (t *TargetTable) Len() int { return len(t.sources) }

// FindBranchTargets builds the target table for an instruction list and its
// exception handlers.
func FindBranchTargets(instrs []Instruction, handlers []ExceptionHandler) (*TargetTable, error) {
	idx, err := newInstrIndex(instrs)
	if err != nil {
		return nil, err
	}
	return findBranchTargets(idx, handlers)
}

func findBranchTargets(idx *instrIndex, handlers []ExceptionHandler) (*TargetTable, error) {
	t := newTargetTable()
	n := idx.len()

	for i, in := range idx.instrs {
		shape := in.Shape()
		if !shape.Transfers() {
			continue
		}
		targets, err := targetIndices(idx, in)
		if err != nil {
			return nil, fmt.Errorf("instruction %d: %w", i, err)
		}
		for _, ti := range targets {
			t.add(ti, i)
		}
		if i+1 < n {
			if shape.FallsThrough() {
				t.add(i+1, i)
			} else {
				t.mark(i + 1)
			}
		}
	}

	for hi := range handlers {
		eh := &handlers[hi]
		starts := []Instruction{eh.TryStart, eh.HandlerStart}
		if eh.FilterStart != nil {
			starts = append(starts, eh.FilterStart)
		}
		for _, in := range starts {
			i, err := idx.indexOf(in)
			if err != nil {
				return nil, fmt.Errorf("exception handler %d: %w", hi, err)
			}
			t.mark(i)
		}
		for _, in := range []Instruction{eh.TryEnd, eh.HandlerEnd} {
			i, err := idx.endIndexOf(in)
			if err != nil {
				return nil, fmt.Errorf("exception handler %d: %w", hi, err)
			}
			if i < n {
				t.mark(i)
			}
		}
	}
	return t, nil
}

// targetIndices resolves the explicit targets of a control transfer. Nil
// targets are skipped; a terminator has none.
func targetIndices(idx *instrIndex, in Instruction) ([]int, error) {
	switch in.Shape() {
	case ShapeBranch, ShapeCondBranch, ShapeSwitch:
	default:
		return nil, nil
	}
	var out []int
	for _, target := range in.Targets() {
		if target == nil {
			continue
		}
		ti, err := idx.indexOf(target)
		if err != nil {
			return nil, err
		}
		out = append(out, ti)
	}
	return out, nil
}
