package blocks

import "fmt"

// instrIndex maps instruction identity to position.
type instrIndex struct {
	instrs []Instruction
	pos    map[Instruction]int
}

func newInstrIndex(instrs []Instruction) (*instrIndex, error) {
	x := &instrIndex{
		instrs: instrs,
		pos:    make(map[Instruction]int, len(instrs)),
	}
	for i, in := range instrs {
		if in == nil {
			return nil, fmt.Errorf("%w: nil instruction at %d", ErrUnindexedInstruction, i)
		}
		if prev, ok := x.pos[in]; ok {
			return nil, fmt.Errorf("%w: %s at %d and %d", ErrDuplicateInstruction, in, prev, i)
		}
		x.pos[in] = i
	}
	return x, nil
}

func (x *instrIndex) len() int { return len(x.instrs) }

// indexOf returns the position of in.
func (x *instrIndex) indexOf(in Instruction) (int, error) {
	if in == nil {
		return -1, fmt.Errorf("%w: nil reference", ErrUnindexedInstruction)
	}
	i, ok := x.pos[in]
	if !ok {
		return -1, fmt.Errorf("%w: %s", ErrUnindexedInstruction, in)
	}
	return i, nil
}

// endIndexOf is indexOf for exclusive ends: nil means end of method.
func (x *instrIndex) endIndexOf(in Instruction) (int, error) {
	if in == nil {
		return len(x.instrs), nil
	}
	return x.indexOf(in)
}
