package disasm

import (
	"fmt"

	"ilflow/internal/blocks"
)

// Op is a machine instruction lifted for the block builder.
type Op struct {
	Inst
	shape  blocks.Shape
	target *Op
	call   bool
	callee uint64 // BL target; 0 for BLR
	name   string // symbol of callee, if known
}

// Shape implements blocks.Instruction.
func (o *Op) Shape() blocks.Shape { return o.shape }

// Targets implements blocks.Instruction. A conditional branch leaving the
// function reports a nil target so only its fall-through edge remains.
func (o *Op) Targets() []blocks.Instruction {
	switch o.shape {
	case blocks.ShapeBranch, blocks.ShapeCondBranch:
		if o.target == nil {
			return []blocks.Instruction{nil}
		}
		return []blocks.Instruction{o.target}
	}
	return nil
}

// Target returns the in-function branch target, or nil.
func (o *Op) Target() *Op { return o.target }

// Callee returns the call target of BL (its symbol, else "sub_<addr>") and
// BLR ("blr").
func (o *Op) Callee() (string, bool) {
	switch {
	case !o.call:
		return "", false
	case o.callee == 0:
		return "blr", true
	case o.name != "":
		return o.name, true
	}
	return fmt.Sprintf("sub_%x", o.callee), true
}

func (o *Op) String() string {
	return fmt.Sprintf("0x%08x  %s", o.Addr, o.Text)
}

// Lift classifies every instruction of one function:
//   - RET and BR Xn end the block with no successors
//   - B to an address inside the function is an unconditional branch; B
//     leaving the function (tail call) is a terminator
//   - B.cond, CBZ/CBNZ and TBZ/TBNZ are conditional branches; the taken edge
//     is dropped when the target lies outside the function
//   - everything else, calls included, falls through
//
// The function spans insts[0].Addr up to the end of the last instruction.
// A nil lookup leaves callees unnamed.
func Lift(insts []Inst, lookup SymbolLookup) []*Op {
	ops := make([]*Op, len(insts))
	byAddr := make(map[uint64]*Op, len(insts))
	for i := range insts {
		ops[i] = &Op{Inst: insts[i], shape: blocks.ShapeNext}
		byAddr[insts[i].Addr] = ops[i]
	}

	for _, op := range ops {
		if target, ok := DecodeCall(op.Raw, op.Addr); ok {
			op.call, op.callee = true, target
			if lookup != nil && target != 0 {
				op.name, _ = lookup(target)
			}
			continue
		}
		bi := DecodeBranch(op.Raw, op.Addr)
		if bi == nil {
			continue
		}
		switch {
		case bi.IsRet, bi.Indirect:
			op.shape = blocks.ShapeTerminator
		case bi.Cond:
			op.shape = blocks.ShapeCondBranch
			op.target = byAddr[bi.Target]
		default:
			op.target = byAddr[bi.Target]
			op.shape = blocks.ShapeBranch
			if op.target == nil {
				op.shape = blocks.ShapeTerminator
			}
		}
	}
	return ops
}

// Instructions converts lifted ops for the block builder.
func Instructions(ops []*Op) []blocks.Instruction {
	out := make([]blocks.Instruction, len(ops))
	for i, op := range ops {
		out[i] = op
	}
	return out
}

// BuildBlocks lifts one function and partitions it into basic blocks.
// Machine code has no exception regions, so the tree is flat.
func BuildBlocks(insts []Inst, lookup SymbolLookup) (*blocks.MethodBlocks, error) {
	return blocks.Parse(Instructions(Lift(insts, lookup)), nil)
}
