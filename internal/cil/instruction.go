package cil

import (
	"fmt"
	"strings"

	"ilflow/internal/blocks"
)

// Instruction is a decoded CIL instruction.
//
// Operand holds *Instruction for branches, []*Instruction for switch (nil
// entries for cases that could not be resolved), int64 / float64 for
// immediates, uint16 for variable indices and uint32 for metadata tokens.
type Instruction struct {
	Offset  uint32
	OpCode  *OpCode
	Operand any
}

// New returns an instruction for code with the given operand.
func New(code Code, operand any) *Instruction {
	return &Instruction{OpCode: OpCodeFor(code), Operand: operand}
}

// Size returns the encoded size of the instruction in bytes.
func (in *Instruction) Size() int {
	n := in.OpCode.Size() + in.OpCode.Operand.Size()
	if in.OpCode.Operand == OperandInlineSwitch {
		if targets, ok := in.Operand.([]*Instruction); ok {
			n += 4 * len(targets)
		}
	}
	return n
}

// Shape classifies the instruction for the block builder.
func (in *Instruction) Shape() blocks.Shape {
	op := in.OpCode
	switch {
	case op.Operand.IsBranch():
		if op.Flow == FlowCondBranch {
			return blocks.ShapeCondBranch
		}
		return blocks.ShapeBranch
	case op.Operand == OperandInlineSwitch:
		return blocks.ShapeSwitch
	}
	switch op.Code {
	case Endfilter, Endfinally, Jmp, Ret, Rethrow, Throw:
		return blocks.ShapeTerminator
	}
	return blocks.ShapeNext
}

// Targets returns the branch or switch targets.
func (in *Instruction) Targets() []blocks.Instruction {
	switch op := in.Operand.(type) {
	case *Instruction:
		if op == nil {
			return []blocks.Instruction{nil}
		}
		return []blocks.Instruction{op}
	case []*Instruction:
		out := make([]blocks.Instruction, len(op))
		for i, t := range op {
			out[i] = ref(t)
		}
		return out
	}
	if in.OpCode.Operand.IsBranch() {
		return []blocks.Instruction{nil}
	}
	return nil
}

// Callee returns the metadata token operand of call, callvirt, newobj,
// calli and jmp.
func (in *Instruction) Callee() (string, bool) {
	if in.OpCode.Flow != FlowCall {
		return "", false
	}
	tok, ok := in.Operand.(uint32)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("0x%08x", tok), true
}

// Label returns the IL_xxxx label of the instruction offset.
func (in *Instruction) Label() string {
	return label(in.Offset)
}

func label(off uint32) string { return fmt.Sprintf("IL_%04x", off) }

func (in *Instruction) String() string {
	var b strings.Builder
	b.WriteString(in.Label())
	b.WriteString(": ")
	b.WriteString(in.OpCode.Name)
	if s := in.operandString(); s != "" {
		b.WriteByte(' ')
		b.WriteString(s)
	}
	return b.String()
}

func (in *Instruction) operandString() string {
	switch op := in.Operand.(type) {
	case nil:
		if in.OpCode.Operand.IsBranch() {
			return "?"
		}
		return ""
	case *Instruction:
		if op == nil {
			return "?"
		}
		return op.Label()
	case []*Instruction:
		parts := make([]string, len(op))
		for i, t := range op {
			if t == nil {
				parts[i] = "?"
			} else {
				parts[i] = t.Label()
			}
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case uint32:
		switch in.OpCode.Operand {
		case OperandInlineField, OperandInlineMethod, OperandInlineSig,
			OperandInlineString, OperandInlineTok, OperandInlineType:
			return fmt.Sprintf("0x%08x", op)
		}
		return fmt.Sprintf("%d", op)
	default:
		return fmt.Sprintf("%v", op)
	}
}

// Adapt converts a slice of CIL instructions for the block builder.
func Adapt(instrs []*Instruction) []blocks.Instruction {
	out := make([]blocks.Instruction, len(instrs))
	for i, in := range instrs {
		out[i] = ref(in)
	}
	return out
}

// ref converts in to an interface value, keeping nil untyped.
func ref(in *Instruction) blocks.Instruction {
	if in == nil {
		return nil
	}
	return in
}
