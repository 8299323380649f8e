package cil

import (
	"fmt"

	"ilflow/internal/blocks"
)

// ExceptionClause is one entry of a method's exception handling table with
// offsets resolved to instructions. A nil end means the end of the method.
type ExceptionClause struct {
	Kind         blocks.HandlerKind
	TryStart     *Instruction
	TryEnd       *Instruction
	FilterStart  *Instruction
	HandlerStart *Instruction
	HandlerEnd   *Instruction
	CatchType    uint32
}

// Handler converts the clause for the block builder.
func (c *ExceptionClause) Handler() blocks.ExceptionHandler {
	return blocks.ExceptionHandler{
		Kind:         c.Kind,
		TryStart:     ref(c.TryStart),
		TryEnd:       ref(c.TryEnd),
		FilterStart:  ref(c.FilterStart),
		HandlerStart: ref(c.HandlerStart),
		HandlerEnd:   ref(c.HandlerEnd),
		CatchType:    c.CatchType,
	}
}

func (c *ExceptionClause) String() string {
	end := func(in *Instruction) string {
		if in == nil {
			return "end"
		}
		return in.Label()
	}
	s := fmt.Sprintf("%s try %s-%s", c.Kind, c.TryStart.Label(), end(c.TryEnd))
	if c.FilterStart != nil {
		s += " filter " + c.FilterStart.Label()
	}
	return s + fmt.Sprintf(" handler %s-%s", c.HandlerStart.Label(), end(c.HandlerEnd))
}

// MethodBody is a decoded method body.
type MethodBody struct {
	MaxStack       uint16
	CodeSize       uint32
	LocalVarSigTok uint32
	InitLocals     bool
	Instructions   []*Instruction
	Clauses        []*ExceptionClause
}

// Handlers converts the exception clauses for the block builder.
func (b *MethodBody) Handlers() []blocks.ExceptionHandler {
	out := make([]blocks.ExceptionHandler, len(b.Clauses))
	for i, c := range b.Clauses {
		out[i] = c.Handler()
	}
	return out
}

// Blocks builds the block tree of the body.
func (b *MethodBody) Blocks() (*blocks.MethodBlocks, error) {
	return blocks.Parse(Adapt(b.Instructions), b.Handlers())
}

// UpdateOffsets assigns sequential offsets from the encoded instruction
// sizes, starting at 0, and sets CodeSize.
func (b *MethodBody) UpdateOffsets() {
	var off uint32
	for _, in := range b.Instructions {
		in.Offset = off
		off += uint32(in.Size())
	}
	b.CodeSize = off
}
