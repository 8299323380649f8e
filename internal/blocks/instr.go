// Package blocks rebuilds basic blocks and nested exception-handling scopes
// from a linear instruction stream.
//
// The input is an ordered instruction list plus exception handler
// descriptors. Parse partitions the instructions into basic blocks at every
// branch target and exception boundary, resolves branch operands into block
// edges, then carves try, filter and handler regions (innermost first) into a
// tree of scopes rooted at MethodBlocks.
//
// The package is front-end agnostic: anything implementing Instruction can be
// partitioned. internal/cil provides managed bytecode, internal/disasm
// provides ARM64 machine code.
package blocks

// Shape classifies how an instruction transfers control.
type Shape uint8

const (
	ShapeNext       Shape = iota // falls through, no explicit target
	ShapeBranch                  // one target, never falls through (br, leave)
	ShapeCondBranch              // one target, falls through when not taken
	ShapeSwitch                  // target table, falls through on default
	ShapeTerminator              // no successors (ret, throw, rethrow, endfilter, endfinally, jmp)
)

func (s Shape) String() string {
	switch s {
	case ShapeNext:
		return "next"
	case ShapeBranch:
		return "branch"
	case ShapeCondBranch:
		return "cond_branch"
	case ShapeSwitch:
		return "switch"
	case ShapeTerminator:
		return "terminator"
	default:
		return "unknown"
	}
}

// FallsThrough reports whether control can reach the following instruction.
func (s Shape) FallsThrough() bool {
	return s == ShapeNext || s == ShapeCondBranch || s == ShapeSwitch
}

// Transfers reports whether the instruction ends a basic block.
func (s Shape) Transfers() bool {
	return s != ShapeNext
}

// Instruction is the view of an instruction the block builder needs.
//
// Instructions are compared by identity, so implementations must be pointer
// types. Targets returns one element for ShapeBranch and ShapeCondBranch and
// the case table for ShapeSwitch; entries may be nil (unresolved or absent
// cases) and are skipped.
type Instruction interface {
	Shape() Shape
	Targets() []Instruction
	String() string
}

// HandlerKind is the kind of an exception handling clause.
type HandlerKind uint8

const (
	HandlerCatch HandlerKind = iota
	HandlerFilter
	HandlerFinally
	HandlerFault
)

func (k HandlerKind) String() string {
	switch k {
	case HandlerCatch:
		return "catch"
	case HandlerFilter:
		return "filter"
	case HandlerFinally:
		return "finally"
	case HandlerFault:
		return "fault"
	default:
		return "unknown"
	}
}

// ExceptionHandler describes one protected region and its handler.
//
// End instructions are exclusive; a nil TryEnd or HandlerEnd means the end of
// the method. FilterStart is nil unless the handler has a filter, in which
// case the filter runs from FilterStart up to HandlerStart.
type ExceptionHandler struct {
	Kind         HandlerKind
	TryStart     Instruction
	TryEnd       Instruction
	FilterStart  Instruction
	HandlerStart Instruction
	HandlerEnd   Instruction
	CatchType    uint32 // metadata token of the caught type (catch only)
}
