package blocks

import "fmt"

// Range is a half-open range of instruction indices [Start, End).
type Range struct {
	Start int
	End   int
}

// Len returns the number of instructions in the range.
func (r Range) Len() int { return r.End - r.Start }

// Contains reports whether index i lies in the range.
func (r Range) Contains(i int) bool { return i >= r.Start && i < r.End }

// Overlaps reports whether the two ranges share an index.
func (r Range) Overlaps(o Range) bool { return r.Start < o.End && o.Start < r.End }

func (r Range) String() string { return fmt.Sprintf("[%d,%d)", r.Start, r.End) }

// Node is an element of the block tree: a *Block or one of the scope types.
type Node interface {
	// Range returns the instruction indices covered by the node.
	Range() Range
	// Parent returns the enclosing scope. It is a back-reference; parents own
	// their children, never the reverse.
	Parent() Scope

	setParent(Scope)
	isNode()
}

// Scope is a node owning a contiguous sequence of child nodes.
type Scope interface {
	Node
	Children() []Node
}

// Block is a basic block: a maximal instruction run with one entry and one
// logical exit.
type Block struct {
	ID     int
	rng    Range
	Instrs []Instruction

	// Targets are the explicit branch successors in operand order.
	Targets []*Block
	// FallThrough is the next block when the last instruction falls through.
	FallThrough *Block

	parent Scope
	raw    []int // unresolved target indices, dropped by Parse
}

func (b *Block) Range() Range { return b.rng }
func (b *Block) Parent() Scope { return b.parent }
func (b *Block) setParent(s Scope) { b.parent = s }
func (b *Block) isNode() {}
func (b *Block) String() string { return fmt.Sprintf("block %d %s", b.ID, b.rng) }
func (b *Block) FirstInstr() Instruction { return b.Instrs[0] }
func (b *Block) LastInstr() Instruction { return b.Instrs[len(b.Instrs)-1] }

// Succs returns the explicit targets followed by the fall-through block.
func (b *Block) Succs() []*Block {
	out := make([]*Block, 0, len(b.Targets)+1)
	out = append(out, b.Targets...)
	if b.FallThrough != nil {
		out = append(out, b.FallThrough)
	}
	return out
}

// scope holds the fields shared by every scope type.
type scope struct {
	rng      Range
	parent   Scope
	children []Node
}

func (s *scope) Range() Range { return s.rng }
func (s *scope) Parent() Scope { return s.parent }
func (s *scope) Children() []Node { return s.children }
func (s *scope) setParent(p Scope) { s.parent = p }
func (s *scope) isNode() {}

// TryBlock is a protected region. Its children are the protected blocks and
// scopes. Handlers lists the region's handler scopes in clause order; they are
// laid out on their own and owned by whatever scope encloses them, which need
// not be the scope owning the TryBlock.
type TryBlock struct {
	scope
	Handlers []*TryHandlerBlock
}

// TryHandlerBlock covers one handler: its optional filter plus the handler
// body. Its children are exactly Filter (when present) and Handler.
type TryHandlerBlock struct {
	scope
	Filter  *FilterHandlerBlock
	Handler *HandlerBlock
	Spec    ExceptionHandler

	// Try is the region the handler protects. Like Parent it is a
	// back-reference.
	Try *TryBlock
}

// Kind returns the clause kind of the handler.
func (t *TryHandlerBlock) Kind() HandlerKind { return t.Spec.Kind }

// FilterHandlerBlock is the filter expression of a filtered handler.
type FilterHandlerBlock struct {
	scope
}

// HandlerBlock is a handler body.
type HandlerBlock struct {
	scope
}

// MethodBlocks is the root of the tree: the top-level blocks and scopes not
// enclosed by any try region.
type MethodBlocks struct {
	scope
	instrs []Instruction
}

// Instructions returns the instruction list the tree was built from.
func (m *MethodBlocks) Instructions() []Instruction { return m.instrs }

// KindOf returns a short lowercase name for the node's type.
func KindOf(n Node) string {
	switch n.(type) {
	case *Block:
		return "block"
	case *TryBlock:
		return "try"
	case *TryHandlerBlock:
		return "try_handler"
	case *FilterHandlerBlock:
		return "filter"
	case *HandlerBlock:
		return "handler"
	case *MethodBlocks:
		return "method"
	default:
		return "unknown"
	}
}
