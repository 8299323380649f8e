package render

import (
	"bufio"
	"io"
	"strings"

	"ilflow/internal/blocks"
)

// Palette colours the parts of a text rendering. Nil funcs leave text as is.
type Palette struct {
	Scope func(string) string // try / handler / filter headers
	Block func(string) string // block headers
	Instr func(string) string // instruction lines
	Edge  func(string) string // successor lists
}

// Plain renders without colour.
var Plain = Palette{}

func paint(f func(string) string, s string) string {
	if f == nil {
		return s
	}
	return f(s)
}

// Text writes an indented rendering of the tree:
//
//	method [0,5)
//	  B0 [0,2) -> B2 B1
//	    IL_0000: ldc.i4.1
//	    IL_0001: brtrue.s IL_0004
//	  ...
func Text(w io.Writer, m *blocks.MethodBlocks, p Palette) error {
	bw := bufio.NewWriter(w)
	var walk func(n blocks.Node, depth int)
	walk = func(n blocks.Node, depth int) {
		indent := strings.Repeat("  ", depth)
		switch n := n.(type) {
		case *blocks.Block:
			bw.WriteString(indent)
			bw.WriteString(paint(p.Block, ScopeLabel(n)))
			if s := succNames(n); s != "" {
				bw.WriteString(" ")
				bw.WriteString(paint(p.Edge, "-> "+s))
			}
			bw.WriteByte('\n')
			for _, in := range n.Instrs {
				bw.WriteString(indent)
				bw.WriteString("  ")
				bw.WriteString(paint(p.Instr, in.String()))
				bw.WriteByte('\n')
			}
			return
		}
		bw.WriteString(indent)
		bw.WriteString(paint(p.Scope, ScopeLabel(n)))
		bw.WriteByte('\n')
		for _, c := range blocks.Nodes(n) {
			walk(c, depth+1)
		}
	}
	walk(m, 0)
	return bw.Flush()
}
