// Package render produces text and Graphviz DOT views of block trees.
package render

import (
	"fmt"
	"strings"

	"ilflow/internal/blocks"
)

// dotEscape escapes a string for use in DOT HTML labels.
func dotEscape(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	return s
}

// truncLabel shortens a label to maxLen, appending "..." if truncated.
func truncLabel(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// blockID is the DOT node name of a block.
func blockID(b *blocks.Block) string {
	return fmt.Sprintf("bb%d", b.ID)
}

// ScopeLabel describes a tree node in one line, e.g. "try [2,4)" or
// "catch 0x01000001 [4,6)".
func ScopeLabel(n blocks.Node) string {
	switch n := n.(type) {
	case *blocks.Block:
		return fmt.Sprintf("B%d %s", n.ID, n.Range())
	case *blocks.TryHandlerBlock:
		if n.Kind() == blocks.HandlerCatch {
			return fmt.Sprintf("catch 0x%08x %s", n.Spec.CatchType, n.Range())
		}
		return fmt.Sprintf("%s %s", n.Kind(), n.Range())
	case *blocks.TryBlock:
		return "try " + n.Range().String()
	case *blocks.FilterHandlerBlock:
		return "filter " + n.Range().String()
	case *blocks.HandlerBlock:
		return "handler " + n.Range().String()
	default:
		return fmt.Sprintf("%s %s", blocks.KindOf(n), n.Range())
	}
}

// edgeKind classifies the i-th successor edge of b as returned by Succs.
func edgeKind(b *blocks.Block, i int) string {
	last := b.LastInstr()
	if last == nil {
		return ""
	}
	shape := last.Shape()
	if i >= len(b.Targets) {
		if shape == blocks.ShapeCondBranch {
			return "F"
		}
		return ""
	}
	switch shape {
	case blocks.ShapeCondBranch:
		return "T"
	case blocks.ShapeSwitch:
		return fmt.Sprintf("case %d", caseIndex(b, i))
	}
	return ""
}

// caseIndex maps the i-th resolved switch edge back to its case number.
// Nil switch targets are skipped during resolution.
func caseIndex(b *blocks.Block, i int) int {
	n := -1
	for c, t := range b.LastInstr().Targets() {
		if t != nil {
			n++
		}
		if n == i {
			return c
		}
	}
	return i
}

// succNames renders the successor list of a block, e.g. "B3 B1".
func succNames(b *blocks.Block) string {
	succs := b.Succs()
	if len(succs) == 0 {
		return ""
	}
	names := make([]string, len(succs))
	for i, s := range succs {
		names[i] = fmt.Sprintf("B%d", s.ID)
	}
	return strings.Join(names, " ")
}
