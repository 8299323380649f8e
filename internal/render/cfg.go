package render

import (
	"fmt"
	"strings"

	"ilflow/internal/blocks"
)

// maxBlockLines caps the instruction lines shown per block node.
const maxBlockLines = 12

// TreeDOT renders a block tree as DOT. Each basic block is a node; every
// try, handler and filter scope is a nested cluster. Conditional edges use
// T/F colors, switch edges are labelled with their case number.
func TreeDOT(m *blocks.MethodBlocks, title string, t Theme) string {
	var b strings.Builder
	b.WriteString("digraph cfg {\n")
	b.WriteString("  rankdir=TB;\n")
	b.WriteString("  nodesep=0.3;\n")
	b.WriteString("  ranksep=0.4;\n")
	b.WriteString("  compound=true;\n")
	fmt.Fprintf(&b, "  bgcolor=%q;\n", t.Background)
	fmt.Fprintf(&b, "  node [shape=rect, style=filled, fillcolor=%q, color=%q, penwidth=0.5, fontname=\"Courier,monospace\", fontsize=8, fontcolor=%q, margin=\"0.08,0.04\"];\n",
		t.NodeFill, t.NodeBorder, t.TextColor)
	b.WriteString("  edge [penwidth=0.7, arrowsize=0.5, arrowhead=vee];\n")
	b.WriteString("  labelloc=t;\n  labeljust=l;\n")
	fmt.Fprintf(&b, "  label=<<font face=\"Helvetica Neue,Helvetica\" point-size=\"9\" color=\"%s\">%s</font>>;\n",
		t.TextColor, dotEscape(title))
	b.WriteByte('\n')

	d := &dotWriter{b: &b, t: t}
	for _, c := range blocks.Nodes(m) {
		d.node(c, 1)
	}
	b.WriteByte('\n')

	for _, blk := range m.Blocks() {
		from := blockID(blk)
		for i, s := range blk.Succs() {
			to := blockID(s)
			switch kind := edgeKind(blk, i); kind {
			case "T":
				fmt.Fprintf(&b, "  %s -> %s [color=%q, label=<<font point-size=\"7\" color=\"%s\">T</font>>];\n",
					from, to, t.EdgeTaken, t.EdgeTaken)
			case "F":
				fmt.Fprintf(&b, "  %s -> %s [color=%q, label=<<font point-size=\"7\" color=\"%s\">F</font>>];\n",
					from, to, t.EdgeFall, t.EdgeFall)
			case "":
				fmt.Fprintf(&b, "  %s -> %s [color=%q];\n", from, to, t.EdgeDirect)
			default:
				fmt.Fprintf(&b, "  %s -> %s [color=%q, label=<<font point-size=\"7\" color=\"%s\">%s</font>>];\n",
					from, to, t.EdgeSwitch, t.EdgeSwitch, kind)
			}
		}
	}

	b.WriteString("}\n")
	return b.String()
}

type dotWriter struct {
	b        *strings.Builder
	t        Theme
	clusters int
}

func (d *dotWriter) node(n blocks.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	blk, ok := n.(*blocks.Block)
	if ok {
		d.block(blk, indent)
		return
	}

	d.clusters++
	fmt.Fprintf(d.b, "%ssubgraph cluster_%d {\n", indent, d.clusters)
	fmt.Fprintf(d.b, "%s  style=\"filled,rounded\";\n", indent)
	fmt.Fprintf(d.b, "%s  fillcolor=%q;\n", indent, d.fill(n))
	fmt.Fprintf(d.b, "%s  color=%q;\n", indent, d.t.ClusterBorder)
	fmt.Fprintf(d.b, "%s  label=<<font point-size=\"8\" color=\"%s\">%s</font>>;\n",
		indent, d.t.ClusterLabel, dotEscape(ScopeLabel(n)))
	for _, c := range blocks.Nodes(n) {
		d.node(c, depth+1)
	}
	fmt.Fprintf(d.b, "%s}\n", indent)
}

func (d *dotWriter) fill(n blocks.Node) string {
	switch n := n.(type) {
	case *blocks.TryBlock:
		return d.t.TryFill
	case *blocks.FilterHandlerBlock:
		return d.t.FilterFill
	case *blocks.TryHandlerBlock:
		switch n.Kind() {
		case blocks.HandlerFinally, blocks.HandlerFault:
			return d.t.FinallyFill
		}
		return d.t.HandlerFill
	case *blocks.HandlerBlock:
		if th, ok := n.Parent().(*blocks.TryHandlerBlock); ok {
			return d.fill(th)
		}
		return d.t.HandlerFill
	}
	return d.t.Background
}

func (d *dotWriter) block(blk *blocks.Block, indent string) {
	lines := make([]string, 0, len(blk.Instrs)+1)
	lines = append(lines, dotEscape(fmt.Sprintf("B%d", blk.ID)))
	for _, in := range blk.Instrs {
		lines = append(lines, dotEscape(truncLabel(in.String(), 80)))
	}
	// Truncate long blocks, keeping the header.
	if len(lines) > maxBlockLines+1 {
		kept := append(lines[:6:6], fmt.Sprintf("... (%d more)", len(lines)-11))
		lines = append(kept, lines[len(lines)-5:]...)
	}
	label := strings.Join(lines, "<br align=\"left\"/>") + "<br align=\"left\"/>"

	attrs := ""
	if blk.ID == 0 {
		attrs = fmt.Sprintf(", penwidth=1.5, color=%q", d.t.EntryBorder)
	}
	if len(blk.Succs()) == 0 {
		attrs += fmt.Sprintf(", fillcolor=%q", d.t.TermFill)
	}
	fmt.Fprintf(d.b, "%s%s [label=<%s>%s];\n", indent, blockID(blk), label, attrs)
}
