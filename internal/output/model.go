package output

import (
	"ilflow/internal/blocks"
	"ilflow/internal/render"
)

// Method is the JSON document of one parsed method.
type Method struct {
	Name  string   `json:"name"`
	Stats Stats    `json:"stats"`
	Root  Node     `json:"root"`
	Diags []string `json:"diags,omitempty"`
}

// Stats mirrors blocks.Stats.
type Stats struct {
	Instructions int `json:"instructions"`
	Blocks       int `json:"blocks"`
	Tries        int `json:"tries"`
	Handlers     int `json:"handlers"`
	Filters      int `json:"filters"`
	MaxDepth     int `json:"max_depth"`
}

// Node is one tree node. Exactly one of Block, Try and Handler is set for
// the corresponding kinds.
type Node struct {
	Kind     string   `json:"kind"`
	Label    string   `json:"label"`
	Start    int      `json:"start"`
	End      int      `json:"end"`
	Block    *Block   `json:"block,omitempty"`
	Try      *Try     `json:"try,omitempty"`
	Handler  *Handler `json:"handler,omitempty"`
	Children []Node   `json:"children,omitempty"`
}

// Block carries the instructions and edges of a basic block.
type Block struct {
	ID          int      `json:"id"`
	Instrs      []string `json:"instrs"`
	Targets     []int    `json:"targets,omitempty"`
	FallThrough *int     `json:"fall_through,omitempty"`
}

// Span is a half-open instruction index range.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Try lists the handler scopes of a try, in clause order. The handlers are
// siblings in the tree, not children.
type Try struct {
	Handlers []Span `json:"handlers"`
}

// Handler describes a try handler scope and the try range it protects.
type Handler struct {
	Kind      string `json:"kind"`
	CatchType uint32 `json:"catch_type,omitempty"`
	Try       Span   `json:"try"`
}

func span(r blocks.Range) Span { return Span{Start: r.Start, End: r.End} }

// FromTree builds the JSON document of a block tree.
func FromTree(name string, m *blocks.MethodBlocks, diags []string) Method {
	st := m.Stats()
	return Method{
		Name: name,
		Stats: Stats{
			Instructions: st.Instructions,
			Blocks:       st.Blocks,
			Tries:        st.Tries,
			Handlers:     st.Handlers,
			Filters:      st.Filters,
			MaxDepth:     st.MaxDepth,
		},
		Root:  fromNode(m),
		Diags: diags,
	}
}

func fromNode(n blocks.Node) Node {
	r := n.Range()
	out := Node{
		Kind:  blocks.KindOf(n),
		Label: render.ScopeLabel(n),
		Start: r.Start,
		End:   r.End,
	}
	switch n := n.(type) {
	case *blocks.Block:
		b := &Block{ID: n.ID}
		for _, in := range n.Instrs {
			b.Instrs = append(b.Instrs, in.String())
		}
		for _, t := range n.Targets {
			b.Targets = append(b.Targets, t.ID)
		}
		if n.FallThrough != nil {
			id := n.FallThrough.ID
			b.FallThrough = &id
		}
		out.Block = b
	case *blocks.TryBlock:
		t := &Try{Handlers: make([]Span, 0, len(n.Handlers))}
		for _, h := range n.Handlers {
			t.Handlers = append(t.Handlers, span(h.Range()))
		}
		out.Try = t
	case *blocks.TryHandlerBlock:
		h := &Handler{Kind: n.Kind().String(), CatchType: n.Spec.CatchType}
		if n.Try != nil {
			h.Try = span(n.Try.Range())
		}
		out.Handler = h
	}
	for _, c := range blocks.Nodes(n) {
		out.Children = append(out.Children, fromNode(c))
	}
	return out
}
