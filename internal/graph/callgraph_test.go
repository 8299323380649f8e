package graph

import (
	"testing"

	"ilflow/internal/cil"
)

func method(t *testing.T, calls ...uint32) *cil.MethodBody {
	t.Helper()
	var in []*cil.Instruction
	for _, tok := range calls {
		in = append(in, cil.New(cil.Call, tok))
	}
	in = append(in, cil.New(cil.Ret, nil))
	body := &cil.MethodBody{Instructions: in}
	body.UpdateOffsets()
	return body
}

func TestCallGraph(t *testing.T) {
	var funcs []Func
	for _, m := range []struct {
		name  string
		calls []uint32
	}{
		{"0x06000001", []uint32{0x06000002, 0x06000003, 0x06000002}},
		{"0x06000002", []uint32{0x0a000010}},
		{"0x06000003", nil},
	} {
		tree, err := method(t, m.calls...).Blocks()
		if err != nil {
			t.Fatal(err)
		}
		funcs = append(funcs, Func{Name: m.name, Tree: tree})
	}
	funcs = append(funcs, Func{Name: "broken"})

	cg := CallGraph(funcs)
	if len(cg.Nodes) != 4 {
		t.Errorf("expected 4 nodes, got %d", len(cg.Nodes))
	}
	// Duplicate 0x06000001 → 0x06000002 edge is removed.
	if len(cg.Edges) != 3 {
		t.Errorf("expected 3 edges, got %+v", cg.Edges)
	}

	if CallGraphDOT(funcs, "calls") == "" {
		t.Error("expected non-empty DOT output")
	}
}
