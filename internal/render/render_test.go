package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ilflow/internal/blocks"
	"ilflow/internal/cil"
)

func build(t *testing.T, body *cil.MethodBody) *blocks.MethodBlocks {
	t.Helper()
	body.UpdateOffsets()
	m, err := body.Blocks()
	require.NoError(t, err)
	return m
}

// condTree: ldc.i4.1; brtrue.s ret; nop; ret
func condTree(t *testing.T) *blocks.MethodBlocks {
	ret := cil.New(cil.Ret, nil)
	return build(t, &cil.MethodBody{Instructions: []*cil.Instruction{
		cil.New(cil.LdcI4_1, nil),
		cil.New(cil.BrtrueS, ret),
		cil.New(cil.Nop, nil),
		ret,
	}})
}

// catchTree: try { nop; leave } catch { pop; leave } ret
func catchTree(t *testing.T) *blocks.MethodBlocks {
	ret := cil.New(cil.Ret, nil)
	in := []*cil.Instruction{
		cil.New(cil.Nop, nil),
		cil.New(cil.LeaveS, ret),
		cil.New(cil.Pop, nil),
		cil.New(cil.LeaveS, ret),
		ret,
	}
	return build(t, &cil.MethodBody{
		Instructions: in,
		Clauses: []*cil.ExceptionClause{{
			Kind:         blocks.HandlerCatch,
			TryStart:     in[0],
			TryEnd:       in[2],
			HandlerStart: in[2],
			HandlerEnd:   in[4],
			CatchType:    0x01000001,
		}},
	})
}

func TestText_Conditional(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, condTree(t), Plain))
	want := `method [0,4)
  B0 [0,2) -> B2 B1
    IL_0000: ldc.i4.1
    IL_0001: brtrue.s IL_0004
  B1 [2,3) -> B2
    IL_0003: nop
  B2 [3,4)
    IL_0004: ret
`
	assert.Equal(t, want, buf.String())
}

func TestText_TryCatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, catchTree(t), Plain))
	want := `method [0,5)
  try [0,2)
    B0 [0,2) -> B2
      IL_0000: nop
      IL_0001: leave.s IL_0006
  catch 0x01000001 [2,4)
    handler [2,4)
      B1 [2,4) -> B2
        IL_0003: pop
        IL_0004: leave.s IL_0006
  B2 [4,5)
    IL_0006: ret
`
	assert.Equal(t, want, buf.String())
}

func TestText_Palette(t *testing.T) {
	p := Palette{Instr: func(s string) string { return "<" + s + ">" }}
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, condTree(t), p))
	assert.Contains(t, buf.String(), "    <IL_0003: nop>\n")
	assert.Contains(t, buf.String(), "  B1 [2,3) -> B2\n")
}

func TestTreeDOT_Edges(t *testing.T) {
	dot := TreeDOT(condTree(t), "cond", NASA)
	assert.True(t, strings.HasPrefix(dot, "digraph cfg {\n"))
	assert.Contains(t, dot, `bb0 -> bb2 [color="#0B3D91"`)
	assert.Contains(t, dot, `bb0 -> bb1 [color="#FC3D21"`)
	assert.Contains(t, dot, `bb1 -> bb2 [color="#424242"];`)
	assert.NotContains(t, dot, "subgraph")
	assert.Equal(t, dot, TreeDOT(condTree(t), "cond", NASA), "output must be deterministic")
}

func TestTreeDOT_Clusters(t *testing.T) {
	dot := TreeDOT(catchTree(t), "a < b", Mono)
	assert.Equal(t, 3, strings.Count(dot, "subgraph cluster_"))
	assert.Contains(t, dot, "try [0,2)")
	assert.Contains(t, dot, "catch 0x01000001 [2,4)")
	assert.Contains(t, dot, "a &lt; b")
	// try cluster opens before the body block node.
	assert.Less(t, strings.Index(dot, "subgraph cluster_1"), strings.Index(dot, "  bb0 [label="))
}

func TestTreeDOT_Switch(t *testing.T) {
	a := cil.New(cil.Ret, nil)
	b := cil.New(cil.Ret, nil)
	m := build(t, &cil.MethodBody{Instructions: []*cil.Instruction{
		cil.New(cil.Ldarg0, nil),
		cil.New(cil.Switch, []*cil.Instruction{b, nil, a}),
		a,
		b,
	}})
	dot := TreeDOT(m, "switch", NASA)
	assert.Contains(t, dot, ">case 0<")
	assert.Contains(t, dot, ">case 2<")
	assert.Contains(t, dot, `bb0 -> bb1 [color="#424242"];`)
}

func TestScopeLabel(t *testing.T) {
	m := catchTree(t)
	var labels []string
	blocks.Walk(m, func(n blocks.Node) bool {
		labels = append(labels, ScopeLabel(n))
		return true
	})
	assert.Equal(t, []string{
		"method [0,5)",
		"try [0,2)",
		"B0 [0,2)",
		"catch 0x01000001 [2,4)",
		"handler [2,4)",
		"B1 [2,4)",
		"B2 [4,5)",
	}, labels)
}

func TestWriteIndexHTML(t *testing.T) {
	rows := []IndexRow{
		{Name: "A::<Main>", Link: "a.dot", Stats: blocks.Stats{Blocks: 3, Tries: 1, Handlers: 1, MaxDepth: 1}},
		{Name: "B", Err: "blocks: region not found"},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteIndexHTML(&buf, "batch", rows))
	out := buf.String()
	assert.Contains(t, out, `<tr><td>Methods</td><td class="num">2</td></tr>`)
	assert.Contains(t, out, `<tr><td>Failed</td><td class="num">1</td></tr>`)
	assert.Contains(t, out, `<a href="a.dot">A::&lt;Main&gt;</a>`)
	assert.Contains(t, out, "blocks: region not found")
}
