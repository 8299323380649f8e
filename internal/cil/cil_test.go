package cil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ilflow/internal/blocks"
)

func TestLookup(t *testing.T) {
	op := Lookup(0x2d)
	require.NotNil(t, op)
	assert.Equal(t, "brtrue.s", op.Name)
	assert.Equal(t, 1, op.Size())

	assert.Nil(t, Lookup(0xa6), "unassigned")
	assert.Nil(t, Lookup(Prefix), "prefix is not an opcode")

	op = LookupPrefixed(0x11)
	require.NotNil(t, op)
	assert.Equal(t, Endfilter, op.Code)
	assert.Equal(t, 2, op.Size())
	assert.Nil(t, LookupPrefixed(0xff))
}

func TestOpCodeFor(t *testing.T) {
	assert.Equal(t, "ldarg", OpCodeFor(Ldarg).Name)
	assert.Equal(t, "ret", OpCodeFor(Ret).String())
	assert.Panics(t, func() { OpCodeFor(Code(0xa6)) })
	assert.Panics(t, func() { OpCodeFor(Code(0x1211)) })
}

func TestOpCodeTable_Unique(t *testing.T) {
	seen := make(map[Code]bool)
	for _, op := range opcodeTable {
		assert.False(t, seen[op.Code], "duplicate %s", op.Name)
		seen[op.Code] = true
		if op.Code > 0xFF {
			assert.Equal(t, Code(Prefix), op.Code>>8, op.Name)
		}
	}
}

func TestShape(t *testing.T) {
	ret := New(Ret, nil)
	tests := []struct {
		in   *Instruction
		want blocks.Shape
	}{
		{New(Nop, nil), blocks.ShapeNext},
		{New(Call, uint32(0x0a000001)), blocks.ShapeNext},
		{New(BrS, ret), blocks.ShapeBranch},
		{New(Br, ret), blocks.ShapeBranch},
		{New(LeaveS, ret), blocks.ShapeBranch},
		{New(BrtrueS, ret), blocks.ShapeCondBranch},
		{New(Beq, ret), blocks.ShapeCondBranch},
		{New(Switch, []*Instruction{ret}), blocks.ShapeSwitch},
		{ret, blocks.ShapeTerminator},
		{New(Throw, nil), blocks.ShapeTerminator},
		{New(Rethrow, nil), blocks.ShapeTerminator},
		{New(Endfilter, nil), blocks.ShapeTerminator},
		{New(Endfinally, nil), blocks.ShapeTerminator},
		{New(Jmp, uint32(0x06000001)), blocks.ShapeTerminator},
		{New(Readonly, nil), blocks.ShapeNext},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.in.Shape(), tt.in.OpCode.Name)
	}
}

func TestTargets(t *testing.T) {
	a := New(Ret, nil)
	b := New(Ret, nil)

	assert.Equal(t, []blocks.Instruction{a}, New(BrS, a).Targets())
	assert.Equal(t, []blocks.Instruction{nil}, New(BrS, nil).Targets(), "unresolved branch")
	assert.Equal(t, []blocks.Instruction{b, nil, a}, New(Switch, []*Instruction{b, nil, a}).Targets())
	assert.Empty(t, New(Switch, []*Instruction{}).Targets())
	assert.Nil(t, New(Nop, nil).Targets())

	// A typed nil must not leak into the interface.
	tgt := New(Switch, []*Instruction{nil}).Targets()
	assert.True(t, tgt[0] == nil)
}

func TestSizeAndOffsets(t *testing.T) {
	ret := New(Ret, nil)
	body := &MethodBody{Instructions: []*Instruction{
		New(Ldarg0, nil),                      // 1
		New(Switch, []*Instruction{ret, ret}), // 1 + 4 + 8
		New(LdcI4, int64(7)),                  // 5
		New(LdcR8, 1.5),                       // 9
		New(Ldloc, uint16(3)),                 // 2 + 2
		New(Unaligned, int64(1)),              // 2 + 1
		ret,                                   // 1
	}}
	body.UpdateOffsets()

	var offsets []uint32
	for _, in := range body.Instructions {
		offsets = append(offsets, in.Offset)
	}
	assert.Equal(t, []uint32{0, 1, 14, 19, 28, 32, 35}, offsets)
	assert.Equal(t, uint32(36), body.CodeSize)
}

func TestString(t *testing.T) {
	ret := New(Ret, nil)
	body := &MethodBody{Instructions: []*Instruction{
		New(BrtrueS, ret),
		New(Switch, []*Instruction{ret, nil}),
		New(Ldstr, uint32(0x70000001)),
		New(LdcI4S, int64(-2)),
		New(BrS, nil),
		ret,
	}}
	body.UpdateOffsets()

	want := []string{
		"IL_0000: brtrue.s IL_0018",
		"IL_0002: switch (IL_0018, ?)",
		"IL_000f: ldstr 0x70000001",
		"IL_0014: ldc.i4.s -2",
		"IL_0016: br.s ?",
		"IL_0018: ret",
	}
	for i, in := range body.Instructions {
		assert.Equal(t, want[i], in.String())
	}
}

func TestCallee(t *testing.T) {
	callee, ok := New(Callvirt, uint32(0x0a00002b)).Callee()
	assert.True(t, ok)
	assert.Equal(t, "0x0a00002b", callee)

	_, ok = New(Ldstr, uint32(0x70000001)).Callee()
	assert.False(t, ok)
	_, ok = New(Call, nil).Callee()
	assert.False(t, ok)
}

func TestMethodBody_Blocks(t *testing.T) {
	ret := New(Ret, nil)
	in := []*Instruction{
		New(Nop, nil),
		New(LeaveS, ret),
		New(Endfinally, nil),
		ret,
	}
	body := &MethodBody{
		Instructions: in,
		Clauses: []*ExceptionClause{{
			Kind: blocks.HandlerFinally, TryStart: in[0], TryEnd: in[2], HandlerStart: in[2], HandlerEnd: in[3],
		}},
	}
	body.UpdateOffsets()
	assert.Equal(t, "finally try IL_0000-IL_0003 handler IL_0003-IL_0004", body.Clauses[0].String())

	h := body.Handlers()
	require.Len(t, h, 1)
	assert.Nil(t, h[0].FilterStart, "absent filter stays untyped nil")

	m, err := body.Blocks()
	require.NoError(t, err)
	assert.Equal(t, blocks.Stats{Instructions: 4, Blocks: 3, Tries: 1, Handlers: 1, MaxDepth: 1}, m.Stats())
}
