package disasm

import (
	"testing"

	"ilflow/internal/blocks"
)

// makeInst creates a synthetic Inst at the given address with raw encoding.
func makeInst(addr uint64, raw uint32) Inst {
	return Inst{Addr: addr, Raw: raw, Size: 4}
}

const (
	nop = 0xD503201F
	ret = 0xD65F03C0
)

func TestBuildBlocks_Linear(t *testing.T) {
	// Three instructions, no branches → one block.
	insts := []Inst{
		makeInst(0x1000, nop),
		makeInst(0x1004, nop),
		makeInst(0x1008, ret),
	}
	m, err := BuildBlocks(insts, nil)
	if err != nil {
		t.Fatal(err)
	}
	bs := m.Blocks()
	if len(bs) != 1 {
		t.Fatalf("blocks = %d, want 1", len(bs))
	}
	if r := bs[0].Range(); r.Start != 0 || r.End != 3 {
		t.Errorf("block range = %s, want [0,3)", r)
	}
	if len(bs[0].Succs()) != 0 {
		t.Errorf("succs = %d, want 0", len(bs[0].Succs()))
	}
}

func TestBuildBlocks_ConditionalBranch(t *testing.T) {
	//   0x1000: B.EQ #0x10  → target 0x1010
	//   0x1004: NOP          (fallthrough)
	//   0x1008: RET
	//   0x100C: NOP          (dead code after RET)
	//   0x1010: RET          (branch target)
	beq := uint32(0x54000000 | (4 << 5))
	insts := []Inst{
		makeInst(0x1000, beq),
		makeInst(0x1004, nop),
		makeInst(0x1008, ret),
		makeInst(0x100C, nop),
		makeInst(0x1010, ret),
	}
	m, err := BuildBlocks(insts, nil)
	if err != nil {
		t.Fatal(err)
	}
	bs := m.Blocks()
	if len(bs) != 4 {
		t.Fatalf("blocks = %d, want 4", len(bs))
	}

	b0 := bs[0]
	if len(b0.Targets) != 1 || b0.Targets[0] != bs[3] {
		t.Errorf("block 0 taken edge = %v, want block 3", b0.Targets)
	}
	if b0.FallThrough != bs[1] {
		t.Errorf("block 0 fall-through = %v, want block 1", b0.FallThrough)
	}
	if len(bs[1].Succs()) != 0 {
		t.Error("block 1 should be terminal (RET)")
	}
	// Dead NOP falls through into the branch target.
	if bs[2].FallThrough != bs[3] {
		t.Errorf("block 2 fall-through = %v, want block 3", bs[2].FallThrough)
	}
}

func TestBuildBlocks_UnconditionalBranch(t *testing.T) {
	//   0x2000: B #0x8     → target 0x2008
	//   0x2004: NOP         (dead code)
	//   0x2008: RET         (branch target)
	b := uint32(0x14000000 | 2)
	insts := []Inst{
		makeInst(0x2000, b),
		makeInst(0x2004, nop),
		makeInst(0x2008, ret),
	}
	m, err := BuildBlocks(insts, nil)
	if err != nil {
		t.Fatal(err)
	}
	bs := m.Blocks()
	if len(bs) != 3 {
		t.Fatalf("blocks = %d, want 3", len(bs))
	}
	succs := bs[0].Succs()
	if len(succs) != 1 || succs[0] != bs[2] {
		t.Errorf("block 0 succs = %v, want [block 2]", succs)
	}
	if bs[0].FallThrough != nil {
		t.Error("unconditional branch must not fall through")
	}
}

func TestLift_LeavingFunction(t *testing.T) {
	//   0x3000: CBZ X0, #0x100  → outside, only fall-through remains
	//   0x3004: BL  #0x40       → call, falls through
	//   0x3008: B   #0x200      → tail call, terminator
	//   0x300C: BR  X16         → terminator
	cbz := uint32(0xB4000000 | (0x40 << 5))
	insts := []Inst{
		makeInst(0x3000, cbz),
		makeInst(0x3004, 0x94000010),
		makeInst(0x3008, 0x14000080),
		makeInst(0x300C, 0xD61F0200),
	}
	ops := Lift(insts, nil)
	want := []blocks.Shape{
		blocks.ShapeCondBranch,
		blocks.ShapeNext,
		blocks.ShapeTerminator,
		blocks.ShapeTerminator,
	}
	for i, op := range ops {
		if op.Shape() != want[i] {
			t.Errorf("op %d shape = %s, want %s", i, op.Shape(), want[i])
		}
	}
	if tg := ops[0].Targets(); len(tg) != 1 || tg[0] != nil {
		t.Errorf("CBZ out of function targets = %v, want [nil]", tg)
	}
	if callee, ok := ops[1].Callee(); !ok || callee != "sub_3044" {
		t.Errorf("BL callee = %q %v, want sub_3044", callee, ok)
	}

	m, err := BuildBlocks(insts, nil)
	if err != nil {
		t.Fatal(err)
	}
	bs := m.Blocks()
	// Boundaries: after CBZ (fall-through), after B, after BR (none).
	if len(bs) != 3 {
		t.Fatalf("blocks = %d, want 3", len(bs))
	}
	if len(bs[0].Targets) != 0 || bs[0].FallThrough != bs[1] {
		t.Errorf("block 0: targets=%v fall-through=%v", bs[0].Targets, bs[0].FallThrough)
	}
	if len(bs[1].Succs()) != 0 {
		t.Errorf("block 1 ends in a tail call, succs = %v", bs[1].Succs())
	}
}

func TestBuildBlocks_Empty(t *testing.T) {
	m, err := BuildBlocks(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(m.Blocks()); n != 0 {
		t.Errorf("blocks = %d, want 0", n)
	}
}

func TestLift_NamedCallee(t *testing.T) {
	insts := []Inst{
		makeInst(0x4000, 0x94000010), // BL 0x4040
		makeInst(0x4004, 0xD63F0200), // BLR X16
		makeInst(0x4008, 0xD65F03C0), // RET
	}
	ops := Lift(insts, MapLookup(map[uint64]string{0x4040: "memcpy"}))
	if callee, ok := ops[0].Callee(); !ok || callee != "memcpy" {
		t.Errorf("BL callee = %q %v, want memcpy", callee, ok)
	}
	if callee, ok := ops[1].Callee(); !ok || callee != "blr" {
		t.Errorf("BLR callee = %q %v, want blr", callee, ok)
	}
	if _, ok := ops[2].Callee(); ok {
		t.Error("RET is not a call")
	}
}
