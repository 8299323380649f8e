package disasm

// ARM64 control transfer detection from raw 32-bit encodings.
// These identify basic-block terminators, branch targets and call sites.

// BranchInfo describes a decoded branch instruction.
type BranchInfo struct {
	Target   uint64 // absolute target address (0 if RET or BR)
	Cond     bool   // true if conditional (has fallthrough)
	IsRet    bool   // true if RET
	Indirect bool   // true if BR Xn (target in register)
}

// DecodeBranch attempts to decode a branch instruction from raw encoding at the given PC.
// Returns nil if the instruction is not a branch/ret. BL and BLR are calls, not branches.
func DecodeBranch(raw uint32, pc uint64) *BranchInfo {
	// RET (0xD65F03C0 exactly, or RET Xn = 0xD65F0000 | Rn<<5)
	if raw&0xFFFFFC1F == 0xD65F0000 {
		return &BranchInfo{IsRet: true}
	}

	// BR Xn: 1101011 0000 11111 000000 Rn 00000
	if raw&0xFFFFFC1F == 0xD61F0000 {
		return &BranchInfo{Indirect: true}
	}

	// B (unconditional): 000101 imm26
	if raw&0xFC000000 == 0x14000000 {
		return &BranchInfo{Target: relTarget(pc, raw&0x03FFFFFF, 26)}
	}

	// B.cond: 01010100 imm19 0 cond
	if raw&0xFF000010 == 0x54000000 {
		return &BranchInfo{Target: relTarget(pc, (raw>>5)&0x7FFFF, 19), Cond: true}
	}

	// CBZ / CBNZ: 0 sf 11010 op imm19 Rt
	if raw&0x7E000000 == 0x34000000 {
		return &BranchInfo{Target: relTarget(pc, (raw>>5)&0x7FFFF, 19), Cond: true}
	}

	// TBZ / TBNZ: b5 11011 op b40 imm14 Rt
	if raw&0x7E000000 == 0x36000000 {
		return &BranchInfo{Target: relTarget(pc, (raw>>5)&0x3FFF, 14), Cond: true}
	}

	return nil
}

// DecodeCall reports whether raw is BL or BLR. For BL, target is the
// absolute callee address; for BLR it is 0.
func DecodeCall(raw uint32, pc uint64) (target uint64, ok bool) {
	// BL: 100101 imm26
	if raw&0xFC000000 == 0x94000000 {
		return relTarget(pc, raw&0x03FFFFFF, 26), true
	}
	// BLR Xn
	if raw&0xFFFFFC1F == 0xD63F0000 {
		return 0, true
	}
	return 0, false
}

// relTarget computes pc + signExtend(imm)*4.
func relTarget(pc uint64, imm uint32, bits int) uint64 {
	offset := signExtend(imm, bits) * 4
	return uint64(int64(pc) + int64(offset))
}

// signExtend sign-extends a value from the given bit width to int32.
func signExtend(val uint32, bits int) int32 {
	sign := uint32(1) << (bits - 1)
	mask := sign - 1
	if val&sign != 0 {
		return int32(val | ^mask) // negative
	}
	return int32(val & mask)
}

// IsBranchTerminator returns true if the instruction terminates a basic block.
// This includes all branches (B, B.cond, CBZ, CBNZ, TBZ, TBNZ, RET, BR) but NOT BL/BLR
// (calls return to the next instruction).
func IsBranchTerminator(raw uint32) bool {
	return DecodeBranch(raw, 0) != nil
}
