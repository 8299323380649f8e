// Package cil models managed bytecode (ECMA-335 CIL) instructions and method
// bodies for the block builder.
package cil

import "fmt"

// Code identifies an opcode. One-byte opcodes are 0x00-0xE0; two-byte
// opcodes are 0xFE00 | second byte.
type Code uint16

// Prefix is the first byte of every two-byte opcode.
const Prefix byte = 0xFE

// OperandType describes the inline operand following an opcode.
type OperandType uint8

const (
	OperandNone OperandType = iota
	OperandShortInlineBrTarget
	OperandInlineBrTarget
	OperandShortInlineI
	OperandShortInlineVar
	OperandInlineVar
	OperandInlineI
	OperandInlineI8
	OperandShortInlineR
	OperandInlineR
	OperandInlineField
	OperandInlineMethod
	OperandInlineSig
	OperandInlineString
	OperandInlineTok
	OperandInlineType
	OperandInlineSwitch
)

// Size returns the encoded operand size in bytes. InlineSwitch returns the
// size of the case count only; each case adds 4 bytes.
func (t OperandType) Size() int {
	switch t {
	case OperandNone:
		return 0
	case OperandShortInlineBrTarget, OperandShortInlineI, OperandShortInlineVar:
		return 1
	case OperandInlineVar:
		return 2
	case OperandInlineI8, OperandInlineR:
		return 8
	default:
		return 4
	}
}

// IsBranch reports whether the operand is a single branch target.
func (t OperandType) IsBranch() bool {
	return t == OperandShortInlineBrTarget || t == OperandInlineBrTarget
}

// FlowControl is the ECMA-335 control flow category of an opcode.
type FlowControl uint8

const (
	FlowNext FlowControl = iota
	FlowBreak
	FlowCall
	FlowReturn
	FlowBranch
	FlowCondBranch
	FlowThrow
	FlowMeta
)

func (f FlowControl) String() string {
	switch f {
	case FlowNext:
		return "next"
	case FlowBreak:
		return "break"
	case FlowCall:
		return "call"
	case FlowReturn:
		return "return"
	case FlowBranch:
		return "branch"
	case FlowCondBranch:
		return "cond_branch"
	case FlowThrow:
		return "throw"
	case FlowMeta:
		return "meta"
	default:
		return "unknown"
	}
}

// OpCode describes one opcode.
type OpCode struct {
	Code    Code
	Name    string
	Operand OperandType
	Flow    FlowControl
}

// Size returns the encoded size of the opcode itself (1 or 2 bytes).
func (op *OpCode) Size() int {
	if op.Code > 0xFF {
		return 2
	}
	return 1
}

func (op *OpCode) String() string { return op.Name }

var (
	oneByte [0x100]*OpCode
	twoByte [0x100]*OpCode
)

func init() {
	for i := range opcodeTable {
		op := &opcodeTable[i]
		if op.Code > 0xFF {
			twoByte[op.Code&0xFF] = op
		} else {
			oneByte[op.Code] = op
		}
	}
}

// Lookup returns the one-byte opcode b, or nil if b is unassigned or is the
// two-byte prefix.
func Lookup(b byte) *OpCode {
	return oneByte[b]
}

// LookupPrefixed returns the two-byte opcode 0xFE b, or nil.
func LookupPrefixed(b byte) *OpCode {
	return twoByte[b]
}

// OpCodeFor returns the descriptor of code. It panics on unknown codes; use
// it with the package constants.
func OpCodeFor(code Code) *OpCode {
	var op *OpCode
	if code > 0xFF {
		if code>>8 == Code(Prefix) {
			op = twoByte[code&0xFF]
		}
	} else {
		op = oneByte[code]
	}
	if op == nil {
		panic(fmt.Sprintf("cil: unknown opcode 0x%x", uint16(code)))
	}
	return op
}
