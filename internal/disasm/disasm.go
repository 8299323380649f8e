// Package disasm decodes ARM64 function bodies and lifts them into the
// instruction model of the block builder, so native code is partitioned by
// the same algorithm as managed bytecode.
package disasm

import (
	"encoding/binary"
	"fmt"
	"strings"

	"golang.org/x/arch/arm64/arm64asm"
)

// Inst is a decoded ARM64 instruction with address and raw bytes.
type Inst struct {
	Addr     uint64
	Raw      uint32
	Size     int // always 4 for ARM64
	Mnemonic string
	Operands string
	Text     string // full disassembly line
}

// SymbolLookup resolves an address to a symbolic name. Returns ("", false) if unknown.
type SymbolLookup func(addr uint64) (name string, ok bool)

// Annotator returns an optional inline comment for an instruction.
// Empty string means no annotation.
type Annotator func(inst Inst) string

// Options controls disassembly behavior.
type Options struct {
	BaseAddr uint64 // VA of the first byte in data
	MaxSteps int    // maximum instructions to decode; 0 = 10M
}

const defaultMaxSteps = 10_000_000

func (o Options) effectiveMax() int {
	if o.MaxSteps > 0 {
		return o.MaxSteps
	}
	return defaultMaxSteps
}

// Disassemble decodes ARM64 instructions from a byte region.
// Returns decoded instructions up to MaxSteps or end of data; a trailing
// partial word is ignored.
func Disassemble(data []byte, opts Options) []Inst {
	n := len(data) / 4
	if limit := opts.effectiveMax(); n > limit {
		n = limit
	}

	result := make([]Inst, 0, n)
	for i := 0; i < n; i++ {
		off := i * 4
		result = append(result, decode(data[off:off+4], opts.BaseAddr+uint64(off)))
	}
	return result
}

// decode decodes one little-endian word. Undecodable words become .word
// pseudo-instructions.
func decode(word []byte, addr uint64) Inst {
	raw := binary.LittleEndian.Uint32(word)
	inst := Inst{Addr: addr, Raw: raw, Size: 4}

	dec, err := arm64asm.Decode(word)
	if err != nil {
		inst.Mnemonic = ".word"
		inst.Operands = fmt.Sprintf("0x%08x", raw)
		inst.Text = ".word " + inst.Operands
		return inst
	}
	inst.Text = dec.String()
	mnemonic, operands, _ := strings.Cut(inst.Text, " ")
	inst.Mnemonic = mnemonic
	inst.Operands = operands
	return inst
}

// DisasmOne decodes a single ARM64 instruction from its raw encoding.
// Returns the disassembly text, or "" if decoding fails.
func DisasmOne(raw uint32) string {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, raw)
	inst, err := arm64asm.Decode(buf)
	if err != nil {
		return ""
	}
	return inst.String()
}

// Format renders a slice of instructions as stable text output.
// Each line: <addr>  <hex bytes>  <disasm>  ; <comment>
// The symbol of the address wins; otherwise the first non-empty annotator
// result is used.
func Format(insts []Inst, lookup SymbolLookup, annotators ...Annotator) string {
	var b strings.Builder
	for _, inst := range insts {
		fmt.Fprintf(&b, "0x%08x  ", inst.Addr)
		fmt.Fprintf(&b, "%02x %02x %02x %02x  ",
			byte(inst.Raw), byte(inst.Raw>>8), byte(inst.Raw>>16), byte(inst.Raw>>24))
		b.WriteString(inst.Text)
		if comment := annotate(inst, lookup, annotators); comment != "" {
			b.WriteString("  ; ")
			b.WriteString(comment)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func annotate(inst Inst, lookup SymbolLookup, annotators []Annotator) string {
	if lookup != nil {
		if name, ok := lookup(inst.Addr); ok {
			return "<" + name + ">"
		}
	}
	for _, ann := range annotators {
		if s := ann(inst); s != "" {
			return s
		}
	}
	return ""
}

// MapLookup returns a SymbolLookup backed by a fixed address map.
func MapLookup(names map[uint64]string) SymbolLookup {
	return func(addr uint64) (string, bool) {
		name, ok := names[addr]
		return name, ok
	}
}

// CallAnnotator names the callee of BL instructions through lookup, falling
// back to sub_<addr>.
func CallAnnotator(lookup SymbolLookup) Annotator {
	return func(inst Inst) string {
		target, ok := DecodeCall(inst.Raw, inst.Addr)
		if !ok || target == 0 {
			return ""
		}
		if lookup != nil {
			if name, ok := lookup(target); ok {
				return "call " + name
			}
		}
		return fmt.Sprintf("call sub_%x", target)
	}
}
