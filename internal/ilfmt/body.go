package ilfmt

import (
	"errors"
	"fmt"

	"ilflow/internal/blocks"
	"ilflow/internal/cil"
)

var (
	ErrBadHeader = errors.New("ilfmt: bad method header")
	ErrBadOpcode = errors.New("ilfmt: invalid opcode")
	ErrBadTarget = errors.New("ilfmt: offset is not an instruction start")
	ErrBadClause = errors.New("ilfmt: bad exception clause")
	ErrTooLarge  = errors.New("ilfmt: instruction limit exceeded")
)

// Method header and section encoding (ECMA-335 II.25.4).
const (
	headerFormatMask = 0x3
	headerTiny       = 0x2
	headerFat        = 0x3

	fatFlagMoreSects  = 0x08
	fatFlagInitLocals = 0x10
	fatHeaderDwords   = 3
	tinyMaxStack      = 8

	sectEHTable    = 0x01
	sectOptILTable = 0x02
	sectFatFormat  = 0x40
	sectMoreSects  = 0x80

	smallClauseSize = 12
	fatClauseSize   = 24
)

// Exception clause flags.
const (
	clauseException = 0x0
	clauseFilter    = 0x1
	clauseFinally   = 0x2
	clauseFault     = 0x4
)

// ReadMethodBody decodes a method body starting with its header.
// In best-effort mode, undecodable parts are dropped and reported in the
// returned diagnostics; in strict mode the first problem is an error.
func ReadMethodBody(data []byte, opts Options) (*cil.MethodBody, *Diags, error) {
	d := &decoder{opts: opts, diags: &Diags{}}
	body, err := d.read(NewStream(data))
	if err != nil {
		return nil, d.diags, err
	}
	return body, d.diags, nil
}

type decoder struct {
	opts  Options
	diags *Diags
	body  *cil.MethodBody
	at    map[uint32]*cil.Instruction
}

// fail reports a problem: an error in strict mode, a diagnostic otherwise.
func (d *decoder) fail(off uint32, kind DiagKind, err error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if d.opts.Mode == ModeStrict {
		return fmt.Errorf("%w: IL_%04x: %s", err, off, msg)
	}
	d.diags.Add(off, kind, msg)
	return nil
}

func (d *decoder) read(s *Stream) (*cil.MethodBody, error) {
	body := &cil.MethodBody{}
	d.body = body

	moreSects, err := d.readHeader(s, body)
	if err != nil {
		return nil, err
	}

	size := int(body.CodeSize)
	if size > s.Remaining() {
		if err := d.fail(0, DiagTruncated, ErrBadHeader, "code size %d exceeds %d available bytes", size, s.Remaining()); err != nil {
			return nil, err
		}
		size = s.Remaining()
		body.CodeSize = uint32(size)
		moreSects = false
	}
	code, err := s.Sub(size)
	if err != nil {
		return nil, fmt.Errorf("%w: code: %v", ErrBadHeader, err)
	}
	if err := d.readCode(code); err != nil {
		return nil, err
	}
	if moreSects {
		if err := d.readSections(s); err != nil {
			return nil, err
		}
	}
	return body, nil
}

func (d *decoder) readHeader(s *Stream, body *cil.MethodBody) (bool, error) {
	first, err := s.ReadByte()
	if err != nil {
		return false, fmt.Errorf("%w: empty body", ErrBadHeader)
	}
	switch first & headerFormatMask {
	case headerTiny:
		body.MaxStack = tinyMaxStack
		body.CodeSize = uint32(first >> 2)
		return false, nil
	case headerFat:
		s.SetPosition(s.Position() - 1)
		flags, err := s.ReadUint16()
		if err != nil {
			return false, fmt.Errorf("%w: fat header: %v", ErrBadHeader, err)
		}
		dwords := int(flags >> 12)
		if dwords < fatHeaderDwords {
			return false, fmt.Errorf("%w: fat header size %d", ErrBadHeader, dwords)
		}
		if body.MaxStack, err = s.ReadUint16(); err != nil {
			return false, fmt.Errorf("%w: fat header: %v", ErrBadHeader, err)
		}
		if body.CodeSize, err = s.ReadUint32(); err != nil {
			return false, fmt.Errorf("%w: fat header: %v", ErrBadHeader, err)
		}
		if body.LocalVarSigTok, err = s.ReadUint32(); err != nil {
			return false, fmt.Errorf("%w: fat header: %v", ErrBadHeader, err)
		}
		if err := s.Skip((dwords - fatHeaderDwords) * 4); err != nil {
			return false, fmt.Errorf("%w: fat header: %v", ErrBadHeader, err)
		}
		body.InitLocals = flags&fatFlagInitLocals != 0
		return flags&fatFlagMoreSects != 0, nil
	default:
		return false, fmt.Errorf("%w: format 0x%x", ErrBadHeader, first&headerFormatMask)
	}
}

// pending is a branch whose target offsets are resolved after decoding.
type pending struct {
	in      *cil.Instruction
	offsets []int64
}

func (d *decoder) readCode(s *Stream) error {
	maxInstrs := d.opts.EffectiveMaxInstructions()
	var branches []pending
	d.at = make(map[uint32]*cil.Instruction)

	for s.Remaining() > 0 {
		off := uint32(s.Position())
		if len(d.body.Instructions) >= maxInstrs {
			if err := d.fail(off, DiagClamped, ErrTooLarge, "stopped after %d instructions", maxInstrs); err != nil {
				return err
			}
			break
		}
		op, err := readOpCode(s)
		if err != nil {
			if err := d.fail(off, DiagInvalidOpcode, ErrBadOpcode, "%v", err); err != nil {
				return err
			}
			break
		}
		in := &cil.Instruction{Offset: off, OpCode: op}
		targets, err := readOperand(s, in)
		if err != nil {
			if err := d.fail(off, DiagTruncated, ErrBadOpcode, "%s operand: %v", op.Name, err); err != nil {
				return err
			}
			break
		}
		if targets != nil {
			branches = append(branches, pending{in: in, offsets: targets})
		}
		d.body.Instructions = append(d.body.Instructions, in)
		d.at[off] = in
	}

	for _, p := range branches {
		resolved := make([]*cil.Instruction, len(p.offsets))
		for i, target := range p.offsets {
			t, ok := d.instrAt(target)
			if !ok {
				if err := d.fail(p.in.Offset, DiagBadTarget, ErrBadTarget, "%s target 0x%x", p.in.OpCode.Name, target); err != nil {
					return err
				}
			}
			resolved[i] = t
		}
		if p.in.OpCode.Operand == cil.OperandInlineSwitch {
			p.in.Operand = resolved
		} else {
			p.in.Operand = resolved[0]
		}
	}
	return nil
}

func (d *decoder) instrAt(off int64) (*cil.Instruction, bool) {
	if off < 0 || off > int64(^uint32(0)) {
		return nil, false
	}
	in, ok := d.at[uint32(off)]
	return in, ok
}

func readOpCode(s *Stream) (*cil.OpCode, error) {
	b, err := s.ReadByte()
	if err != nil {
		return nil, err
	}
	if b == cil.Prefix {
		b2, err := s.ReadByte()
		if err != nil {
			return nil, err
		}
		if op := cil.LookupPrefixed(b2); op != nil {
			return op, nil
		}
		return nil, fmt.Errorf("unknown opcode 0xfe 0x%02x", b2)
	}
	if op := cil.Lookup(b); op != nil {
		return op, nil
	}
	return nil, fmt.Errorf("unknown opcode 0x%02x", b)
}

// readOperand decodes the inline operand of in. Branch and switch operands
// are returned as absolute target offsets for later resolution.
func readOperand(s *Stream, in *cil.Instruction) ([]int64, error) {
	switch in.OpCode.Operand {
	case cil.OperandNone:
		return nil, nil
	case cil.OperandShortInlineBrTarget:
		rel, err := s.ReadInt8()
		if err != nil {
			return nil, err
		}
		return []int64{int64(s.Position()) + int64(rel)}, nil
	case cil.OperandInlineBrTarget:
		rel, err := s.ReadInt32()
		if err != nil {
			return nil, err
		}
		return []int64{int64(s.Position()) + int64(rel)}, nil
	case cil.OperandInlineSwitch:
		n, err := s.ReadUint32()
		if err != nil {
			return nil, err
		}
		if int64(n)*4 > int64(s.Remaining()) {
			return nil, ErrStreamEOF
		}
		rels := make([]int32, n)
		for i := range rels {
			if rels[i], err = s.ReadInt32(); err != nil {
				return nil, err
			}
		}
		next := int64(s.Position())
		out := make([]int64, n)
		for i, rel := range rels {
			out[i] = next + int64(rel)
		}
		if n == 0 {
			in.Operand = []*cil.Instruction{}
			return nil, nil
		}
		return out, nil
	case cil.OperandShortInlineI:
		v, err := s.ReadInt8()
		in.Operand = int64(v)
		return nil, err
	case cil.OperandShortInlineVar:
		v, err := s.ReadUint8()
		in.Operand = uint16(v)
		return nil, err
	case cil.OperandInlineVar:
		v, err := s.ReadUint16()
		in.Operand = v
		return nil, err
	case cil.OperandInlineI:
		v, err := s.ReadInt32()
		in.Operand = int64(v)
		return nil, err
	case cil.OperandInlineI8:
		v, err := s.ReadInt64()
		in.Operand = v
		return nil, err
	case cil.OperandShortInlineR:
		v, err := s.ReadFloat32()
		in.Operand = float64(v)
		return nil, err
	case cil.OperandInlineR:
		v, err := s.ReadFloat64()
		in.Operand = v
		return nil, err
	default:
		v, err := s.ReadUint32()
		in.Operand = v
		return nil, err
	}
}

func (d *decoder) readSections(s *Stream) error {
	for {
		s.Align(4)
		off := d.body.CodeSize
		kind, err := s.ReadByte()
		if err != nil {
			return d.fail(off, DiagTruncated, ErrBadClause, "missing data section")
		}
		fat := kind&sectFatFormat != 0
		var size int
		if fat {
			v, err := s.ReadUint24()
			if err != nil {
				return d.fail(off, DiagTruncated, ErrBadClause, "section header: %v", err)
			}
			size = int(v)
		} else {
			v, err := s.ReadByte()
			if err == nil {
				err = s.Skip(2)
			}
			if err != nil {
				return d.fail(off, DiagTruncated, ErrBadClause, "section header: %v", err)
			}
			size = int(v)
		}
		if size < 4 {
			return d.fail(off, DiagBadClause, ErrBadClause, "section size %d", size)
		}
		sect, err := s.Sub(size - 4)
		if err != nil {
			return d.fail(off, DiagTruncated, ErrBadClause, "section of %d bytes: %v", size, err)
		}

		if kind&sectEHTable != 0 {
			if err := d.readClauses(sect, fat); err != nil {
				return err
			}
		} else {
			d.diags.Addf(off, DiagUnknownSect, "skipped section kind 0x%02x", kind)
		}
		if kind&sectMoreSects == 0 {
			return nil
		}
	}
}

type rawClause struct {
	flags                  uint32
	tryOff, tryLen         uint32
	handlerOff, handlerLen uint32
	token                  uint32
}

func (d *decoder) readClauses(s *Stream, fat bool) error {
	clauseSize := smallClauseSize
	if fat {
		clauseSize = fatClauseSize
	}
	for s.Remaining() >= clauseSize {
		var rc rawClause
		var err error
		if fat {
			rc, err = readFatClause(s)
		} else {
			rc, err = readSmallClause(s)
		}
		if err != nil {
			return d.fail(d.body.CodeSize, DiagTruncated, ErrBadClause, "%v", err)
		}
		c, err := d.resolveClause(rc)
		if err != nil {
			if err := d.fail(rc.tryOff, DiagBadClause, ErrBadClause, "%v", err); err != nil {
				return err
			}
			continue
		}
		d.body.Clauses = append(d.body.Clauses, c)
	}
	return nil
}

func readSmallClause(s *Stream) (rawClause, error) {
	var rc rawClause
	var v16 uint16
	var v8 uint8
	var err error
	if v16, err = s.ReadUint16(); err != nil {
		return rc, err
	}
	rc.flags = uint32(v16)
	if v16, err = s.ReadUint16(); err != nil {
		return rc, err
	}
	rc.tryOff = uint32(v16)
	if v8, err = s.ReadUint8(); err != nil {
		return rc, err
	}
	rc.tryLen = uint32(v8)
	if v16, err = s.ReadUint16(); err != nil {
		return rc, err
	}
	rc.handlerOff = uint32(v16)
	if v8, err = s.ReadUint8(); err != nil {
		return rc, err
	}
	rc.handlerLen = uint32(v8)
	rc.token, err = s.ReadUint32()
	return rc, err
}

func readFatClause(s *Stream) (rawClause, error) {
	var rc rawClause
	for _, p := range []*uint32{&rc.flags, &rc.tryOff, &rc.tryLen, &rc.handlerOff, &rc.handlerLen, &rc.token} {
		v, err := s.ReadUint32()
		if err != nil {
			return rc, err
		}
		*p = v
	}
	return rc, nil
}

func (d *decoder) resolveClause(rc rawClause) (*cil.ExceptionClause, error) {
	c := &cil.ExceptionClause{}
	switch rc.flags {
	case clauseException:
		c.Kind = blocks.HandlerCatch
		c.CatchType = rc.token
	case clauseFilter:
		c.Kind = blocks.HandlerFilter
	case clauseFinally:
		c.Kind = blocks.HandlerFinally
	case clauseFault:
		c.Kind = blocks.HandlerFault
	default:
		return nil, fmt.Errorf("clause flags 0x%x", rc.flags)
	}

	var err error
	if c.TryStart, err = d.start(rc.tryOff); err != nil {
		return nil, fmt.Errorf("try start: %w", err)
	}
	if c.TryEnd, err = d.end(uint64(rc.tryOff) + uint64(rc.tryLen)); err != nil {
		return nil, fmt.Errorf("try end: %w", err)
	}
	if c.HandlerStart, err = d.start(rc.handlerOff); err != nil {
		return nil, fmt.Errorf("handler start: %w", err)
	}
	if c.HandlerEnd, err = d.end(uint64(rc.handlerOff) + uint64(rc.handlerLen)); err != nil {
		return nil, fmt.Errorf("handler end: %w", err)
	}
	if c.Kind == blocks.HandlerFilter {
		if c.FilterStart, err = d.start(rc.token); err != nil {
			return nil, fmt.Errorf("filter start: %w", err)
		}
	}
	return c, nil
}

func (d *decoder) start(off uint32) (*cil.Instruction, error) {
	in, ok := d.at[off]
	if !ok {
		return nil, fmt.Errorf("0x%x is not an instruction start", off)
	}
	return in, nil
}

// end resolves an exclusive end offset; the code size maps to nil.
func (d *decoder) end(off uint64) (*cil.Instruction, error) {
	if off == uint64(d.body.CodeSize) {
		return nil, nil
	}
	if off > uint64(d.body.CodeSize) {
		return nil, fmt.Errorf("0x%x is past the end of code", off)
	}
	return d.start(uint32(off))
}
