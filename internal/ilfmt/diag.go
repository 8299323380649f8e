// Package ilfmt decodes CIL method bodies: header, instruction stream and
// exception handling sections.
package ilfmt

import "fmt"

// DiagKind classifies a diagnostic message.
type DiagKind string

const (
	DiagTruncated     DiagKind = "truncated"
	DiagInvalidOpcode DiagKind = "invalid_opcode"
	DiagBadTarget     DiagKind = "bad_target"
	DiagBadClause     DiagKind = "bad_clause"
	DiagUnknownSect   DiagKind = "unknown_section"
	DiagClamped       DiagKind = "clamped"
)

// Diag records a non-fatal issue encountered during decoding.
type Diag struct {
	Offset uint32   `json:"offset"`
	Kind   DiagKind `json:"kind"`
	Msg    string   `json:"msg"`
}

func (d Diag) String() string {
	return fmt.Sprintf("[%s] IL_%04x: %s", d.Kind, d.Offset, d.Msg)
}

// Diags accumulates diagnostics.
type Diags struct {
	items []Diag
}

func (d *Diags) Add(offset uint32, kind DiagKind, msg string) {
	d.items = append(d.items, Diag{Offset: offset, Kind: kind, Msg: msg})
}

func (d *Diags) Addf(offset uint32, kind DiagKind, format string, args ...any) {
	d.items = append(d.items, Diag{Offset: offset, Kind: kind, Msg: fmt.Sprintf(format, args...)})
}

func (d *Diags) Items() []Diag { return d.items }
func (d *Diags) Len() int      { return len(d.items) }

// Strings renders every diagnostic.
func (d *Diags) Strings() []string {
	out := make([]string, len(d.items))
	for i, it := range d.items {
		out[i] = it.String()
	}
	return out
}

// Mode controls error handling behavior.
type Mode int

const (
	ModeStrict     Mode = iota // first structural error returns error
	ModeBestEffort             // drop what cannot be decoded, accumulate diags
)

func (m Mode) String() string {
	if m == ModeStrict {
		return "strict"
	}
	return "best-effort"
}

// Options controls decoding behavior.
type Options struct {
	Mode            Mode
	MaxInstructions int // decode cap; 0 = use default
}

// DefaultMaxInstructions is the default decode cap.
const DefaultMaxInstructions = 1_000_000

func (o Options) EffectiveMaxInstructions() int {
	if o.MaxInstructions > 0 {
		return o.MaxInstructions
	}
	return DefaultMaxInstructions
}
