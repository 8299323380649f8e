package blocks

import "errors"

// Parse failures. All of them are fatal for the method being parsed; callers
// branch on them with errors.Is.
var (
	// ErrUnindexedInstruction: an operand or handler boundary references an
	// instruction that is not part of the method body.
	ErrUnindexedInstruction = errors.New("blocks: instruction not in method body")

	// ErrDuplicateInstruction: the same instruction appears twice in the input.
	ErrDuplicateInstruction = errors.New("blocks: duplicate instruction")

	// ErrInconsistentTryRegion: handlers sharing a try region disagree on its end.
	// Handlers are grouped by the identity of both try boundary instructions,
	// so every member of a group resolves to the same range and Parse never
	// returns this today. The check in sortRegions only guards the grouping
	// key against future changes.
	ErrInconsistentTryRegion = errors.New("blocks: inconsistent try region")

	// ErrNonContiguousRegion: segments or scopes are not contiguous.
	ErrNonContiguousRegion = errors.New("blocks: non-contiguous region")

	// ErrRegionNotFound: a region boundary does not coincide with a segment
	// boundary (overlapping or misplaced exception regions).
	ErrRegionNotFound = errors.New("blocks: region not found")

	// ErrInvalidRange: a region ends before it starts.
	ErrInvalidRange = errors.New("blocks: invalid range")
)
