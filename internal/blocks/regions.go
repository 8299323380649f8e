package blocks

import (
	"fmt"
	"sort"
)

// region is an exception handler with its boundaries resolved to indices.
type region struct {
	spec    ExceptionHandler
	filter  int // -1 when the handler has no filter
	handler Range
}

// span returns the filter plus handler range.
func (r region) span() Range {
	if r.filter >= 0 {
		return Range{Start: r.filter, End: r.handler.End}
	}
	return r.handler
}

// regionGroup is the set of handlers protecting one try range.
type regionGroup struct {
	try      Range
	handlers []region
}

type tryKey struct {
	start Instruction
	end   Instruction
}

// sortRegions groups handlers sharing a try region and orders the groups
// innermost first: try start descending, then try end ascending.
func sortRegions(idx *instrIndex, handlers []ExceptionHandler) ([]regionGroup, error) {
	var groups []*regionGroup
	byKey := make(map[tryKey]*regionGroup)

	for hi, eh := range handlers {
		try, err := resolveRange(idx, eh.TryStart, eh.TryEnd)
		if err != nil {
			return nil, fmt.Errorf("exception handler %d: try: %w", hi, err)
		}
		r, err := resolveRegion(idx, eh)
		if err != nil {
			return nil, fmt.Errorf("exception handler %d: %w", hi, err)
		}

		key := tryKey{start: eh.TryStart, end: eh.TryEnd}
		g, ok := byKey[key]
		if !ok {
			g = &regionGroup{try: try}
			byKey[key] = g
			groups = append(groups, g)
		} else if g.try != try {
			return nil, fmt.Errorf("%w: handler %d ends try at %d, group ends at %d",
				ErrInconsistentTryRegion, hi, try.End, g.try.End)
		}
		g.handlers = append(g.handlers, r)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i].try, groups[j].try
		if a.Start != b.Start {
			return a.Start > b.Start
		}
		return a.End < b.End
	})

	out := make([]regionGroup, len(groups))
	for i, g := range groups {
		out[i] = *g
	}
	return out, nil
}

func resolveRegion(idx *instrIndex, eh ExceptionHandler) (region, error) {
	h, err := resolveRange(idx, eh.HandlerStart, eh.HandlerEnd)
	if err != nil {
		return region{}, fmt.Errorf("handler: %w", err)
	}
	r := region{spec: eh, filter: -1, handler: h}
	if eh.FilterStart != nil {
		f, err := idx.indexOf(eh.FilterStart)
		if err != nil {
			return region{}, fmt.Errorf("filter: %w", err)
		}
		if f >= h.Start {
			return region{}, fmt.Errorf("%w: filter %d does not precede handler %d", ErrInvalidRange, f, h.Start)
		}
		r.filter = f
	}
	return r, nil
}

func resolveRange(idx *instrIndex, start, end Instruction) (Range, error) {
	s, err := idx.indexOf(start)
	if err != nil {
		return Range{}, err
	}
	e, err := idx.endIndexOf(end)
	if err != nil {
		return Range{}, err
	}
	if e <= s {
		return Range{}, fmt.Errorf("%w: %s", ErrInvalidRange, Range{Start: s, End: e})
	}
	return Range{Start: s, End: e}, nil
}
