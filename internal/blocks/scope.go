package blocks

import (
	"fmt"
	"sort"
)

// segment binds a contiguous index range to the node currently covering it.
type segment struct {
	rng  Range
	node Node
}

// segments is the ordered, contiguous list of top-level nodes while scopes
// are being carved.
type segments struct {
	list []segment
}

// add appends a node. Its range must start where the last segment ends.
func (s *segments) add(n Node) error {
	rng := n.Range()
	want := 0
	if len(s.list) > 0 {
		want = s.list[len(s.list)-1].rng.End
	}
	if rng.Start != want || rng.End <= rng.Start {
		return fmt.Errorf("%w: %s %s after %d", ErrNonContiguousRegion, KindOf(n), rng, want)
	}
	s.list = append(s.list, segment{rng: rng, node: n})
	return nil
}

// nodes returns the segment nodes in order.
func (s *segments) nodes() []Node {
	out := make([]Node, len(s.list))
	for i, seg := range s.list {
		out[i] = seg.node
	}
	return out
}

// collapse replaces the segments spanning [start, end) with one segment owned
// by n and returns the nodes it covered.
func (s *segments) collapse(start, end int, n Node) ([]Node, error) {
	if end <= start {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRange, Range{Start: start, End: end})
	}
	first := sort.Search(len(s.list), func(i int) bool { return s.list[i].rng.Start >= start })
	if first == len(s.list) || s.list[first].rng.Start != start {
		return nil, fmt.Errorf("%w: no segment starts at %d", ErrRegionNotFound, start)
	}
	last := sort.Search(len(s.list), func(i int) bool { return s.list[i].rng.End >= end })
	if last == len(s.list) || s.list[last].rng.End != end {
		return nil, fmt.Errorf("%w: no segment ends at %d", ErrRegionNotFound, end)
	}

	covered := make([]Node, 0, last-first+1)
	for _, seg := range s.list[first : last+1] {
		covered = append(covered, seg.node)
	}

	rest := s.list[last+1:]
	s.list = append(s.list[:first:first], segment{rng: Range{Start: start, End: end}, node: n})
	s.list = append(s.list, rest...)
	return covered, nil
}

// replace carves [start, end) into sc: the covered nodes become its children.
func (s *segments) replace(start, end int, sc Scope) ([]Node, error) {
	covered, err := s.collapse(start, end, sc)
	if err != nil {
		return nil, err
	}
	for _, n := range covered {
		n.setParent(sc)
	}
	return covered, nil
}

// buildScopes carves every region group, innermost first, into the segment
// list.
func buildScopes(segs *segments, groups []regionGroup) error {
	for _, g := range groups {
		if err := buildTry(segs, g); err != nil {
			return fmt.Errorf("try %s: %w", g.try, err)
		}
	}
	return nil
}

// buildTry carves the try body and then each handler. The handler scopes stay
// separate segments wherever they sit in the method; an enclosing region
// later takes the try and its handlers as independent children.
func buildTry(segs *segments, g regionGroup) error {
	tb := &TryBlock{}
	tb.rng = g.try
	body, err := segs.replace(g.try.Start, g.try.End, tb)
	if err != nil {
		return err
	}
	tb.children = body

	for _, r := range g.handlers {
		span := r.span()
		if span.Overlaps(g.try) {
			return fmt.Errorf("%s %s: %w: overlaps the try body", r.spec.Kind, span, ErrRegionNotFound)
		}
		for _, prev := range tb.Handlers {
			if span.Overlaps(prev.rng) {
				return fmt.Errorf("%s %s: %w: overlaps handler %s", r.spec.Kind, span, ErrRegionNotFound, prev.rng)
			}
		}
		th, err := buildHandler(segs, r)
		if err != nil {
			return fmt.Errorf("%s %s: %w", r.spec.Kind, span, err)
		}
		th.Try = tb
		tb.Handlers = append(tb.Handlers, th)
	}
	return nil
}

func buildHandler(segs *segments, r region) (*TryHandlerBlock, error) {
	th := &TryHandlerBlock{Spec: r.spec}

	if r.filter >= 0 {
		fb := &FilterHandlerBlock{}
		fb.rng = Range{Start: r.filter, End: r.handler.Start}
		kids, err := segs.replace(fb.rng.Start, fb.rng.End, fb)
		if err != nil {
			return nil, fmt.Errorf("filter: %w", err)
		}
		fb.children = kids
		th.Filter = fb
	}

	hb := &HandlerBlock{}
	hb.rng = r.handler
	kids, err := segs.replace(hb.rng.Start, hb.rng.End, hb)
	if err != nil {
		return nil, fmt.Errorf("handler: %w", err)
	}
	hb.children = kids
	th.Handler = hb

	th.rng = r.span()
	kids, err = segs.replace(th.rng.Start, th.rng.End, th)
	if err != nil {
		return nil, err
	}
	th.children = kids
	return th, nil
}
