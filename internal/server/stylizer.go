// Package server wraps the modal editor and its render pipeline behind
// message-passing workers, grounded on original_source/src/editor_server.rs,
// renderer_server.rs, and stylizer.rs.
package server

import (
	"sort"
)

// StyleAttr is one layer's opinion about a span of text: a foreground
// or background color, or a highlight marker (used for selections).
type StyleAttr struct {
	Fg        string
	Bg        string
	Highlight bool
}

type attrOp struct {
	add   bool
	attr  StyleAttr
	attrID int
}

// Stylizer composes layered style attributes over half-open character
// intervals into a flat, non-overlapping sequence of regions, grounded
// on stylizer.rs's stylization_points model.
type Stylizer struct {
	points map[int][]attrOp
	nextID int
}

// NewStylizer returns an empty stylizer, ready for a redraw cycle.
func NewStylizer() *Stylizer {
	return &Stylizer{points: make(map[int][]attrOp)}
}

// Reset clears every layered attribute, starting a fresh redraw cycle
// between StylizeInit and StylizeEnd.
func (s *Stylizer) Reset() {
	s.points = make(map[int][]attrOp)
	s.nextID = 0
}

// Clone returns a deep copy, used to layer transient attributes (e.g.
// selection highlights) on top of the persistent syntax-highlighting
// state for a single redraw without disturbing it for the next one.
func (s *Stylizer) Clone() *Stylizer {
	points := make(map[int][]attrOp, len(s.points))
	for idx, ops := range s.points {
		points[idx] = append([]attrOp(nil), ops...)
	}
	return &Stylizer{points: points, nextID: s.nextID}
}

// LayerRegionStyle pushes an AddAttr at start and a RemAttr at end for
// attr, so every region in [start, end) picks it up once computed.
func (s *Stylizer) LayerRegionStyle(start, end int, attr StyleAttr) {
	if end <= start {
		return
	}
	id := s.nextID
	s.nextID++
	s.points[start] = append(s.points[start], attrOp{add: true, attr: attr, attrID: id})
	s.points[end] = append(s.points[end], attrOp{add: false, attr: attr, attrID: id})
}

// ConcreteStyle is the flattened style in force across a region: the
// latest fg/bg layer wins, highlight is true if any active layer set it.
type ConcreteStyle struct {
	Fg        string
	Bg        string
	Highlight bool
}

// StyleRegion is one non-overlapping span of uniform style.
type StyleRegion struct {
	Start, End int
	Style      ConcreteStyle
}

// ComputeRegions walks the stylization points in order, maintaining a
// running multiset of active attributes, and emits the resulting
// disjoint regions covering [minPoint, maxPoint). maxChars is accepted
// for API parity with the original but is not applied as a truncation
// here; callers that want truncation slice the result themselves.
func (s *Stylizer) ComputeRegions(maxChars int) []StyleRegion {
	if len(s.points) == 0 {
		return nil
	}

	idxs := make([]int, 0, len(s.points))
	for idx := range s.points {
		idxs = append(idxs, idx)
	}
	sort.Ints(idxs)

	active := make(map[int]StyleAttr)
	var regions []StyleRegion
	for i := 0; i < len(idxs)-1; i++ {
		p, next := idxs[i], idxs[i+1]
		for _, op := range s.points[p] {
			if op.add {
				active[op.attrID] = op.attr
			} else {
				delete(active, op.attrID)
			}
		}
		if len(active) == 0 {
			regions = append(regions, StyleRegion{Start: p, End: next})
			continue
		}
		regions = append(regions, StyleRegion{Start: p, End: next, Style: foldAttrs(active)})
	}
	return regions
}

// foldAttrs combines every active attribute into one ConcreteStyle: the
// highest attrID wins for fg/bg (the most recently layered opinion),
// highlight is true if any layer set it.
func foldAttrs(active map[int]StyleAttr) ConcreteStyle {
	var out ConcreteStyle
	ids := make([]int, 0, len(active))
	for id := range active {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		a := active[id]
		if a.Fg != "" {
			out.Fg = a.Fg
		}
		if a.Bg != "" {
			out.Bg = a.Bg
		}
		if a.Highlight {
			out.Highlight = true
		}
	}
	return out
}
