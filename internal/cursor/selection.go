// Package cursor implements the grapheme-aware motion functions and
// selection-merging algorithm that sit directly on top of internal/rope,
// grounded on original_source/src/cursor.rs and cursor/movement.rs.
package cursor

import (
	"sort"

	"kestrel/internal/rope"
)

// TextSelection is a pair (head, tail). head is where the caret sits;
// tail, if present, marks the other anchor of an extended selection.
type TextSelection struct {
	Head int
	Tail *int
}

// NewCaret returns a collapsed selection (no tail) at idx.
func NewCaret(idx int) TextSelection {
	return TextSelection{Head: idx}
}

// NewRange returns an extended selection from tail to head.
func NewRange(head, tail int) TextSelection {
	t := tail
	return TextSelection{Head: head, Tail: &t}
}

// Min returns the smaller of head and tail (tail defaults to head).
func (s TextSelection) Min() int {
	if s.Tail == nil {
		return s.Head
	}
	if *s.Tail < s.Head {
		return *s.Tail
	}
	return s.Head
}

// Max returns the larger of head and tail (tail defaults to head).
func (s TextSelection) Max() int {
	if s.Tail == nil {
		return s.Head
	}
	if *s.Tail > s.Head {
		return *s.Tail
	}
	return s.Head
}

// CollectMerged sorts selections by their Min, extends each Max one
// grapheme to the right (so the caret-covered character is included),
// and left-folds overlapping/adjacent/contained intervals into a
// sorted, disjoint list of half-open [start, end) ranges. Grounded on
// cursor.rs's SelectionIterator::collect_merged.
func CollectMerged(sels []TextSelection, buf *rope.Rope) [][2]int {
	type interval struct{ start, end int }
	raw := make([]interval, 0, len(sels))
	for _, s := range sels {
		min, max := s.Min(), s.Max()
		end := max
		if r, ok := RightGrapheme(max, buf); ok {
			end = r
		}
		raw = append(raw, interval{min, end})
	}
	sort.Slice(raw, func(i, j int) bool { return raw[i].start < raw[j].start })

	var merged []interval
	for _, cur := range raw {
		if len(merged) == 0 {
			merged = append(merged, cur)
			continue
		}
		last := &merged[len(merged)-1]
		switch {
		case cur.start >= last.start && cur.end <= last.end:
			// Fully contained in last: absorbed, no change.
		case cur.start < last.start && cur.end >= last.start && cur.end <= last.end:
			// Extends left only.
			last.start = cur.start
		case cur.start >= last.start && cur.start <= last.end && cur.end > last.end:
			// Extends right only.
			last.end = cur.end
		case cur.start < last.start && cur.end >= last.end:
			// Strictly contains last: replace.
			last.start, last.end = cur.start, cur.end
		default:
			// Disjoint: new interval.
			merged = append(merged, cur)
		}
	}

	out := make([][2]int, len(merged))
	for i, m := range merged {
		out[i] = [2]int{m.start, m.end}
	}
	return out
}
