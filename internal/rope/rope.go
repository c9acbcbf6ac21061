// Package rope implements the text buffer at the bottom of the editor's
// component stack: a mutable character sequence indexed in character
// (rune) units, line/char index conversion, and a grapheme-cluster
// iterator built on top of it.
//
// A production rope (a balanced tree of string chunks) gives O(log n)
// insert/delete. This implementation keeps the same public surface a
// balanced-tree rope would expose (LenChars, InsertAt, RemoveRange,
// LineToChar, CharToLine, Slice) over a single []rune slice, so the
// internal storage can be swapped for a real tree later without
// touching any caller. Every mutating primitive in internal/document
// goes through this surface, never the underlying slice directly.
package rope

import (
	"fmt"
	"strings"
)

// Rope is a mutable character sequence. All indices are character
// (rune) offsets, never byte offsets.
type Rope struct {
	runes []rune
}

// New builds a Rope from a string.
func New(s string) *Rope {
	return &Rope{runes: []rune(s)}
}

// Empty returns a new, empty Rope.
func Empty() *Rope {
	return &Rope{}
}

// LenChars returns the number of characters in the rope.
func (r *Rope) LenChars() int {
	return len(r.runes)
}

// String returns the full contents of the rope.
func (r *Rope) String() string {
	return string(r.runes)
}

// Slice returns the substring [start, end) in character units.
// Out-of-range bounds are clamped; end < start yields "".
func (r *Rope) Slice(start, end int) string {
	start = clamp(start, 0, len(r.runes))
	end = clamp(end, 0, len(r.runes))
	if end < start {
		return ""
	}
	return string(r.runes[start:end])
}

// InsertAt inserts s at character index idx, mutating the rope.
// Fails (returning an error, leaving the rope untouched) if idx is out
// of the valid range [0, LenChars()].
func (r *Rope) InsertAt(idx int, s string) error {
	if idx < 0 || idx > len(r.runes) {
		return fmt.Errorf("rope: insert index %d out of range [0,%d]", idx, len(r.runes))
	}
	if s == "" {
		return nil
	}
	ins := []rune(s)
	out := make([]rune, 0, len(r.runes)+len(ins))
	out = append(out, r.runes[:idx]...)
	out = append(out, ins...)
	out = append(out, r.runes[idx:]...)
	r.runes = out
	return nil
}

// RemoveRange deletes the half-open character range [start, end),
// mutating the rope, and returns the removed text. The removed text is
// captured before the slice is mutated, as required by the inverse
// primitive that reinserts it. Fails without mutating if the range is
// out of bounds or inverted.
func (r *Rope) RemoveRange(start, end int) (string, error) {
	if start < 0 || end > len(r.runes) || start > end {
		return "", fmt.Errorf("rope: remove range [%d,%d) out of range [0,%d]", start, end, len(r.runes))
	}
	removed := string(r.runes[start:end])
	out := make([]rune, 0, len(r.runes)-(end-start))
	out = append(out, r.runes[:start]...)
	out = append(out, r.runes[end:]...)
	r.runes = out
	return removed, nil
}

// LenLines returns the number of lines; an empty rope has one (empty) line.
func (r *Rope) LenLines() int {
	n := 1
	for _, c := range r.runes {
		if c == '\n' {
			n++
		}
	}
	return n
}

// LineToChar returns the character index at which the given 0-based
// line starts. Fails if line is out of [0, LenLines()]; line ==
// LenLines() is accepted and yields LenChars(), as ropey's line_to_char
// does.
func (r *Rope) LineToChar(line int) (int, error) {
	if line < 0 {
		return 0, fmt.Errorf("rope: negative line %d", line)
	}
	if line == 0 {
		return 0, nil
	}
	seen := 0
	for i, c := range r.runes {
		if c == '\n' {
			seen++
			if seen == line {
				return i + 1, nil
			}
		}
	}
	if seen+1 == line {
		// line is one past the last line (line == LenLines()); it maps
		// to the end of the rope.
		return len(r.runes), nil
	}
	return 0, fmt.Errorf("rope: line %d out of range [0,%d]", line, r.LenLines())
}

// CharToLine returns the 0-based line containing character index idx.
func (r *Rope) CharToLine(idx int) int {
	idx = clamp(idx, 0, len(r.runes))
	line := 0
	for i := 0; i < idx; i++ {
		if r.runes[i] == '\n' {
			line++
		}
	}
	return line
}

// Line returns the content of the given 0-based line, including its
// trailing newline if one exists (mirrors ropey's line semantics: only
// the final line of a buffer may lack a trailing newline).
func (r *Rope) Line(line int) (string, error) {
	start, err := r.LineToChar(line)
	if err != nil {
		return "", err
	}
	end := len(r.runes)
	for i := start; i < len(r.runes); i++ {
		if r.runes[i] == '\n' {
			end = i + 1
			break
		}
	}
	return string(r.runes[start:end]), nil
}

// Lines returns every line in the rope, in order.
func (r *Rope) Lines() []string {
	n := r.LenLines()
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		l, err := r.Line(i)
		if err != nil {
			break
		}
		out = append(out, l)
	}
	return out
}

// Clone returns an independent copy of the rope, used when a document
// snapshot must be broadcast to subscribers without sharing mutable
// storage with the editor worker (see internal/server).
func (r *Rope) Clone() *Rope {
	cp := make([]rune, len(r.runes))
	copy(cp, r.runes)
	return &Rope{runes: cp}
}

// VisualWidthUpTo returns the display-column width of the rope's
// content between a line's start and char index idx, treating a tab as
// 4 columns and a newline as 1 column; vertical cursor motion in
// internal/cursor measures columns with it.
func (r *Rope) VisualWidthUpTo(lineStart, idx int) int {
	width := 0
	for i := lineStart; i < idx && i < len(r.runes); i++ {
		switch r.runes[i] {
		case '\t':
			width += 4
		case '\n':
			width++
		default:
			width += runeDisplayWidth(r.runes[i])
		}
	}
	return width
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// EqualContent reports whether two ropes hold identical text, used by
// tests asserting exact rollback/undo state equality.
func (r *Rope) EqualContent(other *Rope) bool {
	if r == nil || other == nil {
		return r == other
	}
	return strings.Compare(string(r.runes), string(other.runes)) == 0
}
