package rope

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// lookaheadWidth bounds how many characters a single grapheme cluster
// can span. Grounded on original_source's GRAPHEME_LOOKAHEAD_WIDTH: a
// window this wide is enough to run Unicode segmentation starting or
// ending at any index without reading the whole rope.
const lookaheadWidth = 12

func runeDisplayWidth(r rune) int {
	return runewidth.RuneWidth(r)
}

// GraphemeDisplayWidth returns the terminal column width of a grapheme
// cluster (ASCII = 1, most emoji/CJK = 2).
func GraphemeDisplayWidth(cluster string) int {
	if cluster == "" {
		return 0
	}
	return runewidth.StringWidth(cluster)
}

// GraphemeStartingAt returns the grapheme cluster beginning at
// character index idx, or "" if idx is at or past the end of the rope.
func (r *Rope) GraphemeStartingAt(idx int) string {
	if idx < 0 || idx >= len(r.runes) {
		return ""
	}
	end := idx + lookaheadWidth
	if end > len(r.runes) {
		end = len(r.runes)
	}
	window := string(r.runes[idx:end])
	cluster, _, _, _ := uniseg.StepString(window, -1)
	return cluster
}

// GraphemeEndingAt returns the grapheme cluster ending at character
// index idx (exclusive), or "" if idx is at or before the start of the
// rope.
func (r *Rope) GraphemeEndingAt(idx int) string {
	if idx <= 0 || idx > len(r.runes) {
		return ""
	}
	start := idx - lookaheadWidth
	if start < 0 {
		start = 0
	}
	window := string(r.runes[start:idx])

	var last string
	state := -1
	rest := window
	for len(rest) > 0 {
		cluster, next, _, newState := uniseg.StepString(rest, state)
		last = cluster
		rest = next
		state = newState
	}
	return last
}

// GraphemeIterator is a finite, non-restartable, bidirectional lazy
// sequence of grapheme clusters over a rope, grounded on
// original_source's cursor/grapheme_iterator.rs.
//
// At a logical boundary (BOF reached while reversed, EOF reached while
// forward), Next signals exhaustion by returning ("", false). Reversing
// direction (Rev) while sitting on a boundary yields one sentinel
// empty-string grapheme before real graphemes resume; this lets
// StopAt/StopBefore treat buffer boundaries as terminating symbols of
// their predicate search.
type GraphemeIterator struct {
	buf        *Rope
	start, end int // current grapheme's half-open char range
	reverse    bool
}

// NewGraphemeIterator creates an iterator sitting on the grapheme that
// starts at initCharIdx, so the next call to Next yields that grapheme
// in either direction. At EOF it sits on the boundary: going forward Next
// reports exhaustion, and after Rev the first Next yields the sentinel.
func NewGraphemeIterator(buf *Rope, initCharIdx int) *GraphemeIterator {
	g := &GraphemeIterator{buf: buf}
	first := buf.GraphemeStartingAt(initCharIdx)
	n := len([]rune(first))
	if first == "" {
		g.start, g.end = initCharIdx, initCharIdx
	} else {
		g.start, g.end = initCharIdx, initCharIdx+n
	}
	return g
}

// Rev toggles the iterator's direction. If the iterator currently sits
// on a BOF/EOF boundary, the very next yielded grapheme is the empty
// sentinel before real graphemes resume in the new direction.
func (g *GraphemeIterator) Rev() *GraphemeIterator {
	g.reverse = !g.reverse
	return g
}

// CurrIdx returns the character index the iterator currently sits at:
// the start of the grapheme the next Next call yields, in either
// direction.
func (g *GraphemeIterator) CurrIdx() int {
	return g.start
}

func (g *GraphemeIterator) atBOF() bool { return g.end == 0 }
func (g *GraphemeIterator) atEOF() bool { return g.start == g.buf.LenChars() }

// advance steps the iterator one grapheme forward, returning the
// consumed grapheme, or ("", false) at EOF.
func (g *GraphemeIterator) advance() (string, bool) {
	if g.atEOF() {
		return "", false
	}
	if g.atBOF() {
		first := g.buf.GraphemeStartingAt(0)
		g.start, g.end = 0, len([]rune(first))
		return "", true
	}
	cluster := g.buf.Slice(g.start, g.end)
	next := g.buf.GraphemeStartingAt(g.end)
	n := len([]rune(next))
	g.start, g.end = g.end, g.end+n
	return cluster, true
}

// retreat steps the iterator one grapheme backward, returning the
// consumed grapheme, or ("", false) at BOF.
func (g *GraphemeIterator) retreat() (string, bool) {
	if g.atBOF() {
		return "", false
	}
	if g.atEOF() {
		last := g.buf.GraphemeEndingAt(g.buf.LenChars())
		n := len([]rune(last))
		g.start, g.end = g.buf.LenChars()-n, g.buf.LenChars()
		return "", true
	}
	cluster := g.buf.Slice(g.start, g.end)
	prev := g.buf.GraphemeEndingAt(g.start)
	n := len([]rune(prev))
	g.start, g.end = g.start-n, g.start
	return cluster, true
}

// Next advances the iterator one grapheme in whichever direction it
// currently faces (forward unless Rev has been called an odd number of
// times), returning the consumed grapheme or ("", false) at the
// boundary the current direction is heading toward.
func (g *GraphemeIterator) Next() (string, bool) {
	if g.reverse {
		return g.retreat()
	}
	return g.advance()
}

// unstep reverses direction, takes one step back, then restores
// direction — used to reposition the iterator after a predicate search
// without changing its externally-visible direction.
func (g *GraphemeIterator) unstep() {
	g.Rev()
	g.Next()
	g.Rev()
}

// StopAt advances the iterator, accumulating yielded graphemes into a
// growing string, until pred(accumulated) holds or the iterator is
// exhausted. On satisfaction, repositions one step back so the next
// call yields the satisfying grapheme. Returns the final CurrIdx.
func (g *GraphemeIterator) StopAt(pred func(string) bool) int {
	var acc string
	for {
		cluster, ok := g.Next()
		if !ok {
			return g.CurrIdx()
		}
		acc += cluster
		if pred(acc) {
			g.unstep()
			return g.CurrIdx()
		}
	}
}

// StopBefore is StopAt but positions to yield the last grapheme that
// failed the predicate (one grapheme earlier than StopAt would leave
// it). If the search ran off a buffer boundary without the predicate
// ever matching, this still positions at the first/last real grapheme
// rather than the BOF/EOF sentinel, which is what the extra unstep
// naturally produces in both cases.
func (g *GraphemeIterator) StopBefore(pred func(string) bool) int {
	g.StopAt(pred)
	g.unstep()
	return g.CurrIdx()
}
