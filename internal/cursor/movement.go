package cursor

import (
	"strings"

	"kestrel/internal/rope"
)

const tabWidth = 4

// isBlank reports whether a grapheme cluster consists only of Unicode
// whitespace (mirrors Rust's str::trim().is_empty() check used
// throughout movement.rs's word-boundary predicates).
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// peekNth returns the (0-indexed) nth grapheme an iterator starting at
// idx in the given direction would yield, without disturbing any other
// iterator. Used to emulate Rust's Iterator::nth on a disposable clone.
func peekNth(buf *rope.Rope, idx int, reverse bool, n int) (string, bool) {
	it := rope.NewGraphemeIterator(buf, idx)
	if reverse {
		it.Rev()
	}
	var g string
	var ok bool
	for i := 0; i <= n; i++ {
		g, ok = it.Next()
		if !ok {
			return "", false
		}
	}
	return g, true
}

// RightGrapheme returns the character index one grapheme to the right
// of charIdx, or ok=false at EOF.
func RightGrapheme(charIdx int, buf *rope.Rope) (int, bool) {
	it := rope.NewGraphemeIterator(buf, charIdx)
	if _, ok := it.Next(); !ok {
		return 0, false
	}
	return it.CurrIdx(), true
}

// LeftGrapheme returns the character index one grapheme to the left of
// charIdx, or ok=false at BOF.
//
// At EOF (charIdx == buf.LenChars()), this returns charIdx-1 rather than
// walking back one full grapheme cluster — a deliberately preserved
// quirk: a multi-rune trailing grapheme is split rather than skipped
// whole. See DESIGN.md's Open Question decisions.
func LeftGrapheme(charIdx int, buf *rope.Rope) (int, bool) {
	if charIdx == buf.LenChars() {
		if charIdx == 0 {
			return 0, false
		}
		return charIdx - 1, true
	}
	if charIdx == 0 {
		return 0, false
	}
	it := rope.NewGraphemeIterator(buf, charIdx).Rev()
	if _, ok := it.Next(); !ok {
		return 0, false
	}
	return it.CurrIdx(), true
}

func jumpToLine(currCharIdx, currLineIdx, targetLineIdx int, buf *rope.Rope) (int, bool) {
	currLineStart, err := buf.LineToChar(currLineIdx)
	if err != nil {
		return 0, false
	}
	targetLineStart, err := buf.LineToChar(targetLineIdx)
	if err != nil {
		return 0, false
	}
	targetLine, err := buf.Line(targetLineIdx)
	if err != nil {
		return 0, false
	}
	targetLineEnd := targetLineStart + len([]rune(targetLine))
	if targetLineEnd > targetLineStart {
		targetLineEnd--
	}

	targetWidth := buf.VisualWidthUpTo(currLineStart, currCharIdx)

	isLastLine := targetLineIdx == buf.LenLines()-1
	if isLastLine {
		targetLineEnd++
	}

	targetLineCharOffset := 0
	currWidth := 0
	lineRunes := []rune(targetLine)
	if isLastLine {
		lineRunes = append(lineRunes, ' ')
	}
	for i := 0; i < len(lineRunes); {
		r := lineRunes[i]
		n := 1
		var nextWidth int
		switch r {
		case '\t':
			nextWidth = currWidth + tabWidth
		case '\n':
			nextWidth = currWidth + 1
		default:
			g := buf.GraphemeStartingAt(targetLineStart + targetLineCharOffset)
			if g == "" {
				g = string(r)
			}
			n = len([]rune(g))
			if n == 0 {
				n = 1
			}
			nextWidth = currWidth + rope.GraphemeDisplayWidth(g)
		}
		if nextWidth > targetWidth {
			break
		}
		currWidth = nextWidth
		targetLineCharOffset += n
		i += n
	}

	result := targetLineStart + targetLineCharOffset
	if result < targetLineStart {
		result = targetLineStart
	}
	if result > targetLineEnd {
		result = targetLineEnd
	}
	return result, true
}

// UpperGraphemeOrStart moves to the visually-nearest column on the
// previous line, or to index 0 if already on the first line.
func UpperGraphemeOrStart(charIdx int, buf *rope.Rope) (int, bool) {
	currLine := buf.CharToLine(charIdx)
	if currLine == 0 {
		return 0, true
	}
	return jumpToLine(charIdx, currLine, currLine-1, buf)
}

// LowerGraphemeOrEnd moves to the visually-nearest column on the next
// line, or to the end of the buffer if already on the last line.
func LowerGraphemeOrEnd(charIdx int, buf *rope.Rope) (int, bool) {
	currLine := buf.CharToLine(charIdx)
	if currLine == buf.LenLines()-1 {
		return buf.LenChars(), true
	}
	return jumpToLine(charIdx, currLine, currLine+1, buf)
}

// FileStart always returns 0.
func FileStart(int, *rope.Rope) (int, bool) { return 0, true }

// FileEnd always returns the buffer's length in characters.
func FileEnd(_ int, buf *rope.Rope) (int, bool) { return buf.LenChars(), true }

// LineStart returns the char index of the start of charIdx's line.
func LineStart(charIdx int, buf *rope.Rope) (int, bool) {
	line := buf.CharToLine(charIdx)
	start, err := buf.LineToChar(line)
	if err != nil {
		return 0, false
	}
	return start, true
}

// LineEnd returns the char index of the last character of charIdx's
// line (the position just before its trailing newline, if any).
func LineEnd(charIdx int, buf *rope.Rope) (int, bool) {
	line := buf.CharToLine(charIdx)
	start, ok := LineStart(charIdx, buf)
	if !ok {
		return 0, false
	}
	text, err := buf.Line(line)
	if err != nil {
		return 0, false
	}
	n := len([]rune(text))
	if n > 0 {
		n--
	}
	return start + n, true
}

// NextLineStart returns the char index of the start of the line after
// charIdx's, or ok=false if charIdx is already on the last line.
func NextLineStart(charIdx int, buf *rope.Rope) (int, bool) {
	line := buf.CharToLine(charIdx)
	if line == buf.LenLines()-1 {
		return 0, false
	}
	start, err := buf.LineToChar(line + 1)
	if err != nil {
		return 0, false
	}
	return start, true
}

// RightOccurrence searches forward from charIdx for the next grapheme
// cluster ending in target, returning the index at which that grapheme
// starts (the forward iterator's stop_at position).
func RightOccurrence(charIdx int, target string, buf *rope.Rope) (int, bool) {
	if charIdx >= buf.LenChars()-1 {
		return 0, false
	}
	it := rope.NewGraphemeIterator(buf, charIdx)
	idx := it.StopAt(func(s string) bool { return strings.HasSuffix(s, target) })
	return idx, true
}

// LeftOccurrence searches backward from charIdx for the next grapheme
// cluster ending in target.
func LeftOccurrence(charIdx int, target string, buf *rope.Rope) (int, bool) {
	if charIdx == 0 {
		return 0, false
	}
	it := rope.NewGraphemeIterator(buf, charIdx).Rev()
	idx := it.StopAt(func(s string) bool { return strings.HasSuffix(s, target) })
	return idx, true
}

// RightWordStart returns the char index of the start of the next word
// to the right of charIdx, skipping the remainder of the current word
// (if charIdx sits at its last grapheme) and any delimiter run. From any
// other non-blank grapheme inside a word it returns charIdx unchanged.
func RightWordStart(charIdx int, buf *rope.Rope) (int, bool) {
	if charIdx == buf.LenChars() {
		return 0, false
	}
	g, ok := peekNth(buf, charIdx, false, 1)
	if !ok {
		return 0, false
	}
	it := rope.NewGraphemeIterator(buf, charIdx)
	if isBlank(g) {
		it.StopAt(func(s string) bool { return strings.TrimSpace(s) != s })
	}
	it.StopAt(func(s string) bool { return !isBlank(s) })
	return it.CurrIdx(), true
}

// RightWordEnd returns the char index of the end of the current/next
// word to the right of charIdx.
func RightWordEnd(charIdx int, buf *rope.Rope) (int, bool) {
	if charIdx == buf.LenChars() {
		return 0, false
	}
	it := rope.NewGraphemeIterator(buf, charIdx)
	it.StopBefore(func(s string) bool { return strings.TrimSpace(s) != s })
	return it.CurrIdx(), true
}

// LeftWordStart returns the char index where a leftward word walk starts:
// the nearest non-blank grapheme left of charIdx, i.e. the last grapheme
// of the word to the left (10 for "foo bar baz" from EOF).
func LeftWordStart(charIdx int, buf *rope.Rope) (int, bool) {
	if charIdx == 0 {
		return 0, false
	}
	g, ok := peekNth(buf, charIdx, true, 1)
	if !ok {
		return 0, false
	}
	it := rope.NewGraphemeIterator(buf, charIdx).Rev()
	if isBlank(g) {
		it.StopAt(func(s string) bool { return strings.TrimSpace(s) != s })
	}
	it.StopAt(func(s string) bool { return !isBlank(s) })
	return it.CurrIdx(), true
}

// LeftWordEnd returns the char index where a leftward word walk ends:
// the first grapheme of the word to the left of charIdx (8 for
// "foo bar baz" from EOF).
func LeftWordEnd(charIdx int, buf *rope.Rope) (int, bool) {
	if charIdx == 0 {
		return 0, false
	}
	it := rope.NewGraphemeIterator(buf, charIdx).Rev()
	it.StopBefore(func(s string) bool { return strings.TrimSpace(s) != s })
	return it.CurrIdx(), true
}
