package cursor

import (
	"testing"

	"github.com/stretchr/testify/require"
	"kestrel/internal/rope"
)

func TestRightLeftGrapheme(t *testing.T) {
	r := rope.New("abc")
	idx, ok := RightGrapheme(0, r)
	require.True(t, ok)
	require.Equal(t, 1, idx)

	idx, ok = LeftGrapheme(1, r)
	require.True(t, ok)
	require.Equal(t, 0, idx)

	_, ok = LeftGrapheme(0, r)
	require.False(t, ok)

	_, ok = RightGrapheme(3, r)
	require.False(t, ok)
}

func TestLeftGraphemeAtEOFSplitsMultiRuneCluster(t *testing.T) {
	r := rope.New("a" + familyEmojiForTest)
	eof := r.LenChars()
	idx, ok := LeftGrapheme(eof, r)
	require.True(t, ok)
	require.Equal(t, eof-1, idx, "EOF case must split the trailing cluster by one rune, not skip it whole")
}

const familyEmojiForTest = "\U0001F468‍\U0001F469‍\U0001F467‍\U0001F466"

func TestUpperLowerGraphemeColumnPreserving(t *testing.T) {
	r := rope.New("abc\ndef\nghi")
	// 'e' is at index 5 (line 1, column 1).
	idx, ok := UpperGraphemeOrStart(5, r)
	require.True(t, ok)
	require.Equal(t, 1, idx, "should land on column 1 of the previous line ('b')")

	idx, ok = LowerGraphemeOrEnd(5, r)
	require.True(t, ok)
	require.Equal(t, 9, idx, "should land on column 1 of the next line ('h')")
}

func TestUpperGraphemeOrStartAtFirstLine(t *testing.T) {
	r := rope.New("abc\ndef")
	idx, ok := UpperGraphemeOrStart(1, r)
	require.True(t, ok)
	require.Equal(t, 0, idx)
}

func TestLowerGraphemeOrEndAtLastLine(t *testing.T) {
	r := rope.New("abc\ndef")
	idx, ok := LowerGraphemeOrEnd(5, r)
	require.True(t, ok)
	require.Equal(t, r.LenChars(), idx)
}

func TestLineStartEndAndNextLineStart(t *testing.T) {
	r := rope.New("abc\ndef\nghi")
	idx, ok := LineStart(5, r)
	require.True(t, ok)
	require.Equal(t, 4, idx)

	idx, ok = LineEnd(5, r)
	require.True(t, ok)
	require.Equal(t, 7, idx, "points at the line's trailing newline itself, per the ported formula")

	idx, ok = NextLineStart(5, r)
	require.True(t, ok)
	require.Equal(t, 8, idx)

	_, ok = NextLineStart(9, r)
	require.False(t, ok, "last line has no next line")
}

func TestFileStartEnd(t *testing.T) {
	r := rope.New("hello")
	idx, _ := FileStart(3, r)
	require.Equal(t, 0, idx)
	idx, _ = FileEnd(0, r)
	require.Equal(t, 5, idx)
}

func TestRightLeftOccurrence(t *testing.T) {
	r := rope.New("abcXdefXghi")
	idx, ok := RightOccurrence(0, "X", r)
	require.True(t, ok)
	require.Equal(t, 3, idx, "positions at the start of the grapheme ending in the match")

	idx, ok = LeftOccurrence(10, "X", r)
	require.True(t, ok)
	require.Equal(t, 7, idx)
}

func TestWordMotions(t *testing.T) {
	r := rope.New("foo bar baz")

	// RightWordStart from the last grapheme of a word skips the trailing
	// delimiter run and lands on the next word's first character.
	idx, ok := RightWordStart(2, r)
	require.True(t, ok)
	require.Equal(t, 4, idx, "should skip from the end of 'foo' to the start of 'bar'")

	idx, ok = RightWordEnd(0, r)
	require.True(t, ok)
	require.Equal(t, 2, idx, "should land on the last character of 'foo'")

	idx, ok = LeftWordStart(11, r)
	require.True(t, ok)
	require.Equal(t, 10, idx, "should land on the last character of 'baz'")

	idx, ok = LeftWordEnd(11, r)
	require.True(t, ok)
	require.Equal(t, 8, idx)
}
