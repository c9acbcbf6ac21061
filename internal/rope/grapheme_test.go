package rope

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// familyEmoji is a single grapheme cluster spanning four code points
// joined by zero-width joiners. Used to exercise behaviour around
// multi-rune clusters, including the documented left_grapheme-at-EOF
// edge case (see internal/cursor).
const familyEmoji = "\U0001F468‍\U0001F469‍\U0001F467‍\U0001F466"

func TestGraphemeIteratorRoundTrip(t *testing.T) {
	for _, s := range []string{
		"",
		"hello",
		"café",
		"a" + familyEmoji + "b",
		"line1\nline2\n",
	} {
		r := New(s)
		it := NewGraphemeIterator(r, 0)
		var out string
		for {
			g, ok := it.Next()
			if !ok {
				break
			}
			out += g
		}
		require.Equal(t, s, out, "forward iteration must reconstruct the original string for %q", s)
	}
}

func TestGraphemeIteratorForwardSingleCluster(t *testing.T) {
	r := New("a" + familyEmoji + "b")
	it := NewGraphemeIterator(r, 0)

	g, ok := it.Next()
	require.True(t, ok)
	require.Equal(t, "a", g)

	g, ok = it.Next()
	require.True(t, ok)
	require.Equal(t, familyEmoji, g, "the family emoji must be yielded as one grapheme cluster")

	g, ok = it.Next()
	require.True(t, ok)
	require.Equal(t, "b", g)

	_, ok = it.Next()
	require.False(t, ok, "iterator must be exhausted at EOF")
}

func TestGraphemeIteratorReverseSentinelAtBoundary(t *testing.T) {
	r := New("ab")
	it := NewGraphemeIterator(r, 0)

	_, ok := it.Next()
	require.True(t, ok)
	require.Equal(t, 1, it.CurrIdx())

	// Walk forward to EOF.
	_, ok = it.Next()
	require.True(t, ok)
	_, ok = it.Next()
	require.False(t, ok)

	// Reversing at EOF must yield one empty sentinel grapheme first.
	g, ok := it.Rev().Next()
	require.True(t, ok)
	require.Equal(t, "", g)

	// Then real graphemes resume, now walking backward.
	g, ok = it.Next()
	require.True(t, ok)
	require.Equal(t, "b", g)
}

func TestStopAtFindsOccurrenceAndRepositions(t *testing.T) {
	r := New("abcXdef")
	it := NewGraphemeIterator(r, 0)
	idx := it.StopAt(func(acc string) bool {
		return len(acc) > 0 && acc[len(acc)-1] == 'X'
	})
	require.Equal(t, 3, idx, "should position at the start of the matching grapheme")

	g, ok := it.Next()
	require.True(t, ok)
	require.Equal(t, "X", g, "next call after StopAt must yield the satisfying grapheme")
}

func TestStopBeforeLandsOneGraphemeEarlier(t *testing.T) {
	r := New("abcXdef")
	it := NewGraphemeIterator(r, 0)
	it.StopBefore(func(acc string) bool {
		return len(acc) > 0 && acc[len(acc)-1] == 'X'
	})

	g, ok := it.Next()
	require.True(t, ok)
	require.Equal(t, "c", g, "StopBefore must leave the last grapheme that failed the predicate unconsumed")
}

func TestGraphemeStartingAndEndingAt(t *testing.T) {
	r := New("a" + familyEmoji + "b")
	require.Equal(t, familyEmoji, r.GraphemeStartingAt(1))
	require.Equal(t, familyEmoji, r.GraphemeEndingAt(1+len([]rune(familyEmoji))))
	require.Equal(t, "", r.GraphemeStartingAt(r.LenChars()))
	require.Equal(t, "", r.GraphemeEndingAt(0))
}
