package rope

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInsertAtAndRemoveRange(t *testing.T) {
	r := New("abc")
	require.NoError(t, r.InsertAt(1, "XY"))
	require.Equal(t, "aXYbc", r.String())

	removed, err := r.RemoveRange(1, 3)
	require.NoError(t, err)
	require.Equal(t, "XY", removed)
	require.Equal(t, "abc", r.String())
}

func TestInsertAtOutOfRange(t *testing.T) {
	r := New("abc")
	err := r.InsertAt(10, "x")
	require.Error(t, err)
	require.Equal(t, "abc", r.String(), "failed insert must not mutate")
}

func TestRemoveRangeOutOfRange(t *testing.T) {
	r := New("abc")
	_, err := r.RemoveRange(2, 10)
	require.Error(t, err)
	require.Equal(t, "abc", r.String(), "failed remove must not mutate")
}

func TestLineToCharAndCharToLine(t *testing.T) {
	r := New("abcd\n\txy")
	start, err := r.LineToChar(0)
	require.NoError(t, err)
	require.Equal(t, 0, start)

	start, err = r.LineToChar(1)
	require.NoError(t, err)
	require.Equal(t, 5, start) // after "abcd\n"

	require.Equal(t, 0, r.CharToLine(3))
	require.Equal(t, 1, r.CharToLine(5))
}

func TestLenLinesAndLines(t *testing.T) {
	r := New("one\ntwo\nthree")
	require.Equal(t, 3, r.LenLines())
	require.Equal(t, []string{"one\n", "two\n", "three"}, r.Lines())
}

func TestVisualWidthUpToTabsAndNewlines(t *testing.T) {
	r := New("abcd\n\txy")
	lineStart, err := r.LineToChar(1)
	require.NoError(t, err)
	// "\t" counts as 4 columns.
	require.Equal(t, 4, r.VisualWidthUpTo(lineStart, lineStart+1))
}

func TestCloneIsIndependent(t *testing.T) {
	r := New("abc")
	cp := r.Clone()
	require.NoError(t, r.InsertAt(0, "X"))
	require.Equal(t, "Xabc", r.String())
	require.Equal(t, "abc", cp.String())
}
