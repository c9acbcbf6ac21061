package keys

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExactMatcherConsumesOnlyOnEquality(t *testing.T) {
	kc := NewKeyCombo(CharEvt('g', ModNone))
	m := Exact(CharEvt('x', ModNone))
	require.Empty(t, m.TryConsume(&kc))
	require.Equal(t, 1, kc.Len())

	m2 := Exact(CharEvt('g', ModNone))
	got := m2.TryConsume(&kc)
	require.Len(t, got, 1)
	require.True(t, kc.IsEmpty())
}

func TestNumberMatcherIsGreedy(t *testing.T) {
	kc := NewKeyCombo(CharEvt('1', ModNone), CharEvt('2', ModNone), CharEvt('3', ModNone), CharEvt('x', ModNone))
	m := Number(ModNone)
	got := m.TryConsume(&kc)
	require.Len(t, got, 3)
	require.Equal(t, 1, kc.Len(), "the trailing non-digit must be left untouched")
}

func TestDigitMatcherConsumesExactlyOne(t *testing.T) {
	kc := NewKeyCombo(CharEvt('7', ModNone), CharEvt('8', ModNone))
	m := Digit(ModNone)
	got := m.TryConsume(&kc)
	require.Len(t, got, 1)
	require.Equal(t, 1, kc.Len())
}

func TestKeyPatternClauseFirstMatchWins(t *testing.T) {
	clause := KeyPatternClause{Digit(ModNone), AnyChar(ModNone)}
	kc := NewKeyCombo(CharEvt('a', ModNone))
	got := clause.TryConsume(&kc)
	require.Len(t, got, 1, "digit fails to match, falls through to AnyChar")
	require.Equal(t, 'a', got[0].Char)
}

func TestKeyPatternMatchesRequiresFullConsumption(t *testing.T) {
	p := KeyPattern{
		{Exact(CharEvt('g', ModNone))},
		{Exact(CharEvt('g', ModNone))},
	}
	require.True(t, p.Matches(NewKeyCombo(CharEvt('g', ModNone), CharEvt('g', ModNone))))
	require.False(t, p.Matches(NewKeyCombo(CharEvt('g', ModNone))), "too few events")
	require.False(t, p.Matches(NewKeyCombo(CharEvt('g', ModNone), CharEvt('g', ModNone), CharEvt('g', ModNone))), "leftover events fail the match")
}

func TestKeyPatternMatchesIsPureOnFailure(t *testing.T) {
	p := KeyPattern{{Exact(CharEvt('z', ModNone))}}
	kc := NewKeyCombo(CharEvt('a', ModNone))
	require.False(t, p.Matches(kc))
	require.Equal(t, 1, kc.Len(), "Matches takes kc by value; the caller's combo must be untouched")
}
