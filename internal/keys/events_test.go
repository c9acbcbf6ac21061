package keys

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyComboPopFirstIf(t *testing.T) {
	kc := NewKeyCombo(CharEvt('a', ModNone), CharEvt('b', ModNone))
	e, ok := kc.PopFirstIf(func(k KeyEvt) bool { return k.Char == 'z' })
	require.False(t, ok)
	require.Equal(t, 2, kc.Len(), "non-matching predicate must not consume")

	e, ok = kc.PopFirstIf(func(k KeyEvt) bool { return k.Char == 'a' })
	require.True(t, ok)
	require.Equal(t, 'a', e.Char)
	require.Equal(t, 1, kc.Len())
}

func TestKeyComboExtractText(t *testing.T) {
	kc := NewKeyCombo(
		CharEvt('h', ModNone),
		CharEvt('i', ModNone),
		NamedEvt(KeyEnter, ModNone),
		NamedEvt(KeyTab, ModNone),
		NamedEvt(KeyEsc, ModNone),
	)
	require.Equal(t, "hi\n\t", kc.ExtractText())
}

func TestKeyComboResetDrains(t *testing.T) {
	kc := NewKeyCombo(CharEvt('x', ModNone))
	drained := kc.Reset()
	require.Equal(t, 1, drained.Len())
	require.True(t, kc.IsEmpty())
}

func TestKeyComboStartsWith(t *testing.T) {
	kc := NewKeyCombo(CharEvt('g', ModNone), CharEvt('g', ModNone))
	require.True(t, kc.StartsWith([]KeyEvt{CharEvt('g', ModNone)}))
	require.False(t, kc.StartsWith([]KeyEvt{CharEvt('x', ModNone)}))
	require.False(t, kc.StartsWith([]KeyEvt{CharEvt('g', ModNone), CharEvt('g', ModNone), CharEvt('g', ModNone)}))
}
