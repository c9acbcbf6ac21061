package termui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"kestrel/internal/keys"
)

func TestDecodeKeyPlainRune(t *testing.T) {
	evt, ok := decodeKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	require.True(t, ok)
	require.Equal(t, keys.CharEvt('x', keys.ModNone), evt)
}

func TestDecodeKeyNamedKey(t *testing.T) {
	evt, ok := decodeKey(tea.KeyMsg{Type: tea.KeyEsc})
	require.True(t, ok)
	require.Equal(t, keys.NamedEvt(keys.KeyEsc, keys.ModNone), evt)
}

func TestDecodeKeyCtrlLetterBecomesCharWithModCtrl(t *testing.T) {
	evt, ok := decodeKey(tea.KeyMsg{Type: tea.KeyCtrlZ})
	require.True(t, ok)
	require.Equal(t, keys.CharEvt('z', keys.ModCtrl), evt)
}

func TestDecodeKeyUnmappedTypeReturnsFalse(t *testing.T) {
	_, ok := decodeKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{}})
	require.False(t, ok)
}
