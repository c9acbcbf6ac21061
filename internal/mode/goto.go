package mode

import (
	"kestrel/internal/editor"
	"kestrel/internal/keys"
)

// GotoMode is the two-keystroke motion mode entered by NormalMode's
// 'g': its only job is picking a destination, so every trigger both
// performs the jump and pops back to whatever mode pushed it.
type GotoMode struct {
	triggers *editor.TriggerHandler
}

const GotoModeID = "goto"

// NewGotoMode builds a GotoMode with its full keybinding table.
func NewGotoMode() *GotoMode {
	k := func(c rune) keys.KeyMatcher { return keys.Exact(keys.CharEvt(c, keys.ModNone)) }
	n := func(key keys.Key) keys.KeyMatcher { return keys.Exact(keys.NamedEvt(key, keys.ModNone)) }

	th := editor.NewTriggerHandler().
		With(keys.KeyPattern{{k('g')}}, editor.EditorAction{
			editor.TransactionCmd(CollapseSels), editor.TransactionCmd(MoveHeadFileStart), editor.PopMode(),
		}).
		With(keys.KeyPattern{{k('e')}}, editor.EditorAction{
			editor.TransactionCmd(CollapseSels), editor.TransactionCmd(MoveHeadFileEnd), editor.PopMode(),
		}).
		With(keys.KeyPattern{{k('h')}}, editor.EditorAction{
			editor.TransactionCmd(CollapseSels), editor.TransactionCmd(MoveHeadLineStart), editor.PopMode(),
		}).
		With(keys.KeyPattern{{k('l')}}, editor.EditorAction{
			editor.TransactionCmd(CollapseSels), editor.TransactionCmd(MoveHeadLineEnd), editor.PopMode(),
		}).
		With(keys.KeyPattern{{n(keys.KeyEsc)}}, editor.EditorAction{editor.PopMode()})

	return &GotoMode{triggers: th}
}

func (m *GotoMode) ID() string { return GotoModeID }

func (m *GotoMode) HandleCombo(kc keys.KeyCombo, _ *editor.EditorStateSummary) editor.EditorAction {
	action, ok := m.triggers.Handle(kc)
	if !ok {
		return editor.EditorAction{editor.PopMode()}
	}
	return action
}

func (m *GotoMode) GetDisplay(*editor.EditorStateSummary) editor.EditorDisplay {
	return editor.EditorDisplay{}
}
