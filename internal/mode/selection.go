package mode

import (
	"kestrel/internal/editor"
	"kestrel/internal/keys"
)

// SelectionMode delegates every combo to NormalMode's trigger table,
// then filters the resulting action: a selection-extension session must
// neither collapse its own selections nor recurse into insert or
// another selection mode. Esc collapses whatever is selected and pops.
type SelectionMode struct {
	normal *NormalMode
}

const SelectionModeID = "selection"

// NewSelectionMode wraps normal so selection mode always reflects
// NormalMode's keybinding table without duplicating it.
func NewSelectionMode(normal *NormalMode) *SelectionMode {
	return &SelectionMode{normal: normal}
}

func (m *SelectionMode) ID() string { return SelectionModeID }

func (m *SelectionMode) HandleCombo(kc keys.KeyCombo, state *editor.EditorStateSummary) editor.EditorAction {
	if evt, ok := kc.First(); ok && kc.Len() == 1 && !evt.IsChar && evt.Named == keys.KeyEsc && evt.Mods == keys.ModNone {
		return editor.EditorAction{editor.TransactionCmd(CollapseSels), editor.PopMode()}
	}

	action := m.normal.HandleCombo(kc, state)
	if action == nil {
		return nil
	}

	filtered := make(editor.EditorAction, 0, len(action))
	for _, cmd := range action {
		if cmd.Kind == editor.CmdTransaction && cmd.TxGen.Name == CollapseSels.Name {
			continue
		}
		if cmd.Kind == editor.CmdPushMode && (cmd.ModeName == InsertModeID || cmd.ModeName == SelectionModeID) {
			continue
		}
		filtered = append(filtered, cmd)
	}
	return filtered
}

func (m *SelectionMode) GetDisplay(state *editor.EditorStateSummary) editor.EditorDisplay {
	return m.normal.GetDisplay(state)
}
