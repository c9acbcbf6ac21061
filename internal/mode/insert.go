package mode

import (
	"kestrel/internal/cursor"
	"kestrel/internal/document"
	"kestrel/internal/editor"
	"kestrel/internal/keys"
)

// insertKey inserts the trigger combo's printable text at every
// selection's head, remapping each subsequent selection's insertion
// point through the primitives already queued in this transaction (the
// multi-cursor discipline of §4.8) and leaving the head at the right
// edge of what it just inserted.
func insertKey(kc keys.KeyCombo, dm *document.DocumentMap) (*document.Transaction, bool) {
	doc, ok := dm.GetCurrDoc()
	if !ok {
		return nil, false
	}
	text := kc.ExtractText()
	if text == "" {
		return nil, false
	}
	runeCount := len([]rune(text))
	tx := document.NewTransaction()
	for _, selID := range sortedSelIDs(doc) {
		sel := doc.Selections[selID]
		at := tx.MapCharIdx(dm.Current, sel.Head)
		tx.AppendMod(document.TextPrim{DocID: dm.Current, Mod: document.InsText{At: at, Text: text}})
		tx.AppendMod(document.SelPrim{DocID: dm.Current, SelID: selID, Mod: document.SetHead{NewIdx: at + runeCount}})
	}
	return tx, true
}

var InsertKey = editor.TransactionGenerator{Name: "insert_key", Fn: insertKey}

// deleteLeft removes one grapheme to the left of every selection's
// head, remapping each range through the deletions already queued;
// cursors that share a head delete their shared grapheme only once.
func deleteLeft(_ keys.KeyCombo, dm *document.DocumentMap) (*document.Transaction, bool) {
	return deleteOneGraphemeEachWay(dm, true)
}

var DeleteLeft = editor.TransactionGenerator{Name: "delete_left", Fn: deleteLeft}

// deleteRight removes one grapheme to the right of every selection's head.
func deleteRight(_ keys.KeyCombo, dm *document.DocumentMap) (*document.Transaction, bool) {
	return deleteOneGraphemeEachWay(dm, false)
}

var DeleteRight = editor.TransactionGenerator{Name: "delete_right", Fn: deleteRight}

func deleteOneGraphemeEachWay(dm *document.DocumentMap, left bool) (*document.Transaction, bool) {
	doc, ok := dm.GetCurrDoc()
	if !ok {
		return nil, false
	}
	buf := doc.Buf()
	tx := document.NewTransaction()
	deleted := map[[2]int]bool{}
	for _, selID := range sortedSelIDs(doc) {
		sel := doc.Selections[selID]
		var start, end int
		if left {
			prev, ok := cursor.LeftGrapheme(sel.Head, buf)
			if !ok || prev == sel.Head {
				continue
			}
			start, end = prev, sel.Head
		} else {
			next, ok := cursor.RightGrapheme(sel.Head, buf)
			if !ok || next == sel.Head {
				continue
			}
			start, end = sel.Head, next
		}
		if !deleted[[2]int{start, end}] {
			mStart := tx.MapCharIdx(dm.Current, start)
			mEnd := tx.MapCharIdx(dm.Current, end)
			if mStart >= mEnd {
				continue
			}
			tx.AppendMod(document.TextPrim{DocID: dm.Current, Mod: document.DelRange{Start: mStart, End: mEnd}})
			deleted[[2]int{start, end}] = true
		}
		newHead := tx.MapCharIdx(dm.Current, start)
		tx.AppendMod(document.SelPrim{DocID: dm.Current, SelID: selID, Mod: document.SetHead{NewIdx: newHead}})
		tx.AppendMod(document.SelPrim{DocID: dm.Current, SelID: selID, Mod: document.SetTail{NewTail: nil}})
	}
	return tx, true
}

// InsertMode is the text-entry mode: printable characters, Tab and
// Enter insert; Backspace/Delete remove a grapheme; arrows reposition;
// Ctrl-Z/Ctrl-Y undo/redo; Esc pops back to the mode below.
type InsertMode struct {
	triggers *editor.TriggerHandler
}

const InsertModeID = "insert"

// NewInsertMode builds an InsertMode with its full keybinding table.
func NewInsertMode() *InsertMode {
	n := func(key keys.Key) keys.KeyMatcher { return keys.Exact(keys.NamedEvt(key, keys.ModNone)) }

	th := editor.NewTriggerHandler().
		With(keys.KeyPattern{{n(keys.KeyEsc)}}, editor.EditorAction{editor.PopMode()}).
		With(keys.KeyPattern{{n(keys.KeyBackspace)}}, editor.EditorAction{editor.TransactionCmd(DeleteLeft)}).
		With(keys.KeyPattern{{n(keys.KeyDel)}}, editor.EditorAction{editor.TransactionCmd(DeleteRight)}).
		With(keys.KeyPattern{{n(keys.KeyLeft)}}, editor.EditorAction{editor.TransactionCmd(MoveHeadLeft)}).
		With(keys.KeyPattern{{n(keys.KeyRight)}}, editor.EditorAction{editor.TransactionCmd(MoveHeadRight)}).
		With(keys.KeyPattern{{n(keys.KeyUp)}}, editor.EditorAction{editor.TransactionCmd(MoveHeadUp)}).
		With(keys.KeyPattern{{n(keys.KeyDown)}}, editor.EditorAction{editor.TransactionCmd(MoveHeadDown)}).
		With(keys.KeyPattern{{keys.Exact(keys.CharEvt('z', keys.ModCtrl))}}, editor.EditorAction{editor.UndoCurrDocument()}).
		With(keys.KeyPattern{{keys.Exact(keys.CharEvt('y', keys.ModCtrl))}}, editor.EditorAction{editor.RedoCurrDocument()}).
		With(keys.KeyPattern{{n(keys.KeyEnter)}}, editor.EditorAction{editor.TransactionCmd(InsertKey)}).
		With(keys.KeyPattern{{n(keys.KeyTab)}}, editor.EditorAction{editor.TransactionCmd(InsertKey)}).
		With(keys.KeyPattern{{keys.AnyChar(keys.ModNone), keys.AnyChar(keys.ModShift)}}, editor.EditorAction{editor.TransactionCmd(InsertKey)})

	return &InsertMode{triggers: th}
}

func (m *InsertMode) ID() string { return InsertModeID }

func (m *InsertMode) HandleCombo(kc keys.KeyCombo, _ *editor.EditorStateSummary) editor.EditorAction {
	action, ok := m.triggers.Handle(kc)
	if !ok {
		return nil
	}
	return action
}

func (m *InsertMode) GetDisplay(*editor.EditorStateSummary) editor.EditorDisplay {
	return editor.EditorDisplay{}
}
