package mode

import (
	"kestrel/internal/cursor"
	"kestrel/internal/document"
	"kestrel/internal/editor"
	"kestrel/internal/keys"
	"kestrel/internal/rope"
)

func moveHeadLeft(_ keys.KeyCombo, dm *document.DocumentMap) (*document.Transaction, bool) {
	return moveAllHeads(cursor.LeftGrapheme, dm)
}

var MoveHeadLeft = editor.TransactionGenerator{Name: "move_head_left", Fn: moveHeadLeft}

func moveHeadRight(_ keys.KeyCombo, dm *document.DocumentMap) (*document.Transaction, bool) {
	return moveAllHeads(cursor.RightGrapheme, dm)
}

var MoveHeadRight = editor.TransactionGenerator{Name: "move_head_right", Fn: moveHeadRight}

func moveHeadUp(_ keys.KeyCombo, dm *document.DocumentMap) (*document.Transaction, bool) {
	return moveAllHeads(cursor.UpperGraphemeOrStart, dm)
}

var MoveHeadUp = editor.TransactionGenerator{Name: "move_head_up", Fn: moveHeadUp}

func moveHeadDown(_ keys.KeyCombo, dm *document.DocumentMap) (*document.Transaction, bool) {
	return moveAllHeads(cursor.LowerGraphemeOrEnd, dm)
}

var MoveHeadDown = editor.TransactionGenerator{Name: "move_head_down", Fn: moveHeadDown}

func moveHeadLineStart(_ keys.KeyCombo, dm *document.DocumentMap) (*document.Transaction, bool) {
	return moveAllHeads(cursor.LineStart, dm)
}

var MoveHeadLineStart = editor.TransactionGenerator{Name: "move_head_line_start", Fn: moveHeadLineStart}

func moveHeadLineEnd(_ keys.KeyCombo, dm *document.DocumentMap) (*document.Transaction, bool) {
	return moveAllHeads(cursor.LineEnd, dm)
}

var MoveHeadLineEnd = editor.TransactionGenerator{Name: "move_head_line_end", Fn: moveHeadLineEnd}

func moveHeadFileStart(_ keys.KeyCombo, dm *document.DocumentMap) (*document.Transaction, bool) {
	return moveAllHeads(cursor.FileStart, dm)
}

var MoveHeadFileStart = editor.TransactionGenerator{Name: "move_head_file_start", Fn: moveHeadFileStart}

func moveHeadFileEnd(_ keys.KeyCombo, dm *document.DocumentMap) (*document.Transaction, bool) {
	return moveAllHeads(cursor.FileEnd, dm)
}

var MoveHeadFileEnd = editor.TransactionGenerator{Name: "move_head_file_end", Fn: moveHeadFileEnd}

func moveHeadRightWordStart(_ keys.KeyCombo, dm *document.DocumentMap) (*document.Transaction, bool) {
	return moveAllHeads(cursor.RightWordStart, dm)
}

var MoveHeadRightWordStart = editor.TransactionGenerator{Name: "move_head_right_word_start", Fn: moveHeadRightWordStart}

func moveHeadRightWordEnd(_ keys.KeyCombo, dm *document.DocumentMap) (*document.Transaction, bool) {
	return moveAllHeads(cursor.RightWordEnd, dm)
}

var MoveHeadRightWordEnd = editor.TransactionGenerator{Name: "move_head_right_word_end", Fn: moveHeadRightWordEnd}

func moveHeadLeftWordStart(_ keys.KeyCombo, dm *document.DocumentMap) (*document.Transaction, bool) {
	return moveAllHeads(cursor.LeftWordStart, dm)
}

var MoveHeadLeftWordStart = editor.TransactionGenerator{Name: "move_head_left_word_start", Fn: moveHeadLeftWordStart}

func moveHeadLeftWordEnd(_ keys.KeyCombo, dm *document.DocumentMap) (*document.Transaction, bool) {
	return moveAllHeads(cursor.LeftWordEnd, dm)
}

var MoveHeadLeftWordEnd = editor.TransactionGenerator{Name: "move_head_left_word_end", Fn: moveHeadLeftWordEnd}

// targetCharAt1 extracts the character at the trigger combo's second
// event (index 1), the character typed right after a motion's leading
// key (e.g. the `x` in `fx`/`Fx`).
func targetCharAt1(kc keys.KeyCombo) (string, bool) {
	evt, ok := kc.EventAt(1)
	if !ok || !evt.IsChar {
		return "", false
	}
	return string(evt.Char), true
}

func moveHeadRightOccurrence(kc keys.KeyCombo, dm *document.DocumentMap) (*document.Transaction, bool) {
	target, ok := targetCharAt1(kc)
	if !ok {
		return nil, false
	}
	return moveAllHeads(func(idx int, buf *rope.Rope) (int, bool) {
		return cursor.RightOccurrence(idx, target, buf)
	}, dm)
}

var MoveHeadRightOccurrence = editor.TransactionGenerator{Name: "move_head_right_occurrence", Fn: moveHeadRightOccurrence}

func moveHeadLeftOccurrence(kc keys.KeyCombo, dm *document.DocumentMap) (*document.Transaction, bool) {
	target, ok := targetCharAt1(kc)
	if !ok {
		return nil, false
	}
	return moveAllHeads(func(idx int, buf *rope.Rope) (int, bool) {
		return cursor.LeftOccurrence(idx, target, buf)
	}, dm)
}

var MoveHeadLeftOccurrence = editor.TransactionGenerator{Name: "move_head_left_occurrence", Fn: moveHeadLeftOccurrence}

func selectThisOrNextLine(_ keys.KeyCombo, dm *document.DocumentMap) (*document.Transaction, bool) {
	doc, ok := dm.GetCurrDoc()
	if !ok {
		return nil, false
	}
	buf := doc.Buf()
	tx := document.NewTransaction()
	for _, selID := range sortedSelIDs(doc) {
		sel := doc.Selections[selID]
		min, max := minMax(sel)
		currLineStart, ok1 := cursor.LineStart(sel.Head, buf)
		currLineEnd, ok2 := cursor.LineEnd(sel.Head, buf)
		if !ok1 || !ok2 {
			continue
		}
		if currLineStart == min && currLineEnd == max {
			nextLineStart, ok := cursor.NextLineStart(max, buf)
			if !ok {
				continue
			}
			nextLineEnd, ok := cursor.LineEnd(nextLineStart, buf)
			if !ok {
				continue
			}
			tx.AppendMods(
				document.SelPrim{DocID: dm.Current, SelID: selID, Mod: document.SetHead{NewIdx: nextLineEnd}},
				document.SelPrim{DocID: dm.Current, SelID: selID, Mod: document.SetTail{NewTail: intPtr(nextLineStart)}},
			)
		} else {
			tx.AppendMods(
				document.SelPrim{DocID: dm.Current, SelID: selID, Mod: document.SetHead{NewIdx: currLineEnd}},
				document.SelPrim{DocID: dm.Current, SelID: selID, Mod: document.SetTail{NewTail: intPtr(currLineStart)}},
			)
		}
	}
	return tx, true
}

var SelectThisOrNextLine = editor.TransactionGenerator{Name: "select_this_or_next_line", Fn: selectThisOrNextLine}

func intPtr(i int) *int { return &i }

func deleteSels(_ keys.KeyCombo, dm *document.DocumentMap) (*document.Transaction, bool) {
	doc, ok := dm.GetCurrDoc()
	if !ok {
		return nil, false
	}
	sels := make([]cursor.TextSelection, 0, len(doc.Selections))
	for _, id := range sortedSelIDs(doc) {
		sels = append(sels, doc.Selections[id])
	}
	merged := cursor.CollectMerged(sels, doc.Buf())

	tx := document.NewTransaction()
	for _, rng := range merged {
		start := tx.MapCharIdx(dm.Current, rng[0])
		end := tx.MapCharIdx(dm.Current, rng[1])
		tx.AppendMod(document.TextPrim{DocID: dm.Current, Mod: document.DelRange{Start: start, End: end}})
	}
	for _, selID := range sortedSelIDs(doc) {
		sel := doc.Selections[selID]
		min, _ := minMax(sel)
		newHead := tx.MapCharIdx(dm.Current, min)
		tx.AppendMods(
			document.SelPrim{DocID: dm.Current, SelID: selID, Mod: document.SetHead{NewIdx: newHead}},
			document.SelPrim{DocID: dm.Current, SelID: selID, Mod: document.SetTail{NewTail: intPtr(newHead)}},
		)
	}
	return tx, true
}

var DeleteSels = editor.TransactionGenerator{Name: "delete_sels", Fn: deleteSels}

func insertNewline(_ keys.KeyCombo, dm *document.DocumentMap) (*document.Transaction, bool) {
	doc, ok := dm.GetCurrDoc()
	if !ok {
		return nil, false
	}
	if len(doc.Selections) == 0 {
		return nil, false
	}
	tx := document.NewTransaction()
	for _, selID := range sortedSelIDs(doc) {
		at := tx.MapCharIdx(dm.Current, doc.Selections[selID].Head)
		tx.AppendMod(document.TextPrim{DocID: dm.Current, Mod: document.InsText{At: at, Text: "\n"}})
	}
	return tx, true
}

var InsertNewline = editor.TransactionGenerator{Name: "insert_newline", Fn: insertNewline}

func addSelDown(_ keys.KeyCombo, dm *document.DocumentMap) (*document.Transaction, bool) {
	doc, ok := dm.GetCurrDoc()
	if !ok {
		return nil, false
	}
	ids := sortedSelIDs(doc)
	maxHead := 0
	newSelID := 0
	if len(ids) > 0 {
		maxID := ids[len(ids)-1]
		maxHead = doc.Selections[maxID].Head
		newSelID = maxID + 1
	}
	newHead, ok := cursor.LowerGraphemeOrEnd(maxHead, doc.Buf())
	if !ok {
		return nil, false
	}
	tx := document.NewTransaction()
	tx.AppendMod(document.DocMapPrim{Mod: document.CreateSel{DocID: dm.Current, SelID: newSelID, Sel: cursor.NewCaret(newHead)}})
	return tx, true
}

var AddSelDown = editor.TransactionGenerator{Name: "add_sel_down", Fn: addSelDown}

func collapseSels(_ keys.KeyCombo, dm *document.DocumentMap) (*document.Transaction, bool) {
	doc, ok := dm.GetCurrDoc()
	if !ok {
		return nil, false
	}
	tx := document.NewTransaction()
	for _, selID := range sortedSelIDs(doc) {
		tx.AppendMod(document.SelPrim{DocID: dm.Current, SelID: selID, Mod: document.SetTail{NewTail: nil}})
	}
	return tx, true
}

var CollapseSels = editor.TransactionGenerator{Name: "collapse_sels", Fn: collapseSels}

func collapseSelsForce(kc keys.KeyCombo, dm *document.DocumentMap) (*document.Transaction, bool) {
	return collapseSels(kc, dm)
}

var CollapseSelsForce = editor.TransactionGenerator{Name: "collapse_sels_force", Fn: collapseSelsForce}

func resetSels(_ keys.KeyCombo, dm *document.DocumentMap) (*document.Transaction, bool) {
	doc, ok := dm.GetCurrDoc()
	if !ok {
		return nil, false
	}
	ids := sortedSelIDs(doc)
	if len(ids) == 0 {
		return nil, false
	}
	minSelID := ids[0]
	tx := document.NewTransaction()
	for _, selID := range ids {
		if selID == minSelID {
			continue
		}
		tx.AppendMod(document.DocMapPrim{Mod: document.DeleteSel{DocID: dm.Current, SelID: selID}})
	}
	return tx, true
}

var ResetSels = editor.TransactionGenerator{Name: "reset_sels", Fn: resetSels}

func dropTail(_ keys.KeyCombo, dm *document.DocumentMap) (*document.Transaction, bool) {
	doc, ok := dm.GetCurrDoc()
	if !ok {
		return nil, false
	}
	tx := document.NewTransaction()
	for _, selID := range sortedSelIDs(doc) {
		sel := doc.Selections[selID]
		if sel.Tail != nil {
			continue
		}
		tx.AppendMod(document.SelPrim{DocID: dm.Current, SelID: selID, Mod: document.SetTail{NewTail: intPtr(sel.Head)}})
	}
	return tx, true
}

var DropTail = editor.TransactionGenerator{Name: "drop_tail", Fn: dropTail}

func collapseOrResetSels(kc keys.KeyCombo, dm *document.DocumentMap) (*document.Transaction, bool) {
	doc, ok := dm.GetCurrDoc()
	if !ok {
		return nil, false
	}
	tailsExist := false
	for _, sel := range doc.Selections {
		if sel.Tail != nil {
			tailsExist = true
			break
		}
	}
	if tailsExist {
		return collapseSels(kc, dm)
	}
	return resetSels(kc, dm)
}

var CollapseOrResetSels = editor.TransactionGenerator{Name: "collapse_or_reset_sels", Fn: collapseOrResetSels}

func swapHeadTail(_ keys.KeyCombo, dm *document.DocumentMap) (*document.Transaction, bool) {
	doc, ok := dm.GetCurrDoc()
	if !ok {
		return nil, false
	}
	tx := document.NewTransaction()
	for _, selID := range sortedSelIDs(doc) {
		sel := doc.Selections[selID]
		if sel.Tail == nil {
			continue
		}
		tx.AppendMods(
			document.SelPrim{DocID: dm.Current, SelID: selID, Mod: document.SetTail{NewTail: intPtr(sel.Head)}},
			document.SelPrim{DocID: dm.Current, SelID: selID, Mod: document.SetHead{NewIdx: *sel.Tail}},
		)
	}
	return tx, true
}

var SwapHeadTail = editor.TransactionGenerator{Name: "swap_head_tail", Fn: swapHeadTail}

// NormalMode is the editor's default mode: single-keystroke and
// two-keystroke motions, selection manipulation, and entry points into
// every other mode.
type NormalMode struct {
	triggers *editor.TriggerHandler
}

// NewNormalMode builds a NormalMode with its full keybinding table.
func NewNormalMode() *NormalMode {
	k := func(c rune) keys.KeyMatcher { return keys.Exact(keys.CharEvt(c, keys.ModNone)) }
	n := func(key keys.Key) keys.KeyMatcher { return keys.Exact(keys.NamedEvt(key, keys.ModNone)) }

	th := editor.NewTriggerHandler().
		With(keys.KeyPattern{{k('u')}}, editor.EditorAction{editor.UndoCurrDocument()}).
		With(keys.KeyPattern{{k('U')}}, editor.EditorAction{editor.RedoCurrDocument()}).
		With(keys.KeyPattern{{n(keys.KeyLeft), k('h')}}, editor.EditorAction{
			editor.TransactionCmd(CollapseSels), editor.TransactionCmd(MoveHeadLeft),
		}).
		With(keys.KeyPattern{{n(keys.KeyRight), k('l')}}, editor.EditorAction{
			editor.TransactionCmd(CollapseSels), editor.TransactionCmd(MoveHeadRight),
		}).
		With(keys.KeyPattern{{n(keys.KeyUp), k('k')}}, editor.EditorAction{
			editor.TransactionCmd(CollapseSels), editor.TransactionCmd(MoveHeadUp),
		}).
		With(keys.KeyPattern{{n(keys.KeyDown), k('j')}}, editor.EditorAction{
			editor.TransactionCmd(CollapseSels), editor.TransactionCmd(MoveHeadDown),
		}).
		With(keys.KeyPattern{{k('f')}, {keys.AnyChar(keys.ModNone)}}, editor.EditorAction{
			editor.TransactionCmd(CollapseSels),
			editor.TransactionCmd(MoveHeadRight),
			editor.TransactionCmd(DropTail),
			editor.TransactionCmd(MoveHeadRightOccurrence),
		}).
		With(keys.KeyPattern{{k('F')}, {keys.AnyChar(keys.ModNone)}}, editor.EditorAction{
			editor.TransactionCmd(CollapseSels),
			editor.TransactionCmd(MoveHeadLeft),
			editor.TransactionCmd(DropTail),
			editor.TransactionCmd(MoveHeadLeftOccurrence),
		}).
		With(keys.KeyPattern{{k('w')}}, editor.EditorAction{
			editor.TransactionCmd(CollapseSels),
			editor.TransactionCmd(MoveHeadRightWordStart),
			editor.TransactionCmd(DropTail),
			editor.TransactionCmd(MoveHeadRightWordEnd),
		}).
		With(keys.KeyPattern{{k('W'), k('b')}}, editor.EditorAction{
			editor.TransactionCmd(CollapseSels),
			editor.TransactionCmd(MoveHeadLeftWordStart),
			editor.TransactionCmd(DropTail),
			editor.TransactionCmd(MoveHeadLeftWordEnd),
		}).
		With(keys.KeyPattern{{k('%')}}, editor.EditorAction{
			editor.TransactionCmd(CollapseSelsForce),
			editor.TransactionCmd(MoveHeadFileStart),
			editor.TransactionCmd(DropTail),
			editor.TransactionCmd(MoveHeadFileEnd),
		}).
		With(keys.KeyPattern{{k(';')}}, editor.EditorAction{editor.TransactionCmd(SwapHeadTail)}).
		With(keys.KeyPattern{{k(':')}}, editor.EditorAction{editor.PushMode(CommandModeID)}).
		With(keys.KeyPattern{{k('x')}}, editor.EditorAction{editor.TransactionCmd(SelectThisOrNextLine)}).
		With(keys.KeyPattern{{k('d')}}, editor.EditorAction{
			editor.TransactionCmd(DeleteSels), editor.TransactionCmd(CollapseSels),
		}).
		With(keys.KeyPattern{{k('c')}}, editor.EditorAction{
			editor.TransactionCmd(DeleteSels), editor.TransactionCmd(CollapseSels), editor.PushMode(InsertModeID),
		}).
		With(keys.KeyPattern{{k('C')}}, editor.EditorAction{editor.TransactionCmd(AddSelDown)}).
		With(keys.KeyPattern{{k('i')}}, editor.EditorAction{
			editor.TransactionCmd(CollapseSels), editor.PushMode(InsertModeID),
		}).
		With(keys.KeyPattern{{k('a')}}, editor.EditorAction{
			editor.TransactionCmd(CollapseSels), editor.TransactionCmd(MoveHeadRight), editor.PushMode(InsertModeID),
		}).
		With(keys.KeyPattern{{k('O')}}, editor.EditorAction{
			editor.TransactionCmd(CollapseSels),
			editor.TransactionCmd(MoveHeadLineStart),
			editor.TransactionCmd(InsertNewline),
			editor.PushMode(InsertModeID),
		}).
		With(keys.KeyPattern{{k('o')}}, editor.EditorAction{
			editor.TransactionCmd(CollapseSels),
			editor.TransactionCmd(MoveHeadLineEnd),
			editor.TransactionCmd(MoveHeadRight),
			editor.TransactionCmd(InsertNewline),
			editor.TransactionCmd(MoveHeadRight),
			editor.PushMode(InsertModeID),
		}).
		With(keys.KeyPattern{{k('v')}}, editor.EditorAction{
			editor.TransactionCmd(DropTail), editor.PushMode(SelectionModeID),
		}).
		With(keys.KeyPattern{{k('g')}}, editor.EditorAction{editor.PushMode(GotoModeID)}).
		With(keys.KeyPattern{{n(keys.KeyEsc)}}, editor.EditorAction{editor.TransactionCmd(CollapseOrResetSels)})

	return &NormalMode{triggers: th}
}

const NormalModeID = "normal"

func (m *NormalMode) ID() string { return NormalModeID }

func (m *NormalMode) HandleCombo(kc keys.KeyCombo, _ *editor.EditorStateSummary) editor.EditorAction {
	action, ok := m.triggers.Handle(kc)
	if !ok {
		return nil
	}
	return action
}

func (m *NormalMode) GetDisplay(*editor.EditorStateSummary) editor.EditorDisplay {
	return editor.EditorDisplay{}
}
