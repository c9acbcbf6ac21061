package editor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"kestrel/internal/document"
	"kestrel/internal/keys"
)

type fakeMode struct {
	id      string
	handle  func(kc keys.KeyCombo, state *EditorStateSummary) EditorAction
	display EditorDisplay
}

func (m *fakeMode) ID() string { return m.id }
func (m *fakeMode) HandleCombo(kc keys.KeyCombo, state *EditorStateSummary) EditorAction {
	return m.handle(kc, state)
}
func (m *fakeMode) GetDisplay(*EditorStateSummary) EditorDisplay { return m.display }

var insertCharGen = TransactionGenerator{
	Name: "test_insert_char",
	Fn: func(kc keys.KeyCombo, dm *document.DocumentMap) (*document.Transaction, bool) {
		doc, ok := dm.GetCurrDoc()
		if !ok {
			return nil, false
		}
		text := kc.ExtractText()
		if text == "" {
			return nil, false
		}
		tx := document.NewTransaction()
		tx.AppendMod(document.TextPrim{DocID: dm.Current, Mod: document.InsText{At: doc.Buf().LenChars(), Text: text}})
		return tx, true
	},
}

func newTestEditor(mode *fakeMode) *ModalEditor {
	dm := document.NewDocumentMap()
	state := document.NewHistoricalEditorState(dm)
	return NewModalEditor(state, mode.id).WithMode(mode)
}

func TestUpdateAppliesTransactionAndResetsCombo(t *testing.T) {
	mode := &fakeMode{
		id: "normal",
		handle: func(kc keys.KeyCombo, state *EditorStateSummary) EditorAction {
			return EditorAction{TransactionCmd(insertCharGen)}
		},
	}
	e := newTestEditor(mode)
	e.ReceiveKey(keys.CharEvt('x', keys.ModNone))

	res, err := e.Update()
	require.NoError(t, err)
	require.Equal(t, ResultStateUpdated, res)

	doc, _ := e.historicalState.DocMap.GetCurrDoc()
	require.Equal(t, "x", doc.Buf().String())
	require.Equal(t, 0, e.currCombo.Len(), "a successful command must reset the combo")
}

func TestUpdatePushAndPopMode(t *testing.T) {
	insert := &fakeMode{id: "insert", handle: func(keys.KeyCombo, *EditorStateSummary) EditorAction {
		return EditorAction{PopMode()}
	}}
	normal := &fakeMode{id: "normal", handle: func(keys.KeyCombo, *EditorStateSummary) EditorAction {
		return EditorAction{PushMode("insert")}
	}}
	e := newTestEditor(normal)
	e.WithMode(insert)

	_, err := e.Update()
	require.NoError(t, err)
	m, _ := e.CurrMode()
	require.Equal(t, "insert", m.ID())

	_, err = e.Update()
	require.NoError(t, err)
	m, _ = e.CurrMode()
	require.Equal(t, "normal", m.ID())
}

func TestUpdatePushModeOfUnregisteredModeReturnsInvalidModeError(t *testing.T) {
	normal := &fakeMode{id: "normal", handle: func(keys.KeyCombo, *EditorStateSummary) EditorAction {
		return EditorAction{PushMode("ghost")}
	}}
	e := newTestEditor(normal)
	_, err := e.Update()
	require.Error(t, err)
	var invalidMode *InvalidModeError
	require.ErrorAs(t, err, &invalidMode)
	require.Equal(t, "ghost", invalidMode.Name)
	m, _ := e.CurrMode()
	require.Equal(t, "normal", m.ID())
}

func TestUpdateQuitReturnsQuitRequested(t *testing.T) {
	mode := &fakeMode{id: "normal", handle: func(keys.KeyCombo, *EditorStateSummary) EditorAction {
		return EditorAction{Quit()}
	}}
	e := newTestEditor(mode)
	res, err := e.Update()
	require.NoError(t, err)
	require.Equal(t, ResultQuitRequested, res)
}

func TestUpdateThrowErrResetsComboAndReturnsError(t *testing.T) {
	mode := &fakeMode{id: "normal", handle: func(keys.KeyCombo, *EditorStateSummary) EditorAction {
		return EditorAction{ThrowErr(ModalEditorError{Msg: "bad command"})}
	}}
	e := newTestEditor(mode)
	e.ReceiveKey(keys.CharEvt('z', keys.ModNone))

	_, err := e.Update()
	require.Error(t, err)
	require.Equal(t, "bad command", err.Error())
	require.Equal(t, 0, e.currCombo.Len())
}

func TestUpdateEscWithMultiKeyComboResetsWithoutDispatch(t *testing.T) {
	dispatched := false
	mode := &fakeMode{id: "normal", handle: func(keys.KeyCombo, *EditorStateSummary) EditorAction {
		dispatched = true
		return nil
	}}
	e := newTestEditor(mode)
	e.ReceiveKey(keys.CharEvt('g', keys.ModNone))
	e.ReceiveKey(keys.NamedEvt(keys.KeyEsc, keys.ModNone))

	res, err := e.Update()
	require.NoError(t, err)
	require.Equal(t, ResultStateUpdated, res)
	require.False(t, dispatched, "a multi-key combo ending in Esc must reset before reaching the mode")
	require.Equal(t, 0, e.currCombo.Len())
}

type fakeSaver struct {
	savedPath string
	failSave  bool
}

func (s *fakeSaver) Save(doc *document.Document) error {
	if s.failSave {
		return errors.New("save failed")
	}
	s.savedPath = "(default)"
	doc.MarkClean()
	return nil
}

func (s *fakeSaver) SaveAs(doc *document.Document, newPath string) error {
	s.savedPath = newPath
	doc.MarkClean()
	return nil
}

func TestUpdateSaveCurrDocumentWithSaver(t *testing.T) {
	mode := &fakeMode{id: "normal", handle: func(keys.KeyCombo, *EditorStateSummary) EditorAction {
		return EditorAction{SaveCurrDocument(nil)}
	}}
	e := newTestEditor(mode)
	saver := &fakeSaver{}
	e.WithSaver(saver)

	res, err := e.Update()
	require.NoError(t, err)
	require.Equal(t, ResultStateUpdated, res)
	require.Equal(t, "(default)", saver.savedPath)
}

func TestUpdateSaveWithoutSaverThrows(t *testing.T) {
	mode := &fakeMode{id: "normal", handle: func(keys.KeyCombo, *EditorStateSummary) EditorAction {
		return EditorAction{SaveCurrDocument(nil)}
	}}
	e := newTestEditor(mode)
	_, err := e.Update()
	require.Error(t, err)
	var saveErr *SaveError
	require.ErrorAs(t, err, &saveErr)
}

func TestUpdateUndoWithEmptyHistoryReturnsErrUndoEmpty(t *testing.T) {
	mode := &fakeMode{id: "normal", handle: func(keys.KeyCombo, *EditorStateSummary) EditorAction {
		return EditorAction{UndoCurrDocument()}
	}}
	e := newTestEditor(mode)
	_, err := e.Update()
	require.ErrorIs(t, err, ErrUndoEmpty)
}

func TestUpdateRedoWithEmptyFutureReturnsErrRedoEmpty(t *testing.T) {
	mode := &fakeMode{id: "normal", handle: func(keys.KeyCombo, *EditorStateSummary) EditorAction {
		return EditorAction{RedoCurrDocument()}
	}}
	e := newTestEditor(mode)
	_, err := e.Update()
	require.ErrorIs(t, err, ErrRedoEmpty)
}

func TestUpdatePopBaseModeReturnsErrCannotPopMode(t *testing.T) {
	mode := &fakeMode{id: "normal", handle: func(keys.KeyCombo, *EditorStateSummary) EditorAction {
		return EditorAction{PopMode()}
	}}
	e := newTestEditor(mode)
	_, err := e.Update()
	require.ErrorIs(t, err, ErrCannotPopMode)
}

func TestUpdateFailingTransactionGeneratorReturnsTxError(t *testing.T) {
	failingGen := TransactionGenerator{
		Name: "always_fails",
		Fn: func(keys.KeyCombo, *document.DocumentMap) (*document.Transaction, bool) {
			return nil, false
		},
	}
	mode := &fakeMode{id: "normal", handle: func(keys.KeyCombo, *EditorStateSummary) EditorAction {
		return EditorAction{TransactionCmd(failingGen)}
	}}
	e := newTestEditor(mode)
	_, err := e.Update()
	var txErr *TxError
	require.ErrorAs(t, err, &txErr)
	require.Equal(t, "always_fails", txErr.Generator)
}

// TestUpdateEmptyTransactionIsSilentSuccessNotTxError pins the
// swap_head_tail/drop_tail repro: a generator that legitimately produces
// a non-nil but empty transaction (nothing to do for the current
// selections) must not surface as a TxError, per SPEC_FULL §4.5/§9.
func TestUpdateEmptyTransactionIsSilentSuccessNotTxError(t *testing.T) {
	emptyGen := TransactionGenerator{
		Name: "always_empty",
		Fn: func(keys.KeyCombo, *document.DocumentMap) (*document.Transaction, bool) {
			return document.NewTransaction(), true
		},
	}
	mode := &fakeMode{id: "normal", handle: func(keys.KeyCombo, *EditorStateSummary) EditorAction {
		return EditorAction{TransactionCmd(emptyGen)}
	}}
	e := newTestEditor(mode)
	res, err := e.Update()
	require.NoError(t, err)
	require.Equal(t, ResultStateUpdated, res)
}
