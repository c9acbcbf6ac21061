package editor

import (
	"kestrel/internal/document"
	"kestrel/internal/keys"
)

// DocumentSaver persists a document to disk. internal/fileio.Store
// satisfies this interface; a custom one can be substituted for tests.
type DocumentSaver interface {
	Save(doc *document.Document) error
	SaveAs(doc *document.Document, newPath string) error
}

var escCombo = []keys.KeyEvt{keys.NamedEvt(keys.KeyEsc, keys.ModNone)}

// ModalEditor is the driver loop: it owns undo-tracked document state,
// the stack of active modes, and the in-flight key combo.
type ModalEditor struct {
	historicalState *document.HistoricalEditorState
	registeredModes map[string]EditorMode
	activeModes     []string // front = activeModes[0], mirrors a VecDeque used as a stack
	currCombo       keys.KeyCombo
	saver           DocumentSaver
}

// NewModalEditor returns a driver seeded with state and starting in
// baseMode (which need not be registered yet).
func NewModalEditor(state *document.HistoricalEditorState, baseMode string) *ModalEditor {
	return &ModalEditor{
		historicalState: state,
		registeredModes: make(map[string]EditorMode),
		activeModes:     []string{baseMode},
	}
}

// WithMode registers mode under its own ID and returns the receiver.
func (e *ModalEditor) WithMode(mode EditorMode) *ModalEditor {
	e.registeredModes[mode.ID()] = mode
	return e
}

// WithSaver installs the collaborator used by CmdSaveCurrDocument.
func (e *ModalEditor) WithSaver(s DocumentSaver) *ModalEditor {
	e.saver = s
	return e
}

// ReceiveKey appends evt to the in-flight combo.
func (e *ModalEditor) ReceiveKey(evt keys.KeyEvt) {
	e.currCombo.Add(evt)
}

// CurrMode returns the mode at the front of the active-mode stack.
func (e *ModalEditor) CurrMode() (EditorMode, bool) {
	if len(e.activeModes) == 0 {
		return nil, false
	}
	m, ok := e.registeredModes[e.activeModes[0]]
	return m, ok
}

// Update interprets the current key combo against the active mode,
// applying whatever editor commands the mode's action produces. It may
// change the active mode or reset the combo. Returns ResultQuitRequested
// once a Quit command is processed, or a ModalEditorError surfaced by a
// ThrowErr command.
func (e *ModalEditor) Update() (ModalEditorResult, error) {
	summary := e.Summary()

	if e.currCombo.Len() > 1 && e.currCombo.EndsWith(escCombo) {
		e.currCombo.Reset()
		return ResultStateUpdated, nil
	}

	mode, ok := e.CurrMode()
	if !ok {
		return ResultStateUpdated, ErrNoMode
	}

	comboSnapshot := e.currCombo
	action := mode.HandleCombo(comboSnapshot, &summary)

	anyResult := false
	for _, cmd := range action {
		switch cmd.Kind {
		case CmdUndoCurrDocument:
			if !e.historicalState.Undo() {
				e.currCombo.Reset()
				return ResultStateUpdated, ErrUndoEmpty
			}
			anyResult = true
		case CmdRedoCurrDocument:
			if !e.historicalState.Redo() {
				e.currCombo.Reset()
				return ResultStateUpdated, ErrRedoEmpty
			}
			anyResult = true
		case CmdTransaction:
			switch ModifyWithTxGen(e.historicalState, e.currCombo, cmd.TxGen) {
			case TxGenFailed:
				e.currCombo.Reset()
				return ResultStateUpdated, &TxError{Generator: cmd.TxGen.Name}
			case TxGenEmpty, TxGenApplied:
				anyResult = true
			}
		case CmdPushMode:
			if _, exists := e.registeredModes[cmd.ModeName]; !exists {
				e.currCombo.Reset()
				return ResultStateUpdated, &InvalidModeError{Name: cmd.ModeName}
			}
			e.activeModes = append([]string{cmd.ModeName}, e.activeModes...)
			anyResult = true
		case CmdPopMode:
			if len(e.activeModes) <= 1 {
				e.currCombo.Reset()
				return ResultStateUpdated, ErrCannotPopMode
			}
			e.activeModes = e.activeModes[1:]
			anyResult = true
		case CmdResetCombo:
			e.currCombo.Reset()
			anyResult = true
		case CmdSaveCurrDocument:
			if err := e.save(cmd.SavePath); err != nil {
				e.currCombo.Reset()
				return ResultStateUpdated, &SaveError{Err: err}
			}
			anyResult = true
		case CmdQuit:
			return ResultQuitRequested, nil
		case CmdThrowErr:
			e.currCombo.Reset()
			return ResultStateUpdated, cmd.Err
		}
	}

	if anyResult {
		e.currCombo.Reset()
	}
	return ResultStateUpdated, nil
}

func (e *ModalEditor) save(path *string) error {
	doc, ok := e.historicalState.DocMap.GetCurrDoc()
	if !ok || e.saver == nil {
		return ModalEditorError{Msg: "could not save"}
	}
	if path != nil {
		return e.saver.SaveAs(doc, *path)
	}
	return e.saver.Save(doc)
}

// TxGenOutcome distinguishes the three results a transaction generator
// can produce, per SPEC_FULL §4.5/§9: a real failure (the generator
// returned nil, or the transaction failed to apply) surfaces as a
// TxError; an empty-but-non-nil transaction is a silent success that is
// not recorded in history; anything else applied and was recorded.
type TxGenOutcome int

const (
	TxGenFailed TxGenOutcome = iota
	TxGenEmpty
	TxGenApplied
)

// ModifyWithTxGen runs gen against combo and dm, applying the resulting
// transaction (if any) to state.
func ModifyWithTxGen(state *document.HistoricalEditorState, combo keys.KeyCombo, gen TransactionGenerator) TxGenOutcome {
	tx, ok := gen.Fn(combo, state.DocMap)
	if !ok {
		return TxGenFailed
	}
	empty := len(tx.Mods) == 0
	if !state.ModifyWithTx(tx) {
		return TxGenFailed
	}
	if empty {
		return TxGenEmpty
	}
	return TxGenApplied
}

// Summary snapshots the editor's current state for mode consumption.
func (e *ModalEditor) Summary() EditorStateSummary {
	doc, ok := e.historicalState.DocMap.GetCurrDoc()
	if !ok {
		doc = document.NewEmptyDocument()
	}
	modeID := "none"
	if m, ok := e.CurrMode(); ok {
		modeID = m.ID()
	}
	summary := EditorStateSummary{
		CurrDoc:       doc,
		CurrBufferIdx: e.historicalState.DocMap.Current,
		CurrMode:      modeID,
		CurrCombo:     e.currCombo,
	}
	if m, ok := e.CurrMode(); ok {
		summary.Display = m.GetDisplay(&summary)
	}
	return summary
}
