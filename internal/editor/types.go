// Package editor drives the modal key-interpretation loop: it owns the
// undo-tracked document state, the stack of active modes, and the
// in-flight key combo, translating mode-produced actions into document
// mutations.
package editor

import (
	"kestrel/internal/document"
	"kestrel/internal/keys"
)

// TransactionGenerator is a named pure function from a trigger combo and
// the document map to an optional transaction. The name exists purely
// for debug display and equality comparisons, mirroring the distinct
// function identity Rust's `#[tx_generator]` macro captured as a named
// constant — Go has no attribute-macro equivalent, so each generator is
// a hand-declared package-level value beside its implementing function.
type TransactionGenerator struct {
	Name string
	Fn   func(kc keys.KeyCombo, dm *document.DocumentMap) (*document.Transaction, bool)
}

// ActionGenerator is a named function from command-line arguments and
// the current editor state to an optional action, used by command mode.
type ActionGenerator struct {
	name string
	Fn   func(args []string, state *EditorStateSummary) (EditorAction, bool)
}

// Name returns the generator's stable lookup key (also its command name).
func (a ActionGenerator) Name() string { return a.name }

// NewActionGenerator builds an ActionGenerator under the given name.
func NewActionGenerator(name string, fn func(args []string, state *EditorStateSummary) (EditorAction, bool)) ActionGenerator {
	return ActionGenerator{name: name, Fn: fn}
}

// EditorCmdKind discriminates the EditorCmd variants.
type EditorCmdKind int

const (
	CmdUndoCurrDocument EditorCmdKind = iota
	CmdRedoCurrDocument
	CmdSaveCurrDocument
	CmdTransaction
	CmdPushMode
	CmdPopMode
	CmdResetCombo
	CmdQuit
	CmdThrowErr
)

// EditorCmd is one unit of work a mode asks the driver to perform.
type EditorCmd struct {
	Kind     EditorCmdKind
	SavePath *string              // CmdSaveCurrDocument
	TxGen    TransactionGenerator // CmdTransaction
	ModeName string               // CmdPushMode
	Err      ModalEditorError     // CmdThrowErr
}

func UndoCurrDocument() EditorCmd { return EditorCmd{Kind: CmdUndoCurrDocument} }
func RedoCurrDocument() EditorCmd { return EditorCmd{Kind: CmdRedoCurrDocument} }
func SaveCurrDocument(path *string) EditorCmd {
	return EditorCmd{Kind: CmdSaveCurrDocument, SavePath: path}
}
func TransactionCmd(gen TransactionGenerator) EditorCmd {
	return EditorCmd{Kind: CmdTransaction, TxGen: gen}
}
func PushMode(name string) EditorCmd { return EditorCmd{Kind: CmdPushMode, ModeName: name} }
func PopMode() EditorCmd             { return EditorCmd{Kind: CmdPopMode} }
func ResetCombo() EditorCmd          { return EditorCmd{Kind: CmdResetCombo} }
func Quit() EditorCmd                { return EditorCmd{Kind: CmdQuit} }
func ThrowErr(err ModalEditorError) EditorCmd {
	return EditorCmd{Kind: CmdThrowErr, Err: err}
}

// EditorAction is an ordered sequence of commands produced by a mode in
// response to one key combo.
type EditorAction []EditorCmd

// Append adds cmd to the end of the action.
func (a *EditorAction) Append(cmd EditorCmd) { *a = append(*a, cmd) }

// Prepend adds cmd to the front of the action.
func (a *EditorAction) Prepend(cmd EditorCmd) {
	*a = append(EditorAction{cmd}, (*a)...)
}

// EditorDisplay is the bundle of optional text a mode wants rendered
// around the editor surface (status bar, autocomplete box, etc).
type EditorDisplay struct {
	BtmBarText   *string
	RightBoxText *string
	MidBoxText   *string
	CursorText   *string
}

// ModalEditorResult reports what update() accomplished.
type ModalEditorResult int

const (
	ResultQuitRequested ModalEditorResult = iota
	ResultStateUpdated
)

// EditorStateSummary is the read-only view of editor state a mode's
// HandleCombo/GetDisplay methods get to consult.
type EditorStateSummary struct {
	CurrDoc       *document.Document
	CurrBufferIdx int
	CurrMode      string
	CurrCombo     keys.KeyCombo
	Display       EditorDisplay
}

// EditorMode is one modal policy: it owns trigger interpretation and an
// optional status display.
type EditorMode interface {
	ID() string
	HandleCombo(kc keys.KeyCombo, state *EditorStateSummary) EditorAction
	GetDisplay(state *EditorStateSummary) EditorDisplay
}

type trigger struct {
	pattern keys.KeyPattern
	action  EditorAction
}

// TriggerHandler maps key patterns to editor actions, first match wins.
type TriggerHandler struct {
	triggers []trigger
}

// NewTriggerHandler returns an empty handler.
func NewTriggerHandler() *TriggerHandler { return &TriggerHandler{} }

// With associates pattern with action and returns the receiver, for
// fluent chained construction.
func (t *TriggerHandler) With(pattern keys.KeyPattern, action EditorAction) *TriggerHandler {
	t.triggers = append(t.triggers, trigger{pattern: pattern, action: action})
	return t
}

// Handle returns the action of the first pattern matching kc.
func (t *TriggerHandler) Handle(kc keys.KeyCombo) (EditorAction, bool) {
	for _, tr := range t.triggers {
		if tr.pattern.Matches(kc) {
			return tr.action, true
		}
	}
	return nil, false
}
