package server

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"kestrel/internal/document"
	"kestrel/internal/editor"
	"kestrel/internal/keys"
)

var insertCharGen = editor.TransactionGenerator{
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

type echoMode struct{}

func (echoMode) ID() string { return "echo" }
func (echoMode) HandleCombo(keys.KeyCombo, *editor.EditorStateSummary) editor.EditorAction {
	return editor.EditorAction{editor.TransactionCmd(insertCharGen)}
}
func (echoMode) GetDisplay(*editor.EditorStateSummary) editor.EditorDisplay {
	return editor.EditorDisplay{}
}

func newTestServer() *EditorServer {
	dm := document.NewDocumentMap()
	state := document.NewHistoricalEditorState(dm)
	ed := editor.NewModalEditor(state, "echo").WithMode(echoMode{})
	return NewEditorServer(ed)
}

func TestEditorServerUIEventBroadcastsStateUpdated(t *testing.T) {
	s := newTestServer()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	msgs := s.Subscribe(ctx)
	go s.Run(ctx)

	s.Send(UIEvent(keys.CharEvt('x', keys.ModNone)))

	select {
	case evt := <-msgs:
		require.Equal(t, MsgStateUpdated, evt.Payload.Kind)
		require.Equal(t, "x", evt.Payload.Summary.CurrDoc.Buf().String())
	case <-time.After(time.Second):
		require.Fail(t, "timeout waiting for StateUpdated")
	}
}

func TestEditorServerQuitRequestBroadcastsQuitRequested(t *testing.T) {
	dm := document.NewDocumentMap()
	state := document.NewHistoricalEditorState(dm)
	quitMode := &quitOnAnyKey{}
	ed := editor.NewModalEditor(state, "quit").WithMode(quitMode)
	s := NewEditorServer(ed)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	msgs := s.Subscribe(ctx)
	go s.Run(ctx)

	s.Send(UIEvent(keys.CharEvt('q', keys.ModNone)))

	select {
	case evt := <-msgs:
		require.Equal(t, MsgQuitRequested, evt.Payload.Kind)
	case <-time.After(time.Second):
		require.Fail(t, "timeout waiting for QuitRequested")
	}
}

type quitOnAnyKey struct{}

func (*quitOnAnyKey) ID() string { return "quit" }
func (*quitOnAnyKey) HandleCombo(keys.KeyCombo, *editor.EditorStateSummary) editor.EditorAction {
	return editor.EditorAction{editor.Quit()}
}
func (*quitOnAnyKey) GetDisplay(*editor.EditorStateSummary) editor.EditorDisplay {
	return editor.EditorDisplay{}
}

func TestEditorServerStylizeRoundTripsStyleOnBroadcast(t *testing.T) {
	s := newTestServer()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	msgs := s.Subscribe(ctx)
	go s.Run(ctx)

	s.Send(Stylize(0, 3, StyleAttr{Fg: "red"}))

	select {
	case evt := <-msgs:
		require.Equal(t, MsgStylize, evt.Payload.Kind)
		require.Equal(t, 0, evt.Payload.StylizeStart)
		require.Equal(t, 3, evt.Payload.StylizeEnd)
		require.Equal(t, "red", evt.Payload.StylizeStyle.Fg)
	case <-time.After(time.Second):
		require.Fail(t, "timeout waiting for Stylize broadcast")
	}
}
