package highlight

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"kestrel/internal/document"
	"kestrel/internal/editor"
	"kestrel/internal/keys"
	"kestrel/internal/pubsub"
	"kestrel/internal/server"
)

type noopMode struct{}

func (noopMode) ID() string { return "noop" }
func (noopMode) HandleCombo(keys.KeyCombo, *editor.EditorStateSummary) editor.EditorAction {
	return nil
}
func (noopMode) GetDisplay(*editor.EditorStateSummary) editor.EditorDisplay {
	return editor.EditorDisplay{}
}

func newTestEditorServer(doc *document.Document) *server.EditorServer {
	dm := document.NewDocumentMap()
	dm.InsertAt(0, doc)
	state := document.NewHistoricalEditorState(dm)
	ed := editor.NewModalEditor(state, "noop").WithMode(noopMode{})
	return server.NewEditorServer(ed)
}

func recv(t *testing.T, msgs <-chan pubsub.Event[server.EditorServerMsg]) server.EditorServerMsg {
	t.Helper()
	select {
	case evt := <-msgs:
		return evt.Payload
	case <-time.After(time.Second):
		require.Fail(t, "timeout waiting for broadcast message")
		return server.EditorServerMsg{}
	}
}

func TestHighlightSendsInitTokensThenEnd(t *testing.T) {
	doc := document.NewDocumentFromText(document.FileSource("main.go"), "package main\n")
	es := newTestEditorServer(doc)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	msgs := es.Subscribe(ctx)
	go es.Run(ctx)

	h := New("monokai")
	h.Highlight(es, doc)

	first := recv(t, msgs)
	require.Equal(t, server.MsgStylizeInit, first.Kind)

	sawToken := false
	for {
		evt := recv(t, msgs)
		if evt.Kind == server.MsgStylizeEnd {
			break
		}
		require.Equal(t, server.MsgStylize, evt.Kind)
		sawToken = true
	}
	require.True(t, sawToken, "expected at least one Stylize message for non-empty source")
}

func TestHighlightUnknownExtensionFallsBackWithoutPanicking(t *testing.T) {
	doc := document.NewDocumentFromText(document.ScratchSource(), "plain text\n")
	es := newTestEditorServer(doc)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	_ = es.Subscribe(ctx)
	go es.Run(ctx)

	require.NotPanics(t, func() {
		h := New("monokai")
		h.Highlight(es, doc)
	})

	time.Sleep(10 * time.Millisecond)
}
