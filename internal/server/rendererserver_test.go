package server

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"kestrel/internal/document"
	"kestrel/internal/editor"
	"kestrel/internal/keys"
)

type fakeFrontend struct {
	mu      sync.Mutex
	updates []editor.EditorStateSummary
	regions [][]StyleRegion
	quit    bool
	err     error
}

func (f *fakeFrontend) StateUpdated(summary editor.EditorStateSummary, regions []StyleRegion) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, summary)
	f.regions = append(f.regions, regions)
}

func (f *fakeFrontend) Error(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakeFrontend) Quit() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.quit = true
}

func (f *fakeFrontend) updateCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.updates)
}

func waitUntil(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	require.Fail(t, "condition never became true")
}

func TestRendererServerRedrawsOnStylizeEnd(t *testing.T) {
	es := newTestServer()
	front := &fakeFrontend{}
	rs := NewRendererServer(es, front)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go es.Run(ctx)
	go rs.Run(ctx)

	es.Send(StylizeInit())
	es.Send(Stylize(0, 1, StyleAttr{Fg: "red"}))
	es.Send(StylizeEnd())

	waitUntil(t, func() bool { return front.updateCount() >= 1 })
}

func TestRendererServerForwardsKeyEventToEditor(t *testing.T) {
	es := newTestServer()
	front := &fakeFrontend{}
	rs := NewRendererServer(es, front)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go es.Run(ctx)
	go rs.Run(ctx)

	rs.Forward(KeyEvent(keys.CharEvt('x', keys.ModNone)))

	waitUntil(t, func() bool { return front.updateCount() >= 1 })
	require.Equal(t, "x", front.updates[0].CurrDoc.Buf().String())
}

func TestRendererServerQuitPropagatesToFrontend(t *testing.T) {
	dmState := document.NewHistoricalEditorState(document.NewDocumentMap())
	ed := editor.NewModalEditor(dmState, "quit").WithMode(&quitOnAnyKey{})
	es := NewEditorServer(ed)
	front := &fakeFrontend{}
	rs := NewRendererServer(es, front)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go es.Run(ctx)
	go rs.Run(ctx)

	rs.Forward(KeyEvent(keys.CharEvt('q', keys.ModNone)))

	waitUntil(t, func() bool {
		front.mu.Lock()
		defer front.mu.Unlock()
		return front.quit
	})
}
