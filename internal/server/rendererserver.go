package server

import (
	"context"

	"kestrel/internal/cursor"
	"kestrel/internal/editor"
	"kestrel/internal/keys"
)

// RendererEventKind discriminates RendererEvent variants (inbound from
// a frontend's own event loop).
type RendererEventKind int

const (
	EvtKeyEvent RendererEventKind = iota
	EvtResized
)

// RendererEvent is a frontend-originated event: a decoded keypress or a
// layout change.
type RendererEvent struct {
	Kind          RendererEventKind
	Key           keys.KeyEvt
	Width, Height int
}

func KeyEvent(evt keys.KeyEvt) RendererEvent { return RendererEvent{Kind: EvtKeyEvent, Key: evt} }
func Resized(w, h int) RendererEvent         { return RendererEvent{Kind: EvtResized, Width: w, Height: h} }

// Frontend is the pluggable terminal-toolkit collaborator: it receives
// redraw instructions and lifecycle notifications, and is expected to
// feed RendererEvents back in through whatever channel its own event
// loop is wired to.
type Frontend interface {
	StateUpdated(summary editor.EditorStateSummary, regions []StyleRegion)
	Error(err error)
	Quit()
}

// highlightStyle is layered over a selection's covered span on every
// redraw so the caret/selection renders regardless of what the syntax
// highlighter laid down underneath.
var highlightStyle = StyleAttr{Highlight: true}

// RendererServer owns the stylizer and a pluggable frontend: it
// forwards frontend-originated events to the editor as requests, and on
// a qualifying editor message recomputes style regions and redraws.
type RendererServer struct {
	es       *EditorServer
	stylizer *Stylizer
	frontend Frontend
}

// NewRendererServer wires front up to es's broadcast stream.
func NewRendererServer(es *EditorServer, front Frontend) *RendererServer {
	return &RendererServer{es: es, stylizer: NewStylizer(), frontend: front}
}

// Forward translates a frontend-originated event into an editor
// request (a resize updates the view; a key is queued for the editor).
func (r *RendererServer) Forward(evt RendererEvent) {
	switch evt.Kind {
	case EvtKeyEvent:
		r.es.Send(UIEvent(evt.Key))
	case EvtResized:
		r.es.Send(UpdateView(evt.Width, evt.Height))
	}
}

// Run consumes es's broadcast stream until ctx is cancelled, redrawing
// eagerly (one redraw per qualifying message) rather than coalescing
// consecutive Stylize* messages into a single frame.
func (r *RendererServer) Run(ctx context.Context) {
	msgs := r.es.Subscribe(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-msgs:
			if !ok {
				return
			}
			r.handle(evt.Payload)
		}
	}
}

func (r *RendererServer) handle(msg EditorServerMsg) {
	switch msg.Kind {
	case MsgQuitRequested:
		r.frontend.Quit()
	case MsgErrorThrown:
		r.frontend.Error(msg.Err)
	case MsgStylizeInit:
		r.stylizer.Reset()
	case MsgStylize:
		r.stylizer.LayerRegionStyle(msg.StylizeStart, msg.StylizeEnd, msg.StylizeStyle)
	case MsgStylizeEnd:
		r.redraw(msg.Summary)
	case MsgViewUpdated:
		r.redraw(msg.Summary)
	case MsgStateUpdated:
		r.redraw(msg.Summary)
	}
}

// redraw layers selection highlights onto a throwaway clone of the
// stylizer's persistent syntax-highlighting state, computes the
// flattened regions, and hands them to the frontend alongside summary.
// The clone keeps repeated redraws (e.g. consecutive ViewUpdated
// messages with no intervening StylizeInit) from accumulating duplicate
// highlight layers in the persistent stylizer.
func (r *RendererServer) redraw(summary editor.EditorStateSummary) {
	overlay := r.stylizer.Clone()
	if summary.CurrDoc != nil {
		buf := summary.CurrDoc.Buf()
		sels := make([]cursor.TextSelection, 0, len(summary.CurrDoc.Selections))
		for _, sel := range summary.CurrDoc.Selections {
			sels = append(sels, sel)
		}
		for _, iv := range cursor.CollectMerged(sels, buf) {
			overlay.LayerRegionStyle(iv[0], iv[1], highlightStyle)
		}
	}
	regions := overlay.ComputeRegions(0)
	r.frontend.StateUpdated(summary, regions)
}
