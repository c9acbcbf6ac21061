package server

import (
	"context"

	"kestrel/internal/editor"
	"kestrel/internal/keys"
	"kestrel/internal/log"
	"kestrel/internal/pubsub"
)

// EditorRequestKind discriminates EditorRequest variants.
type EditorRequestKind int

const (
	ReqUIEvent EditorRequestKind = iota
	ReqStylizeInit
	ReqStylize
	ReqStylizeEnd
	ReqUpdateView
)

// EditorRequest is one unit of work sent to the editor worker.
type EditorRequest struct {
	Kind EditorRequestKind

	Key keys.KeyEvt // ReqUIEvent

	StylizeStart int       // ReqStylize
	StylizeEnd   int       // ReqStylize
	StylizeStyle StyleAttr // ReqStylize

	ViewW, ViewH int // ReqUpdateView
}

func UIEvent(evt keys.KeyEvt) EditorRequest { return EditorRequest{Kind: ReqUIEvent, Key: evt} }
func StylizeInit() EditorRequest            { return EditorRequest{Kind: ReqStylizeInit} }
func Stylize(start, end int, style StyleAttr) EditorRequest {
	return EditorRequest{Kind: ReqStylize, StylizeStart: start, StylizeEnd: end, StylizeStyle: style}
}
func StylizeEnd() EditorRequest           { return EditorRequest{Kind: ReqStylizeEnd} }
func UpdateView(w, h int) EditorRequest   { return EditorRequest{Kind: ReqUpdateView, ViewW: w, ViewH: h} }

// EditorServerMsgKind discriminates EditorServerMsg variants.
type EditorServerMsgKind int

const (
	MsgQuitRequested EditorServerMsgKind = iota
	MsgErrorThrown
	MsgStateUpdated
	MsgStylizeInit
	MsgStylize
	MsgStylizeEnd
	MsgViewUpdated
)

// EditorServerMsg is one broadcast event. Its Summary carries a clone of
// the current document taken once per broadcast and shared by every
// subscriber.
type EditorServerMsg struct {
	Kind    EditorServerMsgKind
	Err     error
	Summary editor.EditorStateSummary

	StylizeStart int
	StylizeEnd   int
	StylizeStyle StyleAttr

	ViewW, ViewH int
}

// EditorServer wraps a ModalEditor behind a request channel and
// broadcasts results over a pubsub.Broker, the single-writer/multi-reader
// concurrency shape of §4.10/§5: the worker goroutine started by Run is
// the sole mutator of editor state.
type EditorServer struct {
	editor   *editor.ModalEditor
	requests chan EditorRequest
	broker   *pubsub.Broker[EditorServerMsg]
	viewW    int
	viewH    int
}

// NewEditorServer wraps ed behind a buffered request channel.
func NewEditorServer(ed *editor.ModalEditor) *EditorServer {
	return &EditorServer{
		editor:   ed,
		requests: make(chan EditorRequest, 64),
		broker:   pubsub.NewBroker[EditorServerMsg](),
	}
}

// Subscribe returns a channel of broadcast messages, closed when ctx is
// cancelled.
func (s *EditorServer) Subscribe(ctx context.Context) <-chan pubsub.Event[EditorServerMsg] {
	return s.broker.Subscribe(ctx)
}

// Send enqueues req for the worker loop. Non-blocking would drop work,
// so Send blocks if the queue is full — the editor worker is expected to
// drain faster than a human types.
func (s *EditorServer) Send(req EditorRequest) {
	s.requests <- req
}

// Run drains requests until ctx is cancelled, applying each to the
// wrapped ModalEditor and broadcasting the outcome. This is the sole
// writer of editor state; callers must not touch the wrapped
// ModalEditor directly once Run has started.
func (s *EditorServer) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case req := <-s.requests:
			s.handle(req)
		}
	}
}

func (s *EditorServer) handle(req EditorRequest) {
	switch req.Kind {
	case ReqUIEvent:
		s.editor.ReceiveKey(req.Key)
		result, err := s.editor.Update()
		if err != nil {
			log.Error(log.CatServer, "editor update failed", "error", err)
			s.broker.Publish(pubsub.UpdatedEvent, EditorServerMsg{Kind: MsgErrorThrown, Err: err})
			return
		}
		if result == editor.ResultQuitRequested {
			s.broker.Publish(pubsub.UpdatedEvent, EditorServerMsg{Kind: MsgQuitRequested})
			return
		}
		s.broker.Publish(pubsub.UpdatedEvent, EditorServerMsg{Kind: MsgStateUpdated, Summary: s.snapshot()})
	case ReqStylizeInit:
		s.broker.Publish(pubsub.UpdatedEvent, EditorServerMsg{Kind: MsgStylizeInit, Summary: s.snapshot()})
	case ReqStylize:
		s.broker.Publish(pubsub.UpdatedEvent, EditorServerMsg{
			Kind: MsgStylize, Summary: s.snapshot(),
			StylizeStart: req.StylizeStart, StylizeEnd: req.StylizeEnd, StylizeStyle: req.StylizeStyle,
		})
	case ReqStylizeEnd:
		s.broker.Publish(pubsub.UpdatedEvent, EditorServerMsg{Kind: MsgStylizeEnd, Summary: s.snapshot()})
	case ReqUpdateView:
		s.viewW, s.viewH = req.ViewW, req.ViewH
		s.broker.Publish(pubsub.UpdatedEvent, EditorServerMsg{
			Kind: MsgViewUpdated, Summary: s.snapshot(), ViewW: req.ViewW, ViewH: req.ViewH,
		})
	}
}

// snapshot takes the editor's current summary, cloning its document so
// the broadcast copy can't alias the worker's own state.
func (s *EditorServer) snapshot() editor.EditorStateSummary {
	summary := s.editor.Summary()
	if summary.CurrDoc != nil {
		summary.CurrDoc = summary.CurrDoc.Clone()
	}
	return summary
}
