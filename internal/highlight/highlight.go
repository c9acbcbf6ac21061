// Package highlight is the syntax-highlighter collaborator: a separate
// worker that subscribes to editor state updates and re-lexes the
// current document, grounded on original_source/src/highlighter.rs and
// the chroma/v2 stack already pulled in by the teacher repo for
// markdown rendering.
package highlight

import (
	"context"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"kestrel/internal/document"
	"kestrel/internal/log"
	"kestrel/internal/server"
)

// Highlighter lexes documents and drives an EditorServer's Stylize*
// request stream from the resulting tokens, keyed off a named chroma
// style.
type Highlighter struct {
	style *chroma.Style
}

// New returns a Highlighter painting with the named chroma style preset,
// falling back to chroma's built-in default when the name is unknown.
func New(styleName string) *Highlighter {
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}
	return &Highlighter{style: style}
}

// Run subscribes to es's broadcast stream and re-highlights the current
// document on every StateUpdated message, the external Highlighter
// contract of §6: a separate task, not a method the editor calls
// directly.
func (h *Highlighter) Run(ctx context.Context, es *server.EditorServer) {
	msgs := es.Subscribe(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-msgs:
			if !ok {
				return
			}
			if evt.Payload.Kind != server.MsgStateUpdated || evt.Payload.Summary.CurrDoc == nil {
				continue
			}
			h.Highlight(es, evt.Payload.Summary.CurrDoc)
		}
	}
}

// Highlight lexes doc's buffer line by line, keyed off its source's
// file extension, and sends StylizeInit, one Stylize per token, then
// StylizeEnd to es.
func (h *Highlighter) Highlight(es *server.EditorServer, doc *document.Document) {
	es.Send(server.StylizeInit())

	lexer := lexers.Match("file." + doc.Source.Ext())
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	buf := doc.Buf()
	for i, line := range buf.Lines() {
		lineStart, err := buf.LineToChar(i)
		if err != nil {
			break
		}
		iter, err := lexer.Tokenise(nil, line)
		if err != nil {
			log.Warn(log.CatHighlight, "tokenise failed", "line", i, "error", err)
			continue
		}
		charIdx := lineStart
		for _, tok := range iter.Tokens() {
			runeLen := len([]rune(tok.Value))
			if runeLen == 0 {
				continue
			}
			entry := h.style.Get(tok.Type)
			es.Send(server.Stylize(charIdx, charIdx+runeLen, styleAttrOf(entry)))
			charIdx += runeLen
		}
	}

	es.Send(server.StylizeEnd())
}

// styleAttrOf converts a chroma style entry into the Stylizer's
// {fg, bg, highlight} attribute shape.
func styleAttrOf(entry chroma.StyleEntry) server.StyleAttr {
	var attr server.StyleAttr
	if entry.Colour.IsSet() {
		attr.Fg = entry.Colour.String()
	}
	if entry.Background.IsSet() {
		attr.Bg = entry.Background.String()
	}
	return attr
}
