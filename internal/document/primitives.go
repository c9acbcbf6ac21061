package document

import (
	"unicode/utf8"

	"kestrel/internal/cursor"
	"kestrel/internal/rope"
)

// BufMod is the smallest invertible change to a document's text buffer.
type BufMod interface {
	apply(buf *rope.Rope) (BufMod, bool)
}

// InsText inserts Text at char index At.
type InsText struct {
	At   int
	Text string
}

func (m InsText) apply(buf *rope.Rope) (BufMod, bool) {
	if err := buf.InsertAt(m.At, m.Text); err != nil {
		return nil, false
	}
	// The inverse deletes exactly the inserted run, measured in
	// characters (not bytes) — see DESIGN.md's Open Question decisions.
	end := m.At + utf8.RuneCountInString(m.Text)
	return DelRange{Start: m.At, End: end}, true
}

// DelRange removes the half-open char range [Start, End).
type DelRange struct {
	Start, End int
}

func (m DelRange) apply(buf *rope.Rope) (BufMod, bool) {
	removed, err := buf.RemoveRange(m.Start, m.End)
	if err != nil {
		return nil, false
	}
	return InsText{At: m.Start, Text: removed}, true
}

// SelectionMod is the smallest invertible change to a single selection.
type SelectionMod interface {
	apply(sel *cursor.TextSelection) (SelectionMod, bool)
}

// SetHead moves a selection's caret.
type SetHead struct {
	NewIdx int
}

func (m SetHead) apply(sel *cursor.TextSelection) (SelectionMod, bool) {
	old := sel.Head
	sel.Head = m.NewIdx
	return SetHead{NewIdx: old}, true
}

// SetTail sets or clears a selection's other anchor.
type SetTail struct {
	NewTail *int
}

func (m SetTail) apply(sel *cursor.TextSelection) (SelectionMod, bool) {
	old := sel.Tail
	sel.Tail = m.NewTail
	return SetTail{NewTail: old}, true
}

// DocMapMod is the smallest invertible change to the document map
// itself: switching the active document, creating/removing whole
// documents, or creating/removing a selection slot.
type DocMapMod interface {
	apply(dm *DocumentMap) (DocMapMod, bool)
}

// SwitchDoc makes NewDocID the active document.
type SwitchDoc struct {
	NewDocID int
}

func (m SwitchDoc) apply(dm *DocumentMap) (DocMapMod, bool) {
	if !dm.ContainsKey(m.NewDocID) {
		return nil, false
	}
	old := dm.Current
	dm.Current = m.NewDocID
	return SwitchDoc{NewDocID: old}, true
}

// CreateDoc inserts Doc under a freshly allocated id.
type CreateDoc struct {
	Doc *Document
}

func (m CreateDoc) apply(dm *DocumentMap) (DocMapMod, bool) {
	newID := dm.Insert(m.Doc.Clone())
	return PopDoc{DocID: newID}, true
}

// PopDoc removes the document at DocID.
type PopDoc struct {
	DocID int
}

func (m PopDoc) apply(dm *DocumentMap) (DocMapMod, bool) {
	doc, ok := dm.Remove(m.DocID)
	if !ok {
		return nil, false
	}
	return createDocAt{docID: m.DocID, doc: doc}, true
}

// createDocAt is PopDoc's precise inverse: it must resurrect the
// document under its original id, not a freshly allocated one, so a
// further undo/redo round-trip is exact.
type createDocAt struct {
	docID int
	doc   *Document
}

func (m createDocAt) apply(dm *DocumentMap) (DocMapMod, bool) {
	dm.InsertAt(m.docID, m.doc)
	return PopDoc{DocID: m.docID}, true
}

// DeleteSel removes selection SelID from document DocID.
type DeleteSel struct {
	DocID, SelID int
}

func (m DeleteSel) apply(dm *DocumentMap) (DocMapMod, bool) {
	doc, ok := dm.Get(m.DocID)
	if !ok {
		return nil, false
	}
	sel, ok := doc.Selections[m.SelID]
	if !ok {
		return nil, false
	}
	delete(doc.Selections, m.SelID)
	return CreateSel{DocID: m.DocID, SelID: m.SelID, Sel: sel}, true
}

// CreateSel adds Sel under SelID in document DocID.
type CreateSel struct {
	DocID, SelID int
	Sel          cursor.TextSelection
}

func (m CreateSel) apply(dm *DocumentMap) (DocMapMod, bool) {
	doc, ok := dm.Get(m.DocID)
	if !ok {
		return nil, false
	}
	doc.Selections[m.SelID] = m.Sel
	return DeleteSel{DocID: m.DocID, SelID: m.SelID}, true
}

// PrimitiveMod is the union of the three families of primitive change:
// a selection edit, a text edit, or a document-map edit.
type PrimitiveMod interface {
	Apply(dm *DocumentMap) (PrimitiveMod, bool)
}

// SelPrim applies a SelectionMod to one document's one selection.
type SelPrim struct {
	DocID, SelID int
	Mod          SelectionMod
}

func (p SelPrim) Apply(dm *DocumentMap) (PrimitiveMod, bool) {
	doc, ok := dm.Get(p.DocID)
	if !ok {
		return nil, false
	}
	sel, ok := doc.Selections[p.SelID]
	if !ok {
		return nil, false
	}
	inv, ok := p.Mod.apply(&sel)
	if !ok {
		return nil, false
	}
	doc.Selections[p.SelID] = sel
	return SelPrim{DocID: p.DocID, SelID: p.SelID, Mod: inv}, true
}

// TextPrim applies a BufMod to one document's buffer.
type TextPrim struct {
	DocID int
	Mod   BufMod
}

func (p TextPrim) Apply(dm *DocumentMap) (PrimitiveMod, bool) {
	doc, ok := dm.Get(p.DocID)
	if !ok {
		return nil, false
	}
	inv, ok := p.Mod.apply(doc.buf)
	if !ok {
		return nil, false
	}
	doc.Dirty = true
	return TextPrim{DocID: p.DocID, Mod: inv}, true
}

// DocMapPrim applies a DocMapMod to the document map as a whole.
type DocMapPrim struct {
	Mod DocMapMod
}

func (p DocMapPrim) Apply(dm *DocumentMap) (PrimitiveMod, bool) {
	inv, ok := p.Mod.apply(dm)
	if !ok {
		return nil, false
	}
	return DocMapPrim{Mod: inv}, true
}
