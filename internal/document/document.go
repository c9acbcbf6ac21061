// Package document implements the document model, the invertible
// primitive-modification algebra, transaction composition, and undo/redo
// history described by original_source/src/document.rs,
// document/primitive_mods.rs, document/transaction.rs, and
// editor/editor_history.rs.
package document

import (
	"strings"

	"kestrel/internal/cursor"
	"kestrel/internal/rope"
)

// Source identifies where a document's content came from: a file path,
// or nothing for an unsaved scratch buffer.
type Source struct {
	path *string
}

// ScratchSource returns a Source with no backing path.
func ScratchSource() Source { return Source{} }

// FileSource returns a Source backed by the given path.
func FileSource(path string) Source { return Source{path: &path} }

// Path returns the backing path and true, or ("", false) for a scratch
// source.
func (s Source) Path() (string, bool) {
	if s.path == nil {
		return "", false
	}
	return *s.path, true
}

// String renders the source the way the status line displays it.
func (s Source) String() string {
	if s.path == nil {
		return "[scratch]"
	}
	return *s.path
}

// Ext returns the file extension (without the dot) used to pick a
// syntax highlighter, or "" if there is no source or no extension.
func (s Source) Ext() string {
	if s.path == nil {
		return ""
	}
	idx := strings.LastIndex(*s.path, ".")
	if idx < 0 || idx == len(*s.path)-1 {
		return ""
	}
	return (*s.path)[idx+1:]
}

// Document is a single open buffer: its text, its cursors/selections,
// its source, and whether it has unsaved changes.
type Document struct {
	Source     Source
	Selections map[int]cursor.TextSelection
	Dirty      bool
	buf        *rope.Rope
}

// NewEmptyDocument returns a scratch document with one collapsed
// selection (id 0) at position 0.
func NewEmptyDocument() *Document {
	return &Document{
		Source:     ScratchSource(),
		Selections: map[int]cursor.TextSelection{0: cursor.NewCaret(0)},
		buf:        rope.Empty(),
	}
}

// NewDocumentFromText returns a document backed by src whose buffer
// holds text. Used by internal/fileio after reading a file's contents.
func NewDocumentFromText(src Source, text string) *Document {
	return &Document{
		Source:     src,
		Selections: map[int]cursor.TextSelection{0: cursor.NewCaret(0)},
		buf:        rope.New(text),
	}
}

// Buf returns the document's underlying rope for read-only access.
func (d *Document) Buf() *rope.Rope { return d.buf }

// MarkDirty sets the dirty flag. TextPrim sets Dirty itself after a
// successful buffer mutation rather than calling this.
func (d *Document) MarkDirty() { d.Dirty = true }

// MarkClean clears the dirty flag, called by internal/fileio after a
// successful save.
func (d *Document) MarkClean() { d.Dirty = false }

// SetSource rebinds the document to a new backing path, called by
// internal/fileio after a successful save-as.
func (d *Document) SetSource(src Source) { d.Source = src }

// Clone returns a deep copy, used for DocMapMod.CreateDoc bookkeeping
// and for broadcasting document snapshots to subscribers.
func (d *Document) Clone() *Document {
	sels := make(map[int]cursor.TextSelection, len(d.Selections))
	for k, v := range d.Selections {
		sels[k] = v
	}
	return &Document{
		Source:     d.Source,
		Selections: sels,
		Dirty:      d.Dirty,
		buf:        d.buf.Clone(),
	}
}
