// Package fileio loads and saves documents against a pluggable
// filesystem, grounded on original_source/src/document.rs's
// new_from_file/save/save_as. Using afero instead of bare os calls lets
// tests exercise the same code path against an in-memory filesystem.
package fileio

import (
	"errors"

	"github.com/spf13/afero"

	"kestrel/internal/document"
)

// ErrNoSource is returned by Save when the document has never been
// associated with a file path.
var ErrNoSource = errors.New("buffer has no source")

// Store loads and persists documents against fs.
type Store struct {
	fs afero.Fs
}

// NewStore wraps fs (an afero.Fs) in a Store.
func NewStore(fs afero.Fs) *Store {
	return &Store{fs: fs}
}

// Open reads path's contents into a new document. If the file cannot be
// read, it returns an empty document still bound to path the same way
// the original silently falls back, since an editor invoked on a
// not-yet-existing path should still let the user start typing.
func (s *Store) Open(path string) *document.Document {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return document.NewDocumentFromText(document.FileSource(path), "")
	}
	return document.NewDocumentFromText(document.FileSource(path), string(data))
}

// Save writes doc back to its existing source path. Returns ErrNoSource
// for a scratch document that has never been saved anywhere.
func (s *Store) Save(doc *document.Document) error {
	path, ok := doc.Source.Path()
	if !ok {
		return ErrNoSource
	}
	if err := afero.WriteFile(s.fs, path, []byte(doc.Buf().String()), 0o644); err != nil {
		return err
	}
	doc.MarkClean()
	return nil
}

// SaveAs writes doc to newPath and rebinds its source to it.
func (s *Store) SaveAs(doc *document.Document, newPath string) error {
	if err := afero.WriteFile(s.fs, newPath, []byte(doc.Buf().String()), 0o644); err != nil {
		return err
	}
	doc.SetSource(document.FileSource(newPath))
	doc.MarkClean()
	return nil
}
