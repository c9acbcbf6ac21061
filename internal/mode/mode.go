// Package mode implements the five editor modes (normal, insert,
// selection, goto, command) as concrete editor.EditorMode
// implementations, grounded on original_source/src/editor/editor_mode.rs
// and the five editor/editor_mode/*.rs files.
package mode

import (
	"sort"

	"kestrel/internal/cursor"
	"kestrel/internal/document"
	"kestrel/internal/editor"
	"kestrel/internal/keys"
	"kestrel/internal/rope"
)

// movementFn is the shape every internal/cursor motion function shares.
type movementFn func(charIdx int, buf *rope.Rope) (int, bool)

// moveAllHeads builds a transaction moving every selection's head in the
// current document according to fn, leaving a selection's head
// unchanged wherever fn fails (e.g. already at a buffer boundary).
func moveAllHeads(fn movementFn, dm *document.DocumentMap) (*document.Transaction, bool) {
	doc, ok := dm.GetCurrDoc()
	if !ok {
		return nil, false
	}
	buf := doc.Buf()
	tx := document.NewTransaction()
	for selID, sel := range doc.Selections {
		newHead := sel.Head
		if moved, ok := fn(sel.Head, buf); ok {
			newHead = moved
		}
		tx.AppendMod(document.SelPrim{DocID: dm.Current, SelID: selID, Mod: document.SetHead{NewIdx: newHead}})
	}
	return tx, true
}

// sortedSelIDs returns doc's selection ids in ascending order, needed
// everywhere a generator must process selections in a stable order
// (mirrors Rust's `.sorted_by_key`/`.iter()` determinism requirements).
func sortedSelIDs(doc *document.Document) []int {
	ids := make([]int, 0, len(doc.Selections))
	for id := range doc.Selections {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func minMax(sel cursor.TextSelection) (int, int) {
	return sel.Min(), sel.Max()
}
