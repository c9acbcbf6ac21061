package document

// TransactionDep names what part of the editor state a transaction
// touches, coarse scaffolding for a future concurrent scheduler — the
// engine itself still serialises every transaction.
type TransactionDep struct {
	Kind  TransactionDepKind
	DocID int // meaningful for all kinds except DepDocMap
	SelID int // meaningful only for DepSelection
}

// TransactionDepKind enumerates the dependency granularities.
type TransactionDepKind int

const (
	DepSelection TransactionDepKind = iota
	DepBuffer
	DepDocument
	DepDocMap
)

// Transaction is an ordered sequence of primitive modifications applied
// (and, on success, inverted) as one atomic unit.
type Transaction struct {
	Mods []PrimitiveMod
}

// NewTransaction returns an empty transaction.
func NewTransaction() *Transaction {
	return &Transaction{}
}

// AppendMod appends one primitive.
func (t *Transaction) AppendMod(m PrimitiveMod) {
	t.Mods = append(t.Mods, m)
}

// AppendMods appends a sequence of primitives.
func (t *Transaction) AppendMods(ms ...PrimitiveMod) {
	t.Mods = append(t.Mods, ms...)
}

// WithMod returns t with m appended, for fluent construction.
func (t *Transaction) WithMod(m PrimitiveMod) *Transaction {
	t.AppendMod(m)
	return t
}

// ApplyTx applies every primitive in order. If all succeed, it returns
// the inverse transaction (each primitive's own inverse, in reverse
// order so replaying it undoes this transaction LIFO) and true. If any
// primitive fails, every inverse collected so far is replayed
// immediately to restore the pre-call state exactly, and (nil, false)
// is returned.
func (t *Transaction) ApplyTx(dm *DocumentMap) (*Transaction, bool) {
	invs := make([]PrimitiveMod, 0, len(t.Mods))
	allOK := true
	for _, m := range t.Mods {
		inv, ok := m.Apply(dm)
		if !ok {
			allOK = false
			break
		}
		invs = append(invs, inv)
	}
	if !allOK || len(invs) != len(t.Mods) {
		for i := len(invs) - 1; i >= 0; i-- {
			invs[i].Apply(dm)
		}
		return nil, false
	}
	reversed := make([]PrimitiveMod, len(invs))
	for i, m := range invs {
		reversed[len(invs)-1-i] = m
	}
	return &Transaction{Mods: reversed}, true
}

// MapCharIdx projects oldIdx through this transaction's not-yet-applied
// text primitives touching buffer docID — used so a later primitive in
// the same transaction can reference a position that accounts for
// earlier insertions/deletions.
func (t *Transaction) MapCharIdx(docID, oldIdx int) int {
	newIdx := oldIdx
	for _, m := range t.Mods {
		tp, ok := m.(TextPrim)
		if !ok || tp.DocID != docID {
			continue
		}
		switch bm := tp.Mod.(type) {
		case InsText:
			if oldIdx >= bm.At {
				newIdx += runeLen(bm.Text)
			}
		case DelRange:
			// Strictly greater-than, not greater-or-equal — preserved
			// intentionally; see DESIGN.md's Open Question decisions.
			if oldIdx > bm.End {
				deleted := bm.End - bm.Start
				newIdx -= deleted
				if newIdx < 0 {
					newIdx = 0
				}
			}
		}
	}
	return newIdx
}

func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}

// Dependencies computes the coarse dependency set this transaction
// touches, per the rules in §4.4: if more than one document's buffer or
// selections are touched, the whole DocumentMap is a dependency; if a
// single document has both its buffer and a selection touched, that
// document as a whole is a dependency.
func (t *Transaction) Dependencies() map[TransactionDep]struct{} {
	deps := make(map[TransactionDep]struct{})
	docIDs := make(map[int]struct{})
	for _, m := range t.Mods {
		switch p := m.(type) {
		case SelPrim:
			deps[TransactionDep{Kind: DepSelection, DocID: p.DocID, SelID: p.SelID}] = struct{}{}
			docIDs[p.DocID] = struct{}{}
		case TextPrim:
			deps[TransactionDep{Kind: DepBuffer, DocID: p.DocID}] = struct{}{}
			docIDs[p.DocID] = struct{}{}
		case DocMapPrim:
			deps[TransactionDep{Kind: DepDocMap}] = struct{}{}
		}
	}
	if len(docIDs) > 1 {
		deps[TransactionDep{Kind: DepDocMap}] = struct{}{}
	}
	for docID := range docIDs {
		hasSel, hasBuf := false, false
		for dep := range deps {
			if dep.Kind == DepSelection && dep.DocID == docID {
				hasSel = true
			}
			if dep.Kind == DepBuffer && dep.DocID == docID {
				hasBuf = true
			}
		}
		if hasSel && hasBuf {
			deps[TransactionDep{Kind: DepDocument, DocID: docID}] = struct{}{}
		}
	}
	return deps
}
