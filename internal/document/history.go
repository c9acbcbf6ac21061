package document

// EditorHistory is two stacks of ready-to-replay inverse transactions:
// prev (the past) and next (the future). Implemented as slices used as
// stacks via append/truncate at the end, mirroring the original's
// front-of-deque pushes (order only matters internally; externally only
// push/pop-front behaviour is observable, which a slice tail gives just
// as well).
type EditorHistory struct {
	prev []*Transaction
	next []*Transaction
}

func push(stack []*Transaction, tx *Transaction) []*Transaction {
	return append(stack, tx)
}

func pop(stack []*Transaction) ([]*Transaction, *Transaction, bool) {
	if len(stack) == 0 {
		return stack, nil, false
	}
	last := stack[len(stack)-1]
	return stack[:len(stack)-1], last, true
}

// Undo pops the most recent transaction off prev, applies it (it is
// already the inverse of some forward edit), and pushes the result onto
// next so Redo can replay it. Reports false when prev was already empty.
func (h *EditorHistory) Undo(dm *DocumentMap) bool {
	tx, ok := h.popPrev()
	if !ok {
		return false
	}
	if inv, ok := tx.ApplyTx(dm); ok {
		h.next = push(h.next, inv)
	}
	return true
}

// Redo is Undo's mirror image. Reports false when next was already empty.
func (h *EditorHistory) Redo(dm *DocumentMap) bool {
	tx, ok := h.popNext()
	if !ok {
		return false
	}
	if inv, ok := tx.ApplyTx(dm); ok {
		h.prev = push(h.prev, inv)
	}
	return true
}

func (h *EditorHistory) popPrev() (*Transaction, bool) {
	rest, tx, ok := pop(h.prev)
	h.prev = rest
	return tx, ok
}

func (h *EditorHistory) popNext() (*Transaction, bool) {
	rest, tx, ok := pop(h.next)
	h.next = rest
	return tx, ok
}

// Next clears the future (this is a new branch of history), applies tx,
// and on success pushes the resulting inverse onto prev. Returns
// whether the transaction applied.
func (h *EditorHistory) Next(tx *Transaction, dm *DocumentMap) bool {
	h.next = nil
	inv, ok := tx.ApplyTx(dm)
	if !ok {
		return false
	}
	h.prev = push(h.prev, inv)
	return true
}

// HistoricalEditorState bundles a DocumentMap with the undo/redo history
// tracking every successful mutation applied to it.
type HistoricalEditorState struct {
	DocMap  *DocumentMap
	History *EditorHistory
}

// NewHistoricalEditorState wraps dm with fresh, empty history.
func NewHistoricalEditorState(dm *DocumentMap) *HistoricalEditorState {
	return &HistoricalEditorState{DocMap: dm, History: &EditorHistory{}}
}

// Undo moves the state one point back in the past. Reports false when
// there was nothing to undo.
func (s *HistoricalEditorState) Undo() bool {
	return s.History.Undo(s.DocMap)
}

// Redo moves the state one point forward in the future. Reports false
// when there was nothing to redo.
func (s *HistoricalEditorState) Redo() bool {
	return s.History.Redo(s.DocMap)
}

// ModifyWithTx applies tx, recording it in history. Empty transactions
// are treated as successful no-ops and are not recorded: they report
// true without touching History, the same silent-success the
// caller-visible distinction from an apply failure (which reports
// false) depends on.
func (s *HistoricalEditorState) ModifyWithTx(tx *Transaction) bool {
	if len(tx.Mods) == 0 {
		return true
	}
	return s.History.Next(tx, s.DocMap)
}
