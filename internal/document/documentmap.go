package document

// DocumentMap holds every open document plus which one is active.
// Invariant: Current always indexes an existing entry in Docs.
type DocumentMap struct {
	Current int
	Docs    map[int]*Document
}

// NewDocumentMap returns a map containing a single scratch document at
// id 0, the default state on startup.
func NewDocumentMap() *DocumentMap {
	return &DocumentMap{
		Current: 0,
		Docs:    map[int]*Document{0: NewEmptyDocument()},
	}
}

// ContainsKey reports whether id refers to an open document.
func (m *DocumentMap) ContainsKey(id int) bool {
	_, ok := m.Docs[id]
	return ok
}

// GetUnusedID returns max(keys)+1, or 0 if the map is empty. Used by
// CreateDoc to assign a fresh document id.
func (m *DocumentMap) GetUnusedID() int {
	max := -1
	for id := range m.Docs {
		if id > max {
			max = id
		}
	}
	return max + 1
}

// Insert adds doc under a freshly allocated id and returns that id.
func (m *DocumentMap) Insert(doc *Document) int {
	id := m.GetUnusedID()
	m.Docs[id] = doc
	return id
}

// InsertAt adds doc under the given explicit id, overwriting any
// existing entry — used by PopDoc's inverse (createDocAt) to bring a
// popped document back with its original id preserved.
func (m *DocumentMap) InsertAt(id int, doc *Document) {
	m.Docs[id] = doc
}

// Remove deletes and returns the document at id, or (nil, false).
func (m *DocumentMap) Remove(id int) (*Document, bool) {
	doc, ok := m.Docs[id]
	if !ok {
		return nil, false
	}
	delete(m.Docs, id)
	return doc, true
}

// Get returns the document at id, or (nil, false).
func (m *DocumentMap) Get(id int) (*Document, bool) {
	doc, ok := m.Docs[id]
	return doc, ok
}

// GetCurrDoc returns the active document, or (nil, false) if Current
// somehow doesn't resolve (should not happen given the map invariant).
func (m *DocumentMap) GetCurrDoc() (*Document, bool) {
	return m.Get(m.Current)
}
