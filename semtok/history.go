package semtok

import (
	"strconv"
	"sync"
)

// History records, per document, the most recently published packed token
// array and the result id it was published under. Exactly one record is
// retained per document: deltas are always computed against the latest
// publish, never an arbitrary historical one. State is in-memory only; a
// restarted server simply has no history, and the protocol obliges clients
// to fall back to a full request in that case.
type History struct {
	mu      sync.Mutex
	entries map[string]*historyEntry
}

type historyEntry struct {
	resultID string
	data     []uint32
	counter  uint64
}

// NewHistory returns an empty history store.
func NewHistory() *History {
	return &History{entries: make(map[string]*historyEntry)}
}

// NextResultID issues a fresh result id for the document. Ids are a
// per-document monotonic counter serialized as text; within one document an
// id is never reused, even across Remove/re-open (the counter restarts, but
// a removed document has no stored id left to collide with).
func (h *History) NextResultID(doc string) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	e := h.entries[doc]
	if e == nil {
		e = &historyEntry{}
		h.entries[doc] = e
	}
	e.counter++
	return strconv.FormatUint(e.counter, 10)
}

// Put replaces the document's record with the given result. The swap is
// atomic from the caller's perspective; readers never observe a record with
// the new id but the old data.
func (h *History) Put(doc, resultID string, data []uint32) {
	h.mu.Lock()
	defer h.mu.Unlock()
	e := h.entries[doc]
	if e == nil {
		e = &historyEntry{}
		h.entries[doc] = e
	}
	e.resultID = resultID
	e.data = data
}

// Get returns the document's last published result id and packed array.
// Reports false when nothing has been published for the document.
func (h *History) Get(doc string) (resultID string, data []uint32, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	e := h.entries[doc]
	if e == nil || e.resultID == "" {
		return "", nil, false
	}
	return e.resultID, e.data, true
}

// Remove frees the document's entry. Wired to document close; without it
// history grows without bound over the editing session.
func (h *History) Remove(doc string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.entries, doc)
}

// Len reports how many documents currently have an entry.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
