package semtok

import "sync"

// Session composes the encoder, history store and diff engine behind the
// three request shapes the protocol layer needs: full, delta and range.
// One session serves all documents of a server; per-document state lives in
// the history store.
type Session struct {
	legend  *Legend
	history *History

	// mu serializes the read-modify-write of the history so concurrent
	// requests for one document cannot diff against an entry another
	// request is replacing. Encoding and diffing are fast enough that a
	// single lock beats per-document locks in practice.
	mu sync.Mutex
}

// NewSession returns a session encoding through the given legend.
func NewSession(legend *Legend) *Session {
	return &Session{legend: legend, history: NewHistory()}
}

// Legend returns the legend the session encodes with.
func (s *Session) Legend() *Legend { return s.legend }

// Full computes a full token array for the document, records it in history
// under a fresh result id, and returns both.
func (s *Session) Full(doc string, tokens []Token) (resultID string, data []uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.publish(doc, tokens)
}

// DeltaResult is the outcome of a delta request. When the client's previous
// result id matched the history, Edits holds the splice script (possibly
// empty) and Full is nil. When the request was stale, Full holds a complete
// packed array instead — degradation, not an error.
type DeltaResult struct {
	ResultID string
	Edits    []Edit
	Full     []uint32
}

// IsFull reports whether the result is a full-array fallback.
func (r DeltaResult) IsFull() bool { return r.Full != nil }

// Delta computes edits relative to the result the client identified by
// previousResultID. A missing history entry or a mismatched id means the
// client's baseline is not what the server holds; diffing against it would
// produce garbage, so the session publishes a full array instead. Either
// way the new array replaces the document's history entry under a fresh id.
func (s *Session) Delta(doc, previousResultID string, tokens []Token) DeltaResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	prevID, prevData, ok := s.history.Get(doc)
	if !ok || prevID != previousResultID {
		id, data := s.publish(doc, tokens)
		return DeltaResult{ResultID: id, Full: data}
	}

	data := s.legend.Encode(tokens)
	id := s.history.NextResultID(doc)
	s.history.Put(doc, id, data)
	return DeltaResult{ResultID: id, Edits: Diff(prevData, data)}
}

// Range encodes the tokens intersecting the given zero-based position range.
// Range results are informational snapshots: they carry no result id and
// never touch history, so they can never become the baseline of a delta.
func (s *Session) Range(tokens []Token, startLine, startChar, endLine, endChar uint32) []uint32 {
	return s.legend.Encode(InRange(tokens, startLine, startChar, endLine, endChar))
}

// Drop discards the document's history. Called on document close.
func (s *Session) Drop(doc string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history.Remove(doc)
}

// Documents reports how many documents currently hold a history entry.
func (s *Session) Documents() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Len()
}

func (s *Session) publish(doc string, tokens []Token) (string, []uint32) {
	data := s.legend.Encode(tokens)
	id := s.history.NextResultID(doc)
	s.history.Put(doc, id, data)
	return id, data
}
