package prism

import (
	"encoding/json"

	"github.com/prism-lsp/prism/document"
	"github.com/prism-lsp/prism/jsonrpc"
	"github.com/prism-lsp/prism/protocol"
	"github.com/prism-lsp/prism/semtok"
)

// Classifier produces the semantic tokens for a document. How tokens are
// classified is entirely up to the server author: tree-sitter highlight
// queries (see WithTreeSitterHighlight), a hand-written lexer, or anything
// else that can label spans of text. Tokens need not be sorted; the
// framework sorts before encoding.
type Classifier func(ctx *Context, doc *document.Document) []semtok.Token

// OnSemanticTokens registers the classifier and enables the three semantic
// token methods (full, full/delta, range). The framework owns the protocol
// side: legend negotiation, the relative integer encoding, per-document
// result history, and delta computation against the previous result.
func (s *Server) OnSemanticTokens(c Classifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.classifier = c
}

// getClassifier returns the registered classifier, if any.
func (s *Server) getClassifier() (Classifier, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.classifier, s.classifier != nil
}

// initTokenSession fixes the token legend for the lifetime of the session.
// The default legend is intersected with the type and modifier names the
// client declared; types the client lacks degrade to broader categories at
// encode time instead of being sent out of range. Called once during
// initialize — there is no mid-session re-negotiation.
func (s *Server) initTokenSession(caps protocol.ClientCapabilities) {
	if _, ok := s.getClassifier(); !ok {
		return
	}
	legend := semtok.DefaultLegend()
	if caps.TextDocument != nil && caps.TextDocument.SemanticTokens != nil {
		st := caps.TextDocument.SemanticTokens
		legend = legend.Restrict(st.TokenTypes, st.TokenModifiers)
	}
	s.tokens = semtok.NewSession(legend)
	s.docStore.OnClose(func(uri protocol.DocumentURI) {
		s.tokens.Drop(string(uri))
	})
}

// classify runs the classifier for a document, checking for cooperative
// cancellation first. Encoding and diffing are fast; classification of a
// large document is the only stage worth abandoning.
func (s *Server) classify(ctx *Context, doc *document.Document) ([]semtok.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, &jsonrpc.Error{Code: jsonrpc.CodeRequestCancelled, Message: "request cancelled"}
	}
	c, _ := s.getClassifier()
	return c(ctx, doc), nil
}

func (s *Server) handleSemanticTokensFull(ctx *Context, params jsonrpc.RawMessage) (interface{}, error) {
	var p protocol.SemanticTokensParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, &jsonrpc.Error{Code: jsonrpc.CodeInvalidParams, Message: err.Error()}
	}

	doc := s.docStore.Get(p.TextDocument.URI)
	if doc == nil {
		// Unknown documents are answered, not failed.
		return &protocol.SemanticTokens{Data: []uint32{}}, nil
	}

	tokens, err := s.classify(ctx, doc)
	if err != nil {
		return nil, err
	}
	id, data := s.tokens.Full(string(p.TextDocument.URI), tokens)
	return &protocol.SemanticTokens{ResultID: id, Data: data}, nil
}

func (s *Server) handleSemanticTokensDelta(ctx *Context, params jsonrpc.RawMessage) (interface{}, error) {
	var p protocol.SemanticTokensDeltaParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, &jsonrpc.Error{Code: jsonrpc.CodeInvalidParams, Message: err.Error()}
	}

	uri := string(p.TextDocument.URI)
	doc := s.docStore.Get(p.TextDocument.URI)
	if doc == nil {
		// A closed or never-opened document has no valid baseline either;
		// make sure no stale history survives it.
		s.tokens.Drop(uri)
		return &protocol.SemanticTokens{Data: []uint32{}}, nil
	}

	tokens, err := s.classify(ctx, doc)
	if err != nil {
		return nil, err
	}
	res := s.tokens.Delta(uri, p.PreviousResultID, tokens)
	if res.IsFull() {
		return &protocol.SemanticTokens{ResultID: res.ResultID, Data: res.Full}, nil
	}

	edits := make([]protocol.SemanticTokensEdit, len(res.Edits))
	for i, e := range res.Edits {
		edits[i] = protocol.SemanticTokensEdit{
			Start:       e.Start,
			DeleteCount: e.DeleteCount,
			Data:        e.Data,
		}
	}
	return &protocol.SemanticTokensDelta{ResultID: res.ResultID, Edits: edits}, nil
}

func (s *Server) handleSemanticTokensRange(ctx *Context, params jsonrpc.RawMessage) (interface{}, error) {
	var p protocol.SemanticTokensRangeParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, &jsonrpc.Error{Code: jsonrpc.CodeInvalidParams, Message: err.Error()}
	}

	doc := s.docStore.Get(p.TextDocument.URI)
	if doc == nil {
		return &protocol.SemanticTokens{Data: []uint32{}}, nil
	}

	tokens, err := s.classify(ctx, doc)
	if err != nil {
		return nil, err
	}
	data := s.tokens.Range(tokens,
		p.Range.Start.Line, p.Range.Start.Character,
		p.Range.End.Line, p.Range.End.Character)
	// Range results are snapshots: no result id, no history update.
	return &protocol.SemanticTokens{Data: data}, nil
}
