package protocol

// --- Semantic Tokens (LSP 3.16) ---
//
// Token data is transmitted as a flat array of unsigned integers, five per
// token: deltaLine, deltaStartChar, length, tokenType, tokenModifiers.
// Positions are relative to the previous token in the array; repeated
// requests may be answered as edits against a previously sent result,
// identified by its result id.

// SemanticTokensLegend declares which numbers the server uses for which
// token types and modifiers. Exchanged once via server capabilities.
type SemanticTokensLegend struct {
	TokenTypes     []string `json:"tokenTypes"`
	TokenModifiers []string `json:"tokenModifiers"`
}

// SemanticTokensOptions is the server capability for semantic tokens.
type SemanticTokensOptions struct {
	Legend SemanticTokensLegend `json:"legend"`

	// Range indicates the server supports textDocument/semanticTokens/range.
	Range bool `json:"range,omitempty"`

	// Full indicates support for full (and optionally delta) requests.
	Full *SemanticTokensFullOptions `json:"full,omitempty"`
}

// SemanticTokensFullOptions describes full-document token support.
type SemanticTokensFullOptions struct {
	Delta bool `json:"delta,omitempty"`
}

// SemanticTokensParams are the params of a semanticTokens/full request.
type SemanticTokensParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

// SemanticTokens is the result of a full (or fallback) token request.
type SemanticTokens struct {
	// ResultID identifies this result. A client that supports deltas sends
	// it back as previousResultId on its next semanticTokens/full/delta
	// request for the same document.
	ResultID string `json:"resultId,omitempty"`

	// Data is the packed token array.
	Data []uint32 `json:"data"`
}

// SemanticTokensDeltaParams are the params of a semanticTokens/full/delta request.
type SemanticTokensDeltaParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`

	// PreviousResultID is the result id of the response the client holds.
	PreviousResultID string `json:"previousResultId"`
}

// SemanticTokensDelta expresses a new result as edits against a previous one.
type SemanticTokensDelta struct {
	ResultID string               `json:"resultId,omitempty"`
	Edits    []SemanticTokensEdit `json:"edits"`
}

// SemanticTokensEdit is a splice against the previous packed token array:
// remove DeleteCount elements at Start, then insert Data there.
type SemanticTokensEdit struct {
	Start       uint32   `json:"start"`
	DeleteCount uint32   `json:"deleteCount"`
	Data        []uint32 `json:"data,omitempty"`
}

// SemanticTokensRangeParams are the params of a semanticTokens/range request.
type SemanticTokensRangeParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Range        Range                  `json:"range"`
}

// SemanticTokensClientCapabilities describes what the client supports for
// semantic tokens. TokenTypes and TokenModifiers list the names the client
// understands; the server must not emit indices outside the negotiated legend.
type SemanticTokensClientCapabilities struct {
	DynamicRegistration bool `json:"dynamicRegistration,omitempty"`

	Requests SemanticTokensClientRequests `json:"requests"`

	TokenTypes     []string `json:"tokenTypes"`
	TokenModifiers []string `json:"tokenModifiers"`
	Formats        []string `json:"formats"`

	OverlappingTokenSupport bool `json:"overlappingTokenSupport,omitempty"`
	MultilineTokenSupport   bool `json:"multilineTokenSupport,omitempty"`
}

// SemanticTokensClientRequests lists the request shapes the client will issue.
// Range and Full are booleans or option literals in the wire format; only
// their presence matters here.
type SemanticTokensClientRequests struct {
	Range interface{}                       `json:"range,omitempty"`
	Full  *SemanticTokensClientRequestsFull `json:"full,omitempty"`
}

// SemanticTokensClientRequestsFull signals full-request support and whether
// the client can apply deltas.
type SemanticTokensClientRequestsFull struct {
	Delta bool `json:"delta,omitempty"`
}
