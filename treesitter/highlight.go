package treesitter

import (
	"strings"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/prism-lsp/prism/protocol"
	"github.com/prism-lsp/prism/semtok"
)

// Highlighter turns tree-sitter highlight-query captures into semantic
// tokens. Register one query per language using the standard highlight
// capture names (@function, @type.builtin, @variable.parameter, ...); the
// highlighter maps them onto the LSP token vocabulary.
type Highlighter struct {
	manager *Manager

	mu      sync.RWMutex
	queries map[*tree_sitter.Language]string
}

// NewHighlighter creates a highlighter over the manager's parse trees.
func NewHighlighter(m *Manager) *Highlighter {
	return &Highlighter{
		manager: m,
		queries: make(map[*tree_sitter.Language]string),
	}
}

// RegisterQuery sets the highlight query for a language. Typically the
// query is the grammar's highlights.scm, or a trimmed-down version of it.
func (h *Highlighter) RegisterQuery(lang *tree_sitter.Language, query string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.queries[lang] = query
}

// Tokens classifies the document identified by uri using its current parse
// tree and the language's registered highlight query. Documents without a
// tree, a language, or a query yield no tokens. Multi-line captures are
// split into one token per line, since not every client supports multiline
// tokens.
func (h *Highlighter) Tokens(uri protocol.DocumentURI, languageID string) []semtok.Token {
	tree := h.manager.GetTree(uri)
	if tree == nil {
		return nil
	}
	lang, err := h.manager.Registry().LanguageForURI(string(uri), languageID)
	if err != nil {
		return nil
	}

	h.mu.RLock()
	query, ok := h.queries[lang]
	h.mu.RUnlock()
	if !ok {
		return nil
	}

	captures, err := tree.QueryCaptures(lang, query)
	if err != nil {
		return nil
	}

	var tokens []semtok.Token
	for _, cap := range captures {
		typ, mods, ok := captureToken(cap.Name)
		if !ok {
			continue
		}
		start := cap.Node.StartPosition()
		end := cap.Node.EndPosition()
		if start.Row == end.Row {
			tokens = append(tokens, semtok.Token{
				Line:      uint32(start.Row),
				Start:     uint32(start.Column),
				Length:    uint32(end.Column - start.Column),
				Type:      typ,
				Modifiers: mods,
			})
			continue
		}
		for line, text := range splitLines(cap.Text) {
			row := start.Row + uint(line)
			col := uint(0)
			if line == 0 {
				col = start.Column
			}
			if len(text) == 0 {
				continue
			}
			tokens = append(tokens, semtok.Token{
				Line:      uint32(row),
				Start:     uint32(col),
				Length:    uint32(len(text)),
				Type:      typ,
				Modifiers: mods,
			})
		}
	}
	return tokens
}

func splitLines(s string) []string {
	return strings.Split(s, "\n")
}

// captureToken maps a highlight capture name onto the token vocabulary.
// The part before the first dot selects the type; known suffixes add
// modifiers. Unmapped captures (punctuation, escapes, ...) are skipped.
func captureToken(name string) (semtok.Type, []semtok.Modifier, bool) {
	base, rest, _ := strings.Cut(name, ".")

	var mods []semtok.Modifier
	switch rest {
	case "builtin":
		mods = []semtok.Modifier{semtok.ModDefaultLibrary}
	case "documentation":
		mods = []semtok.Modifier{semtok.ModDocumentation}
	}

	switch base {
	case "function":
		if rest == "method" {
			return semtok.TokMethod, mods, true
		}
		if rest == "macro" {
			return semtok.TokMacro, mods, true
		}
		return semtok.TokFunction, mods, true
	case "method":
		return semtok.TokMethod, mods, true
	case "constructor":
		return semtok.TokFunction, mods, true
	case "type":
		return semtok.TokType, mods, true
	case "namespace", "module":
		return semtok.TokNamespace, mods, true
	case "variable":
		switch rest {
		case "parameter":
			return semtok.TokParameter, nil, true
		case "member", "field":
			return semtok.TokProperty, nil, true
		}
		return semtok.TokVariable, mods, true
	case "parameter":
		return semtok.TokParameter, mods, true
	case "property", "field":
		return semtok.TokProperty, mods, true
	case "constant":
		return semtok.TokVariable, append(mods, semtok.ModReadonly), true
	case "keyword", "boolean", "conditional", "repeat", "include":
		return semtok.TokKeyword, nil, true
	case "string":
		return semtok.TokString, mods, true
	case "number", "float":
		return semtok.TokNumber, nil, true
	case "comment":
		return semtok.TokComment, mods, true
	case "operator":
		return semtok.TokOperator, nil, true
	case "label":
		return semtok.TokVariable, nil, true
	case "escape", "punctuation", "spell", "error", "none":
		return "", nil, false
	default:
		return "", nil, false
	}
}
