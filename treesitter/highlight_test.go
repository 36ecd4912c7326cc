package treesitter_test

import (
	"testing"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/prism-lsp/prism/document"
	"github.com/prism-lsp/prism/protocol"
	"github.com/prism-lsp/prism/semtok"
	"github.com/prism-lsp/prism/treesitter"
)

const pyHighlights = `
(function_definition name: (identifier) @function)
(call function: (identifier) @function.builtin)
(string) @string
(comment) @comment
(identifier) @variable
["def" "return" "import"] @keyword
`

func setupHighlighter(t *testing.T, lang *tree_sitter.Language, ext, query string) (*document.Store, *treesitter.Highlighter) {
	t.Helper()
	store := document.NewStore()
	mgr := treesitter.NewManager(treesitter.Config{
		Languages: map[string]*tree_sitter.Language{ext: lang},
	}, store)
	t.Cleanup(mgr.Close)

	h := treesitter.NewHighlighter(mgr)
	if query != "" {
		h.RegisterQuery(lang, query)
	}
	return store, h
}

func findToken(tokens []semtok.Token, line, start uint32, typ semtok.Type) *semtok.Token {
	for i, tok := range tokens {
		if tok.Line == line && tok.Start == start && tok.Type == typ {
			return &tokens[i]
		}
	}
	return nil
}

func TestHighlighterTokens(t *testing.T) {
	lang := pyLang()
	store, h := setupHighlighter(t, lang, ".py", pyHighlights)

	src := "import os\n" +
		"\n" +
		"def greet(name):\n" +
		"    print(name)\n" +
		"    return name\n"

	uri := protocol.DocumentURI("file:///greet.py")
	store.Open(&protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI: uri, LanguageID: "python", Version: 1, Text: src,
		},
	})

	tokens := h.Tokens(uri, "python")
	if len(tokens) == 0 {
		t.Fatal("expected tokens for python source")
	}

	if tok := findToken(tokens, 0, 0, semtok.TokKeyword); tok == nil || tok.Length != 6 {
		t.Errorf("expected 'import' keyword token at 0:0 length 6, got %+v", tok)
	}
	if tok := findToken(tokens, 2, 0, semtok.TokKeyword); tok == nil || tok.Length != 3 {
		t.Errorf("expected 'def' keyword token at 2:0, got %+v", tok)
	}
	if tok := findToken(tokens, 2, 4, semtok.TokFunction); tok == nil || tok.Length != 5 {
		t.Errorf("expected 'greet' function token at 2:4, got %+v", tok)
	}

	builtin := findToken(tokens, 3, 4, semtok.TokFunction)
	if builtin == nil {
		t.Fatal("expected 'print' function token at 3:4")
	}
	hasDefaultLib := false
	for _, m := range builtin.Modifiers {
		if m == semtok.ModDefaultLibrary {
			hasDefaultLib = true
		}
	}
	if !hasDefaultLib {
		t.Errorf("expected defaultLibrary modifier on builtin call, got %v", builtin.Modifiers)
	}

	if tok := findToken(tokens, 3, 10, semtok.TokVariable); tok == nil || tok.Length != 4 {
		t.Errorf("expected 'name' variable token at 3:10, got %+v", tok)
	}
}

func TestHighlighterMultilineCapture(t *testing.T) {
	lang := pyLang()
	store, h := setupHighlighter(t, lang, ".py", pyHighlights)

	src := "s = \"\"\"hello\nworld\"\"\"\n"

	uri := protocol.DocumentURI("file:///doc.py")
	store.Open(&protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI: uri, LanguageID: "python", Version: 1, Text: src,
		},
	})

	tokens := h.Tokens(uri, "python")

	// The triple-quoted string spans two lines; it must come back as one
	// token per line, never a single multiline token.
	first := findToken(tokens, 0, 4, semtok.TokString)
	if first == nil || first.Length != uint32(len(`"""hello`)) {
		t.Errorf("expected string token at 0:4 covering the first line, got %+v", first)
	}
	second := findToken(tokens, 1, 0, semtok.TokString)
	if second == nil || second.Length != uint32(len(`world"""`)) {
		t.Errorf("expected string token at 1:0 covering the second line, got %+v", second)
	}
}

func TestHighlighterNoQueryRegistered(t *testing.T) {
	lang := jsonLang()
	store, h := setupHighlighter(t, lang, ".json", "")

	uri := protocol.DocumentURI("file:///plain.json")
	store.Open(&protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI: uri, LanguageID: "json", Version: 1, Text: `{"a": 1}`,
		},
	})

	if tokens := h.Tokens(uri, "json"); tokens != nil {
		t.Errorf("expected nil tokens without a registered query, got %v", tokens)
	}
}

func TestHighlighterUnknownDocument(t *testing.T) {
	lang := jsonLang()
	_, h := setupHighlighter(t, lang, ".json", `(string) @string`)

	if tokens := h.Tokens("file:///never-opened.json", "json"); tokens != nil {
		t.Errorf("expected nil tokens for unopened document, got %v", tokens)
	}
}

func TestHighlighterTracksEdits(t *testing.T) {
	lang := pyLang()
	store, h := setupHighlighter(t, lang, ".py", pyHighlights)

	uri := protocol.DocumentURI("file:///edit.py")
	store.Open(&protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI: uri, LanguageID: "python", Version: 1, Text: "def a():\n    return 1\n",
		},
	})

	before := h.Tokens(uri, "python")
	if findToken(before, 0, 4, semtok.TokFunction) == nil {
		t.Fatal("expected function token for 'a' before edit")
	}

	// Rename the function; tokens must reflect the reparsed tree.
	store.Change(&protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
		ContentChanges: []protocol.TextDocumentContentChangeEvent{
			{
				Range: &protocol.Range{
					Start: protocol.Position{Line: 0, Character: 4},
					End:   protocol.Position{Line: 0, Character: 5},
				},
				Text: "renamed",
			},
		},
	})

	after := h.Tokens(uri, "python")
	tok := findToken(after, 0, 4, semtok.TokFunction)
	if tok == nil || tok.Length != uint32(len("renamed")) {
		t.Errorf("expected function token for 'renamed' after edit, got %+v", tok)
	}
}
