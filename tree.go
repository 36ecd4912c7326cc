package prism

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/prism-lsp/prism/document"
	"github.com/prism-lsp/prism/protocol"
	"github.com/prism-lsp/prism/semtok"
	"github.com/prism-lsp/prism/treesitter"
)

// WithTreeSitterHighlight registers a tree-sitter backed classifier for
// semantic tokens. Each language is paired with a highlight query (usually
// the grammar's highlights.scm); captures are mapped onto the LSP token
// vocabulary. Must be listed after WithTreeSitter, which it depends on.
func WithTreeSitterHighlight(queries map[*tree_sitter.Language]string) Option {
	return func(s *Server) {
		if s.tsManager == nil {
			return
		}
		h := treesitter.NewHighlighter(s.tsManager)
		for lang, q := range queries {
			h.RegisterQuery(lang, q)
		}
		s.OnSemanticTokens(func(ctx *Context, doc *document.Document) []semtok.Token {
			return h.Tokens(doc.URI(), doc.LanguageID())
		})
	}
}

// TreeFor returns the tree-sitter tree for the given document, or nil if
// tree-sitter is not enabled or no tree exists for this document.
func TreeFor(doc *document.Document) *treesitter.Tree {
	if doc == nil {
		return nil
	}
	raw := doc.RawTree()
	if raw == nil {
		return nil
	}
	if t, ok := raw.(*treesitter.Tree); ok {
		return t
	}
	return nil
}

// TreeAt is a shortcut that gets the tree for a document at the given URI from the context.
func TreeAt(ctx *Context, uri protocol.DocumentURI) *treesitter.Tree {
	doc := ctx.Documents.Get(uri)
	return TreeFor(doc)
}
