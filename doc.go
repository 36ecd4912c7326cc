// Package prism is a batteries-included Go framework for building Language
// Server Protocol (LSP) servers with first-class incremental semantic
// highlighting. It provides functional handler registration, auto-detected
// capabilities, composable middleware, built-in document management with
// tree-sitter integration, typed config with hot-reload, and testing
// utilities.
//
// Semantic highlighting is framework-owned: register a Classifier with
// OnSemanticTokens and the server handles legend negotiation, the packed
// relative integer encoding, per-document result history, and delta
// responses against the client's previous result.
//
// A minimal server needs only a few lines:
//
//	s := NewServer("my-lang", "0.1.0")
//	s.OnHover(myHoverHandler)
//	Serve(s, WithStdio())
//
// See the examples/ directory for progressively more complete servers.
package prism
