// Package semtok implements the incremental semantic-token subsystem of the
// prism framework: the LSP 3.16 relative packed-integer encoding, a
// per-document history of published results, and a diff engine that expresses
// a new token array as splice edits against the previously published one.
//
// The package is deliberately free of protocol and transport concerns. The
// server layer feeds it classified tokens and converts its results into wire
// types; how tokens are classified (tree-sitter queries, a hand-written
// lexer, or anything else) is a caller-supplied function.
package semtok

import "sort"

// Type is a symbolic semantic token type. The wire encoding uses indices
// into the negotiated legend, never the names themselves.
type Type string

// Standard LSP 3.16 token types.
const (
	TokNamespace     Type = "namespace"
	TokType          Type = "type"
	TokClass         Type = "class"
	TokEnum          Type = "enum"
	TokInterface     Type = "interface"
	TokStruct        Type = "struct"
	TokTypeParameter Type = "typeParameter"
	TokParameter     Type = "parameter"
	TokVariable      Type = "variable"
	TokProperty      Type = "property"
	TokEnumMember    Type = "enumMember"
	TokEvent         Type = "event"
	TokFunction      Type = "function"
	TokMethod        Type = "method"
	TokMacro         Type = "macro"
	TokKeyword       Type = "keyword"
	TokModifier      Type = "modifier"
	TokComment       Type = "comment"
	TokString        Type = "string"
	TokNumber        Type = "number"
	TokRegexp        Type = "regexp"
	TokOperator      Type = "operator"
)

// Modifier is a symbolic semantic token modifier. Modifiers are encoded as a
// bitmask; bit positions index into the negotiated modifier legend.
type Modifier string

// Standard LSP 3.16 token modifiers.
const (
	ModDeclaration    Modifier = "declaration"
	ModDefinition     Modifier = "definition"
	ModReadonly       Modifier = "readonly"
	ModStatic         Modifier = "static"
	ModDeprecated     Modifier = "deprecated"
	ModAbstract       Modifier = "abstract"
	ModAsync          Modifier = "async"
	ModModification   Modifier = "modification"
	ModDocumentation  Modifier = "documentation"
	ModDefaultLibrary Modifier = "defaultLibrary"
)

// TokenTypes is the full ordered type legend prism servers advertise by default.
var TokenTypes = []Type{
	TokNamespace,
	TokType,
	TokClass,
	TokEnum,
	TokInterface,
	TokStruct,
	TokTypeParameter,
	TokParameter,
	TokVariable,
	TokProperty,
	TokEnumMember,
	TokEvent,
	TokFunction,
	TokMethod,
	TokMacro,
	TokKeyword,
	TokModifier,
	TokComment,
	TokString,
	TokNumber,
	TokRegexp,
	TokOperator,
}

// TokenModifiers is the full ordered modifier legend prism servers advertise
// by default.
var TokenModifiers = []Modifier{
	ModDeclaration,
	ModDefinition,
	ModReadonly,
	ModStatic,
	ModDeprecated,
	ModAbstract,
	ModAsync,
	ModModification,
	ModDocumentation,
	ModDefaultLibrary,
}

// Token is one classified lexical unit. Line and Start are zero-based;
// Length counts characters. Tokens carry symbolic types and modifiers; the
// legend resolves them to indices at encode time.
type Token struct {
	Line      uint32
	Start     uint32
	Length    uint32
	Type      Type
	Modifiers []Modifier
}

// sortTokens orders tokens by (line, start) ascending, as the relative
// encoding requires. The sort is stable so overlapping tokens keep their
// classification order.
func sortTokens(tokens []Token) {
	sort.SliceStable(tokens, func(i, j int) bool {
		if tokens[i].Line != tokens[j].Line {
			return tokens[i].Line < tokens[j].Line
		}
		return tokens[i].Start < tokens[j].Start
	})
}

// InRange returns the tokens that intersect the half-open position range
// from (startLine, startChar) to (endLine, endChar). Used for range
// requests, which are snapshots and never feed the result history.
func InRange(tokens []Token, startLine, startChar, endLine, endChar uint32) []Token {
	var out []Token
	for _, t := range tokens {
		tokEnd := t.Start + t.Length
		if t.Line < startLine || (t.Line == startLine && tokEnd <= startChar) {
			continue
		}
		if t.Line > endLine || (t.Line == endLine && t.Start >= endChar) {
			continue
		}
		out = append(out, t)
	}
	return out
}
