package semtok

// Legend is the ordered token type and modifier vocabulary a server and
// client agreed on. Token type indices and modifier bit positions in the
// packed encoding index into these lists. A legend is computed once, during
// initialization, and is immutable afterwards; there is no mid-session
// re-negotiation.
type Legend struct {
	types     []Type
	modifiers []Modifier
	typeIndex map[Type]uint32
	modBit    map[Modifier]uint32
}

// NewLegend builds a legend over the given ordered name lists. Duplicates
// keep their first position.
func NewLegend(types []Type, modifiers []Modifier) *Legend {
	l := &Legend{
		types:     append([]Type(nil), types...),
		modifiers: append([]Modifier(nil), modifiers...),
		typeIndex: make(map[Type]uint32, len(types)),
		modBit:    make(map[Modifier]uint32, len(modifiers)),
	}
	for i, t := range l.types {
		if _, ok := l.typeIndex[t]; !ok {
			l.typeIndex[t] = uint32(i)
		}
	}
	for i, m := range l.modifiers {
		if _, ok := l.modBit[m]; !ok {
			l.modBit[m] = uint32(i)
		}
	}
	return l
}

// DefaultLegend is the full standard legend, used when the client does not
// constrain the vocabulary.
func DefaultLegend() *Legend {
	return NewLegend(TokenTypes, TokenModifiers)
}

// TypeNames returns the ordered type names for the capability announcement.
func (l *Legend) TypeNames() []string {
	out := make([]string, len(l.types))
	for i, t := range l.types {
		out[i] = string(t)
	}
	return out
}

// ModifierNames returns the ordered modifier names for the capability
// announcement.
func (l *Legend) ModifierNames() []string {
	out := make([]string, len(l.modifiers))
	for i, m := range l.modifiers {
		out[i] = string(m)
	}
	return out
}

// typeFallback maps each type to the broader category a token degrades to
// when the negotiated legend lacks its own type. Chains terminate at
// "function", "type", "variable" or "string".
var typeFallback = map[Type]Type{
	TokMethod:        TokFunction,
	TokMacro:         TokFunction,
	TokNamespace:     TokType,
	TokClass:         TokType,
	TokEnum:          TokType,
	TokInterface:     TokType,
	TokStruct:        TokType,
	TokTypeParameter: TokType,
	TokParameter:     TokVariable,
	TokProperty:      TokVariable,
	TokEnumMember:    TokVariable,
	TokEvent:         TokVariable,
	TokRegexp:        TokString,
}

// Restrict intersects the legend with the type and modifier names a client
// declared. Server order is preserved; names the client did not list are
// dropped. Empty client lists leave that axis unrestricted (a client that
// says nothing gets the full vocabulary). Tokens whose type was dropped are
// later re-mapped through the fallback table at encode time.
func (l *Legend) Restrict(clientTypes, clientModifiers []string) *Legend {
	types := l.types
	if len(clientTypes) > 0 {
		known := make(map[Type]bool, len(clientTypes))
		for _, name := range clientTypes {
			known[Type(name)] = true
		}
		types = nil
		for _, t := range l.types {
			if known[t] {
				types = append(types, t)
			}
		}
	}
	modifiers := l.modifiers
	if len(clientModifiers) > 0 {
		known := make(map[Modifier]bool, len(clientModifiers))
		for _, name := range clientModifiers {
			known[Modifier(name)] = true
		}
		modifiers = nil
		for _, m := range l.modifiers {
			if known[m] {
				modifiers = append(modifiers, m)
			}
		}
	}
	return NewLegend(types, modifiers)
}

// resolveType returns the legend index for a type, following the fallback
// chain when the type itself is not in the legend. Reports false when no
// link of the chain is representable; such tokens are omitted from the
// encoding rather than sent with an out-of-range index.
func (l *Legend) resolveType(t Type) (uint32, bool) {
	for {
		if i, ok := l.typeIndex[t]; ok {
			return i, true
		}
		next, ok := typeFallback[t]
		if !ok {
			return 0, false
		}
		t = next
	}
}

// modifierMask folds a token's modifiers into the legend's bitmask.
// Modifiers the legend lacks are dropped individually.
func (l *Legend) modifierMask(mods []Modifier) uint32 {
	var mask uint32
	for _, m := range mods {
		if bit, ok := l.modBit[m]; ok {
			mask |= 1 << bit
		}
	}
	return mask
}
