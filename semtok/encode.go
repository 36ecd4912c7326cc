package semtok

import "fmt"

// Encode packs tokens into the LSP relative integer representation: five
// integers per token, (deltaLine, deltaStartChar, length, typeIndex,
// modifierMask), where deltaStartChar is relative to the previous token only
// when both share a line. The input is sorted by (line, start) first; the
// caller's slice is not modified. Tokens whose type cannot be resolved
// through the legend are omitted. The result is never nil, so an empty
// token set marshals as an empty array.
func (l *Legend) Encode(tokens []Token) []uint32 {
	sorted := make([]Token, len(tokens))
	copy(sorted, tokens)
	sortTokens(sorted)

	data := make([]uint32, 0, len(sorted)*5)
	var prevLine, prevStart uint32
	for _, t := range sorted {
		typeIndex, ok := l.resolveType(t.Type)
		if !ok {
			continue
		}
		deltaLine := t.Line - prevLine
		deltaStart := t.Start
		if deltaLine == 0 {
			deltaStart = t.Start - prevStart
		}
		data = append(data, deltaLine, deltaStart, t.Length, typeIndex, l.modifierMask(t.Modifiers))
		prevLine, prevStart = t.Line, t.Start
	}
	return data
}

// Decode reconstructs tokens from a packed array by running partial sums
// over the line and start deltas. It is the inverse of Encode for any token
// sequence fully representable in the legend.
func (l *Legend) Decode(data []uint32) ([]Token, error) {
	if len(data)%5 != 0 {
		return nil, fmt.Errorf("semtok: packed array length %d is not a multiple of 5", len(data))
	}
	tokens := make([]Token, 0, len(data)/5)
	var line, start uint32
	for i := 0; i < len(data); i += 5 {
		deltaLine, deltaStart := data[i], data[i+1]
		if deltaLine > 0 {
			line += deltaLine
			start = deltaStart
		} else {
			start += deltaStart
		}
		typeIndex := data[i+3]
		if int(typeIndex) >= len(l.types) {
			return nil, fmt.Errorf("semtok: token type index %d outside legend of %d types", typeIndex, len(l.types))
		}
		var mods []Modifier
		for bit, m := range l.modifiers {
			if data[i+4]&(1<<uint32(bit)) != 0 {
				mods = append(mods, m)
			}
		}
		tokens = append(tokens, Token{
			Line:      line,
			Start:     start,
			Length:    data[i+2],
			Type:      l.types[typeIndex],
			Modifiers: mods,
		})
	}
	return tokens, nil
}
