package semtok

import (
	"reflect"
	"testing"
)

func TestEncode(t *testing.T) {
	legend := DefaultLegend()
	tests := []struct {
		name   string
		tokens []Token
		want   []uint32
	}{
		{
			name:   "empty",
			tokens: nil,
			want:   []uint32{},
		},
		{
			name: "same line relative start",
			tokens: []Token{
				{Line: 0, Start: 0, Length: 3, Type: TokType},
				{Line: 0, Start: 5, Length: 2, Type: TokClass, Modifiers: []Modifier{ModDeclaration}},
			},
			want: []uint32{0, 0, 3, 1, 0, 0, 5, 2, 2, 1},
		},
		{
			name: "new line absolute start",
			tokens: []Token{
				{Line: 0, Start: 4, Length: 3, Type: TokKeyword},
				{Line: 2, Start: 2, Length: 7, Type: TokFunction},
			},
			want: []uint32{0, 4, 3, 15, 0, 2, 2, 7, 12, 0},
		},
		{
			name: "unsorted input is sorted first",
			tokens: []Token{
				{Line: 3, Start: 0, Length: 1, Type: TokNumber},
				{Line: 1, Start: 8, Length: 4, Type: TokString},
				{Line: 1, Start: 2, Length: 4, Type: TokKeyword},
			},
			want: []uint32{1, 2, 4, 15, 0, 0, 6, 4, 18, 0, 2, 0, 1, 19, 0},
		},
		{
			name: "overlapping tokens pass through",
			tokens: []Token{
				{Line: 0, Start: 0, Length: 5, Type: TokVariable},
				{Line: 0, Start: 0, Length: 5, Type: TokProperty},
			},
			want: []uint32{0, 0, 5, 8, 0, 0, 0, 5, 9, 0},
		},
		{
			name: "modifier mask combines bits",
			tokens: []Token{
				{Line: 0, Start: 0, Length: 4, Type: TokFunction, Modifiers: []Modifier{ModDeclaration, ModDefaultLibrary}},
			},
			want: []uint32{0, 0, 4, 12, 1 | 1<<9},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := legend.Encode(tt.tokens)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Encode() = %v, want %v", got, tt.want)
			}
			if len(got)%5 != 0 {
				t.Errorf("Encode() length %d is not a multiple of 5", len(got))
			}
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	legend := DefaultLegend()
	tokens := []Token{
		{Line: 0, Start: 0, Length: 7, Type: TokKeyword},
		{Line: 0, Start: 8, Length: 4, Type: TokNamespace, Modifiers: []Modifier{ModDeclaration}},
		{Line: 2, Start: 0, Length: 4, Type: TokKeyword},
		{Line: 2, Start: 5, Length: 4, Type: TokFunction, Modifiers: []Modifier{ModDeclaration, ModStatic}},
		{Line: 3, Start: 1, Length: 6, Type: TokVariable},
		{Line: 10, Start: 2, Length: 1, Type: TokOperator},
	}
	got, err := legend.Decode(legend.Encode(tokens))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(got, tokens) {
		t.Errorf("round trip = %+v, want %+v", got, tokens)
	}
}

func TestDecodeErrors(t *testing.T) {
	legend := DefaultLegend()
	if _, err := legend.Decode([]uint32{0, 0, 3}); err == nil {
		t.Error("expected error for array length not a multiple of 5")
	}
	if _, err := legend.Decode([]uint32{0, 0, 3, 99, 0}); err == nil {
		t.Error("expected error for type index outside legend")
	}
}

func TestRestrictedLegendFallback(t *testing.T) {
	legend := DefaultLegend().Restrict(
		[]string{"type", "function", "variable", "string"},
		[]string{"declaration"},
	)

	// method degrades to function, struct to type; unknown modifiers drop.
	tokens := []Token{
		{Line: 0, Start: 0, Length: 3, Type: TokStruct},
		{Line: 0, Start: 4, Length: 5, Type: TokMethod, Modifiers: []Modifier{ModDeclaration, ModAsync}},
	}
	// Restricted legend keeps server order: type=0, variable=1, function=2, string=3.
	want := []uint32{0, 0, 3, 0, 0, 0, 4, 5, 2, 1}
	got := legend.Encode(tokens)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Encode() = %v, want %v", got, want)
	}
}

func TestRestrictEmptyClientListsKeepFullLegend(t *testing.T) {
	legend := DefaultLegend().Restrict(nil, nil)
	if len(legend.TypeNames()) != len(TokenTypes) {
		t.Errorf("restricted legend has %d types, want %d", len(legend.TypeNames()), len(TokenTypes))
	}
	if len(legend.ModifierNames()) != len(TokenModifiers) {
		t.Errorf("restricted legend has %d modifiers, want %d", len(legend.ModifierNames()), len(TokenModifiers))
	}
}

func TestRestrictPreservesServerOrder(t *testing.T) {
	legend := DefaultLegend().Restrict([]string{"function", "keyword", "type"}, nil)
	want := []string{"type", "function", "keyword"}
	if got := legend.TypeNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("TypeNames() = %v, want %v", got, want)
	}
}

func TestInRange(t *testing.T) {
	tokens := []Token{
		{Line: 0, Start: 0, Length: 3, Type: TokKeyword},
		{Line: 1, Start: 2, Length: 4, Type: TokVariable},
		{Line: 1, Start: 10, Length: 2, Type: TokOperator},
		{Line: 3, Start: 0, Length: 5, Type: TokComment},
	}
	tests := []struct {
		name           string
		sl, sc, el, ec uint32
		want           int
	}{
		{"whole document", 0, 0, 10, 0, 4},
		{"single line", 1, 0, 1, 100, 2},
		{"mid-token overlap", 1, 3, 1, 4, 1},
		{"empty span between tokens", 2, 0, 2, 5, 0},
		{"excludes token ending at range start", 0, 3, 0, 9, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InRange(tokens, tt.sl, tt.sc, tt.el, tt.ec)
			if len(got) != tt.want {
				t.Errorf("InRange() kept %d tokens, want %d", len(got), tt.want)
			}
		})
	}
}
