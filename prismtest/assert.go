package prismtest

import (
	"strings"
	"testing"

	"github.com/prism-lsp/prism/protocol"
)

// AssertHoverContains asserts that the hover result contains the expected substring.
func AssertHoverContains(t testing.TB, hover *protocol.Hover, substr string) {
	t.Helper()
	if hover == nil {
		t.Fatal("hover result is nil")
	}
	if !strings.Contains(hover.Contents.Value, substr) {
		t.Errorf("hover contents %q does not contain %q", hover.Contents.Value, substr)
	}
}

// AssertCompletionContains asserts that the completion list contains an item with the given label.
func AssertCompletionContains(t testing.TB, list *protocol.CompletionList, label string) {
	t.Helper()
	if list == nil {
		t.Fatal("completion list is nil")
	}
	for _, item := range list.Items {
		if item.Label == label {
			return
		}
	}
	labels := make([]string, len(list.Items))
	for i, item := range list.Items {
		labels[i] = item.Label
	}
	t.Errorf("completion list does not contain %q, got: %v", label, labels)
}

// AssertDiagnosticCount asserts the number of diagnostics for a URI.
func AssertDiagnosticCount(t testing.TB, diags []protocol.PublishDiagnosticsParams, uri string, count int) {
	t.Helper()
	for _, d := range diags {
		if string(d.URI) == uri {
			if len(d.Diagnostics) != count {
				t.Errorf("expected %d diagnostics for %s, got %d", count, uri, len(d.Diagnostics))
			}
			return
		}
	}
	if count != 0 {
		t.Errorf("no diagnostics found for %s, expected %d", uri, count)
	}
}

// AssertTokenData asserts that a semantic tokens result carries exactly the
// expected packed array.
func AssertTokenData(t testing.TB, tokens *protocol.SemanticTokens, want []uint32) {
	t.Helper()
	if tokens == nil {
		t.Fatal("semantic tokens result is nil")
	}
	if len(tokens.Data)%5 != 0 {
		t.Errorf("token data length %d is not a multiple of 5", len(tokens.Data))
	}
	if len(tokens.Data) != len(want) {
		t.Fatalf("token data = %v, want %v", tokens.Data, want)
	}
	for i := range want {
		if tokens.Data[i] != want[i] {
			t.Fatalf("token data = %v, want %v", tokens.Data, want)
		}
	}
}

// ApplyEdits replays semantic token edits against a previous packed array,
// the way a client would, and returns the resulting array.
func ApplyEdits(prev []uint32, edits []protocol.SemanticTokensEdit) []uint32 {
	out := append([]uint32(nil), prev...)
	for _, e := range edits {
		tail := append([]uint32(nil), out[e.Start+e.DeleteCount:]...)
		out = append(out[:e.Start], e.Data...)
		out = append(out, tail...)
	}
	return out
}

// AssertLocationCount asserts the number of locations returned.
func AssertLocationCount(t testing.TB, locations []protocol.Location, count int) {
	t.Helper()
	if len(locations) != count {
		t.Errorf("expected %d locations, got %d", count, len(locations))
	}
}
