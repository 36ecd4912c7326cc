package treesitter_test

import (
	"testing"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/prism-lsp/prism/treesitter"
)

func TestRegistryLanguageForURI(t *testing.T) {
	yaml := yLang()
	json := jsonLang()

	r := treesitter.NewRegistry(treesitter.Config{
		Languages: map[string]*tree_sitter.Language{".json": json},
		Matchers: []treesitter.LanguageMatcher{
			{
				Language:   yaml,
				Extensions: []string{".yml", ".yaml"},
				Filenames:  []string{".clang-format"},
				Pattern:    "*.workflow",
				LanguageID: "yaml",
			},
		},
	})

	tests := []struct {
		name       string
		uri        string
		languageID string
		want       *tree_sitter.Language
		wantErr    bool
	}{
		{name: "matcher extension", uri: "file:///config.yaml", want: yaml},
		{name: "matcher alternate extension", uri: "file:///ci.yml", want: yaml},
		{name: "exact filename", uri: "file:///repo/.clang-format", want: yaml},
		{name: "glob pattern", uri: "file:///deploy.workflow", want: yaml},
		{name: "languageID", uri: "file:///noext", languageID: "yaml", want: yaml},
		{name: "extension map fallback", uri: "file:///data.json", want: json},
		{name: "unknown", uri: "file:///readme.md", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.LanguageForURI(tt.uri, tt.languageID)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error for unmatched URI")
				}
				return
			}
			if err != nil {
				t.Fatalf("LanguageForURI: %v", err)
			}
			if got != tt.want {
				t.Errorf("resolved wrong language for %s", tt.uri)
			}
		})
	}
}

func TestRegistryFilenameBeatsExtension(t *testing.T) {
	yaml := yLang()
	json := jsonLang()

	r := treesitter.NewRegistry(treesitter.Config{
		Languages: map[string]*tree_sitter.Language{".json": json},
		Matchers: []treesitter.LanguageMatcher{
			{Language: yaml, Filenames: []string{"special.json"}},
		},
	})

	got, err := r.LanguageForURI("file:///dir/special.json", "")
	if err != nil {
		t.Fatalf("LanguageForURI: %v", err)
	}
	if got != yaml {
		t.Error("exact filename matcher should win over the extension map")
	}
}

func TestRegistryRegisterAfterConstruction(t *testing.T) {
	yaml := yLang()

	r := treesitter.NewRegistry(treesitter.Config{})
	if r.HasLanguage("file:///a.yaml") {
		t.Fatal("empty registry should not resolve anything")
	}

	r.Register("yaml", yaml) // leading dot is optional
	if !r.HasLanguage("file:///a.yaml") {
		t.Error("expected .yaml to resolve after Register")
	}

	r.RegisterMatcher(treesitter.LanguageMatcher{Language: yaml, Filenames: []string{"Cakefile"}})
	if !r.HasLanguage("file:///Cakefile") {
		t.Error("expected Cakefile to resolve after RegisterMatcher")
	}
}
