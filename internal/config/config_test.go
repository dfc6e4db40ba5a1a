package config

import (
	"path/filepath"
	"testing"

	"github.com/snipmd/snipmd/internal/language"
)

func TestLanguagesMerge(t *testing.T) {
	old := C.Languages
	defer func() { C.Languages = old }()

	C.Languages = []language.Language{
		{Ext: ".rs", Name: "Rust", Syntax: "rust"},
		{Ext: ".py", Name: "Python 3", Syntax: "python3"},
	}

	set := Languages()
	if set.Len() != 9 {
		t.Errorf("Len() = %d, want 9", set.Len())
	}

	lang, ok := set.Match("demo.rs")
	if !ok || lang.Name != "Rust" {
		t.Errorf("Match(demo.rs) = (%q, %v), want Rust", lang.Name, ok)
	}

	lang, ok = set.Match("demo.py")
	if !ok || lang.Name != "Python 3" {
		t.Errorf("Match(demo.py) = (%q, %v), want the override", lang.Name, ok)
	}
}

func TestExpandTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		path string
		want string
	}{
		{"~/snippets", filepath.Join(home, "snippets")},
		{"snippets", "snippets"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := expandTilde(tt.path); got != tt.want {
			t.Errorf("expandTilde(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
