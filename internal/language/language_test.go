package language

import (
	"testing"
)

func TestMatch(t *testing.T) {
	set := NewSet()

	tests := []struct {
		name     string
		fileName string
		wantName string
		wantOK   bool
	}{
		{
			name:     "simple extension",
			fileName: "demo.py",
			wantName: "Python",
			wantOK:   true,
		},
		{
			name:     "multi-segment extension wins over suffix",
			fileName: "example.schema.json",
			wantName: "JSON Schema",
			wantOK:   true,
		},
		{
			name:     "unrecognized extension",
			fileName: "notes.txt",
			wantName: "",
			wantOK:   false,
		},
		{
			name:     "no extension",
			fileName: "README",
			wantName: "",
			wantOK:   false,
		},
		{
			name:     "extension only",
			fileName: ".go",
			wantName: "",
			wantOK:   false,
		},
		{
			name:     "case sensitive",
			fileName: "demo.GO",
			wantName: "",
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lang, ok := set.Match(tt.fileName)
			if ok != tt.wantOK {
				t.Fatalf("Match(%q) ok = %v, want %v", tt.fileName, ok, tt.wantOK)
			}
			if lang.Name != tt.wantName {
				t.Errorf("Match(%q) name = %q, want %q", tt.fileName, lang.Name, tt.wantName)
			}
		})
	}
}

func TestLongestExtensionPrecedence(t *testing.T) {
	// With both .json and .schema.json present, the longer one must
	// win for files carrying the two-segment suffix.
	set := NewSet(Language{Ext: ".json", Name: "JSON", Syntax: "json"})

	lang, ok := set.Match("example.schema.json")
	if !ok {
		t.Fatal("expected example.schema.json to match")
	}
	if lang.Name != "JSON Schema" {
		t.Errorf("example.schema.json matched %q, want %q", lang.Name, "JSON Schema")
	}

	lang, ok = set.Match("example.json")
	if !ok {
		t.Fatal("expected example.json to match")
	}
	if lang.Name != "JSON" {
		t.Errorf("example.json matched %q, want %q", lang.Name, "JSON")
	}
}

func TestTabOrder(t *testing.T) {
	set := NewSet()

	want := []string{"C#", "Go", "JSON Schema", "Java", "Kotlin", "PHP", "Python", "TypeScript"}
	order := set.TabOrder()

	if len(order) != len(want) {
		t.Fatalf("TabOrder() has %d entries, want %d", len(order), len(want))
	}
	for i, lang := range order {
		if lang.Name != want[i] {
			t.Errorf("TabOrder()[%d] = %q, want %q", i, lang.Name, want[i])
		}
	}
}

func TestNewSetExtra(t *testing.T) {
	tests := []struct {
		name     string
		extra    []Language
		fileName string
		wantName string
		wantLen  int
	}{
		{
			name:     "extra entry extends the table",
			extra:    []Language{{Ext: ".rs", Name: "Rust", Syntax: "rust"}},
			fileName: "demo.rs",
			wantName: "Rust",
			wantLen:  9,
		},
		{
			name:     "extra entry overrides a default",
			extra:    []Language{{Ext: ".py", Name: "Python 3", Syntax: "python3"}},
			fileName: "demo.py",
			wantName: "Python 3",
			wantLen:  8,
		},
		{
			name:     "blank entries are dropped",
			extra:    []Language{{Ext: "", Name: "Nameless"}, {Ext: ".x", Name: ""}},
			fileName: "demo.py",
			wantName: "Python",
			wantLen:  8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := NewSet(tt.extra...)
			if set.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", set.Len(), tt.wantLen)
			}
			lang, ok := set.Match(tt.fileName)
			if !ok {
				t.Fatalf("expected %q to match", tt.fileName)
			}
			if lang.Name != tt.wantName {
				t.Errorf("Match(%q) name = %q, want %q", tt.fileName, lang.Name, tt.wantName)
			}
		})
	}
}

func TestBase(t *testing.T) {
	set := NewSet()

	tests := []struct {
		fileName string
		wantBase string
		wantOK   bool
	}{
		{"demo.py", "demo", true},
		{"example.schema.json", "example", true},
		{"notes.txt", "", false},
	}

	for _, tt := range tests {
		base, ok := set.Base(tt.fileName)
		if ok != tt.wantOK || base != tt.wantBase {
			t.Errorf("Base(%q) = (%q, %v), want (%q, %v)", tt.fileName, base, ok, tt.wantBase, tt.wantOK)
		}
	}
}
