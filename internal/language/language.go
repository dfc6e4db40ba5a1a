package language

import (
	"sort"
	"strings"
)

// Language maps a snippet file extension to the display name used for
// its tab and the token used to open its fenced code block.
type Language struct {
	Ext    string `mapstructure:"ext"`
	Name   string `mapstructure:"name"`
	Syntax string `mapstructure:"syntax"`
}

// defaults is the built-in extension table. Extensions may span more
// than one dot segment (".schema.json").
var defaults = []Language{
	{Ext: ".py", Name: "Python", Syntax: "python"},
	{Ext: ".cs", Name: "C#", Syntax: "csharp"},
	{Ext: ".kt", Name: "Kotlin", Syntax: "kotlin"},
	{Ext: ".java", Name: "Java", Syntax: "java"},
	{Ext: ".go", Name: "Go", Syntax: "go"},
	{Ext: ".php", Name: "PHP", Syntax: "php"},
	{Ext: ".ts", Name: "TypeScript", Syntax: "typescript"},
	{Ext: ".schema.json", Name: "JSON Schema", Syntax: "json"},
}

// Set is an immutable language table with its two derived orderings:
// display-name order for emitting tabs, and extension-length order for
// matching file names.
type Set struct {
	tabOrder   []Language // sorted by Name
	matchOrder []Language // sorted by len(Ext), longest first
}

// NewSet builds a Set from the built-in table plus any extra entries.
// An extra entry whose extension is already in the table replaces the
// built-in record, so config can both extend and override.
func NewSet(extra ...Language) *Set {
	byExt := make(map[string]Language, len(defaults)+len(extra))
	for _, l := range defaults {
		byExt[l.Ext] = l
	}
	for _, l := range extra {
		if l.Ext == "" || l.Name == "" {
			continue
		}
		byExt[l.Ext] = l
	}

	langs := make([]Language, 0, len(byExt))
	for _, l := range byExt {
		langs = append(langs, l)
	}

	s := &Set{
		tabOrder:   make([]Language, len(langs)),
		matchOrder: make([]Language, len(langs)),
	}
	copy(s.tabOrder, langs)
	copy(s.matchOrder, langs)

	sort.Slice(s.tabOrder, func(i, j int) bool {
		return s.tabOrder[i].Name < s.tabOrder[j].Name
	})
	// Longest extension first so ".schema.json" wins over a plain
	// ".json"-style suffix. Ties broken by name for determinism.
	sort.Slice(s.matchOrder, func(i, j int) bool {
		if len(s.matchOrder[i].Ext) != len(s.matchOrder[j].Ext) {
			return len(s.matchOrder[i].Ext) > len(s.matchOrder[j].Ext)
		}
		return s.matchOrder[i].Name < s.matchOrder[j].Name
	})
	return s
}

// TabOrder returns the languages sorted by display name. Callers must
// not modify the returned slice.
func (s *Set) TabOrder() []Language {
	return s.tabOrder
}

// Match finds the language whose extension is the longest suffix of
// fileName. The second return is false if no extension matches.
func (s *Set) Match(fileName string) (Language, bool) {
	for _, l := range s.matchOrder {
		if strings.HasSuffix(fileName, l.Ext) && len(fileName) > len(l.Ext) {
			return l, true
		}
	}
	return Language{}, false
}

// Base strips the matched extension from fileName. The second return
// is false if no extension matches.
func (s *Set) Base(fileName string) (string, bool) {
	l, ok := s.Match(fileName)
	if !ok {
		return "", false
	}
	return strings.TrimSuffix(fileName, l.Ext), true
}

// Len returns the number of languages in the set.
func (s *Set) Len() int {
	return len(s.tabOrder)
}
