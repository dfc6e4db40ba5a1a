package generator

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/snipmd/snipmd/internal/language"
)

// Generator scans a snippets tree and writes one combined markdown
// file per example base name into the directory the snippets live in.
type Generator struct {
	root        string // absolute path to the snippets root
	prefix      string // include directive prefix, usually "snippets"
	combinedExt string // extension of generated files, usually ".md"
	langs       *language.Set
}

// Option configures a Generator.
type Option func(*Generator)

// WithPrefix sets the include directive prefix.
func WithPrefix(prefix string) Option {
	return func(g *Generator) { g.prefix = prefix }
}

// WithCombinedExt sets the extension of generated combined files.
func WithCombinedExt(ext string) Option {
	return func(g *Generator) { g.combinedExt = ext }
}

// New creates a Generator rooted at the given snippets directory.
func New(root string, langs *language.Set, opts ...Option) (*Generator, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving snippets root: %w", err)
	}
	g := &Generator{
		root:        abs,
		prefix:      "snippets",
		combinedExt: ".md",
		langs:       langs,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Root returns the absolute snippets root.
func (g *Generator) Root() string {
	return g.root
}

// Stats summarizes a single generation pass.
type Stats struct {
	Dirs      int // directories visited
	Snippets  int // snippet files matched to a language
	Groups    int // combined files considered
	Written   int // combined files created or rewritten
	Unchanged int // combined files left untouched
	Unmatched int // files skipped because no extension matched
}

// ResolveSnippetPath converts an absolute snippet path into the
// root-relative reference used inside include directives. The second
// return is false if the path lies outside the snippets root. The
// check is segment-aware, so a sibling directory whose name merely
// starts with the root's name does not pass.
func (g *Generator) ResolveSnippetPath(abs string) (string, bool) {
	rel, err := filepath.Rel(g.root, filepath.Clean(abs))
	if err != nil {
		return "", false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return g.prefix + "/" + filepath.ToSlash(rel), true
}

// groupByBase buckets file names by base name. A file's language is
// the one with the longest extension that suffixes its name; files
// matching no language are counted and otherwise ignored.
func (g *Generator) groupByBase(names []string, stats *Stats) map[string]map[string]language.Language {
	groups := make(map[string]map[string]language.Language)
	for _, name := range names {
		lang, ok := g.langs.Match(name)
		if !ok {
			stats.Unmatched++
			continue
		}
		stats.Snippets++
		base := strings.TrimSuffix(name, lang.Ext)
		if groups[base] == nil {
			groups[base] = make(map[string]language.Language)
		}
		groups[base][lang.Ext] = lang
	}
	return groups
}

// renderCombined assembles the tabbed markdown for one base name.
// Tabs appear in display-name order regardless of how the directory
// listing was ordered, and the result ends with one trailing newline.
func (g *Generator) renderCombined(dir, base string, present map[string]language.Language) (string, error) {
	var lines []string
	for _, lang := range g.langs.TabOrder() {
		if _, ok := present[lang.Ext]; !ok {
			continue
		}
		ref, ok := g.ResolveSnippetPath(filepath.Join(dir, base+lang.Ext))
		if !ok {
			return "", fmt.Errorf("snippet %s%s in %s is outside the snippets root", base, lang.Ext, dir)
		}
		lines = append(lines,
			fmt.Sprintf("=== %q", lang.Name),
			"",
			"    ```"+lang.Syntax,
			fmt.Sprintf("    --8<-- %q", ref),
			"    ```",
		)
	}
	lines = append(lines, "")
	return strings.Join(lines, "\n"), nil
}

// writeIfChanged writes content to path unless the file already holds
// exactly that content. It reports whether a write happened. A missing
// file is not an error, just a forced write.
func writeIfChanged(path, content string) (bool, error) {
	old, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}
	if err == nil && string(old) == content {
		return false, nil
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, err
	}
	return true, nil
}

// processDir generates combined files for one directory's entries.
func (g *Generator) processDir(dir string, names []string, stats *Stats) error {
	groups := g.groupByBase(names, stats)

	bases := make([]string, 0, len(groups))
	for base := range groups {
		bases = append(bases, base)
	}
	sort.Strings(bases)

	for _, base := range bases {
		stats.Groups++
		content, err := g.renderCombined(dir, base, groups[base])
		if err != nil {
			return err
		}
		target := filepath.Join(dir, base+g.combinedExt)
		wrote, err := writeIfChanged(target, content)
		if err != nil {
			return fmt.Errorf("writing %s: %w", target, err)
		}
		if wrote {
			stats.Written++
		} else {
			stats.Unchanged++
		}
	}
	return nil
}

// Generate walks the snippets root and regenerates every combined
// file whose content is out of date. Directories without recognized
// snippets are left untouched. The first I/O error aborts the walk;
// the whole pass is idempotent, so rerunning after a failure is safe.
func (g *Generator) Generate() (Stats, error) {
	var stats Stats
	err := filepath.WalkDir(g.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		stats.Dirs++
		names, err := listFiles(path)
		if err != nil {
			return err
		}
		return g.processDir(path, names, &stats)
	})
	if err != nil {
		return stats, fmt.Errorf("generating snippets under %s: %w", g.root, err)
	}
	return stats, nil
}

// Check walks the snippets root without writing anything and returns
// the combined files that are missing or whose content is stale.
func (g *Generator) Check() ([]string, Stats, error) {
	var (
		stats Stats
		stale []string
	)
	err := filepath.WalkDir(g.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		stats.Dirs++
		names, err := listFiles(path)
		if err != nil {
			return err
		}
		groups := g.groupByBase(names, &stats)

		bases := make([]string, 0, len(groups))
		for base := range groups {
			bases = append(bases, base)
		}
		sort.Strings(bases)

		for _, base := range bases {
			stats.Groups++
			content, err := g.renderCombined(path, base, groups[base])
			if err != nil {
				return err
			}
			target := filepath.Join(path, base+g.combinedExt)
			old, err := os.ReadFile(target)
			if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			if err != nil || string(old) != content {
				stale = append(stale, target)
			} else {
				stats.Unchanged++
			}
		}
		return nil
	})
	if err != nil {
		return nil, stats, fmt.Errorf("checking snippets under %s: %w", g.root, err)
	}
	return stale, stats, nil
}

// listFiles returns the names of the plain files directly inside dir.
func listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}
