package main

import (
	"fmt"
	"os"

	"github.com/snipmd/snipmd/internal/config"
	"github.com/snipmd/snipmd/internal/generator"
	"github.com/snipmd/snipmd/internal/ui"
	"github.com/snipmd/snipmd/internal/watch"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "snipmd [path]",
	Short: "Tabbed markdown from multi-language snippets",
	Long: `Generates combined markdown files from multi-language snippet sources.

Scans a snippets directory tree, groups files that share a base name
but differ by language extension (demo.py, demo.go, ...), and writes
one <base>.md per group presenting the variants as selectable tabs.
Files are only rewritten when their content actually changed, so it
is safe to run as a pre-build hook of a documentation pipeline.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

var checkCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Verify combined files are up to date",
	Long: `Walks the snippets tree without writing anything and lists every
combined markdown file that is missing or stale. Exits nonzero when
anything needs regeneration, which makes it suitable for CI.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Regenerate combined files as snippets change",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWatch,
}

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "Print the effective language table",
	Args:  cobra.NoArgs,
	RunE:  runLanguages,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(languagesCmd)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Report skipped files and per-directory detail")
	rootCmd.PersistentFlags().String("prefix", "", "Include directive prefix (default \"snippets\")")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
	}
}

// newGenerator builds a generator from config and the optional path
// argument shared by the root, check, and watch commands.
func newGenerator(cmd *cobra.Command, args []string) (*generator.Generator, error) {
	path := config.GetPath()
	if len(args) > 0 {
		path = args[0]
		config.SetPath(path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("snippets path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("snippets path %s is not a directory", path)
	}

	prefix := config.GetPrefix()
	if p, _ := cmd.Flags().GetString("prefix"); p != "" {
		prefix = p
	}

	return generator.New(path, config.Languages(),
		generator.WithPrefix(prefix),
		generator.WithCombinedExt(config.GetCombinedExt()))
}

func runGenerate(cmd *cobra.Command, args []string) error {
	gen, err := newGenerator(cmd, args)
	if err != nil {
		return err
	}

	stats, err := gen.Generate()
	if err != nil {
		return err
	}

	fmt.Printf("snipmd: %d written, %d unchanged (%d snippets in %d groups)\n",
		stats.Written, stats.Unchanged, stats.Snippets, stats.Groups)
	if config.GetVerbose() && stats.Unmatched > 0 {
		fmt.Printf("snipmd: skipped %d files with unrecognized extensions\n", stats.Unmatched)
	}
	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	gen, err := newGenerator(cmd, args)
	if err != nil {
		return err
	}

	stale, stats, err := gen.Check()
	if err != nil {
		return err
	}

	if len(stale) == 0 {
		fmt.Printf("snipmd: %d combined files up to date\n", stats.Unchanged)
		return nil
	}
	fmt.Fprintln(os.Stderr, "snipmd: combined files need regeneration:")
	for _, path := range stale {
		fmt.Fprintf(os.Stderr, "  %s\n", path)
	}
	return fmt.Errorf("%d of %d combined files stale", len(stale), stats.Groups)
}

func runWatch(cmd *cobra.Command, args []string) error {
	gen, err := newGenerator(cmd, args)
	if err != nil {
		return err
	}

	langs := config.Languages()
	w, err := watch.New(gen.Root(), func(name string) bool {
		_, ok := langs.Match(name)
		return ok
	})
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer w.Close()
	w.Start()

	return ui.Run(gen, w)
}

func runLanguages(cmd *cobra.Command, args []string) error {
	fmt.Print(ui.RenderLanguages(config.Languages()))
	return nil
}

func main() {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
