// Package commands implements the fpdf CLI command tree: a forensic PDF
// analysis and filtering surface (spec.md §6), not a PDF creation tool.
package commands

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/coregx/fpdf/internal/analyzer"
	"github.com/coregx/fpdf/internal/config"
	"github.com/coregx/fpdf/internal/logging"
	"github.com/coregx/fpdf/internal/pool"
	"github.com/coregx/fpdf/internal/query"
	"github.com/coregx/fpdf/internal/store"
)

var (
	// Version is the application version (set at build time).
	Version = "dev"
	// GitCommit is the git commit hash (set at build time).
	GitCommit = "unknown"
	// BuildDate is the build date (set at build time).
	BuildDate = "unknown"

	// Global flags.
	outputFormat string
	verbose      bool
	cacheDirFlag string
	cfgPathFlag  string
)

// app bundles the wiring every command needs: configuration, the reader
// pool, the analyzer, the cache store and the query engine built over it.
// Built once in rootCmd's PersistentPreRunE and stored in the package-level
// current, which each RunE reads.
type app struct {
	cfg      config.Config
	log      *zap.Logger
	readers  *pool.Pool
	analyzer *analyzer.Analyzer
	store    *store.Store
	engine   *query.Engine
}

var current *app

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "fpdf",
	Short: "fpdf - forensic PDF analysis and filtering engine",
	Long: `fpdf ingests PDFs into a queryable cache, then lets you search and
diff them without re-parsing from scratch every time.

Examples:
  fpdf load ultra --input-dir ./incoming --num-workers 8
  fpdf cache list
  fpdf find all --text "invoice & ~certidao~" --pages 1-3 -F json
  fpdf diff --template template.pdf --target filled.pdf
  fpdf last-session revised.pdf`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd == versionCmd {
			return nil
		}
		return bootstrap()
	},
}

// Execute runs the root command and returns the process exit code
// (spec.md §6: 0 success, 1 user error, 2 internal error).
func Execute() int {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "fpdf:", err)
	}
	return exitCode(err)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "F", "txt", "Output format: txt, json, csv, count, raw")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (also set by FPDF_DEBUG)")
	rootCmd.PersistentFlags().StringVar(&cacheDirFlag, "cache-dir", "", "Cache storage directory (overrides FPDF_CACHE_DIR)")
	rootCmd.PersistentFlags().StringVar(&cfgPathFlag, "config", "fpdf.yaml", "Path to a YAML configuration file")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(trueDiffCmd)
	rootCmd.AddCommand(lastSessionCmd)
	rootCmd.AddCommand(enhancedLastSessionCmd)
	rootCmd.AddCommand(tsLastSessionCmd)
	rootCmd.AddCommand(pipelineTjpbCmd)
}

// bootstrap loads configuration and builds the shared app wiring exactly
// once per process invocation.
func bootstrap() error {
	if current != nil {
		return nil
	}

	cfg, err := config.Load(cfgPathFlag)
	if err != nil {
		return err
	}
	if verbose {
		cfg.Debug = true
	}
	if cacheDirFlag != "" {
		cfg.CacheDir = cacheDirFlag
	}

	log, err := logging.New(cfg.Debug)
	if err != nil {
		return fmt.Errorf("fpdf: building logger: %w", err)
	}

	readers := pool.New()
	a := analyzer.New(cfg.Analyzer)
	st := store.New(cfg.CacheDir)
	engine := query.NewEngine(st, readers)

	current = &app{cfg: cfg, log: log, readers: readers, analyzer: a, store: st, engine: engine}
	return nil
}

// printVerbosef prints a message if verbose mode is enabled.
func printVerbosef(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

// debugDump writes a full structural dump of v to stderr under
// FPDF_DEBUG=1/--verbose, so a forensic analyst can inspect every field
// of an AnalysisResult or DiffReport without guessing at -F json's
// flattened column set.
func debugDump(label string, v interface{}) {
	if current == nil || !current.cfg.Debug {
		return
	}
	fmt.Fprintf(os.Stderr, "--- %s ---\n%s", label, spew.Sdump(v))
}
