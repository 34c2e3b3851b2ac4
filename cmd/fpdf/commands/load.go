package commands

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/coregx/fpdf/internal/ingest"
)

var (
	loadInputFile  string
	loadInputDir   string
	loadNumWorkers int
)

var loadCmd = &cobra.Command{
	Use:   "load [mode]",
	Short: "Ingest one or more PDFs into the cache",
	Long: `load analyzes --input-file or every *.pdf under --input-dir and writes
one cache entry per document. mode is the extraction mode recorded on each
entry: ultra (default), text, custom, images-only, or base64-only.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().StringVar(&loadInputFile, "input-file", "", "Single PDF to ingest")
	loadCmd.Flags().StringVar(&loadInputDir, "input-dir", "", "Directory of PDFs to ingest")
	loadCmd.Flags().IntVar(&loadNumWorkers, "num-workers", 0, "Worker count (defaults to FPDF_DEFAULT_WORKERS)")
}

func runLoad(cmd *cobra.Command, args []string) error {
	mode := "ultra"
	if len(args) == 1 {
		mode = args[0]
	}

	if loadInputFile == "" && loadInputDir == "" {
		return userErrorf(fmt.Errorf("load: one of --input-file or --input-dir is required"))
	}
	if loadInputFile != "" && loadInputDir != "" {
		return userErrorf(fmt.Errorf("load: --input-file and --input-dir are mutually exclusive"))
	}

	paths, err := loadInputPaths()
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return userErrorf(fmt.Errorf("load: no PDF files found"))
	}

	workers := loadNumWorkers
	if workers <= 0 {
		workers = current.cfg.DefaultWorkers
	}

	runner := ingest.New(workers, current.readers, current.analyzer, current.store, mode, current.log)
	results := runner.Run(cmd.Context(), paths)
	debugDump("load results", results)

	return writeLoadResults(results)
}

func loadInputPaths() ([]string, error) {
	if loadInputFile != "" {
		if err := validateAllowedPath(loadInputFile); err != nil {
			return nil, err
		}
		return []string{loadInputFile}, nil
	}

	if err := validateAllowedPath(loadInputDir); err != nil {
		return nil, err
	}
	matches, err := filepath.Glob(filepath.Join(loadInputDir, "*.pdf"))
	if err != nil {
		return nil, userErrorf(fmt.Errorf("load: scanning %q: %w", loadInputDir, err))
	}
	sort.Strings(matches)
	return matches, nil
}

func writeLoadResults(results []ingest.Result) error {
	var ok, failed, cancelled int
	type row struct {
		Path    string `json:"path"`
		CacheID int    `json:"cacheId,omitempty"`
		Status  string `json:"status"`
		Error   string `json:"error,omitempty"`
	}
	rows := make([]row, 0, len(results))

	for _, r := range results {
		switch {
		case r.Cancelled:
			cancelled++
			rows = append(rows, row{Path: r.Path, Status: "cancelled", Error: errString(r.Err)})
		case r.Err != nil:
			failed++
			rows = append(rows, row{Path: r.Path, Status: "error", Error: errString(r.Err)})
		default:
			ok++
			rows = append(rows, row{Path: r.Path, CacheID: r.Entry.ID, Status: "ok"})
		}
	}

	if err := renderRows(rows, "path", "cacheId", "status", "error"); err != nil {
		return err
	}
	printVerbosef("load: %d ok, %d error, %d cancelled", ok, failed, cancelled)
	return nil
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func validateAllowedPath(path string) error {
	if len(current.cfg.AllowedDirs) == 0 {
		return nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return userErrorf(fmt.Errorf("load: resolving %q: %w", path, err))
	}
	for _, dir := range current.cfg.AllowedDirs {
		if rel, err := filepath.Rel(dir, abs); err == nil && rel != ".." && len(rel) > 0 && rel[0] != '.' {
			return nil
		}
	}
	return userErrorf(fmt.Errorf("load: %q is outside FPDF_ALLOWED_DIRS", path))
}
