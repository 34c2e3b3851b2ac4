package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coregx/fpdf/internal/forensic"
)

var (
	trueDiffA string
	trueDiffB string
)

var trueDiffCmd = &cobra.Command{
	Use:   "true-diff",
	Short: "Strict, symmetric object-level diff between two PDFs",
	Long: `true-diff compares --a and --b object-by-object rather than page-by-page:
every cross-reference entry present in only one file is reported added or
deleted, and every entry present in both is compared for byte-level
equality. Unlike diff, neither side is a template -- this is for "are
these actually the same file" checks, not "what did the filled form add".`,
	RunE: runTrueDiff,
}

func init() {
	trueDiffCmd.Flags().StringVar(&trueDiffA, "a", "", "First PDF (required)")
	trueDiffCmd.Flags().StringVar(&trueDiffB, "b", "", "Second PDF (required)")
}

func runTrueDiff(cmd *cobra.Command, args []string) error {
	if trueDiffA == "" || trueDiffB == "" {
		return userErrorf(fmt.Errorf("true-diff: --a and --b are required"))
	}
	if err := validateAllowedPath(trueDiffA); err != nil {
		return err
	}
	if err := validateAllowedPath(trueDiffB); err != nil {
		return err
	}

	report, err := forensic.TrueDiff(trueDiffA, trueDiffB)
	if err != nil {
		return err
	}
	debugDump("true-diff report", report)

	return renderRows([]any{report}, "changes", "textAdditions", "skippedObjects")
}
