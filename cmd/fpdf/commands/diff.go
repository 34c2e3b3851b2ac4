package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coregx/fpdf/internal/forensic"
)

var (
	diffTemplate string
	diffTarget   string
	diffEnhanced bool
)

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Compare a template PDF against a filled target",
	Long: `diff treats --template as the base form and --target as a candidate
that may have been filled in or otherwise modified, reporting every text,
line-shape, and image addition found on each page (spec.md §4.E.2). Opening
the target is a soft failure: a missing or unreadable --target yields an
empty report, not an error, since "does B add anything to A" is vacuously
false when B can't be read.`,
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().StringVar(&diffTemplate, "template", "", "Base PDF (required)")
	diffCmd.Flags().StringVar(&diffTarget, "target", "", "Candidate PDF to compare against --template (required)")
	diffCmd.Flags().BoolVar(&diffEnhanced, "enhanced", false, "Also diff AcroForm field identity (name+type)")
}

func runDiff(cmd *cobra.Command, args []string) error {
	if diffTemplate == "" || diffTarget == "" {
		return userErrorf(fmt.Errorf("diff: --template and --target are required"))
	}
	if err := validateAllowedPath(diffTemplate); err != nil {
		return err
	}

	report, err := forensic.Diff(diffTemplate, diffTarget, current.cfg.Analyzer, diffEnhanced)
	if err != nil {
		return err
	}
	debugDump("diff report", report)

	return renderRows([]any{report}, "textAdditions", "lineShapeAdditions", "imageAdditions", "formFieldAdditions", "skippedObjects")
}
