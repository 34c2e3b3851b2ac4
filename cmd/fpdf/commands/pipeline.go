package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	pipelineInputDir    string
	pipelineOutput      string
	pipelineSplitAnexos bool
	pipelinePgURI       string
)

// pipelineTjpbCmd is an interface stub: the command surface spec.md §6
// names (--input-dir, --output, --split-anexos, --pg-uri) is wired up so
// scripts calling it get a recognizable error rather than "unknown
// command", but the batch-ingestion-into-Postgres behavior itself is out
// of scope for this core.
var pipelineTjpbCmd = &cobra.Command{
	Use:    "pipeline-tjpb",
	Short:  "Batch ingestion pipeline (interface stub, not implemented)",
	Hidden: true,
	RunE:   runPipelineTjpb,
}

func init() {
	pipelineTjpbCmd.Flags().StringVar(&pipelineInputDir, "input-dir", "", "Directory of PDFs to process")
	pipelineTjpbCmd.Flags().StringVar(&pipelineOutput, "output", "", "Output JSON file path")
	pipelineTjpbCmd.Flags().BoolVar(&pipelineSplitAnexos, "split-anexos", false, "Split attachment sections into separate records")
	pipelineTjpbCmd.Flags().StringVar(&pipelinePgURI, "pg-uri", "", "PostgreSQL connection URI for result storage")
}

func runPipelineTjpb(cmd *cobra.Command, args []string) error {
	return userErrorf(fmt.Errorf("pipeline-tjpb: not implemented in this core (interface stub only)"))
}
