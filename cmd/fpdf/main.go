// Package main provides the fpdf command-line interface.
//
// fpdf is a forensic PDF analysis and filtering engine: it ingests PDFs
// into a queryable cache, then searches, diffs, and audits them.
//
// Usage:
//
//	fpdf [command] [selector] [flags]
//
// Available Commands:
//
//	load                    Ingest PDFs into the cache
//	cache                   Inspect or manage the cache store
//	find                    Search cached pages/documents by expression
//	diff                    Compare a template PDF against a filled target
//	true-diff               Strict object-level diff between two PDFs
//	last-session            Report the most recent incremental-update session
//	enhanced-last-session   Last session, plus the full object-change report
//	ts-last-session         Last session, timestamp-grouped
//	pipeline-tjpb           Batch ingestion pipeline (interface stub)
//	version                 Print version information
//
// Use "fpdf [command] --help" for more information about a command.
package main

import (
	"os"

	"github.com/coregx/fpdf/cmd/fpdf/commands"
)

func main() {
	os.Exit(commands.Execute())
}
