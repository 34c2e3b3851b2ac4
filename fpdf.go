// Package fpdf provides the public Go API for the forensic PDF analysis
// and filtering engine: the same collaborators cmd/fpdf wires together
// (internal/pool, internal/analyzer, internal/forensic), exposed as a
// small Document type for callers embedding the engine as a library
// instead of shelling out to the CLI.
//
// # Quick Start
//
//	doc, err := fpdf.Open("invoice.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer doc.Close()
//
//	analysis, err := doc.Analyze()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(analysis.Pages[0].TextInfo.PageText)
//
// # Thread Safety
//
// A Document wraps one internal/pool.Handle; Analyze results are
// independent copies, but the underlying reader is not safe for
// concurrent use from multiple goroutines without a shared pool (see
// internal/pool for the concurrent-callers-of-one-path case cmd/fpdf's
// ingestion worker pool relies on).
package fpdf

import (
	"context"
	"fmt"

	"github.com/coregx/fpdf/internal/config"
	"github.com/coregx/fpdf/internal/pool"
)

// Version is the current version of the fpdf library.
const Version = "0.1.0-alpha"

// Open opens a PDF file and returns a Document for reading and analysis.
// The returned Document must be closed after use.
func Open(path string) (*Document, error) {
	return OpenWithContext(context.Background(), path)
}

// OpenWithContext opens a PDF file with a custom context, used to bound
// Analyze calls that walk many pages.
func OpenWithContext(ctx context.Context, path string) (*Document, error) {
	p := pool.New()
	handle, err := p.Acquire(path)
	if err != nil {
		return nil, fmt.Errorf("fpdf: opening %s: %w", path, err)
	}

	return &Document{
		pool:   p,
		handle: handle,
		ctx:    ctx,
		path:   path,
		cfg:    config.Default().Analyzer,
	}, nil
}

// MustOpen opens a PDF file and panics on error. Useful in tests or
// initialization code where the file is known to exist.
func MustOpen(path string) *Document {
	doc, err := Open(path)
	if err != nil {
		panic(err)
	}
	return doc
}

// WithAnalyzerConfig overrides the AnalyzerConfig used by Analyze,
// replacing the package defaults. Of its fields, Analyze reads only the
// header/footer band size (spec.md §9's documented-default open question).
func (d *Document) WithAnalyzerConfig(cfg config.AnalyzerConfig) *Document {
	d.cfg = cfg
	return d
}
