package fpdf

import (
	"context"
	"fmt"

	"github.com/coregx/fpdf/internal/analyzer"
	"github.com/coregx/fpdf/internal/config"
	"github.com/coregx/fpdf/internal/forensic"
	"github.com/coregx/fpdf/internal/model"
	"github.com/coregx/fpdf/internal/pool"
)

// Document represents an opened PDF document backed by internal/pool,
// internal/analyzer, and internal/forensic. It must be closed after use
// to release the underlying reader.
type Document struct {
	pool   *pool.Pool
	handle *pool.Handle
	ctx    context.Context
	path   string
	cfg    config.AnalyzerConfig

	analysis *model.AnalysisResult
}

// Close closes the document and releases resources. Safe to call
// multiple times.
func (d *Document) Close() error {
	if d.pool == nil {
		return nil
	}
	return d.pool.Close()
}

// Path returns the file path of the document.
func (d *Document) Path() string {
	return d.path
}

// PageCount returns the total number of pages in the document.
func (d *Document) PageCount() int {
	count, err := d.handle.PageCount()
	if err != nil {
		return 0
	}
	return count
}

// IsEncrypted reports whether the document's trailer carries an /Encrypt
// entry.
func (d *Document) IsEncrypted() bool {
	return d.handle.IsEncrypted()
}

// Analyze runs the Analyzer over every page and caches the result for
// subsequent calls within this Document's lifetime.
func (d *Document) Analyze() (*model.AnalysisResult, error) {
	if d.analysis != nil {
		return d.analysis, nil
	}

	select {
	case <-d.ctx.Done():
		return nil, d.ctx.Err()
	default:
	}

	result, err := analyzer.New(d.cfg).Analyze(d.handle.Reader)
	if err != nil {
		return nil, fmt.Errorf("fpdf: analyzing %s: %w", d.path, err)
	}
	d.analysis = result
	return result, nil
}

// Page returns the page at the given 1-based number, or nil if Analyze
// hasn't been run yet or the page number is out of range.
func (d *Document) Page(number int) *Page {
	if d.analysis == nil {
		return nil
	}
	for i := range d.analysis.Pages {
		if d.analysis.Pages[i].Number == number {
			return &Page{analysis: &d.analysis.Pages[i]}
		}
	}
	return nil
}

// Pages returns every page's analysis, in page-number order. Analyze
// must be called first; an empty slice is returned otherwise.
func (d *Document) Pages() []*Page {
	if d.analysis == nil {
		return nil
	}
	pages := make([]*Page, len(d.analysis.Pages))
	for i := range d.analysis.Pages {
		pages[i] = &Page{analysis: &d.analysis.Pages[i]}
	}
	return pages
}

// Metadata returns the document's /Info-dictionary metadata; XMP metadata
// streams are not read. Calls Analyze if it hasn't run yet.
func (d *Document) Metadata() (model.Metadata, error) {
	analysis, err := d.Analyze()
	if err != nil {
		return model.Metadata{}, err
	}
	return analysis.Metadata, nil
}

// DetectIncremental scans the raw byte stream for incremental-update
// sessions and classifies the document's modification state (spec.md
// §4.E.1/§4.E.3).
func (d *Document) DetectIncremental() (*forensic.IncrementalReport, error) {
	return forensic.DetectIncremental(d.handle.Reader)
}

// LastSession reports the object numbers and text additions belonging to
// the most recent incremental-update session, if any.
func (d *Document) LastSession() (*forensic.SessionGroup, error) {
	return forensic.LastSession(d.handle.Reader)
}
