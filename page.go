package fpdf

import "github.com/coregx/fpdf/internal/model"

// Page is a read-only view over one already-analyzed page. Obtained from
// Document.Page/Document.Pages after a call to Document.Analyze.
type Page struct {
	analysis *model.PageAnalysis
}

// Number returns the page number (1-based).
func (p *Page) Number() int {
	return p.analysis.Number
}

// Text returns the page's extracted text.
func (p *Page) Text() string {
	return p.analysis.TextInfo.PageText
}

// WordCount returns the number of words extracted from the page.
func (p *Page) WordCount() int {
	return p.analysis.TextInfo.WordCount
}

// Warnings returns any recoverable parse problems recorded for this page
// (spec.md §7 AnalysisWarning).
func (p *Page) Warnings() []string {
	return p.analysis.Warnings
}

// Analysis returns the full underlying PageAnalysis.
func (p *Page) Analysis() *model.PageAnalysis {
	return p.analysis
}
