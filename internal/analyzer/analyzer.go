// Package analyzer walks an open PDF (via internal/parser) and produces a
// model.AnalysisResult: per-page text, positioned words and lines, fonts,
// images, annotations, form fields, bookmarks, metadata, and structural
// indicators.
//
// It generalizes the teacher's table-extraction pipeline
// (internal/extractor/{content_parser,text_element,text_state,
// font_decoder,image_extractor}.go): the same operator-stream walk and
// text-state tracking, driving a full per-page analysis instead of table
// detection.
package analyzer

import (
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/coregx/fpdf/internal/config"
	"github.com/coregx/fpdf/internal/model"
	"github.com/coregx/fpdf/internal/parser"
)

// Analyzer produces one model.AnalysisResult from one open PDF reader.
type Analyzer struct {
	cfg config.AnalyzerConfig
}

// New creates an Analyzer with the given configuration.
func New(cfg config.AnalyzerConfig) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// Analyze walks every page of reader in order and assembles the complete
// AnalysisResult. Per-page failures are recorded as warnings on that page
// and never abort the call; only document-level failures (header/
// encryption) are returned as an error, per spec.md §4.B's failure model.
func (a *Analyzer) Analyze(reader *parser.Reader) (*model.AnalysisResult, error) {
	pageCount, err := reader.GetPageCount()
	if err != nil {
		return nil, errors.Wrap(err, "analyzer: reading page count")
	}

	metadata, docInfo, err := a.analyzeMetadata(reader, pageCount)
	if err != nil {
		return nil, errors.Wrap(err, "analyzer: reading metadata")
	}

	result := &model.AnalysisResult{
		Metadata:     metadata,
		DocumentInfo: docInfo,
		Pages:        make([]model.PageAnalysis, pageCount),
	}

	var warnErr error
	for i := 0; i < pageCount; i++ {
		page, err := a.AnalyzePage(reader, i)
		if err != nil {
			// AnalyzePage fails only when the page dictionary itself
			// cannot be read; record the page with the error as its
			// warning and go on with the rest.
			warnErr = multierr.Append(warnErr, fmt.Errorf("page %d: %w", i+1, err))
			page = &model.PageAnalysis{Number: i + 1, Warnings: []string{err.Error()}}
		}
		result.Pages[i] = *page
	}

	result.Security = a.analyzeSecurity(reader)
	result.BookmarkNodes = a.analyzeBookmarks(reader)
	result.Signatures = a.analyzeSignatures(reader)
	result.Accessibility = a.analyzeAccessibility(reader)
	result.Layers = a.analyzeLayers(reader)

	a.computeResourcesSummary(reader, result)
	computeStatistics(result)

	if warnErr != nil {
		// Page-level failures are already recorded on each page's
		// Warnings; they are not returned as an analysis-level error.
		_ = warnErr
	}

	return result, nil
}

// AnalyzePage produces the PageAnalysis for one zero-based page index. Any
// sub-pipeline failure is recorded as a warning on the returned page
// instead of aborting analysis of the remaining pages.
func (a *Analyzer) AnalyzePage(reader *parser.Reader, index int) (*model.PageAnalysis, error) {
	pageDict, err := reader.GetPage(index)
	if err != nil {
		return nil, err
	}

	page := &model.PageAnalysis{Number: index + 1}

	size, rotation := pageGeometry(reader, pageDict)
	page.Size = size
	page.Rotation = rotation

	warn := func(context string, err error) {
		if err != nil {
			page.Warnings = append(page.Warnings, fmt.Sprintf("%s: %v", context, err))
		}
	}

	content, err := pageContentBytes(reader, pageDict)
	if err != nil {
		warn("content stream", err)
	}

	words, lines, fonts, bidiAmbiguous, err := analyzeText(reader, pageDict, content, size, rotation)
	warn("text", err)
	page.BidiAmbiguous = bidiAmbiguous

	pageText := joinWords(words)
	page.TextInfo = model.TextInfo{
		PageText:          pageText,
		CharacterCount:    len([]rune(pageText)),
		WordCount:         len(words),
		LineCount:         len(lines),
		Languages:         detectLanguages(pageText),
		AverageLineLength: averageLineLength(lines),
		Fonts:             fonts,
		Lines:             lines,
		Words:             words,
	}

	images, err := analyzeImages(reader, pageDict)
	warn("images", err)

	formFieldCount, formFields, err := analyzeFormFields(reader, pageDict, page.Number)
	warn("form fields", err)
	page.FormFields = formFields

	page.Resources = model.PageResources{
		Images:         images,
		FormFieldCount: formFieldCount,
	}

	annotations, err := analyzeAnnotations(reader, pageDict)
	warn("annotations", err)
	page.Annotations = annotations

	headers, footers := headerFooterBands(lines, size, a.cfg.HeaderFooterBandPercent)
	page.Headers = headers
	page.Footers = footers

	page.DocumentReferences = documentReferences(pageText)

	page.GraphicsElements, err = analyzeGraphics(content)
	warn("graphics", err)

	page.TextInfo.HasTables, page.TextInfo.HasColumns = detectTableLayout(words, page.GraphicsElements)

	return page, nil
}
