package analyzer

import (
	"github.com/coregx/fpdf/internal/model"
	"github.com/coregx/fpdf/internal/parser"
)

// computeResourcesSummary aggregates per-page resource counts into the
// document-level ResourcesSummary, per spec.md §4.B.9.
func (a *Analyzer) computeResourcesSummary(reader *parser.Reader, result *model.AnalysisResult) {
	summary := model.ResourcesSummary{}
	for _, page := range result.Pages {
		summary.TotalImages += len(page.Resources.Images)
		summary.FormFieldCount += page.Resources.FormFieldCount
	}

	catalog, err := reader.GetCatalog()
	if err == nil && catalog != nil {
		if names := resolveDict(reader, catalog.Get("Names")); names != nil {
			summary.HasAttachments = names.Has("EmbeddedFiles")
		}
	}
	summary.HasJavaScript = documentHasJavaScript(reader)

	result.ResourcesSummary = summary
}

func documentHasJavaScript(reader *parser.Reader) bool {
	catalog, err := reader.GetCatalog()
	if err != nil || catalog == nil {
		return false
	}
	names := resolveDict(reader, catalog.Get("Names"))
	if names == nil {
		return false
	}
	return names.Has("JavaScript")
}

// computeStatistics derives document-wide totals from the already-analyzed
// pages, per spec.md §4.B.9.
func computeStatistics(result *model.AnalysisResult) {
	stats := model.Statistics{}
	uniqueFonts := make(map[string]bool)

	for _, page := range result.Pages {
		stats.TotalCharacters += page.TextInfo.CharacterCount
		stats.TotalWords += page.TextInfo.WordCount
		stats.TotalLines += page.TextInfo.LineCount
		stats.TotalImages += len(page.Resources.Images)
		stats.TotalAnnotations += len(page.Annotations)

		for _, f := range page.TextInfo.Fonts {
			uniqueFonts[f.Name] = true
		}
		if page.TextInfo.HasTables {
			stats.PagesWithTables++
		}
		if page.TextInfo.HasColumns {
			stats.PagesWithColumns++
		}
		if len(page.Resources.Images) > 0 {
			stats.PagesWithImages++
		}
	}

	stats.UniqueFonts = len(uniqueFonts)
	result.Statistics = stats
}
