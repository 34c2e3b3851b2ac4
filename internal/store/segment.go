package store

import (
	"strings"

	"github.com/coregx/fpdf/internal/model"
)

// Segmenter splits one AnalysisResult into logical documents. The
// segmentation heuristic itself (detecting document boundaries within a
// single scanned bundle) is out of scope per spec.md §1 — only this
// interface is specified, so the store can be handed a real segmenter
// later without changing its schema.
type Segmenter interface {
	Segment(cacheID int, result *model.AnalysisResult) []documentRecord
}

// wholeCacheSegmenter is the default Segmenter: it treats the entire
// cached PDF as a single logical document, which is correct for the
// common case of one PDF = one document and a safe fallback otherwise.
type wholeCacheSegmenter struct{}

func (wholeCacheSegmenter) Segment(cacheID int, result *model.AnalysisResult) []documentRecord {
	if result == nil || len(result.Pages) == 0 {
		return nil
	}

	var text strings.Builder
	fontSet := make(map[string]bool)
	wordCount, charCount, imageCount, blankPages := 0, 0, 0, 0
	hasSignatureImage := false

	for _, page := range result.Pages {
		text.WriteString(page.TextInfo.PageText)
		text.WriteByte('\n')
		wordCount += page.TextInfo.WordCount
		charCount += page.TextInfo.CharacterCount
		imageCount += len(page.Resources.Images)
		for _, f := range page.TextInfo.Fonts {
			fontSet[f.Name] = true
		}
		if page.TextInfo.WordCount == 0 && len(page.Resources.Images) == 0 {
			blankPages++
		}
		for _, img := range page.Resources.Images {
			if looksLikeSignature(img) {
				hasSignatureImage = true
			}
		}
	}

	fonts := make([]string, 0, len(fontSet))
	for name := range fontSet {
		fonts = append(fonts, name)
	}

	totalPages := len(result.Pages)
	blankRatio := 0.0
	if totalPages > 0 {
		blankRatio = float64(blankPages) / float64(totalPages)
	}
	textDensity := 0.0
	if totalPages > 0 {
		textDensity = float64(charCount) / float64(totalPages)
	}

	return []documentRecord{{
		CacheID:           cacheID,
		Label:             "document-1",
		Type:              "unclassified",
		PageStart:         1,
		PageEnd:           totalPages,
		Text:              text.String(),
		Fonts:             fonts,
		ImageCount:        imageCount,
		HasSignatureImage: hasSignatureImage,
		WordCount:         wordCount,
		CharacterCount:    charCount,
		TextDensity:       textDensity,
		BlankRatio:        blankRatio,
	}}
}

// looksLikeSignature flags a small, roughly-square image as a plausible
// handwritten-signature scan — a coarse heuristic, not a classifier.
func looksLikeSignature(img model.ImageInfo) bool {
	if img.Width == 0 || img.Height == 0 {
		return false
	}
	aspect := float64(img.Width) / float64(img.Height)
	return img.Width < 600 && img.Height < 300 && aspect > 1.2 && aspect < 6
}

// DefaultSegmenter returns the whole-cache Segmenter.
func DefaultSegmenter() Segmenter {
	return wholeCacheSegmenter{}
}
