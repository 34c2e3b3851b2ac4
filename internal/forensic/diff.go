package forensic

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/coregx/fpdf/internal/analyzer"
	"github.com/coregx/fpdf/internal/config"
	"github.com/coregx/fpdf/internal/model"
	"github.com/coregx/fpdf/internal/parser"
)

// Diff produces a pairwise DiffReport between a base ("template") PDF and
// a candidate ("target") PDF (spec.md §4.E.2). Failure to open pathA
// fails the whole operation; failure to open or analyze pathB yields an
// empty report rather than an error, per spec.md's failure semantics.
func Diff(pathA, pathB string, cfg config.AnalyzerConfig, enhanced bool) (*DiffReport, error) {
	readerA, err := parser.OpenPDF(pathA)
	if err != nil {
		return nil, fmt.Errorf("forensic: opening template %q: %w", pathA, err)
	}
	defer readerA.Close()

	a := analyzer.New(cfg)
	resultA, err := a.Analyze(readerA)
	if err != nil {
		return nil, fmt.Errorf("forensic: analyzing template %q: %w", pathA, err)
	}

	readerB, err := parser.OpenPDF(pathB)
	if err != nil {
		return &DiffReport{}, nil
	}
	defer readerB.Close()

	resultB, err := a.Analyze(readerB)
	if err != nil {
		return &DiffReport{}, nil
	}

	report := &DiffReport{}
	pagesA := indexPagesByNumber(resultA)

	for _, pageB := range resultB.Pages {
		pageA := pagesA[pageB.Number]

		report.TextAdditions = append(report.TextAdditions, textAdditionsForPage(pageA, pageB)...)
		report.LineShapeAdditions = append(report.LineShapeAdditions, lineShapeAdditionsForPage(pageA, pageB)...)
		report.ImageAdditions = append(report.ImageAdditions, imageAdditionsForPage(pageA, pageB)...)
	}

	if enhanced {
		report.FormFieldAdditions = formFieldAdditions(resultA, resultB)
	}

	for _, p := range resultB.Pages {
		report.SkippedObjects += len(p.Warnings)
	}

	if session, err := LastSession(readerB); err == nil {
		report.LastSession = session
	}

	return report, nil
}

func indexPagesByNumber(result *model.AnalysisResult) map[int]model.PageAnalysis {
	index := make(map[int]model.PageAnalysis, len(result.Pages))
	for _, p := range result.Pages {
		index[p.Number] = p
	}
	return index
}

// textAdditionsForPage aligns the lines of pageA and pageB's text with
// go-difflib and reports every line that appears only on pageB's side of
// an insert/replace opcode and has no equal line anywhere on pageA, in
// pageB's order (spec.md §4.E.2: "a line is
// new if it has no equal line in A's same page; near-duplicates are not
// matched, equality is exact after stripping leading/trailing
// whitespace").
func textAdditionsForPage(pageA model.PageAnalysis, pageB model.PageAnalysis) []TextDelta {
	linesA := splitTrimmed(pageA.TextInfo.PageText)
	linesB := splitTrimmed(pageB.TextInfo.PageText)

	inA := make(map[string]bool, len(linesA))
	for _, line := range linesA {
		inA[line] = true
	}

	matcher := difflib.NewMatcher(linesA, linesB)

	var deltas []TextDelta
	for _, op := range matcher.GetOpCodes() {
		if op.Tag != 'i' && op.Tag != 'r' {
			continue
		}
		for _, line := range linesB[op.J1:op.J2] {
			if line == "" || inA[line] {
				continue
			}
			deltas = append(deltas, TextDelta{Page: pageB.Number, AddedText: line})
		}
	}
	return deltas
}

func splitTrimmed(text string) []string {
	raw := strings.Split(text, "\n")
	out := make([]string, len(raw))
	for i, l := range raw {
		out[i] = strings.TrimSpace(l)
	}
	return out
}

func lineShapeAdditionsForPage(pageA model.PageAnalysis, pageB model.PageAnalysis) []LineShapeAddition {
	seenA := make(map[string]bool, len(pageA.GraphicsElements))
	for _, g := range pageA.GraphicsElements {
		seenA[graphicsKey(g)] = true
	}

	var additions []LineShapeAddition
	for _, g := range pageB.GraphicsElements {
		if !seenA[graphicsKey(g)] {
			additions = append(additions, LineShapeAddition{Page: pageB.Number, Element: g})
		}
	}
	return additions
}

func graphicsKey(g model.GraphicsElement) string {
	return fmt.Sprintf("%s:%.2f:%.2f:%.2f:%.2f", g.Kind, g.BBox.X0, g.BBox.Y0, g.BBox.X1, g.BBox.Y1)
}

func imageAdditionsForPage(pageA model.PageAnalysis, pageB model.PageAnalysis) []ImageAddition {
	seenA := make(map[string]bool, len(pageA.Resources.Images))
	for _, img := range pageA.Resources.Images {
		seenA[imageKey(img)] = true
	}

	var additions []ImageAddition
	for _, img := range pageB.Resources.Images {
		if !seenA[imageKey(img)] {
			additions = append(additions, ImageAddition{Page: pageB.Number, Image: img})
		}
	}
	return additions
}

func imageKey(img model.ImageInfo) string {
	return fmt.Sprintf("%d:%d:%d:%s:%d", img.Width, img.Height, img.BitsPerComponent, img.CompressionFilter, img.ByteLength)
}

// formFieldAdditions compares AcroForm fields across the whole document
// (not per page) by name+type, since a field's widget may move between
// revisions but its identity does not (spec.md §4.E.2, enhanced mode).
func formFieldAdditions(resultA, resultB *model.AnalysisResult) []FormFieldAddition {
	seenA := make(map[string]bool)
	for _, p := range resultA.Pages {
		for _, f := range p.FormFields {
			seenA[f.Name+"\x00"+f.Type] = true
		}
	}

	var additions []FormFieldAddition
	for _, p := range resultB.Pages {
		for _, f := range p.FormFields {
			if !seenA[f.Name+"\x00"+f.Type] {
				additions = append(additions, FormFieldAddition{Field: f})
			}
		}
	}
	return additions
}
