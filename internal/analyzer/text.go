package analyzer

import (
	"math"
	"sort"
	"strings"

	"github.com/coregx/fpdf/internal/extractor"
	"github.com/coregx/fpdf/internal/model"
	"github.com/coregx/fpdf/internal/parser"
)

// glyphRun is one text-showing operation's decoded output, generalizing
// extractor.TextElement with the extra text-state parameters spec.md
// §4.B.2 requires on every word and line.
type glyphRun struct {
	text      string
	bbox      model.BBox
	fontName  string
	fontSize  float64
	style     model.StyleFlags
	textState model.TextState
}

// analyzeText walks the page's content stream operator by operator,
// tracking the text state the way extractor.TextState does, and groups
// the resulting glyph runs into words (whitespace boundaries) and lines
// (baseline-band proximity). bidiAmbiguous is set when an active font's
// encoding suggests RTL/bidi script, per spec.md §9's "never silently fix
// word order" design note.
func analyzeText(reader *parser.Reader, pageDict *parser.Dictionary, content []byte, size model.PageSize, rotation int) (words []model.WordInfo, lines []model.LineInfo, fonts []model.FontInfo, bidiAmbiguous bool, err error) {
	fontDict := resourceSubDict(reader, pageDict, "Font")
	fontObserved := make(map[string]*fontAccumulator)

	parserCP := extractor.NewContentParser(content)
	ops, perr := parserCP.ParseOperators()
	if perr != nil {
		err = perr
		// Operators parsed so far are still usable; degrade gracefully.
	}

	ts := extractor.NewTextState()
	var runs []glyphRun
	var pendingText strings.Builder

	flushPending := func() {
		if pendingText.Len() == 0 {
			return
		}
		acc := fontAccumulatorFor(fontObserved, ts.FontName)
		acc.addSize(ts.FontSize)

		x0, y0 := ts.Tm.Transform(0, 0)
		x1, y1 := ts.CurrentX, ts.CurrentY+ts.FontSize
		bbox := normalizeCorners(x0, y0, x1, y1)

		runs = append(runs, glyphRun{
			text:     pendingText.String(),
			bbox:     bbox,
			fontName: ts.FontName,
			fontSize: ts.FontSize,
			style:    acc.style,
			textState: model.TextState{
				RenderMode:      acc.renderMode,
				CharSpacing:     ts.CharSpace,
				WordSpacing:     ts.WordSpace,
				HorizontalScale: ts.HorizScale,
				Rise:            ts.Rise,
			},
		})
		pendingText.Reset()
	}

	for _, op := range ops {
		switch op.Name {
		case "BT":
			ts.Reset()
		case "ET":
			flushPending()
		case "Tf":
			if len(op.Operands) >= 2 {
				name := operandName(op.Operands[0])
				size := operandNumber(op.Operands[1])
				ts.SetFont(name, size)
				if fontDict != nil {
					acc := fontAccumulatorFor(fontObserved, name)
					acc.describe(reader, fontDict, name)
					if acc.bidi {
						bidiAmbiguous = true
					}
				}
			}
		case "Tc":
			if len(op.Operands) >= 1 {
				ts.CharSpace = operandNumber(op.Operands[0])
			}
		case "Tw":
			if len(op.Operands) >= 1 {
				ts.WordSpace = operandNumber(op.Operands[0])
			}
		case "Tz":
			if len(op.Operands) >= 1 {
				ts.HorizScale = operandNumber(op.Operands[0])
			}
		case "TL":
			if len(op.Operands) >= 1 {
				ts.Leading = operandNumber(op.Operands[0])
			}
		case "Ts":
			if len(op.Operands) >= 1 {
				ts.Rise = operandNumber(op.Operands[0])
			}
		case "Tm":
			if len(op.Operands) >= 6 {
				flushPending()
				a := operandNumber(op.Operands[0])
				b := operandNumber(op.Operands[1])
				c := operandNumber(op.Operands[2])
				d := operandNumber(op.Operands[3])
				e := operandNumber(op.Operands[4])
				f := operandNumber(op.Operands[5])
				ts.SetTextMatrix(a, b, c, d, e, f)
			}
		case "Td":
			if len(op.Operands) >= 2 {
				flushPending()
				ts.Translate(operandNumber(op.Operands[0]), operandNumber(op.Operands[1]))
			}
		case "TD":
			if len(op.Operands) >= 2 {
				flushPending()
				ts.TranslateSetLeading(operandNumber(op.Operands[0]), operandNumber(op.Operands[1]))
			}
		case "T*":
			flushPending()
			ts.MoveToNextLine()
		case "Tj", "'", "\"":
			if len(op.Operands) >= 1 {
				s := operandString(op.Operands[len(op.Operands)-1])
				showText(s, ts, &pendingText, flushPending)
			}
		case "TJ":
			if len(op.Operands) >= 1 {
				showTJArray(op.Operands[0], ts, &pendingText, flushPending)
			}
		}
	}
	flushPending()

	words = wordsFromRuns(runs)
	for i := range words {
		words[i].NormBBox = normalizeForPage(words[i].BBox, size)
	}
	lines = groupIntoLines(words, 0.5)
	for i := range lines {
		lines[i].NormBBox = normalizeForPage(lines[i].BBox, size)
		for j := range lines[i].Words {
			lines[i].Words[j].NormBBox = normalizeForPage(lines[i].Words[j].BBox, size)
		}
	}

	for name, acc := range fontObserved {
		fonts = append(fonts, acc.toFontInfo(name))
	}
	sort.Slice(fonts, func(i, j int) bool { return fonts[i].Name < fonts[j].Name })

	return words, lines, fonts, bidiAmbiguous, err
}

// showText appends s's runes to pendingText, flushing at each whitespace
// boundary so the caller's glyph run represents one whitespace-delimited
// word, per spec.md §4.B.2.
func showText(s string, ts *extractor.TextState, pending *strings.Builder, flush func()) {
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			flush()
			continue
		}
		pending.WriteRune(r)
	}
	// advance position roughly by glyph count * font size (no embedded
	// width table at this layer; good enough for bbox estimation).
	advance := float64(len([]rune(s))) * ts.FontSize * 0.5 * (ts.HorizScale / 100)
	ts.AdvanceX(advance)
}

func showTJArray(obj parser.PdfObject, ts *extractor.TextState, pending *strings.Builder, flush func()) {
	arr, ok := obj.(*parser.Array)
	if !ok {
		return
	}
	for _, elem := range arr.Elements() {
		switch v := elem.(type) {
		case *parser.String:
			showText(v.Value(), ts, pending, flush)
		case *parser.Integer:
			ts.AdvanceX(-float64(v.Value()) / 1000 * ts.FontSize)
		case *parser.Real:
			ts.AdvanceX(-v.Value() / 1000 * ts.FontSize)
		}
	}
}

func wordsFromRuns(runs []glyphRun) []model.WordInfo {
	words := make([]model.WordInfo, 0, len(runs))
	for _, r := range runs {
		if strings.TrimSpace(r.text) == "" {
			continue
		}
		words = append(words, model.WordInfo{
			Text:      r.text,
			BBox:      r.bbox,
			FontName:  r.fontName,
			FontSize:  r.fontSize,
			Style:     r.style,
			TextState: r.textState,
		})
	}
	return words
}

// groupIntoLines groups words sharing a baseline band into LineInfo rows,
// per spec.md §4.B.2's "same y-band within tolerance" rule.
func groupIntoLines(words []model.WordInfo, toleranceRatio float64) []model.LineInfo {
	if len(words) == 0 {
		return nil
	}

	sorted := make([]model.WordInfo, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool {
		if math.Abs(sorted[i].BBox.Y0-sorted[j].BBox.Y0) > 0.01 {
			return sorted[i].BBox.Y0 > sorted[j].BBox.Y0
		}
		return sorted[i].BBox.X0 < sorted[j].BBox.X0
	})

	medianHeight := medianGlyphHeight(sorted)
	tolerance := medianHeight * toleranceRatio
	if tolerance <= 0 {
		tolerance = 1
	}

	var lines []model.LineInfo
	var current []model.WordInfo
	baselineY := sorted[0].BBox.Y0

	flush := func() {
		if len(current) == 0 {
			return
		}
		sort.SliceStable(current, func(i, j int) bool { return current[i].BBox.X0 < current[j].BBox.X0 })
		lines = append(lines, buildLine(current))
		current = nil
	}

	for _, w := range sorted {
		if math.Abs(w.BBox.Y0-baselineY) > tolerance {
			flush()
			baselineY = w.BBox.Y0
		}
		current = append(current, w)
	}
	flush()

	return lines
}

func medianGlyphHeight(words []model.WordInfo) float64 {
	if len(words) == 0 {
		return 12
	}
	heights := make([]float64, len(words))
	for i, w := range words {
		heights[i] = w.BBox.Y1 - w.BBox.Y0
	}
	sort.Float64s(heights)
	mid := len(heights) / 2
	if len(heights)%2 == 0 && mid > 0 {
		return (heights[mid-1] + heights[mid]) / 2
	}
	return heights[mid]
}

func buildLine(words []model.WordInfo) model.LineInfo {
	var texts []string
	bbox := words[0].BBox
	for _, w := range words {
		texts = append(texts, w.Text)
		bbox = unionBBox(bbox, w.BBox)
	}
	return model.LineInfo{
		Text:      strings.Join(texts, " "),
		BBox:      bbox,
		FontName:  words[0].FontName,
		FontSize:  words[0].FontSize,
		Style:     words[0].Style,
		TextState: words[0].TextState,
		Words:     words,
	}
}

func unionBBox(a, b model.BBox) model.BBox {
	return model.BBox{
		X0: math.Min(a.X0, b.X0),
		Y0: math.Min(a.Y0, b.Y0),
		X1: math.Max(a.X1, b.X1),
		Y1: math.Max(a.Y1, b.Y1),
	}
}

func normalizeCorners(x0, y0, x1, y1 float64) model.BBox {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return model.BBox{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// normalizeForPage returns b scaled to the page size and clamped to [0,1],
// for the caller to store as NormBBox (spec.md §8 invariant 3).
func normalizeForPage(b model.BBox, size model.PageSize) model.BBox {
	w, h := size.WidthPt, size.HeightPt
	if w == 0 {
		w = 1
	}
	if h == 0 {
		h = 1
	}
	return model.BBox{
		X0: clamp01(b.X0 / w),
		Y0: clamp01(b.Y0 / h),
		X1: clamp01(b.X1 / w),
		Y1: clamp01(b.Y1 / h),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func joinWords(words []model.WordInfo) string {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = w.Text
	}
	return strings.Join(parts, " ")
}

func averageLineLength(lines []model.LineInfo) float64 {
	if len(lines) == 0 {
		return 0
	}
	total := 0
	for _, l := range lines {
		total += len([]rune(l.Text))
	}
	return float64(total) / float64(len(lines))
}

// stopWords is a minimal per-language heuristic set: detectLanguages
// reports every language with at least one stop-word hit on a page,
// sorted by code, without pulling in a full NLP dependency.
var stopWords = map[string][]string{
	"en": {"the", "and", "of", "to", "is"},
	"pt": {"de", "que", "e", "do", "da"},
	"es": {"el", "la", "de", "que", "y"},
}

func detectLanguages(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for lang, words := range stopWords {
		for _, w := range words {
			if strings.Contains(lower, " "+w+" ") {
				found = append(found, lang)
				break
			}
		}
	}
	sort.Strings(found)
	return found
}

func operandName(obj parser.PdfObject) string {
	if n, ok := obj.(*parser.Name); ok {
		return n.Value()
	}
	return ""
}

func operandNumber(obj parser.PdfObject) float64 {
	switch v := obj.(type) {
	case *parser.Integer:
		return float64(v.Value())
	case *parser.Real:
		return v.Value()
	default:
		return 0
	}
}

func operandString(obj parser.PdfObject) string {
	if s, ok := obj.(*parser.String); ok {
		return s.Value()
	}
	return ""
}

func resourceSubDict(reader *parser.Reader, pageDict *parser.Dictionary, key string) *parser.Dictionary {
	resources := inheritedDict(reader, pageDict, "Resources")
	if resources == nil {
		return nil
	}
	sub := resources.Get(key)
	if ref, ok := sub.(*parser.IndirectReference); ok {
		obj, err := reader.GetObject(ref.Number)
		if err != nil {
			return nil
		}
		sub = obj
	}
	d, _ := sub.(*parser.Dictionary)
	return d
}

func inheritedDict(reader *parser.Reader, dict *parser.Dictionary, key string) *parser.Dictionary {
	d := dict
	for i := 0; i < 64 && d != nil; i++ {
		if v := d.Get(key); v != nil {
			if ref, ok := v.(*parser.IndirectReference); ok {
				obj, err := reader.GetObject(ref.Number)
				if err == nil {
					if resolved, ok := obj.(*parser.Dictionary); ok {
						return resolved
					}
				}
			} else if resolved, ok := v.(*parser.Dictionary); ok {
				return resolved
			}
		}
		d = parentOf(reader, d)
	}
	return nil
}
