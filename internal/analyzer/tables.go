package analyzer

import (
	"github.com/coregx/fpdf/internal/extractor"
	"github.com/coregx/fpdf/internal/model"
	"github.com/coregx/fpdf/internal/tabledetect"
)

var pageTableDetector = tabledetect.NewDefaultTableDetector()

// detectTableLayout reports whether a page's words form at least one table
// region (ruling-line or whitespace-aligned) and whether the whitespace
// analyzer finds multiple aligned columns, reusing the teacher's table
// detection pipeline instead of reimplementing column/row alignment.
func detectTableLayout(words []model.WordInfo, graphicsElements []model.GraphicsElement) (hasTables, hasColumns bool) {
	if len(words) == 0 {
		return false, false
	}

	textElements := make([]*extractor.TextElement, 0, len(words))
	for _, w := range words {
		textElements = append(textElements, extractor.NewTextElement(
			w.Text, w.BBox.X0, w.BBox.Y0, w.BBox.X1-w.BBox.X0, w.BBox.Y1-w.BBox.Y0, w.FontName, w.FontSize,
		))
	}

	graphics := make([]*extractor.GraphicsElement, 0, len(graphicsElements))
	for _, g := range graphicsElements {
		gtype := extractor.GraphicsTypeLine
		if g.Kind == "rect" {
			gtype = extractor.GraphicsTypeRectangle
		}
		points := []extractor.Point{
			{X: g.BBox.X0, Y: g.BBox.Y0},
			{X: g.BBox.X1, Y: g.BBox.Y1},
		}
		graphics = append(graphics, &extractor.GraphicsElement{Type: gtype, Points: points})
	}

	regions, err := pageTableDetector.DetectTables(textElements, graphics)
	if err == nil && len(regions) > 0 {
		hasTables = true
	}

	analyzer := tabledetect.NewDefaultWhitespaceAnalyzer()
	columns := analyzer.DetectColumns(textElements)
	hasColumns = len(columns) >= 2

	return hasTables, hasColumns
}
