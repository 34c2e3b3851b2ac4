package analyzer

import (
	"github.com/coregx/fpdf/internal/extractor"
	"github.com/coregx/fpdf/internal/model"
)

// analyzeGraphics walks the content stream's path-construction and
// painting operators to report line segments and rectangles, the
// vector-drawn shapes the forensic differencer compares page to page for
// line-shape additions/removals (spec.md §4.E.2). Text-showing and image
// operators are ignored here; analyzeText and analyzeImages cover those.
func analyzeGraphics(content []byte) ([]model.GraphicsElement, error) {
	if len(content) == 0 {
		return nil, nil
	}

	cp := extractor.NewContentParser(content)
	ops, err := cp.ParseOperators()
	if err != nil && len(ops) == 0 {
		return nil, err
	}

	var elements []model.GraphicsElement
	var curX, curY float64
	var pathStartX, pathStartY float64
	haveCurrent := false

	for _, op := range ops {
		switch op.Name {
		case "m":
			if len(op.Operands) >= 2 {
				curX, curY = operandNumber(op.Operands[0]), operandNumber(op.Operands[1])
				pathStartX, pathStartY = curX, curY
				haveCurrent = true
			}
		case "l":
			if len(op.Operands) >= 2 && haveCurrent {
				nx, ny := operandNumber(op.Operands[0]), operandNumber(op.Operands[1])
				elements = append(elements, model.GraphicsElement{
					Kind: "line",
					BBox: normalizeCorners(curX, curY, nx, ny),
				})
				curX, curY = nx, ny
			}
		case "re":
			if len(op.Operands) >= 4 {
				x := operandNumber(op.Operands[0])
				y := operandNumber(op.Operands[1])
				w := operandNumber(op.Operands[2])
				h := operandNumber(op.Operands[3])
				elements = append(elements, model.GraphicsElement{
					Kind: "rect",
					BBox: normalizeCorners(x, y, x+w, y+h),
				})
				curX, curY = x, y
				pathStartX, pathStartY = x, y
				haveCurrent = true
			}
		case "h":
			if haveCurrent {
				curX, curY = pathStartX, pathStartY
			}
		case "S", "s", "f", "F", "f*", "B", "B*", "b", "b*", "n":
			haveCurrent = false
		}
	}

	return elements, err
}
