package analyzer

import (
	"github.com/coregx/fpdf/internal/model"
)

// headerFooterBands splits lines falling in the top/bottom bandPercent of
// the page height into headers/footers, per spec.md §4.B.10. bandPercent
// of 0 disables the split entirely (every line stays in the page body).
func headerFooterBands(lines []model.LineInfo, size model.PageSize, bandPercent float64) (headers, footers []model.LineInfo) {
	if bandPercent <= 0 || size.HeightPt <= 0 {
		return nil, nil
	}

	band := size.HeightPt * bandPercent
	footerThreshold := band
	headerThreshold := size.HeightPt - band

	for _, line := range lines {
		midY := (line.BBox.Y0 + line.BBox.Y1) / 2
		switch {
		case midY >= headerThreshold:
			headers = append(headers, line)
		case midY <= footerThreshold:
			footers = append(footers, line)
		}
	}
	return headers, footers
}
