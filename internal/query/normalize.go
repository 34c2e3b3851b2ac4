package query

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var foldCaser = cases.Fold()

// Normalize reduces s to NFD-decomposed, combining-mark-stripped,
// case-folded form, so that "~certidao~" matches "CERTIDÃO", "Certidão",
// and "certidao" alike (spec.md §4.D normalization semantics).
func Normalize(s string) string {
	decomposed := norm.NFD.String(s)
	stripped := stripCombiningMarks(decomposed)
	return foldCaser.String(stripped)
}

func stripCombiningMarks(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isCombiningMark(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// isCombiningMark reports whether r falls in one of the Unicode
// combining-mark blocks NFD decomposition produces for accented Latin
// script (the case spec.md's examples exercise): combining diacritical
// marks, and the supplement/extended blocks for scripts outside Latin-1.
func isCombiningMark(r rune) bool {
	switch {
	case r >= 0x0300 && r <= 0x036F: // Combining Diacritical Marks
		return true
	case r >= 0x1AB0 && r <= 0x1AFF: // Combining Diacritical Marks Extended
		return true
	case r >= 0x1DC0 && r <= 0x1DFF: // Combining Diacritical Marks Supplement
		return true
	case r >= 0x20D0 && r <= 0x20FF: // Combining Diacritical Marks for Symbols
		return true
	default:
		return false
	}
}
