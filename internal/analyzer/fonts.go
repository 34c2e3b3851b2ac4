package analyzer

import (
	"sort"
	"strings"

	"github.com/coregx/fpdf/internal/model"
	"github.com/coregx/fpdf/internal/parser"
)

// fontAccumulator gathers everything observed about one font name across a
// page's content stream: the sizes it was shown at, and (once resolved
// against the page's /Font resource dictionary) its subtype, embedding, and
// style, per spec.md §4.B.3.
type fontAccumulator struct {
	name         string
	subtype      string
	embedded     bool
	style        model.StyleFlags
	renderMode   int
	sizes        []float64
	describedFor string
	bidi         bool
}

func fontAccumulatorFor(m map[string]*fontAccumulator, name string) *fontAccumulator {
	acc, ok := m[name]
	if !ok {
		acc = &fontAccumulator{name: name}
		m[name] = acc
	}
	return acc
}

func (a *fontAccumulator) addSize(size float64) {
	if size <= 0 {
		return
	}
	for _, s := range a.sizes {
		if s == size {
			return
		}
	}
	a.sizes = append(a.sizes, size)
}

// describe resolves the font resource once per name and derives its style
// and bidi hint from the font dictionary and its /FontDescriptor.
func (a *fontAccumulator) describe(reader *parser.Reader, fontDict *parser.Dictionary, resourceName string) {
	if a.describedFor == resourceName {
		return
	}
	a.describedFor = resourceName

	if fontDict == nil {
		return
	}
	obj := fontDict.Get(resourceName)
	if ref, ok := obj.(*parser.IndirectReference); ok {
		resolved, err := reader.GetObject(ref.Number)
		if err != nil {
			return
		}
		obj = resolved
	}
	fd, ok := obj.(*parser.Dictionary)
	if !ok {
		return
	}

	a.subtype = nameValue(fd.GetName("Subtype"))
	lower := strings.ToLower(nameValue(fd.GetName("BaseFont")))

	a.style.Bold = strings.Contains(lower, "bold")
	a.style.Italic = strings.Contains(lower, "italic") || strings.Contains(lower, "oblique")

	switch nameValue(fd.GetName("Encoding")) {
	case "Identity-H", "Identity-V":
		// CID-keyed fonts commonly carry RTL scripts (Arabic, Hebrew) under
		// Identity-H; flag ambiguous rather than guess glyph order.
		a.bidi = true
	}

	if desc := fd.Get("FontDescriptor"); desc != nil {
		if ref, ok := desc.(*parser.IndirectReference); ok {
			if resolved, err := reader.GetObject(ref.Number); err == nil {
				if fdDict, ok := resolved.(*parser.Dictionary); ok {
					a.embedded = fdDict.Has("FontFile") || fdDict.Has("FontFile2") || fdDict.Has("FontFile3")
					flags := fdDict.GetInteger("Flags")
					const forceBold = 1 << 18
					const italic = 1 << 6
					if flags&forceBold != 0 {
						a.style.Bold = true
					}
					if flags&italic != 0 {
						a.style.Italic = true
					}
				}
			}
		}
	}
}

func (a *fontAccumulator) toFontInfo(name string) model.FontInfo {
	fontType := mapFontType(a.subtype)
	sizes := append([]float64(nil), a.sizes...)
	sort.Float64s(sizes)
	return model.FontInfo{
		Name:          name,
		Type:          fontType,
		Embedded:      a.embedded,
		Style:         a.style,
		ObservedSizes: sizes,
		SizeDefaulted: len(sizes) == 0,
	}
}

func nameValue(n *parser.Name) string {
	if n == nil {
		return ""
	}
	return n.Value()
}

func mapFontType(subtype string) string {
	switch subtype {
	case "Type0":
		return "Type0"
	case "Type1", "MMType1":
		return "Type1"
	case "TrueType":
		return "TrueType"
	case "Type3":
		return "Type3"
	case "CIDFontType0", "CIDFontType2":
		return "CIDFont"
	default:
		return "Type1"
	}
}
