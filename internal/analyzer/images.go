package analyzer

import (
	"github.com/coregx/fpdf/internal/model"
	"github.com/coregx/fpdf/internal/parser"
)

// analyzeImages enumerates the page's XObject image resources, recording
// geometry and encoding, grounded on internal/extractor's resource-walk
// idiom. Inline images (BI/ID/EI) carry no resource-dictionary entry and
// are not reported, here or by analyzeGraphics.
func analyzeImages(reader *parser.Reader, pageDict *parser.Dictionary) ([]model.ImageInfo, error) {
	xobjects := resourceSubDict(reader, pageDict, "XObject")
	if xobjects == nil {
		return nil, nil
	}

	var images []model.ImageInfo
	for _, name := range xobjects.Keys() {
		obj := xobjects.Get(name)
		ref, ok := obj.(*parser.IndirectReference)
		if !ok {
			continue
		}
		resolved, err := reader.GetObject(ref.Number)
		if err != nil {
			continue
		}
		stream, ok := resolved.(*parser.Stream)
		if !ok {
			continue
		}
		dict := stream.Dictionary()
		if n := dict.GetName("Subtype"); n == nil || n.Value() != "Image" {
			continue
		}

		images = append(images, model.ImageInfo{
			Width:             int(dict.GetInteger("Width")),
			Height:            int(dict.GetInteger("Height")),
			BitsPerComponent:  int(dict.GetInteger("BitsPerComponent")),
			ColorSpace:        imageColorSpace(dict),
			CompressionFilter: filterName(stream.GetFilter()),
			ByteLength:        len(stream.Content()),
		})
	}
	return images, nil
}

func filterName(obj parser.PdfObject) string {
	switch v := obj.(type) {
	case *parser.Name:
		return v.Value()
	case *parser.Array:
		if v.Len() > 0 {
			if n, ok := v.Get(0).(*parser.Name); ok {
				return n.Value()
			}
		}
	}
	return ""
}

func imageColorSpace(dict *parser.Dictionary) string {
	cs := dict.Get("ColorSpace")
	switch v := cs.(type) {
	case *parser.Name:
		return v.Value()
	case *parser.Array:
		if v.Len() > 0 {
			if n, ok := v.Get(0).(*parser.Name); ok {
				return n.Value()
			}
		}
	}
	return ""
}
