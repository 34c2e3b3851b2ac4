package analyzer

import (
	"bytes"

	"github.com/coregx/fpdf/internal/model"
	"github.com/coregx/fpdf/internal/parser"
)

// pageGeometry derives the page's physical size and rotation, walking up
// the /Parent chain for an inherited /MediaBox or /Rotate when the page
// dictionary doesn't carry one directly (PDF 1.7 §7.7.3.4).
func pageGeometry(reader *parser.Reader, pageDict *parser.Dictionary) (model.PageSize, int) {
	widthPt, heightPt := 612.0, 792.0 // US Letter fallback

	if box := inheritedArray(reader, pageDict, "MediaBox"); box != nil && box.Len() == 4 {
		llx := numberAt(box, 0)
		lly := numberAt(box, 1)
		urx := numberAt(box, 2)
		ury := numberAt(box, 3)
		if w := urx - llx; w > 0 {
			widthPt = w
		}
		if h := ury - lly; h > 0 {
			heightPt = h
		}
	}

	rotation := 0
	if rot := inheritedInteger(reader, pageDict, "Rotate"); rot != nil {
		r := int(*rot) % 360
		if r < 0 {
			r += 360
		}
		rotation = r
	}

	if rotation == 90 || rotation == 270 {
		widthPt, heightPt = heightPt, widthPt
	}

	return model.NewPageSize(widthPt, heightPt), rotation
}

// inheritedArray looks up key on dict, then its /Parent chain.
func inheritedArray(reader *parser.Reader, dict *parser.Dictionary, key string) *parser.Array {
	d := dict
	for i := 0; i < 64 && d != nil; i++ {
		if arr := d.GetArray(key); arr != nil {
			return arr
		}
		d = parentOf(reader, d)
	}
	return nil
}

// inheritedInteger looks up key on dict, then its /Parent chain.
func inheritedInteger(reader *parser.Reader, dict *parser.Dictionary, key string) *int64 {
	d := dict
	for i := 0; i < 64 && d != nil; i++ {
		if d.Has(key) {
			v := d.GetInteger(key)
			return &v
		}
		d = parentOf(reader, d)
	}
	return nil
}

func parentOf(reader *parser.Reader, dict *parser.Dictionary) *parser.Dictionary {
	ref, ok := dict.Get("Parent").(*parser.IndirectReference)
	if !ok {
		return nil
	}
	obj, err := reader.GetObject(ref.Number)
	if err != nil {
		return nil
	}
	parent, _ := obj.(*parser.Dictionary)
	return parent
}

func numberAt(arr *parser.Array, i int) float64 {
	switch v := arr.Get(i).(type) {
	case *parser.Integer:
		return float64(v.Value())
	case *parser.Real:
		return v.Value()
	default:
		return 0
	}
}

// pageContentBytes decodes and concatenates a page's /Contents stream(s).
func pageContentBytes(reader *parser.Reader, pageDict *parser.Dictionary) ([]byte, error) {
	contentsObj := pageDict.Get("Contents")

	var buf bytes.Buffer
	appendStream := func(obj parser.PdfObject) error {
		ref, ok := obj.(*parser.IndirectReference)
		if !ok {
			return nil
		}
		resolved, err := reader.GetObject(ref.Number)
		if err != nil {
			return err
		}
		stream, ok := resolved.(*parser.Stream)
		if !ok {
			return nil
		}
		decoded, err := reader.DecodeStream(stream)
		if err != nil {
			return err
		}
		buf.Write(decoded)
		buf.WriteByte('\n')
		return nil
	}

	switch v := contentsObj.(type) {
	case *parser.IndirectReference:
		if err := appendStream(v); err != nil {
			return nil, err
		}
	case *parser.Array:
		for _, elem := range v.Elements() {
			if err := appendStream(elem); err != nil {
				return nil, err
			}
		}
	}

	return buf.Bytes(), nil
}
