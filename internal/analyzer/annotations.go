package analyzer

import (
	"github.com/coregx/fpdf/internal/model"
	"github.com/coregx/fpdf/internal/parser"
)

// analyzeAnnotations reads the page's /Annots array, recording subtype,
// rect, and contents for each. Widget annotations (form fields) are left
// to analyzeFormFields; they're still reported here as annotations since
// a Widget is both, per PDF 1.7 §12.5.6.19.
func analyzeAnnotations(reader *parser.Reader, pageDict *parser.Dictionary) ([]model.Annotation, error) {
	annotsArr := pageDict.GetArray("Annots")
	if annotsArr == nil {
		return nil, nil
	}

	var annots []model.Annotation
	for i := 0; i < annotsArr.Len(); i++ {
		ref, ok := annotsArr.Get(i).(*parser.IndirectReference)
		if !ok {
			continue
		}
		obj, err := reader.GetObject(ref.Number)
		if err != nil {
			continue
		}
		dict, ok := obj.(*parser.Dictionary)
		if !ok {
			continue
		}

		annots = append(annots, model.Annotation{
			Subtype:  nameValue(dict.GetName("Subtype")),
			Rect:     rectFromArray(dict.GetArray("Rect")),
			Contents: textValue(dict, "Contents"),
		})
	}
	return annots, nil
}

func rectFromArray(arr *parser.Array) model.BBox {
	if arr == nil || arr.Len() != 4 {
		return model.BBox{}
	}
	return normalizeCorners(numberAt(arr, 0), numberAt(arr, 1), numberAt(arr, 2), numberAt(arr, 3))
}
