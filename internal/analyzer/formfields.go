package analyzer

import (
	"github.com/coregx/fpdf/internal/model"
	"github.com/coregx/fpdf/internal/parser"
)

// analyzeFormFields reports the Widget annotations on one page as form
// fields, resolving /T (name), /FT (type), and /V (value) up the field
// hierarchy when a widget inherits them from a non-terminal parent field,
// per PDF 1.7 §12.7.3.
func analyzeFormFields(reader *parser.Reader, pageDict *parser.Dictionary, pageNum int) (int, []model.FormField, error) {
	annotsArr := pageDict.GetArray("Annots")
	if annotsArr == nil {
		return 0, nil, nil
	}

	var fields []model.FormField
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
		if nameValue(dict.GetName("Subtype")) != "Widget" {
			continue
		}

		name, ftype, value := fieldAttributes(reader, dict, 0)
		fields = append(fields, model.FormField{
			Name:  name,
			Type:  ftype,
			Value: value,
			Rect:  rectFromArray(dict.GetArray("Rect")),
			Page:  pageNum,
		})
	}
	return len(fields), fields, nil
}

func fieldAttributes(reader *parser.Reader, dict *parser.Dictionary, depth int) (name, ftype, value string) {
	if depth > 32 {
		return
	}
	name = textValue(dict, "T")
	ftype = nameValue(dict.GetName("FT"))
	value = textValue(dict, "V")

	if name != "" && ftype != "" && value != "" {
		return
	}
	parentDict := resolveDict(reader, dict.Get("Parent"))
	if parentDict == nil {
		return
	}
	pname, pftype, pvalue := fieldAttributes(reader, parentDict, depth+1)
	if name == "" {
		name = pname
	}
	if ftype == "" {
		ftype = pftype
	}
	if value == "" {
		value = pvalue
	}
	return
}
