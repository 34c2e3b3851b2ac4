package analyzer

import (
	"github.com/coregx/fpdf/internal/model"
	"github.com/coregx/fpdf/internal/parser"
)

// analyzeSignatures walks the AcroForm field tree for /FT /Sig fields with
// a /V signature dictionary, per spec.md §4.B.6.
func (a *Analyzer) analyzeSignatures(reader *parser.Reader) []model.SignatureInfo {
	catalog, err := reader.GetCatalog()
	if err != nil || catalog == nil {
		return nil
	}
	acroForm := resolveDict(reader, catalog.Get("AcroForm"))
	if acroForm == nil {
		return nil
	}
	fieldsArr := acroForm.GetArray("Fields")
	if fieldsArr == nil {
		return nil
	}

	var sigs []model.SignatureInfo
	visited := make(map[int]bool)
	for i := 0; i < fieldsArr.Len(); i++ {
		ref, ok := fieldsArr.Get(i).(*parser.IndirectReference)
		if !ok {
			continue
		}
		collectSignatures(reader, ref.Number, visited, &sigs)
	}
	return sigs
}

func collectSignatures(reader *parser.Reader, objNum int, visited map[int]bool, sigs *[]model.SignatureInfo) {
	if visited[objNum] {
		return
	}
	visited[objNum] = true

	obj, err := reader.GetObject(objNum)
	if err != nil {
		return
	}
	field, ok := obj.(*parser.Dictionary)
	if !ok {
		return
	}

	if n := field.GetName("FT"); n != nil && n.Value() == "Sig" {
		if sigDict := resolveDict(reader, field.Get("V")); sigDict != nil {
			info := model.SignatureInfo{
				FieldName: textValue(field, "T"),
				Reason:    textValue(sigDict, "Reason"),
			}
			info.SignerName = textValue(sigDict, "Name")
			info.SigningTime = parsePDFDate(textValue(sigDict, "M"))
			if byteRange := sigDict.GetArray("ByteRange"); byteRange != nil {
				info.CoversWhole = byteRange.Len() == 4
			}
			*sigs = append(*sigs, info)
		}
	}

	if kids := field.GetArray("Kids"); kids != nil {
		for i := 0; i < kids.Len(); i++ {
			if ref, ok := kids.Get(i).(*parser.IndirectReference); ok {
				collectSignatures(reader, ref.Number, visited, sigs)
			}
		}
	}
}
