package analyzer

import (
	"strconv"
	"strings"
	"time"

	"github.com/coregx/fpdf/internal/model"
	"github.com/coregx/fpdf/internal/parser"
)

// analyzeMetadata reads the document /Info dictionary and catalog-level
// structural flags into model.Metadata/model.DocumentInfo, per spec.md
// §4.B.1. Recovered files are marked via reader.FileStructure().
func (a *Analyzer) analyzeMetadata(reader *parser.Reader, pageCount int) (model.Metadata, model.DocumentInfo, error) {
	metadata := model.Metadata{PDFVersion: reader.Version()}

	trailer := reader.Trailer()
	if trailer != nil {
		if infoObj := resolveDict(reader, trailer.Get("Info")); infoObj != nil {
			metadata.Title = textValue(infoObj, "Title")
			metadata.Author = textValue(infoObj, "Author")
			metadata.Subject = textValue(infoObj, "Subject")
			metadata.Keywords = textValue(infoObj, "Keywords")
			metadata.Creator = textValue(infoObj, "Creator")
			metadata.Producer = textValue(infoObj, "Producer")
			metadata.CreationDate = parsePDFDate(textValue(infoObj, "CreationDate"))
			metadata.ModDate = parsePDFDate(textValue(infoObj, "ModDate"))
		}
	}

	docInfo := model.DocumentInfo{
		TotalPages:     pageCount,
		Encrypted:      trailer != nil && trailer.Has("Encrypt"),
		FileStructure:  reader.FileStructure(),
	}

	catalog, err := reader.GetCatalog()
	if err == nil && catalog != nil {
		docInfo.HasAcroForm = catalog.Has("AcroForm")
		metadata.Tagged = false
		if markInfo := resolveDict(reader, catalog.Get("MarkInfo")); markInfo != nil {
			metadata.Tagged = markInfo.GetBoolean("Marked")
		}
		if acroForm := resolveDict(reader, catalog.Get("AcroForm")); acroForm != nil {
			docInfo.HasXFA = acroForm.Has("XFA")
		}
	}

	return metadata, docInfo, nil
}

func resolveDict(reader *parser.Reader, obj parser.PdfObject) *parser.Dictionary {
	if obj == nil {
		return nil
	}
	if ref, ok := obj.(*parser.IndirectReference); ok {
		resolved, err := reader.GetObject(ref.Number)
		if err != nil {
			return nil
		}
		obj = resolved
	}
	d, _ := obj.(*parser.Dictionary)
	return d
}

func textValue(dict *parser.Dictionary, key string) string {
	obj := dict.Get(key)
	if s, ok := obj.(*parser.String); ok {
		return s.Value()
	}
	return ""
}

// ParsePDFDate is the exported form of parsePDFDate, for callers outside
// this package (the forensic differencer's object-timestamp grouping).
func ParsePDFDate(raw string) *time.Time {
	return parsePDFDate(raw)
}

// parsePDFDate parses a PDF date string (D:YYYYMMDDHHmmSSOHH'mm') per PDF
// 1.7 §7.9.4. Returns nil if raw is empty or malformed rather than erroring
// the whole analysis over a cosmetic metadata field.
func parsePDFDate(raw string) *time.Time {
	s := strings.TrimPrefix(raw, "D:")
	if len(s) < 14 {
		if len(s) < 8 {
			return nil
		}
		s = s + strings.Repeat("0", 14-len(s))
	}

	year, err1 := strconv.Atoi(s[0:4])
	month, err2 := strconv.Atoi(s[4:6])
	day, err3 := strconv.Atoi(s[6:8])
	hour, err4 := strconv.Atoi(s[8:10])
	minute, err5 := strconv.Atoi(s[10:12])
	second, err6 := strconv.Atoi(s[12:14])
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil || err6 != nil {
		return nil
	}

	loc := time.UTC
	if len(s) > 14 {
		rest := s[14:]
		sign := rest[0]
		if (sign == '+' || sign == '-') && len(rest) >= 6 {
			offHour, oe1 := strconv.Atoi(rest[1:3])
			offMin, oe2 := strconv.Atoi(rest[4:6])
			if oe1 == nil && oe2 == nil {
				offset := offHour*3600 + offMin*60
				if sign == '-' {
					offset = -offset
				}
				loc = time.FixedZone("", offset)
			}
		}
	}

	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, loc)
	return &t
}
