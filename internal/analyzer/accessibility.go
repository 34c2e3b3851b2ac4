package analyzer

import (
	"github.com/coregx/fpdf/internal/model"
	"github.com/coregx/fpdf/internal/parser"
)

// analyzeAccessibility walks the catalog's /StructTreeRoot to count
// headings, lists, tables, and figures and collect the document's declared
// languages, per spec.md §4.B.7. Returns nil only when the catalog cannot
// be read; an untagged document yields a record with Tagged false and
// zero counts.
func (a *Analyzer) analyzeAccessibility(reader *parser.Reader) *model.AccessibilityInfo {
	catalog, err := reader.GetCatalog()
	if err != nil || catalog == nil {
		return nil
	}

	markInfo := resolveDict(reader, catalog.Get("MarkInfo"))
	tagged := markInfo != nil && markInfo.GetBoolean("Marked")

	structRoot := resolveDict(reader, catalog.Get("StructTreeRoot"))
	info := &model.AccessibilityInfo{
		Tagged: tagged,
		RoleMap: map[string]string{},
	}

	if lang := textValue(catalog, "Lang"); lang != "" {
		info.LanguageCodes = append(info.LanguageCodes, lang)
	}

	if structRoot == nil {
		return info
	}

	if roleMapDict := resolveDict(reader, structRoot.Get("RoleMap")); roleMapDict != nil {
		for _, key := range roleMapDict.Keys() {
			if v := roleMapDict.GetName(key); v != nil {
				info.RoleMap[key] = v.Value()
			}
		}
	}

	visited := make(map[int]bool)
	if kidsArr, ok := structRoot.Get("K").(*parser.Array); ok {
		for i := 0; i < kidsArr.Len(); i++ {
			if ref, ok := kidsArr.Get(i).(*parser.IndirectReference); ok {
				walkStructElem(reader, ref.Number, visited, info)
			}
		}
	} else if ref, ok := structRoot.Get("K").(*parser.IndirectReference); ok {
		walkStructElem(reader, ref.Number, visited, info)
	}

	return info
}

func walkStructElem(reader *parser.Reader, objNum int, visited map[int]bool, info *model.AccessibilityInfo) {
	if visited[objNum] {
		return
	}
	visited[objNum] = true

	obj, err := reader.GetObject(objNum)
	if err != nil {
		return
	}
	elem, ok := obj.(*parser.Dictionary)
	if !ok {
		return
	}

	switch s := nameValue(elem.GetName("S")); s {
	case "H", "H1", "H2", "H3", "H4", "H5", "H6":
		info.HeadingCount++
	case "L":
		info.ListCount++
	case "Table":
		info.TableCount++
	case "Figure":
		info.FigureCount++
	}

	kidsObj := elem.Get("K")
	switch v := kidsObj.(type) {
	case *parser.Array:
		for i := 0; i < v.Len(); i++ {
			if ref, ok := v.Get(i).(*parser.IndirectReference); ok {
				walkStructElem(reader, ref.Number, visited, info)
			}
		}
	case *parser.IndirectReference:
		walkStructElem(reader, v.Number, visited, info)
	}
}
