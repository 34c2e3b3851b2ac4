package analyzer

import (
	"github.com/coregx/fpdf/internal/model"
	"github.com/coregx/fpdf/internal/parser"
)

// analyzeLayers reads the catalog's /OCProperties optional-content groups,
// marking a layer locked/hidden per the default configuration's /OFF and
// /Locked arrays, per spec.md §4.B.8.
func (a *Analyzer) analyzeLayers(reader *parser.Reader) []model.LayerInfo {
	catalog, err := reader.GetCatalog()
	if err != nil || catalog == nil {
		return nil
	}
	ocProps := resolveDict(reader, catalog.Get("OCProperties"))
	if ocProps == nil {
		return nil
	}

	ocgsArr := ocProps.GetArray("OCGs")
	if ocgsArr == nil {
		return nil
	}

	off := refSet(reader, ocProps, "D", "OFF")
	locked := refSet(reader, ocProps, "D", "Locked")

	var layers []model.LayerInfo
	for i := 0; i < ocgsArr.Len(); i++ {
		ref, ok := ocgsArr.Get(i).(*parser.IndirectReference)
		if !ok {
			continue
		}
		obj, err := reader.GetObject(ref.Number)
		if err != nil {
			continue
		}
		ocg, ok := obj.(*parser.Dictionary)
		if !ok {
			continue
		}
		layers = append(layers, model.LayerInfo{
			Name:    textValue(ocg, "Name"),
			Visible: !off[ref.Number],
			Locked:  locked[ref.Number],
		})
	}
	return layers
}

// refSet collects the object numbers referenced in ocProperties's
// /D/<arrayKey> array (the default optional-content configuration's
// /OFF or /Locked lists).
func refSet(reader *parser.Reader, ocProps *parser.Dictionary, defaultKey, arrayKey string) map[int]bool {
	set := make(map[int]bool)
	d := resolveDict(reader, ocProps.Get(defaultKey))
	if d == nil {
		return set
	}
	arr := d.GetArray(arrayKey)
	if arr == nil {
		return set
	}
	for i := 0; i < arr.Len(); i++ {
		if ref, ok := arr.Get(i).(*parser.IndirectReference); ok {
			set[ref.Number] = true
		}
	}
	return set
}
