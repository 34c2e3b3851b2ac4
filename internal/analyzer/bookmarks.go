package analyzer

import (
	"github.com/coregx/fpdf/internal/model"
	"github.com/coregx/fpdf/internal/parser"
)

// analyzeBookmarks flattens the catalog's /Outlines tree into an
// arena-indexed []model.BookmarkItem: each item's Children holds indices
// into the returned slice rather than pointers, so a malformed outline
// with a cyclic /Next or /First cannot produce a cyclic Go value (spec.md
// §9's bookmark-cycle design note).
func (a *Analyzer) analyzeBookmarks(reader *parser.Reader) []model.BookmarkItem {
	catalog, err := reader.GetCatalog()
	if err != nil || catalog == nil {
		return nil
	}

	outlinesObj := catalog.Get("Outlines")
	root := resolveDict(reader, outlinesObj)
	if root == nil {
		return nil
	}

	firstRef, ok := root.Get("First").(*parser.IndirectReference)
	if !ok {
		return nil
	}

	var items []model.BookmarkItem
	visited := make(map[int]bool)
	walkOutlineSiblings(reader, firstRef.Number, 0, visited, &items)
	return items
}

func walkOutlineSiblings(reader *parser.Reader, objNum, level int, visited map[int]bool, items *[]model.BookmarkItem) []int {
	var indices []int
	num := objNum
	for num != 0 && !visited[num] {
		visited[num] = true

		obj, err := reader.GetObject(num)
		if err != nil {
			break
		}
		dict, ok := obj.(*parser.Dictionary)
		if !ok {
			break
		}

		item := model.BookmarkItem{
			Title: textValue(dict, "Title"),
			Level: level,
		}
		if dest := bookmarkDestination(dict); dest != nil {
			item.Destination = dest
		}
		if action := bookmarkAction(reader, dict); action != nil {
			item.Action = action
		}

		idx := len(*items)
		*items = append(*items, item)
		indices = append(indices, idx)

		if firstRef, ok := dict.Get("First").(*parser.IndirectReference); ok {
			children := walkOutlineSiblings(reader, firstRef.Number, level+1, visited, items)
			(*items)[idx].Children = children
		}

		nextRef, ok := dict.Get("Next").(*parser.IndirectReference)
		if !ok {
			break
		}
		num = nextRef.Number
	}
	return indices
}

func bookmarkDestination(dict *parser.Dictionary) *model.Destination {
	destObj := dict.Get("Dest")
	arr, ok := destObj.(*parser.Array)
	if !ok || arr.Len() == 0 {
		return nil
	}
	pageRef, ok := arr.Get(0).(*parser.IndirectReference)
	if !ok {
		return nil
	}
	view := ""
	if arr.Len() > 1 {
		if n, ok := arr.Get(1).(*parser.Name); ok {
			view = n.Value()
		}
	}
	return &model.Destination{Page: pageRef.Number, View: view}
}

func bookmarkAction(reader *parser.Reader, dict *parser.Dictionary) *model.Action {
	actionDict := resolveDict(reader, dict.Get("A"))
	if actionDict == nil {
		return nil
	}
	kind := ""
	if n := actionDict.GetName("S"); n != nil {
		kind = n.Value()
	}
	uri := textValue(actionDict, "URI")
	if kind == "" && uri == "" {
		return nil
	}
	return &model.Action{Kind: kind, URI: uri}
}
