package forensic

import "github.com/coregx/fpdf/internal/parser"

// pageObjectNumbers walks reader's page tree the same way
// Reader.flattenPages does internally, but returns each leaf page's own
// object number, in page order, since the Reader does not
// expose that mapping and the differencer needs it to test "direct
// page-object identity" (spec.md §4.E.1 step 4).
func pageObjectNumbers(reader *parser.Reader) ([]int, error) {
	catalog, err := reader.GetCatalog()
	if err != nil {
		return nil, err
	}
	rootObj := catalog.Get("Pages")
	ref, ok := rootObj.(*parser.IndirectReference)
	if !ok {
		return nil, nil
	}

	var numbers []int
	visited := make(map[int]bool)

	var walk func(num int)
	walk = func(num int) {
		if visited[num] {
			return
		}
		visited[num] = true

		obj, err := reader.GetObject(num)
		if err != nil {
			return
		}
		dict, ok := obj.(*parser.Dictionary)
		if !ok {
			return
		}

		kidsObj := dict.Get("Kids")
		kids, isTreeNode := kidsObj.(*parser.Array)
		typeName := dict.GetName("Type")

		if !isTreeNode || (typeName != nil && typeName.Value() == "Page") {
			numbers = append(numbers, num)
			return
		}

		for _, kid := range kids.Elements() {
			kidRef, ok := kid.(*parser.IndirectReference)
			if !ok {
				continue
			}
			walk(kidRef.Number)
		}
	}

	walk(ref.Number)
	return numbers, nil
}

// referencedObjectNumbers collects the object numbers a page dictionary
// reaches through its /Contents and /Annots entries (spec.md §4.E.1 step
// 4: "through the page's contents array, annotations array, or direct
// page-object identity" — the third case is handled by pageObjectNumbers).
func referencedObjectNumbers(dict *parser.Dictionary) []int {
	var nums []int
	nums = append(nums, refNumbers(dict.Get("Contents"))...)
	nums = append(nums, refNumbers(dict.Get("Annots"))...)
	return nums
}

func refNumbers(obj parser.PdfObject) []int {
	switch v := obj.(type) {
	case *parser.IndirectReference:
		return []int{v.Number}
	case *parser.Array:
		var nums []int
		for _, el := range v.Elements() {
			if ref, ok := el.(*parser.IndirectReference); ok {
				nums = append(nums, ref.Number)
			}
		}
		return nums
	default:
		return nil
	}
}
