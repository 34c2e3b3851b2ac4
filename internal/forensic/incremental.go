package forensic

import (
	"bytes"
	"os"
	"sort"

	"github.com/pkg/errors"

	"github.com/coregx/fpdf/internal/analyzer"
	"github.com/coregx/fpdf/internal/config"
	"github.com/coregx/fpdf/internal/parser"
)

const eofMarker = "%%EOF"

// eofPositions returns the byte offset of each %%EOF occurrence in data,
// ascending.
func eofPositions(data []byte) []int {
	var positions []int
	marker := []byte(eofMarker)
	offset := 0
	for {
		idx := bytes.Index(data[offset:], marker)
		if idx < 0 {
			break
		}
		positions = append(positions, offset+idx)
		offset += idx + len(marker)
	}
	return positions
}

// DetectIncremental runs spec.md §4.E.1/§4.E.3 against one open PDF: it
// scans the raw byte stream for %%EOF markers, and if more than one is
// present, opens the truncated "previous version" and diffs it against
// the current one.
func DetectIncremental(reader *parser.Reader) (*IncrementalReport, error) {
	data := reader.RawBytes()
	positions := eofPositions(data)

	report := &IncrementalReport{EOFCount: len(positions)}

	if len(positions) <= 1 {
		report.SessionType = "single-session"
		report.State = Fresh
		return report, nil
	}

	report.SessionType = "incremental"

	penultimate := positions[len(positions)-2]
	cut := penultimate + len(eofMarker)
	if cut > len(data) {
		cut = len(data)
	}
	previousBytes := data[:cut]

	prevReader, cleanup, err := openFromBytes(previousBytes)
	if err != nil {
		return nil, errors.Wrap(err, "forensic: opening previous version")
	}
	defer cleanup()

	changes, skipped, err := diffObjectGraphs(prevReader, reader)
	if err != nil {
		return nil, errors.Wrap(err, "forensic: diffing object graphs")
	}
	report.SkippedObjects = skipped

	sort.Slice(changes, func(i, j int) bool {
		pi, pj := firstPage(changes[i].AffectedPages), firstPage(changes[j].AffectedPages)
		if pi != pj {
			return pi < pj
		}
		return changes[i].ObjectNumber < changes[j].ObjectNumber
	})

	report.Changes = changes
	if len(changes) == 0 {
		report.State = NoEffectiveChange
		report.HasModifications = false
		return report, nil
	}

	report.State = Modified
	report.HasModifications = true
	report.TextAdditions = pageTextDeltas(prevReader, reader, affectedPageSet(changes))
	return report, nil
}

func firstPage(pages []int) int {
	if len(pages) == 0 {
		return int(^uint(0) >> 1) // unaffected changes sort last
	}
	min := pages[0]
	for _, p := range pages[1:] {
		if p < min {
			min = p
		}
	}
	return min
}

// openFromBytes materializes data as a temp file and opens it with the
// shared parser.Reader, since Reader.Open requires a real path (it needs
// random access to the whole file for xref recovery). The temp file is
// removed by the returned cleanup func.
func openFromBytes(data []byte) (*parser.Reader, func(), error) {
	f, err := os.CreateTemp("", "fpdf-prevversion-*.pdf")
	if err != nil {
		return nil, nil, err
	}
	path := f.Name()
	cleanup := func() { os.Remove(path) }

	if _, err := f.Write(data); err != nil {
		f.Close()
		cleanup()
		return nil, nil, err
	}
	if err := f.Close(); err != nil {
		cleanup()
		return nil, nil, err
	}

	reader, err := parser.OpenPDF(path)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return reader, func() {
		reader.Close()
		cleanup()
	}, nil
}

// diffObjectGraphs walks every object number known to either reader and
// classifies it Added/Modified/Deleted (spec.md §4.E.1 step 3), then
// resolves affected pages for every non-deleted change (step 4).
// Individual per-object parse failures are swallowed and counted rather
// than failing the whole diff (spec.md §4.E.2).
func diffObjectGraphs(previous, current *parser.Reader) ([]ObjectChange, int, error) {
	prevNums := previous.XRefTable().Numbers()
	curNums := current.XRefTable().Numbers()

	all := make(map[int]bool, len(prevNums)+len(curNums))
	for _, n := range prevNums {
		all[n] = true
	}
	for _, n := range curNums {
		all[n] = true
	}

	pageRefs, err := pageReferenceIndex(current)
	if err != nil {
		// Current version's page tree couldn't be walked (e.g. truncated
		// past the page tree root); fall back to the previous version's
		// index so Deleted objects can still be attributed to a page.
		pageRefs, err = pageReferenceIndex(previous)
		if err != nil {
			pageRefs = map[int][]int{}
		}
	}

	var changes []ObjectChange
	skipped := 0
	for num := range all {
		inPrev := previous.XRefTable().Has(num)
		inCur := current.XRefTable().Has(num)

		switch {
		case inCur && !inPrev:
			changes = append(changes, ObjectChange{ObjectNumber: num, Kind: ObjectAdded, AffectedPages: pageRefs[num]})
		case inPrev && !inCur:
			changes = append(changes, ObjectChange{ObjectNumber: num, Kind: ObjectDeleted, AffectedPages: pageRefs[num]})
		default:
			prevObj, errA := previous.GetObject(num)
			curObj, errB := current.GetObject(num)
			if errA != nil || errB != nil {
				skipped++
				continue
			}
			if !objectsEqual(prevObj, curObj) {
				changes = append(changes, ObjectChange{ObjectNumber: num, Kind: ObjectModified, AffectedPages: pageRefs[num]})
			}
		}
	}

	return changes, skipped, nil
}

// pageReferenceIndex maps every object number reachable from a page (its
// own object number, its /Contents, and its /Annots) to the 1-based page
// numbers that reach it.
func pageReferenceIndex(reader *parser.Reader) (map[int][]int, error) {
	pageNums, err := pageObjectNumbers(reader)
	if err != nil {
		return nil, err
	}

	index := make(map[int][]int)
	for i, objNum := range pageNums {
		pageNumber := i + 1
		index[objNum] = append(index[objNum], pageNumber)

		dict, err := reader.GetPage(i)
		if err != nil {
			continue
		}
		for _, ref := range referencedObjectNumbers(dict) {
			index[ref] = append(index[ref], pageNumber)
		}
	}
	return index, nil
}

func affectedPageSet(changes []ObjectChange) map[int]bool {
	pages := make(map[int]bool)
	for _, c := range changes {
		for _, p := range c.AffectedPages {
			pages[p] = true
		}
	}
	return pages
}

// pageTextDeltas extracts each affected page's text from both versions
// and reports the added portion (spec.md §4.E.1 step 5): if the previous
// text is empty, the whole current text is added; otherwise the longest
// common prefix is computed and everything after it is the addition; if
// the texts share no common prefix, the whole current text is reported.
func pageTextDeltas(previous, current *parser.Reader, pages map[int]bool) []TextDelta {
	a := analyzer.New(config.Default().Analyzer)

	var nums []int
	for p := range pages {
		nums = append(nums, p)
	}
	sort.Ints(nums)

	var deltas []TextDelta
	for _, pageNumber := range nums {
		index := pageNumber - 1

		var prevText string
		if prevPage, err := a.AnalyzePage(previous, index); err == nil {
			prevText = prevPage.TextInfo.PageText
		}

		curPage, err := a.AnalyzePage(current, index)
		if err != nil {
			continue
		}
		curText := curPage.TextInfo.PageText

		added := textAddition(prevText, curText)
		if added != "" {
			deltas = append(deltas, TextDelta{Page: pageNumber, AddedText: added})
		}
	}
	return deltas
}

func textAddition(previous, current string) string {
	if previous == "" {
		return current
	}
	prefixLen := commonPrefixLen(previous, current)
	return current[prefixLen:]
}

func commonPrefixLen(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

func objectsEqual(a, b parser.PdfObject) bool {
	streamA, okA := a.(*parser.Stream)
	streamB, okB := b.(*parser.Stream)
	if okA && okB {
		return streamA.Dictionary().String() == streamB.Dictionary().String() &&
			bytes.Equal(streamA.Content(), streamB.Content())
	}
	if okA != okB {
		return false
	}
	return a.String() == b.String()
}

// Classify re-derives a SessionState from raw bytes without doing the
// full pairwise object diff, for callers that only need the cheap
// classification: Fresh for at most one %%EOF, Modified otherwise. It
// never returns NoEffectiveChange, which needs the object diff.
func Classify(data []byte) SessionState {
	positions := eofPositions(data)
	if len(positions) <= 1 {
		return Fresh
	}
	return Modified
}
