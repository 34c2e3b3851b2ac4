package forensic

import (
	"sort"
	"time"

	"github.com/coregx/fpdf/internal/analyzer"
	"github.com/coregx/fpdf/internal/parser"
)

// LastSession reports the most recent incremental-update session on one
// PDF: the objects added or changed in the final xref section, their
// modification timestamp if recoverable from a /M entry, and the text
// those changes added to each affected page (spec.md §4.E.2 "timestamp
// based last session").
//
// A PDF with at most one %%EOF marker has no session to report; the
// returned group has no object numbers.
func LastSession(reader *parser.Reader) (*SessionGroup, error) {
	incremental, err := DetectIncremental(reader)
	if err != nil {
		return nil, err
	}
	if incremental.EOFCount <= 1 {
		return &SessionGroup{}, nil
	}

	nums := make([]int, 0, len(incremental.Changes))
	for _, c := range incremental.Changes {
		if c.Kind == ObjectDeleted {
			continue
		}
		nums = append(nums, c.ObjectNumber)
	}
	sort.Ints(nums)

	group := &SessionGroup{
		ObjectNumbers: nums,
		TextAdditions: incremental.TextAdditions,
	}

	if ts := latestTimestamp(reader, nums); ts != nil {
		group.Timestamp = ts.Format(time.RFC3339)
	}

	return group, nil
}

// latestTimestamp scans the given objects' dictionaries (resolving a
// stream's own dictionary) for a /M entry and returns the latest one
// found, per spec.md §4.E.2's "generation > 0, or /M entries" grouping
// key.
func latestTimestamp(reader *parser.Reader, objectNumbers []int) *time.Time {
	var latest *time.Time
	for _, num := range objectNumbers {
		obj, err := reader.GetObject(num)
		if err != nil {
			continue
		}

		var dict *parser.Dictionary
		switch v := obj.(type) {
		case *parser.Dictionary:
			dict = v
		case *parser.Stream:
			dict = v.Dictionary()
		default:
			continue
		}
		if dict == nil {
			continue
		}

		raw, ok := dict.Get("M").(*parser.String)
		if !ok {
			continue
		}
		t := analyzer.ParsePDFDate(raw.Value())
		if t == nil {
			continue
		}
		if latest == nil || t.After(*latest) {
			latest = t
		}
	}
	return latest
}
