package store

import "strings"

// ftsIndex is a hand-rolled inverted index over pages.text: word -> set of
// (cacheID, pageNumber) locations, maintained incrementally on every
// put/remove the way spec.md's `page_fts` trigger-synchronized table is
// described, without reaching for an embedded FTS/SQL engine (see
// DESIGN.md for why no driver appears here).
type ftsIndex struct {
	postings map[string]map[pageKey]bool
}

type pageKey struct {
	CacheID int
	Page    int
}

func newFTSIndex() *ftsIndex {
	return &ftsIndex{postings: make(map[string]map[pageKey]bool)}
}

func (idx *ftsIndex) indexPage(cacheID, page int, text string) {
	key := pageKey{CacheID: cacheID, Page: page}
	for _, tok := range tokenize(text) {
		set, ok := idx.postings[tok]
		if !ok {
			set = make(map[pageKey]bool)
			idx.postings[tok] = set
		}
		set[key] = true
	}
}

// removeCache drops every posting belonging to cacheID. Pages rows are
// removed wholesale on re-ingestion or cache removal, so a linear scan
// over postings (bounded by vocabulary size, not document count) is
// simpler than maintaining a reverse cacheID->tokens map for an
// operation that is already O(pages) expensive upstream.
func (idx *ftsIndex) removeCache(cacheID int) {
	for tok, set := range idx.postings {
		for key := range set {
			if key.CacheID == cacheID {
				delete(set, key)
			}
		}
		if len(set) == 0 {
			delete(idx.postings, tok)
		}
	}
}

// search returns the set of (cacheID, page) locations containing every
// token in terms (an AND of literal, lowercased substrings).
func (idx *ftsIndex) search(terms []string) []pageKey {
	if len(terms) == 0 {
		return nil
	}

	var result map[pageKey]bool
	for i, term := range terms {
		matches := make(map[pageKey]bool)
		term = strings.ToLower(term)
		for tok, set := range idx.postings {
			if strings.Contains(tok, term) {
				for key := range set {
					matches[key] = true
				}
			}
		}
		if i == 0 {
			result = matches
			continue
		}
		for key := range result {
			if !matches[key] {
				delete(result, key)
			}
		}
	}

	keys := make([]pageKey, 0, len(result))
	for key := range result {
		keys = append(keys, key)
	}
	return keys
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
}
