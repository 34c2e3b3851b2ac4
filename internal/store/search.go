package store

import "sort"

// SearchPages returns the cache id/page number pairs whose text contains
// every term in terms (case-insensitive substring match on each term),
// ascending by cache id then page number. This is the Cache Store's own
// coarse candidate lookup over page_fts (spec.md §4.C), not the Query
// Engine's expression grammar — internal/query.Engine does the
// authoritative `&`/`|`/`~t~`/wildcard evaluation per page once a
// candidate set is in hand.
func (s *Store) SearchPages(terms []string) []PageMatch {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := s.fts.search(terms)
	out := make([]PageMatch, 0, len(keys))
	for _, k := range keys {
		out = append(out, PageMatch{CacheID: k.CacheID, Page: k.Page})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CacheID != out[j].CacheID {
			return out[i].CacheID < out[j].CacheID
		}
		return out[i].Page < out[j].Page
	})
	return out
}

// PageMatch identifies one page within one cache entry.
type PageMatch struct {
	CacheID int
	Page    int
}
