package store

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/tiendc/go-deepcopy"

	"github.com/coregx/fpdf/internal/model"
)

// Store is the Cache Store: an in-memory, mutex-guarded set of tables
// (spec.md §4.C) with a write-through JSON snapshot for durability across
// process restarts. All writes are serialized; readers share the
// snapshot under an RWMutex, matching spec.md §4.C's concurrency model.
type Store struct {
	mu sync.RWMutex

	nextID       int
	lastIngested int

	caches    map[int]*cacheRow
	processes map[string]*processRecord
	documents map[int][]documentRecord
	pages     map[int][]pageRecord
	fts       *ftsIndex

	segmenter  Segmenter
	snapshotDir string
}

// New creates an empty Store. snapshotDir is the directory snapshot.json
// is written under (FPDF_CACHE_DIR); pass "" to disable persistence.
func New(snapshotDir string) *Store {
	return &Store{
		caches:      make(map[int]*cacheRow),
		processes:   make(map[string]*processRecord),
		documents:   make(map[int][]documentRecord),
		pages:       make(map[int][]pageRecord),
		fts:         newFTSIndex(),
		segmenter:   DefaultSegmenter(),
		snapshotDir: snapshotDir,
	}
}

// WithSegmenter overrides the document-segmentation strategy.
func (s *Store) WithSegmenter(seg Segmenter) *Store {
	s.segmenter = seg
	return s
}

// Put upserts analysis under originalPath/extractionMode. Same path +
// same content hash is idempotent except for the updated timestamp
// (spec.md §4.C put semantics); a changed content hash for an
// already-cached path replaces that row's child data atomically.
func (s *Store) Put(originalPath, originalName string, originalBytes int64, extractionMode, contentHash string, analysis *model.AnalysisResult) (model.CacheEntry, error) {
	if analysis == nil {
		return model.CacheEntry{}, errors.New("store: nil analysis result")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()

	if existing := s.findByPathLocked(originalPath); existing != nil {
		if existing.Entry.ContentHash == contentHash {
			existing.Entry.CachedAt = now
			return existing.Entry, nil
		}
		s.removeLocked(existing.Entry.ID)
	}

	var analysisCopy model.AnalysisResult
	if err := deepcopy.Copy(&analysisCopy, analysis); err != nil {
		return model.CacheEntry{}, errors.Wrap(err, "store: copying analysis result")
	}

	s.nextID++
	id := s.nextID

	entry := model.CacheEntry{
		ID:             id,
		OriginalPath:   originalPath,
		OriginalName:   originalName,
		StorageKey:     fmt.Sprintf("cache-%d", id),
		OriginalBytes:  originalBytes,
		StoredBytes:    int64(len(analysisCopy.Pages)) * 1024, // rough estimate, no binary blob stored
		ExtractionMode: extractionMode,
		ContentHash:    contentHash,
		CachedAt:       now,
	}

	s.caches[id] = &cacheRow{Entry: entry, Analysis: &analysisCopy}
	s.lastIngested = id

	stem := stemOf(originalName)
	proc, ok := s.processes[stem]
	if !ok {
		proc = &processRecord{Stem: stem}
		s.processes[stem] = proc
	}
	proc.CacheIDs = append(proc.CacheIDs, id)

	s.documents[id] = s.segmenter.Segment(id, &analysisCopy)

	rows := make([]pageRecord, 0, len(analysisCopy.Pages))
	for _, page := range analysisCopy.Pages {
		rows = append(rows, pageRecord{
			CacheID:   id,
			Number:    page.Number,
			WordCount: page.TextInfo.WordCount,
			Text:      page.TextInfo.PageText,
		})
		s.fts.indexPage(id, page.Number, page.TextInfo.PageText)
	}
	s.pages[id] = rows

	if s.snapshotDir != "" {
		if err := s.saveSnapshotLocked(); err != nil {
			return entry, errors.Wrap(err, "store: writing snapshot")
		}
	}

	return entry, nil
}

// Get resolves identifier (cache id, original file name, or storage key)
// to its AnalysisResult. The returned value is a defensive deep copy so
// callers can never mutate the store's canonical record.
func (s *Store) Get(identifier string) (model.CacheEntry, *model.AnalysisResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.findByIdentifierLocked(identifier)
	if row == nil {
		return model.CacheEntry{}, nil, model.ErrCacheMiss
	}

	var copyResult model.AnalysisResult
	if err := deepcopy.Copy(&copyResult, row.Analysis); err != nil {
		return model.CacheEntry{}, nil, errors.Wrap(err, "store: copying analysis result")
	}
	return row.Entry, &copyResult, nil
}

// Documents returns the post-segmentation records for cacheID, for the
// query engine's `documents` scope. Empty if the cache id is unknown.
func (s *Store) Documents(cacheID int) []DocumentRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]DocumentRecord, len(s.documents[cacheID]))
	copy(out, s.documents[cacheID])
	return out
}

// Resolve expands a range expression to cache ids (spec.md §4.C).
func (s *Store) Resolve(rangeSpec string) ResolveResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolve(rangeSpec)
}

// List returns every cache entry, ascending by id.
func (s *Store) List() []model.CacheEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.allIDsLocked()
	out := make([]model.CacheEntry, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.caches[id].Entry)
	}
	return out
}

// Stats aggregates the store's contents for the `cache stats` command.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{ByExtractionMode: make(map[string]int)}
	for _, row := range s.caches {
		stats.TotalCaches++
		stats.TotalOriginal += row.Entry.OriginalBytes
		stats.TotalStored += row.Entry.StoredBytes
		stats.ByExtractionMode[row.Entry.ExtractionMode]++

		t := row.Entry.CachedAt
		if stats.OldestCachedAt == nil || t.Before(*stats.OldestCachedAt) {
			stats.OldestCachedAt = &t
		}
		if stats.NewestCachedAt == nil || t.After(*stats.NewestCachedAt) {
			stats.NewestCachedAt = &t
		}
	}
	return stats
}

// TopValues reports the k most common values of field (one of
// "extractionMode", "fileStructure", "producer") across cached entries,
// with up to samplesPerValue example cache ids per value. window limits
// the scan to the window most recently cached entries (0 = all); since
// additionally drops any entry cached strictly before it (zero value =
// no lower bound). Both may be combined, per `cache top`'s --last/--since
// flags (spec.md §6).
func (s *Store) TopValues(field string, k, samplesPerValue, window int, since time.Time) []ValueCount {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.allIDsLocked()
	sort.Slice(ids, func(i, j int) bool {
		return s.caches[ids[i]].Entry.CachedAt.After(s.caches[ids[j]].Entry.CachedAt)
	})
	if window > 0 && window < len(ids) {
		ids = ids[:window]
	}
	if !since.IsZero() {
		filtered := ids[:0:0]
		for _, id := range ids {
			if !s.caches[id].Entry.CachedAt.Before(since) {
				filtered = append(filtered, id)
			}
		}
		ids = filtered
	}

	counts := make(map[string]*ValueCount)
	var order []string
	for _, id := range ids {
		row := s.caches[id]
		v := fieldValue(row, field)
		if v == "" {
			continue
		}
		vc, ok := counts[v]
		if !ok {
			vc = &ValueCount{Value: v}
			counts[v] = vc
			order = append(order, v)
		}
		vc.Count++
		if samplesPerValue <= 0 || len(vc.Samples) < samplesPerValue {
			vc.Samples = append(vc.Samples, id)
		}
	}

	results := make([]ValueCount, 0, len(order))
	for _, v := range order {
		results = append(results, *counts[v])
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Count > results[j].Count })
	if k > 0 && k < len(results) {
		results = results[:k]
	}
	return results
}

func fieldValue(row *cacheRow, field string) string {
	switch field {
	case "extractionMode":
		return row.Entry.ExtractionMode
	case "fileStructure":
		return row.Analysis.DocumentInfo.FileStructure
	case "producer":
		return row.Analysis.Metadata.Producer
	default:
		return ""
	}
}

// Remove destroys one cache row and its child rows.
func (s *Store) Remove(identifier string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.findByIdentifierLocked(identifier)
	if row == nil {
		return model.ErrCacheMiss
	}
	s.removeLocked(row.Entry.ID)

	if s.snapshotDir != "" {
		return errors.Wrap(s.saveSnapshotLocked(), "store: writing snapshot")
	}
	return nil
}

// Clear destroys every cache row. confirm must be true; it exists so
// callers can't clear the store by accident (spec.md §4.C clear
// contract).
func (s *Store) Clear(confirm bool) error {
	if !confirm {
		return model.ErrUserInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.caches = make(map[int]*cacheRow)
	s.processes = make(map[string]*processRecord)
	s.documents = make(map[int][]documentRecord)
	s.pages = make(map[int][]pageRecord)
	s.fts = newFTSIndex()
	s.lastIngested = 0

	if s.snapshotDir != "" {
		return errors.Wrap(s.saveSnapshotLocked(), "store: writing snapshot")
	}
	return nil
}

func (s *Store) removeLocked(id int) {
	row, ok := s.caches[id]
	if !ok {
		return
	}
	delete(s.caches, id)
	delete(s.documents, id)
	delete(s.pages, id)
	s.fts.removeCache(id)

	stem := stemOf(row.Entry.OriginalName)
	if proc, ok := s.processes[stem]; ok {
		filtered := proc.CacheIDs[:0]
		for _, existingID := range proc.CacheIDs {
			if existingID != id {
				filtered = append(filtered, existingID)
			}
		}
		proc.CacheIDs = filtered
	}
}

func (s *Store) findByPathLocked(path string) *cacheRow {
	for _, row := range s.caches {
		if row.Entry.OriginalPath == path {
			return row
		}
	}
	return nil
}

func (s *Store) findByIdentifierLocked(identifier string) *cacheRow {
	if id, err := parseIntLoose(identifier); err == nil {
		if row, ok := s.caches[id]; ok {
			return row
		}
	}
	for _, row := range s.caches {
		if row.Entry.OriginalName == identifier || row.Entry.StorageKey == identifier || row.Entry.OriginalPath == identifier {
			return row
		}
	}
	return nil
}

func stemOf(name string) string {
	if idx := strings.LastIndex(name, "."); idx > 0 {
		return name[:idx]
	}
	return name
}
