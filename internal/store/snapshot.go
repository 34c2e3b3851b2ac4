package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
)

const snapshotFileName = "snapshot.json"

// snapshotDoc is the on-disk shape of a Store: a denormalized dump of
// every table, written whole on each mutation. Good enough for the
// single-process, moderate-cache-size usage this tool targets; there is
// no incremental WAL format to reason about on load.
type snapshotDoc struct {
	NextID       int                        `json:"nextId"`
	LastIngested int                        `json:"lastIngested"`
	Caches       map[int]*cacheRow          `json:"caches"`
	Processes    map[string]*processRecord  `json:"processes"`
	Documents    map[int][]documentRecord   `json:"documents"`
	Pages        map[int][]pageRecord       `json:"pages"`
}

func (s *Store) snapshotPath() string {
	return filepath.Join(s.snapshotDir, snapshotFileName)
}

// saveSnapshotLocked writes the store's current state to disk. Callers
// must hold s.mu (read or write lock; json.Marshal only reads).
func (s *Store) saveSnapshotLocked() error {
	if err := os.MkdirAll(s.snapshotDir, 0o755); err != nil {
		return errors.Wrap(err, "store: creating snapshot directory")
	}

	doc := snapshotDoc{
		NextID:       s.nextID,
		LastIngested: s.lastIngested,
		Caches:       s.caches,
		Processes:    s.processes,
		Documents:    s.documents,
		Pages:        s.pages,
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "store: marshaling snapshot")
	}

	tmp := s.snapshotPath() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrap(err, "store: writing snapshot temp file")
	}
	return errors.Wrap(os.Rename(tmp, s.snapshotPath()), "store: installing snapshot")
}

// Load restores a Store from its snapshot directory, rebuilding the
// full-text index from the recovered page rows. A missing snapshot file
// is not an error — it just means an empty store.
func Load(snapshotDir string) (*Store, error) {
	s := New(snapshotDir)
	if snapshotDir == "" {
		return s, nil
	}

	data, err := os.ReadFile(s.snapshotPath())
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "store: reading snapshot")
	}

	var doc snapshotDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "store: unmarshaling snapshot")
	}

	s.nextID = doc.NextID
	s.lastIngested = doc.LastIngested
	if doc.Caches != nil {
		s.caches = doc.Caches
	}
	if doc.Processes != nil {
		s.processes = doc.Processes
	}
	if doc.Documents != nil {
		s.documents = doc.Documents
	}
	if doc.Pages != nil {
		s.pages = doc.Pages
	}

	for cacheID, rows := range s.pages {
		for _, row := range rows {
			s.fts.indexPage(cacheID, row.Number, row.Text)
		}
	}

	return s, nil
}

func parseIntLoose(s string) (int, error) {
	return strconv.Atoi(s)
}
