// Package pool implements the PDF Reader Pool: it opens a PDF once per
// canonical path for the lifetime of an ingestion or query, and lends the
// handle to callers that walk pages, objects, and streams.
//
// This generalizes internal/reader's one-reader-per-Document wrapper into
// one-reader-per-path, shared across concurrent callers.
package pool

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/coregx/fpdf/internal/parser"
)

// Handle is a borrowed, read-only PDF reader. Callers must not mutate the
// underlying file; none of the core operations in this system do.
type Handle struct {
	Path   string
	Reader *parser.Reader

	pool *Pool
	refs int
}

// PageCount returns the number of pages in the document.
func (h *Handle) PageCount() (int, error) {
	return h.Reader.GetPageCount()
}

// IsEncrypted reports whether the document's trailer carries an /Encrypt
// entry. The pool only ever opens a document for reading; it never
// attempts to supply an owner password.
func (h *Handle) IsEncrypted() bool {
	return h.Reader.Trailer() != nil && h.Reader.Trailer().Has("Encrypt")
}

// Pool caches open parser.Reader handles by canonical file path, so
// repeated Acquire calls for the same document within a batch share one
// open file and one object cache.
type Pool struct {
	mu      sync.Mutex
	handles map[string]*Handle
}

// New creates an empty Pool.
func New() *Pool {
	return &Pool{handles: make(map[string]*Handle)}
}

// Acquire opens (or returns an already-open) handle for path. If a
// previously returned handle's reader had to rebuild its cross-reference
// table (FileStructure() == "rebuilt", i.e. the file was corrupted and
// recovered by linear scan), the pool evicts it and reopens fresh, since a
// rebuilt table for a file that has since changed on disk cannot be
// trusted to still match.
func (p *Pool) Acquire(path string) (*Handle, error) {
	canonical, err := canonicalize(path)
	if err != nil {
		return nil, fmt.Errorf("pool: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if h, ok := p.handles[canonical]; ok {
		if h.Reader.FileStructure() == "rebuilt" {
			_ = h.Reader.Close()
			delete(p.handles, canonical)
		} else {
			h.refs++
			return h, nil
		}
	}

	r, err := parser.OpenPDF(canonical)
	if err != nil {
		return nil, fmt.Errorf("pool: opening %q: %w", canonical, err)
	}

	h := &Handle{Path: canonical, Reader: r, pool: p, refs: 1}
	p.handles[canonical] = h
	return h, nil
}

// Release returns a handle to the pool. The underlying file stays open
// until the pool itself is closed, since other callers may still hold a
// reference to the same canonical path.
func (p *Pool) Release(h *Handle) {
	if h == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if h.refs > 0 {
		h.refs--
	}
}

// Close closes every open handle and empties the pool.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for path, h := range p.handles {
		if err := h.Reader.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("pool: closing %q: %w", path, err)
		}
		delete(p.handles, path)
	}
	return firstErr
}

// canonicalize resolves path to an absolute form. Symlink resolution is
// deliberately skipped: forensic callers sometimes diff two paths that
// point through different symlinks to distinguish snapshots, and
// EvalSymlinks would collapse that distinction.
func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}
	return abs, nil
}
