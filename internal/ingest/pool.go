// Package ingest runs the bounded worker pool that drives the
// ingestion path `source PDF → Reader Pool → Analyzer → Cache Store`
// (spec.md §5). Each worker owns one in-flight PDF at a time; a single
// context.Context is the cancellation token shared by all of them.
package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/coregx/fpdf/internal/analyzer"
	"github.com/coregx/fpdf/internal/model"
	"github.com/coregx/fpdf/internal/pool"
	"github.com/coregx/fpdf/internal/store"
)

// Result is the outcome of ingesting one path, indexed by its position
// in the input slice so callers can buffer for ordered output (spec.md
// §5: "the runner preserves input order by buffering results until the
// earliest incomplete input completes").
type Result struct {
	Index     int
	Path      string
	Entry     model.CacheEntry
	Err       error
	Cancelled bool
}

// Pool is the bounded ingestion worker pool.
type Pool struct {
	Workers  int
	Readers  *pool.Pool
	Analyzer *analyzer.Analyzer
	Store    *store.Store
	Mode     string // extraction mode recorded on each CacheEntry
	Log      *zap.Logger

	completed atomic.Int64
}

// New builds a Pool. workers is clamped to at least 1; log may be nil
// (treated as a no-op logger).
func New(workers int, readers *pool.Pool, a *analyzer.Analyzer, s *store.Store, mode string, log *zap.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Pool{Workers: workers, Readers: readers, Analyzer: a, Store: s, Mode: mode, Log: log}
}

// Completed returns the number of paths processed so far (success or
// failure), safe to read concurrently with Run (spec.md §5: "progress
// counters are updated with atomic operations; no locks on the hot
// path").
func (p *Pool) Completed() int64 {
	return p.completed.Load()
}

// Run ingests every path in paths, fanning out across p.Workers
// goroutines, and returns one Result per path in input order. On
// context cancellation, any path not yet started is reported Cancelled
// without being opened. The context is checked only before a path is
// opened: a path already in flight is analyzed to the end and stored,
// and is not reported Cancelled.
func (p *Pool) Run(ctx context.Context, paths []string) []Result {
	results := make([]Result, len(paths))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for i := 0; i < p.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = p.ingestOne(ctx, idx, paths[idx])
				p.completed.Add(1)
			}
		}()
	}

	for i := range paths {
		select {
		case <-ctx.Done():
			results[i] = Result{Index: i, Path: paths[i], Cancelled: true, Err: ctx.Err()}
			p.completed.Add(1)
			continue
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	return results
}

func (p *Pool) ingestOne(ctx context.Context, index int, path string) Result {
	select {
	case <-ctx.Done():
		return Result{Index: index, Path: path, Cancelled: true, Err: ctx.Err()}
	default:
	}

	handle, err := p.Readers.Acquire(path)
	if err != nil {
		p.Log.Warn("ingest: failed to open PDF", zap.String("path", path), zap.Error(err))
		return Result{Index: index, Path: path, Err: err}
	}
	defer p.Readers.Release(handle)

	analysis, err := p.Analyzer.Analyze(handle.Reader)
	if err != nil {
		p.Log.Warn("ingest: analysis failed", zap.String("path", path), zap.Error(err))
		return Result{Index: index, Path: path, Err: err}
	}

	info, statErr := os.Stat(path)
	var size int64
	if statErr == nil {
		size = info.Size()
	}

	hash := contentHash(handle.Reader.RawBytes())
	entry, err := p.Store.Put(path, filepath.Base(path), size, p.Mode, hash, analysis)
	if err != nil {
		p.Log.Warn("ingest: store put failed", zap.String("path", path), zap.Error(err))
		return Result{Index: index, Path: path, Err: err}
	}

	p.Log.Debug("ingest: cached", zap.String("path", path), zap.Int("cacheId", entry.ID))
	return Result{Index: index, Path: path, Entry: entry}
}

func contentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
