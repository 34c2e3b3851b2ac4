// Package model holds the data-model structs shared by the analyzer, cache
// store, query engine, and forensic differencer: AnalysisResult and every
// record it is built from.
package model

import "errors"

// Sentinel errors matching the error taxonomy, kept at the package level
// the way the root package keeps ErrNotAPDF/ErrEncrypted.
var (
	// ErrNotAPDF is returned when the opened file does not carry a PDF header.
	ErrNotAPDF = errors.New("model: not a PDF file")

	// ErrEncrypted is returned when a PDF enforces an owner password the
	// caller cannot supply.
	ErrEncrypted = errors.New("model: PDF is encrypted")

	// ErrCacheMiss is returned when a requested cache id or name is absent.
	ErrCacheMiss = errors.New("model: cache entry not found")

	// ErrAnalysis is returned for unrecoverable per-document analysis
	// failures (corrupt header, truncated file).
	ErrAnalysis = errors.New("model: analysis failed")

	// ErrStore is returned for I/O or constraint violations in the cache store.
	ErrStore = errors.New("model: store error")

	// ErrCancelled is returned when a caller-initiated cancellation aborts
	// an in-flight ingestion.
	ErrCancelled = errors.New("model: operation cancelled")

	// ErrUserInput is returned for invalid ranges, unparseable expressions,
	// or unknown subcommands.
	ErrUserInput = errors.New("model: invalid input")
)

// IsCacheMiss reports whether err indicates a missing cache entry.
func IsCacheMiss(err error) bool {
	return errors.Is(err, ErrCacheMiss)
}

// IsEncrypted reports whether err indicates an inaccessible encrypted PDF.
func IsEncrypted(err error) bool {
	return errors.Is(err, ErrEncrypted)
}

// IsCancelled reports whether err indicates a user-initiated cancellation.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}
