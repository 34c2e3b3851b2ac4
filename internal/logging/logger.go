// Package logging provides the process-wide structured logger (spec.md
// §9's "process-wide singletons... become explicit values passed through
// the ingestion and query contexts" — here, a *zap.Logger built once by
// cmd/fpdf's bootstrap, kept on its app value and passed to ingest.New;
// this package itself keeps no logger).
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger. debug enables verbose debug-level output
// (the FPDF_DEBUG environment variable, spec.md §6), switching from a
// production JSON encoder to a human-readable console one with caller
// and stack-trace annotations.
func New(debug bool) (*zap.Logger, error) {
	if debug {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		return cfg.Build()
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// NewNop returns a logger that discards everything, for tests and
// library callers that don't want ingestion/query noise on stderr.
func NewNop() *zap.Logger {
	return zap.NewNop()
}
