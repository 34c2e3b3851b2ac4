package query

import (
	"fmt"
	"strconv"

	"github.com/coregx/fpdf/internal/forensic"
	"github.com/coregx/fpdf/internal/pool"
	"github.com/coregx/fpdf/internal/store"
)

// Engine is the Query Engine (spec.md §4.D): it parses an expression,
// resolves a range spec against the Cache Store, and dispatches each
// resolved cache entry to the requested Scope.
type Engine struct {
	store *store.Store
	pool  *pool.Pool
}

// NewEngine builds an Engine over s. p may be nil; it is only needed by
// the `objects`/`modifications` scopes, which re-open the original PDF.
func NewEngine(s *store.Store, p *pool.Pool) *Engine {
	return &Engine{store: s, pool: p}
}

// Result is the outcome of one Search call.
type Result struct {
	Matches         []Match `json:"matches"`
	MatchedIDs      int     `json:"matchedIds"`
	MissingIDs      []int   `json:"missingIds,omitempty"`
	UnresolvedCount int     `json:"unresolvedCount,omitempty"` // ids the range spec named that don't exist at all
}

// Search evaluates expression (and the not_words exclusion list) against
// scopeName for every cache id rangeSpec resolves to. A missing cache
// entry is a soft error recorded in Result.MissingIDs; an unparseable
// expression or unknown scope is a hard error (spec.md §4.D failure
// semantics).
func (e *Engine) Search(scopeName, expression string, notWords []string, rangeSpec string) (*Result, error) {
	scope, ok := Scopes()[scopeName]
	if !ok {
		return nil, fmt.Errorf("query: unknown scope %q", scopeName)
	}

	expr, err := Parse(expression)
	if err != nil {
		return nil, err
	}

	resolved := e.store.Resolve(rangeSpec)
	result := &Result{UnresolvedCount: resolved.Missing}

	for _, id := range resolved.IDs {
		entry, analysis, err := e.store.Get(strconv.Itoa(id))
		if err != nil {
			result.MissingIDs = append(result.MissingIDs, id)
			continue
		}

		ctx := Context{
			CacheID:   id,
			Analysis:  analysis,
			Documents: e.store.Documents(id),
		}
		switch scopeName {
		case "objects":
			ctx.ObjectDescriptions = e.objectDescriptions(entry.OriginalPath)
		case "modifications":
			ctx.ModificationDescriptions = e.modificationDescriptions(entry.OriginalPath)
		}

		matches := scope.Evaluate(ctx, expr, notWords)
		if len(matches) == 0 {
			continue
		}
		result.Matches = append(result.Matches, matches...)
		result.MatchedIDs++
	}

	return result, nil
}

// objectDescriptions dumps every object's String() form, for the
// `objects` scope. Re-opens the original file via the Reader Pool rather
// than the cached AnalysisResult, since raw objects aren't modeled there.
func (e *Engine) objectDescriptions(path string) []string {
	if e.pool == nil || path == "" {
		return nil
	}
	handle, err := e.pool.Acquire(path)
	if err != nil {
		return nil
	}
	defer e.pool.Release(handle)

	nums := handle.Reader.XRefTable().Numbers()
	descriptions := make([]string, 0, len(nums))
	for _, num := range nums {
		obj, err := handle.Reader.GetObject(num)
		if err != nil {
			continue
		}
		descriptions = append(descriptions, fmt.Sprintf("%d 0 obj %s", num, obj.String()))
	}
	return descriptions
}

// modificationDescriptions summarizes the incremental-update object
// changes found by the Forensic Differencer, for the `modifications`
// scope.
func (e *Engine) modificationDescriptions(path string) []string {
	if e.pool == nil || path == "" {
		return nil
	}
	handle, err := e.pool.Acquire(path)
	if err != nil {
		return nil
	}
	defer e.pool.Release(handle)

	report, err := forensic.DetectIncremental(handle.Reader)
	if err != nil {
		return nil
	}

	descriptions := make([]string, 0, len(report.Changes))
	for _, c := range report.Changes {
		descriptions = append(descriptions, fmt.Sprintf("object %d %s", c.ObjectNumber, c.Kind))
	}
	return descriptions
}
