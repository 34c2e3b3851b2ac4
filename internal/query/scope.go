package query

import (
	"github.com/coregx/fpdf/internal/model"
	"github.com/coregx/fpdf/internal/store"
)

// Match is one row of a query result: spec.md §4.D's "structured rows."
type Match struct {
	CacheID int            `json:"cacheId"`
	Page    int            `json:"page,omitempty"`
	Label   string         `json:"label,omitempty"`
	Reason  string         `json:"matchReason"`
	Fields  map[string]any `json:"fields,omitempty"`
}

// Context bundles the per-cache-entry data a Scope needs to evaluate an
// expression: the full analysis plus its segmented documents, since
// documents live in the Cache Store rather than on AnalysisResult
// itself.
type Context struct {
	CacheID   int
	Analysis  *model.AnalysisResult
	Documents []store.DocumentRecord

	// ObjectDescriptions and ModificationDescriptions are populated by the
	// Engine only when the `objects`/`modifications` scope is requested,
	// since both require re-opening the PDF (raw object dump, forensic
	// incremental-update scan) rather than reading AnalysisResult.
	ObjectDescriptions        []string
	ModificationDescriptions  []string
}

// Scope evaluates one search expression against one kind of searchable
// unit (pages, documents, words, ...), per spec.md §4.D's per-scope
// matching rules. Each concrete scope owns the mapping from its unit to
// the text an Expr is matched against, and the fields surfaced on a hit.
//
// This interface enables:
//   - Adding new scopes without touching the expression engine
//   - Testing each scope's field projection independently
//   - Swapping a scope's matched-text derivation (e.g. OCR text later)
type Scope interface {
	// Name is the scope's CLI-facing identifier ("pages", "words", ...).
	Name() string

	// Evaluate returns one Match per matching unit, in a stable order
	// (ascending page/index). Units excluded by a not_word are omitted.
	Evaluate(ctx Context, expr Expr, notWords []string) []Match
}

// Scopes is the full registry, keyed by Scope.Name(), spec.md §4.D's
// "pages, documents, words, bookmarks, annotations, objects, fonts,
// metadata, structure, modifications".
func Scopes() map[string]Scope {
	scopes := []Scope{
		PagesScope{},
		DocumentsScope{},
		WordsScope{},
		BookmarksScope{},
		AnnotationsScope{},
		FontsScope{},
		MetadataScope{},
		StructureScope{},
		ObjectsScope{},
		ModificationsScope{},
	}
	out := make(map[string]Scope, len(scopes))
	for _, s := range scopes {
		out[s.Name()] = s
	}
	return out
}

// PagesScope matches each page's extracted text.
type PagesScope struct{}

func (PagesScope) Name() string { return "pages" }

func (PagesScope) Evaluate(ctx Context, expr Expr, notWords []string) []Match {
	if ctx.Analysis == nil {
		return nil
	}
	var matches []Match
	for _, page := range ctx.Analysis.Pages {
		text := page.TextInfo.PageText
		if !expr.Match(text) || MatchesAny(text, notWords) {
			continue
		}
		matches = append(matches, Match{
			CacheID: ctx.CacheID,
			Page:    page.Number,
			Reason:  "page text matched expression",
			Fields: map[string]any{
				"wordCount":      page.TextInfo.WordCount,
				"characterCount": page.TextInfo.CharacterCount,
				"hasTables":      page.TextInfo.HasTables,
				"hasColumns":     page.TextInfo.HasColumns,
				"imageCount":     len(page.Resources.Images),
				"annotationCount": len(page.Annotations),
			},
		})
	}
	return matches
}

// DocumentsScope matches each post-segmentation document's full text.
type DocumentsScope struct{}

func (DocumentsScope) Name() string { return "documents" }

func (DocumentsScope) Evaluate(ctx Context, expr Expr, notWords []string) []Match {
	var matches []Match
	for _, doc := range ctx.Documents {
		if !expr.Match(doc.Text) || MatchesAny(doc.Text, notWords) {
			continue
		}
		matches = append(matches, Match{
			CacheID: ctx.CacheID,
			Page:    doc.PageStart,
			Label:   doc.Label,
			Reason:  "document text matched expression",
			Fields: map[string]any{
				"type":              doc.Type,
				"pageStart":         doc.PageStart,
				"pageEnd":           doc.PageEnd,
				"wordCount":         doc.WordCount,
				"characterCount":    doc.CharacterCount,
				"textDensity":       doc.TextDensity,
				"blankRatio":        doc.BlankRatio,
				"hasSignatureImage": doc.HasSignatureImage,
				"fonts":             doc.Fonts,
			},
		})
	}
	return matches
}

// WordsScope matches each individual WordInfo, across every page.
type WordsScope struct{}

func (WordsScope) Name() string { return "words" }

func (WordsScope) Evaluate(ctx Context, expr Expr, notWords []string) []Match {
	if ctx.Analysis == nil {
		return nil
	}
	var matches []Match
	for _, page := range ctx.Analysis.Pages {
		for _, w := range page.TextInfo.Words {
			if !expr.Match(w.Text) || MatchesAny(w.Text, notWords) {
				continue
			}
			matches = append(matches, Match{
				CacheID: ctx.CacheID,
				Page:    page.Number,
				Label:   w.Text,
				Reason:  "word matched expression",
				Fields: map[string]any{
					"bbox":     w.BBox,
					"fontName": w.FontName,
					"fontSize": w.FontSize,
				},
			})
		}
	}
	return matches
}

// BookmarksScope matches each outline entry's title, with optional
// destination-page-orientation and level filters applied by the caller
// via Fields post-filtering (spec.md §4.D: "supports orientation
// filtering ... and level filter").
type BookmarksScope struct{}

func (BookmarksScope) Name() string { return "bookmarks" }

func (BookmarksScope) Evaluate(ctx Context, expr Expr, notWords []string) []Match {
	if ctx.Analysis == nil {
		return nil
	}
	var matches []Match
	for _, node := range ctx.Analysis.BookmarkNodes {
		if !expr.Match(node.Title) || MatchesAny(node.Title, notWords) {
			continue
		}
		fields := map[string]any{"level": node.Level}
		page := 0
		if node.Destination != nil {
			page = node.Destination.Page
			fields["destinationView"] = node.Destination.View
		}
		if node.Action != nil {
			fields["actionKind"] = node.Action.Kind
			fields["actionUri"] = node.Action.URI
		}
		matches = append(matches, Match{
			CacheID: ctx.CacheID,
			Page:    page,
			Label:   node.Title,
			Reason:  "bookmark title matched expression",
			Fields:  fields,
		})
	}
	return matches
}

// AnnotationsScope matches each annotation's text content.
type AnnotationsScope struct{}

func (AnnotationsScope) Name() string { return "annotations" }

func (AnnotationsScope) Evaluate(ctx Context, expr Expr, notWords []string) []Match {
	if ctx.Analysis == nil {
		return nil
	}
	var matches []Match
	for _, page := range ctx.Analysis.Pages {
		for _, a := range page.Annotations {
			if !expr.Match(a.Contents) || MatchesAny(a.Contents, notWords) {
				continue
			}
			matches = append(matches, Match{
				CacheID: ctx.CacheID,
				Page:    page.Number,
				Label:   a.Subtype,
				Reason:  "annotation contents matched expression",
				Fields:  map[string]any{"rect": a.Rect},
			})
		}
	}
	return matches
}

// FontsScope matches font resource names across the document.
type FontsScope struct{}

func (FontsScope) Name() string { return "fonts" }

func (FontsScope) Evaluate(ctx Context, expr Expr, notWords []string) []Match {
	if ctx.Analysis == nil {
		return nil
	}
	seen := make(map[string]bool)
	var matches []Match
	for _, page := range ctx.Analysis.Pages {
		for _, f := range page.TextInfo.Fonts {
			if seen[f.Name] || !expr.Match(f.Name) || MatchesAny(f.Name, notWords) {
				continue
			}
			seen[f.Name] = true
			matches = append(matches, Match{
				CacheID: ctx.CacheID,
				Page:    page.Number,
				Label:   f.Name,
				Reason:  "font name matched expression",
				Fields: map[string]any{
					"type":          f.Type,
					"embedded":      f.Embedded,
					"observedSizes": f.ObservedSizes,
				},
			})
		}
	}
	return matches
}

// MetadataScope matches against the document's Info-dictionary fields.
type MetadataScope struct{}

func (MetadataScope) Name() string { return "metadata" }

func (MetadataScope) Evaluate(ctx Context, expr Expr, notWords []string) []Match {
	if ctx.Analysis == nil {
		return nil
	}
	fields := map[string]string{
		"title":    ctx.Analysis.Metadata.Title,
		"author":   ctx.Analysis.Metadata.Author,
		"subject":  ctx.Analysis.Metadata.Subject,
		"keywords": ctx.Analysis.Metadata.Keywords,
		"creator":  ctx.Analysis.Metadata.Creator,
		"producer": ctx.Analysis.Metadata.Producer,
	}
	var matches []Match
	for field, value := range fields {
		if value == "" || !expr.Match(value) || MatchesAny(value, notWords) {
			continue
		}
		matches = append(matches, Match{
			CacheID: ctx.CacheID,
			Label:   field,
			Reason:  "metadata field matched expression",
			Fields:  map[string]any{"field": field, "value": value},
		})
	}
	return matches
}

// ObjectsScope matches raw object descriptions (populated by the Engine
// via internal/parser, since objects have no representation on
// AnalysisResult).
type ObjectsScope struct{}

func (ObjectsScope) Name() string { return "objects" }

func (ObjectsScope) Evaluate(ctx Context, expr Expr, notWords []string) []Match {
	var matches []Match
	for i, desc := range ctx.ObjectDescriptions {
		if !expr.Match(desc) || MatchesAny(desc, notWords) {
			continue
		}
		matches = append(matches, Match{
			CacheID: ctx.CacheID,
			Label:   desc,
			Reason:  "object description matched expression",
			Fields:  map[string]any{"index": i},
		})
	}
	return matches
}

// ModificationsScope matches forensic incremental-update descriptions
// (populated by the Engine via internal/forensic).
type ModificationsScope struct{}

func (ModificationsScope) Name() string { return "modifications" }

func (ModificationsScope) Evaluate(ctx Context, expr Expr, notWords []string) []Match {
	var matches []Match
	for i, desc := range ctx.ModificationDescriptions {
		if !expr.Match(desc) || MatchesAny(desc, notWords) {
			continue
		}
		matches = append(matches, Match{
			CacheID: ctx.CacheID,
			Label:   desc,
			Reason:  "modification record matched expression",
			Fields:  map[string]any{"index": i},
		})
	}
	return matches
}

// StructureScope matches tag names recorded in the accessibility
// structure-tree role map.
type StructureScope struct{}

func (StructureScope) Name() string { return "structure" }

func (StructureScope) Evaluate(ctx Context, expr Expr, notWords []string) []Match {
	if ctx.Analysis == nil || ctx.Analysis.Accessibility == nil {
		return nil
	}
	var matches []Match
	for tag, role := range ctx.Analysis.Accessibility.RoleMap {
		if !expr.Match(tag) || MatchesAny(tag, notWords) {
			continue
		}
		matches = append(matches, Match{
			CacheID: ctx.CacheID,
			Label:   tag,
			Reason:  "structure role matched expression",
			Fields:  map[string]any{"role": role},
		})
	}
	return matches
}
