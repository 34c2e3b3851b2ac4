package model

import "time"

// AnalysisResult is the structured analysis of one SourceDocument: exactly
// one per cached PDF (spec.md §3.1).
type AnalysisResult struct {
	Metadata         Metadata         `json:"metadata"`
	DocumentInfo     DocumentInfo     `json:"documentInfo"`
	Pages            []PageAnalysis   `json:"pages"`
	Security         Security         `json:"security"`
	ResourcesSummary ResourcesSummary `json:"resourcesSummary"`
	Statistics       Statistics       `json:"statistics"`

	// BookmarkNodes is the outline tree's arena: index 0..n-1, parent-less
	// roots first, BookmarkItem.Children holding sibling/child indices.
	BookmarkNodes []BookmarkItem `json:"bookmarkNodes,omitempty"`

	Signatures    []SignatureInfo     `json:"signatures,omitempty"`
	ColorProfiles []ColorProfile      `json:"colorProfiles,omitempty"`
	Accessibility *AccessibilityInfo  `json:"accessibility,omitempty"`
	Layers        []LayerInfo         `json:"layers,omitempty"`
}

// CacheEntry is one row of the cache's `caches` table (spec.md §3.1/§4.C).
type CacheEntry struct {
	ID              int       `json:"id"`
	OriginalPath    string    `json:"originalPath"`
	OriginalName    string    `json:"originalName"`
	StorageKey      string    `json:"storageKey"`
	OriginalBytes   int64     `json:"originalBytes"`
	StoredBytes     int64     `json:"storedBytes"`
	ExtractionMode  string    `json:"extractionMode"` // "ultra"|"text"|"custom"|"images-only"|"base64-only"
	ContentHash     string    `json:"contentHash"`
	CachedAt        time.Time `json:"cachedAt"`
}
