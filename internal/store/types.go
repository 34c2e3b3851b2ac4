// Package store is the Cache Store: persistent, indexed storage of
// model.AnalysisResult records, addressable by cache id, original file
// name, or range expression, with a hand-rolled full-text index over
// page text (spec.md §4.C).
package store

import (
	"time"

	"github.com/coregx/fpdf/internal/model"
)

// processRecord is one row of the `processes` table: a logical source
// group keyed by the original file name stem (spec.md §4.C).
type processRecord struct {
	Stem      string   `json:"stem"`
	CacheIDs  []int    `json:"cacheIds"`
}

// DocumentRecord is one row of the `documents` table: a post-segmentation
// unit inside a cache. Segmentation itself is out of scope (spec.md §1
// names only the interface); DefaultSegmenter returns the whole cache as
// a single document. Exported for the query engine's `documents` scope.
type DocumentRecord struct {
	CacheID           int      `json:"cacheId"`
	Label             string   `json:"label"`
	Type              string   `json:"type"`
	PageStart         int      `json:"pageStart"`
	PageEnd           int      `json:"pageEnd"`
	Text              string   `json:"text"`
	Fonts             []string `json:"fonts"`
	ImageCount        int      `json:"imageCount"`
	HasSignatureImage bool     `json:"hasSignatureImage"`
	WordCount         int      `json:"wordCount"`
	CharacterCount    int      `json:"characterCount"`
	TextDensity       float64  `json:"textDensity"`
	BlankRatio        float64  `json:"blankRatio"`
}

// documentRecord is retained as an alias so existing call sites (store.go,
// segment.go) keep reading/writing unqualified field literals.
type documentRecord = DocumentRecord

// pageRecord is one row of the `pages` table: a denormalized per-page
// projection used for fast listing/counting without reconstructing the
// whole AnalysisResult.
type pageRecord struct {
	CacheID   int `json:"cacheId"`
	Number    int `json:"number"`
	WordCount int `json:"wordCount"`
	Text      string `json:"text"`
}

// cacheRow is one row of the `caches` table.
type cacheRow struct {
	Entry    model.CacheEntry    `json:"entry"`
	Analysis *model.AnalysisResult `json:"analysis"`
}

// Stats summarizes the store's contents for the `cache stats` command.
type Stats struct {
	TotalCaches     int            `json:"totalCaches"`
	TotalOriginal   int64          `json:"totalOriginalBytes"`
	TotalStored     int64          `json:"totalStoredBytes"`
	ByExtractionMode map[string]int `json:"byExtractionMode"`
	OldestCachedAt  *time.Time     `json:"oldestCachedAt,omitempty"`
	NewestCachedAt  *time.Time     `json:"newestCachedAt,omitempty"`
}

// ValueCount is one row of a TopValues result.
type ValueCount struct {
	Value   string `json:"value"`
	Count   int    `json:"count"`
	Samples []int  `json:"samples"` // up to samples_per_value cache ids
}
