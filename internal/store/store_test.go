package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/fpdf/internal/model"
)

func sampleAnalysis(pages int) *model.AnalysisResult {
	result := &model.AnalysisResult{
		Metadata: model.Metadata{Producer: "Acme Writer"},
		DocumentInfo: model.DocumentInfo{
			TotalPages:    pages,
			FileStructure: "original",
		},
	}
	for i := 1; i <= pages; i++ {
		result.Pages = append(result.Pages, model.PageAnalysis{
			Number: i,
			TextInfo: model.TextInfo{
				PageText:       "invoice number alpha",
				WordCount:      3,
				CharacterCount: 20,
			},
		})
	}
	return result
}

func TestStore_PutGet(t *testing.T) {
	s := New("")
	entry, err := s.Put("/tmp/a.pdf", "a.pdf", 1024, "text", "hash-a", sampleAnalysis(2))
	require.NoError(t, err)
	assert.Equal(t, 1, entry.ID)

	gotEntry, analysis, err := s.Get("1")
	require.NoError(t, err)
	assert.Equal(t, entry.ID, gotEntry.ID)
	require.NotNil(t, analysis)
	assert.Len(t, analysis.Pages, 2)

	_, _, err = s.Get("a.pdf")
	require.NoError(t, err)

	_, _, err = s.Get("missing")
	assert.ErrorIs(t, err, model.ErrCacheMiss)
}

func TestStore_Get_ReturnsDefensiveCopy(t *testing.T) {
	s := New("")
	_, err := s.Put("/tmp/a.pdf", "a.pdf", 1024, "text", "hash-a", sampleAnalysis(1))
	require.NoError(t, err)

	_, analysis, err := s.Get("1")
	require.NoError(t, err)
	analysis.Pages[0].TextInfo.WordCount = 999

	_, again, err := s.Get("1")
	require.NoError(t, err)
	assert.Equal(t, 3, again.Pages[0].TextInfo.WordCount)
}

func TestStore_Put_SamePathSameHashIsIdempotent(t *testing.T) {
	s := New("")
	first, err := s.Put("/tmp/a.pdf", "a.pdf", 1024, "text", "hash-a", sampleAnalysis(1))
	require.NoError(t, err)

	second, err := s.Put("/tmp/a.pdf", "a.pdf", 1024, "text", "hash-a", sampleAnalysis(1))
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, s.List(), 1)
}

func TestStore_Put_SamePathNewHashReplaces(t *testing.T) {
	s := New("")
	first, err := s.Put("/tmp/a.pdf", "a.pdf", 1024, "text", "hash-a", sampleAnalysis(1))
	require.NoError(t, err)

	second, err := s.Put("/tmp/a.pdf", "a.pdf", 2048, "text", "hash-b", sampleAnalysis(3))
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, s.List(), 1)

	_, analysis, err := s.Get(second.StorageKey)
	require.NoError(t, err)
	assert.Len(t, analysis.Pages, 3)
}

func TestStore_Resolve(t *testing.T) {
	s := New("")
	for i := 0; i < 5; i++ {
		_, err := s.Put("/tmp/f.pdf", "f.pdf", 10, "text", string(rune('a'+i)), sampleAnalysis(1))
		require.NoError(t, err)
	}

	all := s.Resolve("all")
	assert.Equal(t, []int{1, 2, 3, 4, 5}, all.IDs)

	rng := s.Resolve("1-3")
	assert.Equal(t, []int{1, 2, 3}, rng.IDs)

	union := s.Resolve("1,3,5")
	assert.Equal(t, []int{1, 3, 5}, union.IDs)

	odd := s.Resolve("1-5:odd")
	assert.Equal(t, []int{1, 3, 5}, odd.IDs)

	last := s.Resolve("0")
	assert.Equal(t, []int{5}, last.IDs)

	missing := s.Resolve("1,99")
	assert.Equal(t, []int{1}, missing.IDs)
	assert.Equal(t, 1, missing.Missing)
}

func TestStore_RemoveAndClear(t *testing.T) {
	s := New("")
	entry, err := s.Put("/tmp/a.pdf", "a.pdf", 10, "text", "hash-a", sampleAnalysis(1))
	require.NoError(t, err)

	require.NoError(t, s.Remove(entry.StorageKey))
	assert.Empty(t, s.List())

	_, err = s.Put("/tmp/b.pdf", "b.pdf", 10, "text", "hash-b", sampleAnalysis(1))
	require.NoError(t, err)

	assert.ErrorIs(t, s.Clear(false), model.ErrUserInput)
	assert.Len(t, s.List(), 1)

	require.NoError(t, s.Clear(true))
	assert.Empty(t, s.List())
}

func TestStore_Stats(t *testing.T) {
	s := New("")
	_, err := s.Put("/tmp/a.pdf", "a.pdf", 100, "text", "hash-a", sampleAnalysis(1))
	require.NoError(t, err)
	_, err = s.Put("/tmp/b.pdf", "b.pdf", 200, "ultra", "hash-b", sampleAnalysis(1))
	require.NoError(t, err)

	stats := s.Stats()
	assert.Equal(t, 2, stats.TotalCaches)
	assert.Equal(t, int64(300), stats.TotalOriginal)
	assert.Equal(t, 1, stats.ByExtractionMode["text"])
	assert.Equal(t, 1, stats.ByExtractionMode["ultra"])
}

func TestStore_TopValues(t *testing.T) {
	s := New("")
	_, err := s.Put("/tmp/a.pdf", "a.pdf", 10, "text", "hash-a", sampleAnalysis(1))
	require.NoError(t, err)
	_, err = s.Put("/tmp/b.pdf", "b.pdf", 10, "text", "hash-b", sampleAnalysis(1))
	require.NoError(t, err)
	_, err = s.Put("/tmp/c.pdf", "c.pdf", 10, "ultra", "hash-c", sampleAnalysis(1))
	require.NoError(t, err)

	top := s.TopValues("extractionMode", 0, 2, 0, time.Time{})
	require.Len(t, top, 2)
	assert.Equal(t, "text", top[0].Value)
	assert.Equal(t, 2, top[0].Count)

	future := time.Now().Add(time.Hour)
	assert.Empty(t, s.TopValues("extractionMode", 0, 2, 0, future))
}

func TestStore_SearchPages(t *testing.T) {
	s := New("")
	entry, err := s.Put("/tmp/a.pdf", "a.pdf", 10, "text", "hash-a", sampleAnalysis(2))
	require.NoError(t, err)

	matches := s.SearchPages([]string{"invoice", "alpha"})
	assert.Len(t, matches, 2)
	assert.Equal(t, entry.ID, matches[0].CacheID)

	require.NoError(t, s.Remove(entry.StorageKey))
	assert.Empty(t, s.SearchPages([]string{"invoice"}))
}
