package fpdf

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDataDir = "testdata/pdfs"

func fixture(name string) string {
	return filepath.Join(testDataDir, name)
}

func TestOpen_MinimalPDF(t *testing.T) {
	doc, err := Open(fixture("minimal.pdf"))
	require.NoError(t, err)
	defer doc.Close()

	assert.Equal(t, fixture("minimal.pdf"), doc.Path())
	assert.Greater(t, doc.PageCount(), 0)
	assert.False(t, doc.IsEncrypted())
}

func TestOpen_MissingFile(t *testing.T) {
	doc, err := Open(fixture("does-not-exist.pdf"))
	assert.Error(t, err)
	assert.Nil(t, doc)
}

func TestMustOpen_PanicsOnMissingFile(t *testing.T) {
	assert.Panics(t, func() {
		MustOpen(fixture("does-not-exist.pdf"))
	})
}

func TestDocument_Analyze_CachesResult(t *testing.T) {
	doc, err := Open(fixture("multipage.pdf"))
	require.NoError(t, err)
	defer doc.Close()

	first, err := doc.Analyze()
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := doc.Analyze()
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestDocument_PagesAndPage(t *testing.T) {
	doc, err := Open(fixture("multipage.pdf"))
	require.NoError(t, err)
	defer doc.Close()

	_, err = doc.Analyze()
	require.NoError(t, err)

	pages := doc.Pages()
	require.NotEmpty(t, pages)

	first := doc.Page(pages[0].Number())
	require.NotNil(t, first)
	assert.Equal(t, pages[0].Number(), first.Number())
	assert.GreaterOrEqual(t, first.WordCount(), 0)
}

func TestDocument_Page_NilBeforeAnalyze(t *testing.T) {
	doc, err := Open(fixture("minimal.pdf"))
	require.NoError(t, err)
	defer doc.Close()

	assert.Nil(t, doc.Page(1))
	assert.Nil(t, doc.Pages())
}

func TestDocument_Metadata(t *testing.T) {
	doc, err := Open(fixture("minimal.pdf"))
	require.NoError(t, err)
	defer doc.Close()

	_, err = doc.Metadata()
	require.NoError(t, err)
}

func TestDocument_DetectIncremental(t *testing.T) {
	doc, err := Open(fixture("minimal.pdf"))
	require.NoError(t, err)
	defer doc.Close()

	report, err := doc.DetectIncremental()
	require.NoError(t, err)
	require.NotNil(t, report)
}

func TestDocument_LastSession(t *testing.T) {
	doc, err := Open(fixture("minimal.pdf"))
	require.NoError(t, err)
	defer doc.Close()

	_, err = doc.LastSession()
	require.NoError(t, err)
}

func TestOpenWithContext_CancelledBeforeAnalyze(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	doc, err := OpenWithContext(ctx, fixture("minimal.pdf"))
	require.NoError(t, err)
	defer doc.Close()

	_, err = doc.Analyze()
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsEncrypted_FalseForPlainError(t *testing.T) {
	assert.False(t, IsEncrypted(assert.AnError))
	assert.True(t, IsEncrypted(ErrEncrypted))
}

func TestIsCorrupted_FalseForPlainError(t *testing.T) {
	assert.False(t, IsCorrupted(assert.AnError))
	assert.True(t, IsCorrupted(ErrCorrupted))
}
