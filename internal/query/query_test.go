package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/fpdf/internal/model"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, Normalize("certidao"), Normalize("CERTIDÃO"))
	assert.Equal(t, Normalize("certidao"), Normalize("Certidão"))
	assert.NotEqual(t, "certidao", "CERTIDÃO") // sanity: inputs really do differ pre-normalization
}

func TestTerm_Literal(t *testing.T) {
	term := NewTerm("invoice", false)
	assert.True(t, term.Match("an invoice number"))
	assert.False(t, term.Match("AN INVOICE NUMBER")) // literal terms are case-sensitive
}

func TestTerm_Normalized(t *testing.T) {
	term := NewTerm("certidao", true)
	assert.True(t, term.Match("CERTIDÃO de nascimento"))
	assert.True(t, term.Match("Certidão de Nascimento"))
}

func TestTerm_Wildcard(t *testing.T) {
	term := NewTerm("inv*ce", false)
	assert.True(t, term.Match("an invoice"))
	assert.False(t, term.Match("an invite")) // wildcard still requires the literal tail "ce"

	single := NewTerm("inv?ice", false)
	assert.True(t, single.Match("invoice"))
	assert.False(t, single.Match("invxxice"))
}

func TestParse_Precedence(t *testing.T) {
	// "a & b | c" must mean "(a & b) | c": text containing only c matches.
	expr, err := Parse("alpha & beta | gamma")
	require.NoError(t, err)

	assert.True(t, expr.Match("gamma only"))
	assert.True(t, expr.Match("alpha and beta"))
	assert.False(t, expr.Match("alpha only"))
	assert.False(t, expr.Match("beta only"))
}

func TestParse_NormalizedAtomInExpression(t *testing.T) {
	expr, err := Parse("~certidao~ & nascimento")
	require.NoError(t, err)

	assert.True(t, expr.Match("CERTIDÃO de nascimento"))
	assert.False(t, expr.Match("CERTIDÃO de casamento"))
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse("")
	assert.Error(t, err)

	_, err = Parse("foo & & bar")
	assert.Error(t, err)

	_, err = Parse("~unterminated")
	assert.Error(t, err)
}

func TestMatchesAny(t *testing.T) {
	assert.True(t, MatchesAny("draft copy", []string{"draft"}))
	assert.False(t, MatchesAny("final copy", []string{"draft"}))
}

func TestPagesScope(t *testing.T) {
	analysis := &model.AnalysisResult{Pages: []model.PageAnalysis{
		{Number: 1, TextInfo: model.TextInfo{PageText: "invoice alpha", WordCount: 2}},
		{Number: 2, TextInfo: model.TextInfo{PageText: "invoice draft", WordCount: 2}},
	}}
	expr, err := Parse("invoice")
	require.NoError(t, err)

	matches := PagesScope{}.Evaluate(Context{CacheID: 1, Analysis: analysis}, expr, []string{"draft"})
	require.Len(t, matches, 1)
	assert.Equal(t, 1, matches[0].Page)
}

func TestWordsScope(t *testing.T) {
	analysis := &model.AnalysisResult{Pages: []model.PageAnalysis{
		{Number: 1, TextInfo: model.TextInfo{Words: []model.WordInfo{
			{Text: "Invoice"}, {Text: "Number"},
		}}},
	}}
	expr, err := Parse("Invoice")
	require.NoError(t, err)

	matches := WordsScope{}.Evaluate(Context{CacheID: 1, Analysis: analysis}, expr, nil)
	require.Len(t, matches, 1)
	assert.Equal(t, "Invoice", matches[0].Label)
}

func TestBookmarksScope(t *testing.T) {
	analysis := &model.AnalysisResult{BookmarkNodes: []model.BookmarkItem{
		{Title: "Chapter 1", Level: 0, Destination: &model.Destination{Page: 1}},
		{Title: "Appendix", Level: 0, Destination: &model.Destination{Page: 10}},
	}}
	expr, err := Parse("Chapter*")
	require.NoError(t, err)

	matches := BookmarksScope{}.Evaluate(Context{CacheID: 1, Analysis: analysis}, expr, nil)
	require.Len(t, matches, 1)
	assert.Equal(t, "Chapter 1", matches[0].Label)
}

func TestMetadataScope(t *testing.T) {
	analysis := &model.AnalysisResult{Metadata: model.Metadata{
		Author: "Jane Doe", Producer: "Acme Writer",
	}}
	expr, err := Parse("Acme")
	require.NoError(t, err)

	matches := MetadataScope{}.Evaluate(Context{CacheID: 1, Analysis: analysis}, expr, nil)
	require.Len(t, matches, 1)
	assert.Equal(t, "producer", matches[0].Label)
}

func TestDocumentsScope(t *testing.T) {
	expr, err := Parse("quarterly")
	require.NoError(t, err)

	matches := DocumentsScope{}.Evaluate(Context{CacheID: 1}, expr, nil)
	assert.Empty(t, matches) // no Documents supplied: zero matches, not a panic
}
