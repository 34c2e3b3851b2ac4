package forensic

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/fpdf/internal/config"
	"github.com/coregx/fpdf/internal/model"
	"github.com/coregx/fpdf/internal/parser"
)

const testDataDir = "../../testdata/pdfs"

func fixture(name string) string {
	return filepath.Join(testDataDir, name)
}

func TestEOFPositions(t *testing.T) {
	data := []byte("junk%%EOFmore junk%%EOFtail")
	positions := eofPositions(data)
	assert.Equal(t, []int{4, 18}, positions)

	assert.Empty(t, eofPositions([]byte("no marker here")))
}

func TestClassify(t *testing.T) {
	assert.Equal(t, Fresh, Classify([]byte("single %%EOF")))
	assert.Equal(t, Modified, Classify([]byte("one %%EOF two %%EOF")))
}

func TestSessionStateString(t *testing.T) {
	assert.Equal(t, "Fresh", Fresh.String())
	assert.Equal(t, "NoEffectiveChange", NoEffectiveChange.String())
	assert.Equal(t, "Modified", Modified.String())
	assert.Equal(t, "Unknown", SessionState(99).String())
}

func TestTextAddition(t *testing.T) {
	assert.Equal(t, "hello world", textAddition("", "hello world"))
	assert.Equal(t, " world", textAddition("hello", "hello world"))
	assert.Equal(t, "goodbye", textAddition("hello", "goodbye"))
	assert.Equal(t, "", textAddition("hello", "hello"))
}

func TestCommonPrefixLen(t *testing.T) {
	assert.Equal(t, 5, commonPrefixLen("hello world", "hello there"))
	assert.Equal(t, 0, commonPrefixLen("abc", "xyz"))
	assert.Equal(t, 3, commonPrefixLen("abc", "abc"))
}

func TestObjectsEqual_PlainObjects(t *testing.T) {
	a := parser.NewInteger(42)
	b := parser.NewInteger(42)
	c := parser.NewInteger(7)
	assert.True(t, objectsEqual(a, b))
	assert.False(t, objectsEqual(a, c))
}

func TestObjectsEqual_Streams(t *testing.T) {
	dictA := parser.NewDictionary()
	dictA.Set("Length", parser.NewInteger(5))
	streamA := parser.NewStream(dictA, []byte("hello"))

	dictB := parser.NewDictionary()
	dictB.Set("Length", parser.NewInteger(5))
	streamB := parser.NewStream(dictB, []byte("hello"))

	dictC := parser.NewDictionary()
	dictC.Set("Length", parser.NewInteger(5))
	streamC := parser.NewStream(dictC, []byte("world"))

	assert.True(t, objectsEqual(streamA, streamB))
	assert.False(t, objectsEqual(streamA, streamC))
}

func TestObjectsEqual_MixedTypes(t *testing.T) {
	dict := parser.NewDictionary()
	stream := parser.NewStream(dict, []byte("x"))
	assert.False(t, objectsEqual(stream, parser.NewInteger(1)))
}

func TestRefNumbers(t *testing.T) {
	single := parser.NewIndirectReference(5, 0)
	assert.Equal(t, []int{5}, refNumbers(single))

	arr := parser.NewArrayFromSlice([]parser.PdfObject{
		parser.NewIndirectReference(1, 0),
		parser.NewIndirectReference(2, 0),
		parser.NewInteger(9),
	})
	assert.Equal(t, []int{1, 2}, refNumbers(arr))

	assert.Nil(t, refNumbers(parser.NewInteger(3)))
}

func TestTextAdditionsForPage(t *testing.T) {
	pageA := model.PageAnalysis{Number: 1, TextInfo: model.TextInfo{PageText: "line one\nline two"}}
	pageB := model.PageAnalysis{Number: 1, TextInfo: model.TextInfo{PageText: "line one\nline two\nline three"}}

	deltas := textAdditionsForPage(pageA, pageB)
	assert.Len(t, deltas, 1)
	assert.Equal(t, "line three", deltas[0].AddedText)
	assert.Equal(t, 1, deltas[0].Page)
}

func TestLineShapeAdditionsForPage(t *testing.T) {
	pageA := model.PageAnalysis{Number: 1, GraphicsElements: []model.GraphicsElement{
		{Kind: "line", BBox: model.BBox{X0: 0, Y0: 0, X1: 10, Y1: 10}},
	}}
	pageB := model.PageAnalysis{Number: 1, GraphicsElements: []model.GraphicsElement{
		{Kind: "line", BBox: model.BBox{X0: 0, Y0: 0, X1: 10, Y1: 10}},
		{Kind: "rect", BBox: model.BBox{X0: 5, Y0: 5, X1: 20, Y1: 20}},
	}}

	additions := lineShapeAdditionsForPage(pageA, pageB)
	assert.Len(t, additions, 1)
	assert.Equal(t, "rect", additions[0].Element.Kind)
}

func TestImageAdditionsForPage(t *testing.T) {
	pageA := model.PageAnalysis{Number: 1, Resources: model.PageResources{Images: []model.ImageInfo{
		{Width: 100, Height: 100, BitsPerComponent: 8, CompressionFilter: "DCTDecode", ByteLength: 2048},
	}}}
	pageB := model.PageAnalysis{Number: 1, Resources: model.PageResources{Images: []model.ImageInfo{
		{Width: 100, Height: 100, BitsPerComponent: 8, CompressionFilter: "DCTDecode", ByteLength: 2048},
		{Width: 50, Height: 50, BitsPerComponent: 8, CompressionFilter: "FlateDecode", ByteLength: 512},
	}}}

	additions := imageAdditionsForPage(pageA, pageB)
	assert.Len(t, additions, 1)
	assert.Equal(t, 50, additions[0].Image.Width)
}

func TestFormFieldAdditions(t *testing.T) {
	resultA := &model.AnalysisResult{Pages: []model.PageAnalysis{
		{Number: 1, FormFields: []model.FormField{{Name: "signature", Type: "Sig"}}},
	}}
	resultB := &model.AnalysisResult{Pages: []model.PageAnalysis{
		{Number: 1, FormFields: []model.FormField{
			{Name: "signature", Type: "Sig"},
			{Name: "approved_by", Type: "Tx"},
		}},
	}}

	additions := formFieldAdditions(resultA, resultB)
	assert.Len(t, additions, 1)
	assert.Equal(t, "approved_by", additions[0].Field.Name)
}

func TestFirstPage(t *testing.T) {
	assert.Equal(t, 2, firstPage([]int{5, 2, 9}))
	assert.Greater(t, firstPage(nil), 1<<30)
}

func TestDiff_IdenticalFileHasNoAdditions(t *testing.T) {
	report, err := Diff(fixture("multipage.pdf"), fixture("multipage.pdf"), config.AnalyzerConfig{}, false)
	require.NoError(t, err)
	assert.Empty(t, report.TextAdditions)
	assert.Empty(t, report.LineShapeAdditions)
	assert.Empty(t, report.ImageAdditions)
}

func TestDiff_MissingTargetIsSoftFailure(t *testing.T) {
	report, err := Diff(fixture("multipage.pdf"), fixture("no-such-file.pdf"), config.AnalyzerConfig{}, false)
	require.NoError(t, err)
	assert.Equal(t, &DiffReport{}, report)
}

func TestDiff_MissingTemplateIsHardFailure(t *testing.T) {
	_, err := Diff(fixture("no-such-file.pdf"), fixture("multipage.pdf"), config.AnalyzerConfig{}, false)
	assert.Error(t, err)
}

func TestTrueDiff_IdenticalFileHasNoChanges(t *testing.T) {
	report, err := TrueDiff(fixture("multipage.pdf"), fixture("multipage.pdf"))
	require.NoError(t, err)
	assert.Empty(t, report.Changes)
}

func TestTrueDiff_DistinctFilesReportObjectChanges(t *testing.T) {
	report, err := TrueDiff(fixture("minimal.pdf"), fixture("multipage.pdf"))
	require.NoError(t, err)
	assert.NotEmpty(t, report.Changes)
}

func TestTrueDiff_MissingFileIsHardFailure(t *testing.T) {
	_, err := TrueDiff(fixture("no-such-file.pdf"), fixture("multipage.pdf"))
	assert.Error(t, err)
}
