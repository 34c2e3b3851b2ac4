package model

// BBox is an axis-aligned bounding box. Absolute boxes are in device space
// (PDF points, origin lower-left); normalized boxes hold the same box
// divided by the page size, so 0 ≤ n.. ≤ 1 (spec.md §8 invariant 3).
type BBox struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// TextState captures the graphics-state parameters active when a glyph run
// was shown, per the canvas listener described in spec.md §4.B.2.
type TextState struct {
	RenderMode      int     `json:"renderMode"`
	CharSpacing     float64 `json:"charSpacing"`
	WordSpacing     float64 `json:"wordSpacing"`
	HorizontalScale float64 `json:"horizontalScale"`
	Rise            float64 `json:"rise"`
}

// StyleFlags are derived style booleans for a word or line.
type StyleFlags struct {
	Bold      bool `json:"bold"`
	Italic    bool `json:"italic"`
	Underline bool `json:"underline"`
}

// WordInfo is one whitespace-delimited glyph run.
type WordInfo struct {
	Text       string     `json:"text"`
	BBox       BBox       `json:"bbox"`
	NormBBox   BBox       `json:"normBbox"`
	FontName   string     `json:"fontName"`
	FontSize   float64    `json:"fontSize"`
	Style      StyleFlags `json:"style"`
	TextState  TextState  `json:"textState"`
}

// LineInfo is a group of words sharing a baseline band.
type LineInfo struct {
	Text      string     `json:"text"`
	BBox      BBox       `json:"bbox"`
	NormBBox  BBox       `json:"normBbox"`
	FontName  string     `json:"fontName"`
	FontSize  float64    `json:"fontSize"`
	Style     StyleFlags `json:"style"`
	TextState TextState  `json:"textState"`
	Words     []WordInfo `json:"words,omitempty"`
}

// FontInfo describes one font resource as used on a page: its demangled
// base name, PDF font type, and every size it was observed at.
type FontInfo struct {
	Name          string     `json:"name"`
	Type          string     `json:"type"` // "Type1" | "TrueType" | "Type0" | "CIDFont" | "Type3"
	Embedded      bool       `json:"embedded"`
	Style         StyleFlags `json:"style"`
	ObservedSizes []float64  `json:"observedSizes"`
	SizeDefaulted bool       `json:"sizeDefaulted"`
}

// TextInfo is the full text-extraction result for one page.
type TextInfo struct {
	PageText          string     `json:"pageText"`
	CharacterCount    int        `json:"characterCount"`
	WordCount         int        `json:"wordCount"`
	LineCount         int        `json:"lineCount"`
	Languages         []string   `json:"languages,omitempty"`
	HasTables         bool       `json:"hasTables"`
	HasColumns        bool       `json:"hasColumns"`
	AverageLineLength float64    `json:"averageLineLength"`
	Fonts             []FontInfo `json:"fonts,omitempty"`
	Lines             []LineInfo `json:"lines,omitempty"`
	Words             []WordInfo `json:"words,omitempty"`
}
