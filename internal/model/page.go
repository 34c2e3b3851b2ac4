package model

// PageSize is a page's physical dimensions in points, plus derived units.
type PageSize struct {
	WidthPt  float64 `json:"widthPt"`
	HeightPt float64 `json:"heightPt"`
	WidthIn  float64 `json:"widthIn"`
	HeightIn float64 `json:"heightIn"`
	WidthMM  float64 `json:"widthMm"`
	HeightMM float64 `json:"heightMm"`
}

// NewPageSize derives inch/mm units from a points size.
func NewPageSize(widthPt, heightPt float64) PageSize {
	const ptPerIn = 72.0
	const mmPerIn = 25.4
	return PageSize{
		WidthPt:  widthPt,
		HeightPt: heightPt,
		WidthIn:  widthPt / ptPerIn,
		HeightIn: heightPt / ptPerIn,
		WidthMM:  widthPt / ptPerIn * mmPerIn,
		HeightMM: heightPt / ptPerIn * mmPerIn,
	}
}

// ImageInfo describes one XObject image on a page. The analyzer does not
// report inline (BI/ID/EI) images, so Inline is always false.
type ImageInfo struct {
	BBox              BBox   `json:"bbox"`
	Width             int    `json:"width"`
	Height            int    `json:"height"`
	BitsPerComponent  int    `json:"bitsPerComponent"`
	ColorSpace        string `json:"colorSpace"`
	CompressionFilter string `json:"compressionFilter"`
	Inline            bool   `json:"inline"`
	ByteLength        int    `json:"byteLength"`
}

// FormField is one AcroForm field, as read from the page or catalog
// /AcroForm tree (read-only; this system never writes field values).
type FormField struct {
	Name  string  `json:"name"`
	Type  string  `json:"type"` // "Tx" | "Btn" | "Ch" | "Sig"
	Value string  `json:"value,omitempty"`
	Rect  BBox    `json:"rect"`
	Page  int     `json:"page"`
}

// Annotation is one page annotation (link, widget, popup, ...), parsed
// permissively: malformed entries are skipped and counted by the caller
// rather than failing the page.
type Annotation struct {
	Subtype string `json:"subtype"`
	Rect    BBox   `json:"rect"`
	Contents string `json:"contents,omitempty"`
}

// PageResources summarizes a page's resource dictionary.
type PageResources struct {
	Images         []ImageInfo `json:"images,omitempty"`
	FormFieldCount int         `json:"formFieldCount"`
}

// GraphicsElement is a line-drawing primitive (line segment or rectangle)
// from a page's content stream, used by the forensic differencer's
// line-shape-addition comparison.
type GraphicsElement struct {
	Kind string `json:"kind"` // "line" | "rect"
	BBox BBox   `json:"bbox"`
}

// PageAnalysis is the full per-page analysis record.
type PageAnalysis struct {
	Number             int               `json:"number"` // 1-based
	Size               PageSize          `json:"size"`
	Rotation           int               `json:"rotation"` // 0, 90, 180, 270
	TextInfo           TextInfo          `json:"textInfo"`
	Resources          PageResources     `json:"resources"`
	Annotations        []Annotation      `json:"annotations,omitempty"`
	FormFields         []FormField       `json:"formFields,omitempty"`
	Headers            []LineInfo        `json:"headers,omitempty"`
	Footers            []LineInfo        `json:"footers,omitempty"`
	DocumentReferences []string          `json:"documentReferences,omitempty"`
	GraphicsElements   []GraphicsElement `json:"graphicsElements,omitempty"`

	// BidiAmbiguous is set when the analyzer encountered a font encoding
	// that suggests RTL/bidi script while collecting words left-to-right;
	// per spec.md §9, word order is never silently "fixed," only flagged.
	BidiAmbiguous bool `json:"bidiAmbiguous,omitempty"`

	// Warnings records recoverable per-page parse problems (AnalysisWarning
	// in spec.md §7); their presence never escalates to an analysis error.
	Warnings []string `json:"warnings,omitempty"`
}
