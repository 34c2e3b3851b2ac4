package model

import "time"

// Metadata is the document's Info-dictionary metadata; XMP metadata
// streams are not read.
type Metadata struct {
	Title        string     `json:"title,omitempty"`
	Author       string     `json:"author,omitempty"`
	Subject      string     `json:"subject,omitempty"`
	Keywords     string     `json:"keywords,omitempty"`
	Creator      string     `json:"creator,omitempty"`
	Producer     string     `json:"producer,omitempty"`
	CreationDate *time.Time `json:"creationDate,omitempty"`
	ModDate      *time.Time `json:"modDate,omitempty"`
	PDFVersion   string     `json:"pdfVersion"`
	Tagged       bool       `json:"tagged"`
}

// DocumentInfo carries document-level structural indicators independent of
// any single page.
type DocumentInfo struct {
	TotalPages      int    `json:"totalPages"`
	Encrypted       bool   `json:"encrypted"`
	Linearized      bool   `json:"linearized"`
	HasAcroForm     bool   `json:"hasAcroForm"`
	HasXFA          bool   `json:"hasXfa"`
	FileStructure   string `json:"fileStructure"` // "original" | "rebuilt"
}

// Security describes the document's encryption mode and derived permission
// booleans.
type Security struct {
	Mode        string `json:"mode"` // "none" | "rc4-40" | "rc4-128" | "aes-128" | "aes-256"
	Permissions int32  `json:"permissions"`
	CanPrint    bool   `json:"canPrint"`
	CanModify   bool   `json:"canModify"`
	CanCopy     bool   `json:"canCopy"`
	CanAnnotate bool   `json:"canAnnotate"`
}

// ResourcesSummary aggregates document-wide resource counts used for quick
// triage without walking every page.
type ResourcesSummary struct {
	TotalImages     int  `json:"totalImages"`
	FormFieldCount  int  `json:"formFieldCount"`
	HasJavaScript   bool `json:"hasJavaScript"`
	HasAttachments  bool `json:"hasAttachments"`
}

// Statistics aggregates per-page data after the analyzer's traversal
// completes.
type Statistics struct {
	TotalCharacters   int `json:"totalCharacters"`
	TotalWords        int `json:"totalWords"`
	TotalLines        int `json:"totalLines"`
	TotalImages       int `json:"totalImages"`
	TotalAnnotations  int `json:"totalAnnotations"`
	UniqueFonts       int `json:"uniqueFonts"`
	PagesWithTables   int `json:"pagesWithTables"`
	PagesWithColumns  int `json:"pagesWithColumns"`
	PagesWithImages   int `json:"pagesWithImages"`
}

// Destination is a bookmark or annotation target within the document.
type Destination struct {
	Page int    `json:"page"`
	View string `json:"view,omitempty"` // "Fit" | "XYZ" | ...
}

// Action is a bookmark or annotation action (e.g. a URI link).
type Action struct {
	Kind string `json:"kind"` // "GoTo" | "URI" | ...
	URI  string `json:"uri,omitempty"`
}

// BookmarkItem is one node of the outline tree. Per spec.md §9's design
// note on cyclic bookmark/structure references, the tree is built from
// parent-indexed arena slices (see AnalysisResult.BookmarkNodes), not
// back-pointers; BookmarkItem.Children holds indices into that arena.
type BookmarkItem struct {
	Title       string       `json:"title"`
	Level       int          `json:"level"`
	Destination *Destination `json:"destination,omitempty"`
	Action      *Action      `json:"action,omitempty"`
	Children    []int        `json:"children,omitempty"`
}

// SignatureInfo is a read-only record of a digital signature field.
// Cryptographic validity is never checked, per spec.md's Non-goals.
type SignatureInfo struct {
	FieldName   string     `json:"fieldName"`
	SignerName  string     `json:"signerName,omitempty"`
	SigningTime *time.Time `json:"signingTime,omitempty"`
	Reason      string     `json:"reason,omitempty"`
	CoversWhole bool       `json:"coversWholeDocument"`
}

// ColorProfile records an embedded ICC or calibrated color-space profile.
type ColorProfile struct {
	Name       string `json:"name"`
	ColorSpace string `json:"colorSpace"`
	NumColorComponents int `json:"numColorComponents"`
}

// AccessibilityInfo summarizes a walk of the structure tree.
type AccessibilityInfo struct {
	Tagged          bool              `json:"tagged"`
	HeadingCount    int               `json:"headingCount"`
	ListCount       int               `json:"listCount"`
	TableCount      int               `json:"tableCount"`
	FigureCount     int               `json:"figureCount"`
	RoleMap         map[string]string `json:"roleMap,omitempty"`
	LanguageCodes   []string          `json:"languageCodes,omitempty"`
}

// LayerInfo describes one optional-content group (OCG / "layer").
type LayerInfo struct {
	Name    string `json:"name"`
	Visible bool   `json:"visible"`
	Locked  bool   `json:"locked"`
}
