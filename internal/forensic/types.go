// Package forensic implements the Forensic Differencer: incremental-update
// detection within one PDF (scanning its raw byte stream for repeated
// %%EOF markers) and pairwise diffing between two PDFs (text, line-shape,
// image, and form-field additions, plus the last incremental session).
package forensic

import "github.com/coregx/fpdf/internal/model"

// ObjectChangeKind classifies how one object number differs between a
// PDF's previous and current version.
type ObjectChangeKind string

const (
	ObjectAdded    ObjectChangeKind = "added"
	ObjectModified ObjectChangeKind = "modified"
	ObjectDeleted  ObjectChangeKind = "deleted"
)

// ObjectChange is one object-id-level difference found while walking the
// previous and current object graphs of a single incrementally-updated
// PDF (spec.md §4.E.1 step 3).
type ObjectChange struct {
	ObjectNumber  int              `json:"objectNumber"`
	Kind          ObjectChangeKind `json:"kind"`
	AffectedPages []int            `json:"affectedPages,omitempty"`
}

// TextDelta is the added text on one page, found by comparing the
// previous and current extracted page text (spec.md §4.E.1 step 5).
type TextDelta struct {
	Page      int    `json:"page"`
	AddedText string `json:"addedText"`
}

// SessionState is the terminal classification of an incremental-update
// analysis (spec.md §4.E.3).
type SessionState int

const (
	// Fresh: exactly one %%EOF marker, never incrementally updated.
	Fresh SessionState = iota
	// NoEffectiveChange: more than one %%EOF, but the object graph compares
	// equal between previous and current versions.
	NoEffectiveChange
	// Modified: more than one %%EOF and at least one object differs.
	Modified
)

func (s SessionState) String() string {
	switch s {
	case Fresh:
		return "Fresh"
	case NoEffectiveChange:
		return "NoEffectiveChange"
	case Modified:
		return "Modified"
	default:
		return "Unknown"
	}
}

// IncrementalReport is the result of single-PDF incremental-update
// detection (spec.md §4.E.1, §4.E.3).
type IncrementalReport struct {
	EOFCount         int            `json:"eofCount"`
	SessionType      string         `json:"sessionType"` // "single-session" | "incremental"
	State            SessionState   `json:"state"`
	HasModifications bool           `json:"hasModifications"`
	Changes          []ObjectChange `json:"changes,omitempty"`
	TextAdditions    []TextDelta    `json:"textAdditions,omitempty"`
	SkippedObjects   int            `json:"skippedObjects,omitempty"`
}

// LineShapeAddition is a drawing primitive present on B's page but absent
// from A's corresponding page (spec.md §4.E.2).
type LineShapeAddition struct {
	Page    int                   `json:"page"`
	Element model.GraphicsElement `json:"element"`
}

// ImageAddition is an image resource present on B's page and absent from
// A's corresponding page, identified by its (width, height, bpc, filter,
// byte length) tuple (spec.md §4.E.2).
type ImageAddition struct {
	Page  int             `json:"page"`
	Image model.ImageInfo `json:"image"`
}

// FormFieldAddition is an AcroForm field present in B and not in A
// (enhanced mode only, spec.md §4.E.2).
type FormFieldAddition struct {
	Field model.FormField `json:"field"`
}

// SessionGroup is the set of objects added or modified in a PDF's final
// incremental-update revision, with the latest /M timestamp found among
// them. Objects are not grouped into sessions by equal timestamp.
type SessionGroup struct {
	Timestamp     string      `json:"timestamp,omitempty"`
	ObjectNumbers []int       `json:"objectNumbers"`
	TextAdditions []TextDelta `json:"textAdditions,omitempty"`
}

// DiffReport is the full pairwise-diff result between a base ("template")
// PDF A and a candidate ("target") PDF B (spec.md §4.E.2).
type DiffReport struct {
	TextAdditions      []TextDelta         `json:"textAdditions,omitempty"`
	LineShapeAdditions []LineShapeAddition `json:"lineShapeAdditions,omitempty"`
	ImageAdditions     []ImageAddition     `json:"imageAdditions,omitempty"`
	FormFieldAdditions []FormFieldAddition `json:"formFieldAdditions,omitempty"`
	LastSession        *SessionGroup       `json:"lastSession,omitempty"`

	// SkippedObjects counts per-object parse failures that were swallowed
	// rather than failing the whole diff (spec.md §4.E.2 failure semantics).
	SkippedObjects int `json:"skippedObjects,omitempty"`
}
