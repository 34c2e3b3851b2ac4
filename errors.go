package fpdf

import "errors"

// Sentinel errors for the kinds named in spec.md §7's error taxonomy.
// Open and Analyze wrap the internal packages' errors rather than these
// values, so IsEncrypted and IsCorrupted report true only for these
// sentinels or errors that wrap them.
var (
	// ErrNotAPDF is returned when the file doesn't parse as a PDF at all.
	ErrNotAPDF = errors.New("fpdf: not a PDF file")

	// ErrEncrypted is returned when the PDF is encrypted and no password
	// was supplied.
	ErrEncrypted = errors.New("fpdf: PDF is encrypted")

	// ErrWrongPassword is returned when the provided password is incorrect.
	ErrWrongPassword = errors.New("fpdf: wrong password")

	// ErrCorrupted is returned when the PDF structure is corrupted beyond
	// the xref-recovery path's ability to rebuild it.
	ErrCorrupted = errors.New("fpdf: PDF file is corrupted")

	// ErrPageNotFound is returned when the requested page does not exist.
	ErrPageNotFound = errors.New("fpdf: page not found")

	// ErrCacheMiss mirrors model.ErrCacheMiss for callers that only import
	// the root package.
	ErrCacheMiss = errors.New("fpdf: cache miss")
)

// IsEncrypted returns true if the error indicates an encrypted PDF.
func IsEncrypted(err error) bool {
	return errors.Is(err, ErrEncrypted)
}

// IsCorrupted returns true if the error indicates a corrupted PDF.
func IsCorrupted(err error) bool {
	return errors.Is(err, ErrCorrupted)
}
