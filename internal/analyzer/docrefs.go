package analyzer

import "regexp"

// documentReferencePatterns are fixed-form identifiers a forensic reviewer
// commonly cross-references between document revisions: invoice/PO/case
// numbers and similar structured IDs. spec.md §4.B.11 leaves the exact
// pattern set open; these cover the common North American/EU numbering
// conventions without claiming exhaustiveness.
var documentReferencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b[A-Z]{2,5}-\d{3,10}\b`),
	regexp.MustCompile(`\bINV[- ]?\d{4,10}\b`),
	regexp.MustCompile(`\bPO[- ]?\d{4,10}\b`),
	regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),
}

// documentReferences scans a page's extracted text for fixed-form
// identifiers, deduplicating while preserving first-seen order.
func documentReferences(pageText string) []string {
	seen := make(map[string]bool)
	var refs []string
	for _, re := range documentReferencePatterns {
		for _, match := range re.FindAllString(pageText, -1) {
			if !seen[match] {
				seen[match] = true
				refs = append(refs, match)
			}
		}
	}
	return refs
}
