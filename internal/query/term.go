package query

import (
	"regexp"
	"strings"
)

// Term is one atom of a search expression: a literal or normalized
// pattern, optionally containing the wildcards `*` (any run) and `?`
// (single character).
type Term struct {
	raw        string
	normalized bool
	matcher    *regexp.Regexp
	literal    string // set when the term has no wildcards
}

// NewTerm compiles raw into a matchable Term. normalized selects
// ~t~-style Unicode-folded comparison; otherwise the term is a literal,
// case-sensitive substring match (spec.md §4.D).
func NewTerm(raw string, normalized bool) *Term {
	t := &Term{raw: raw, normalized: normalized}
	pattern := raw
	if normalized {
		pattern = Normalize(raw)
	}
	if strings.ContainsAny(pattern, "*?") {
		t.matcher = compileWildcard(pattern)
	} else {
		t.literal = pattern
	}
	return t
}

// Match reports whether text contains this term, after applying the
// same normalization to text that was applied to the term at compile
// time.
func (t *Term) Match(text string) bool {
	candidate := text
	if t.normalized {
		candidate = Normalize(text)
	}
	if t.matcher != nil {
		return t.matcher.MatchString(candidate)
	}
	return strings.Contains(candidate, t.literal)
}

// compileWildcard turns a term containing `*`/`?` into an unanchored
// regexp, escaping every other run of literal text so the wildcards are
// the only metacharacters in play.
func compileWildcard(pattern string) *regexp.Regexp {
	var b strings.Builder
	for _, r := range pattern {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	return regexp.MustCompile(b.String())
}
