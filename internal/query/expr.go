package query

// Expr is a compiled search expression (spec.md §4.D grammar): an atom,
// or an `&`/`|` combination of sub-expressions. Matching is evaluated
// against a single candidate string per scope (a page's text, a
// bookmark's title, ...); negation (`not_words`) is applied by the
// caller at the option level, not inside the expression tree.
type Expr interface {
	Match(text string) bool
}

type atomExpr struct {
	term *Term
}

func (e atomExpr) Match(text string) bool { return e.term.Match(text) }

type andExpr struct {
	left, right Expr
}

func (e andExpr) Match(text string) bool { return e.left.Match(text) && e.right.Match(text) }

type orExpr struct {
	left, right Expr
}

func (e orExpr) Match(text string) bool { return e.left.Match(text) || e.right.Match(text) }

// MatchesAny reports whether text matches none of notWords (each a
// literal, case-insensitive substring once normalized) — the
// `not_words` exclusion option from spec.md §4.D.
func MatchesAny(text string, notWords []string) bool {
	for _, w := range notWords {
		if NewTerm(w, true).Match(text) {
			return true
		}
	}
	return false
}
