package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coregx/fpdf/internal/query"
)

var (
	findText   string
	findHeader string
	findFooter string
	findDocs   string
	findPages  string
	findLimit  int
	findScope  string
	findNot    []string
)

var findCmd = &cobra.Command{
	Use:   "find <selector>",
	Short: "Search cached pages (or documents) by expression",
	Long: `find evaluates --text (the Query Engine's & / | / ~normalized~ / wildcard
grammar) against every page of the cache entries the selector resolves to.
selector is a cache id, a range expression ("1-5", "2,4,9", "all"), or a
wildcard over cached file names.`,
	Args: cobra.ExactArgs(1),
	RunE: runFind,
}

func init() {
	findCmd.Flags().StringVar(&findText, "text", "", "Search expression")
	findCmd.Flags().StringVar(&findHeader, "header", "", "Search expression restricted to page headers")
	findCmd.Flags().StringVar(&findFooter, "footer", "", "Search expression restricted to page footers")
	findCmd.Flags().StringVar(&findDocs, "docs", "", "Search expression evaluated over the documents scope instead of pages")
	findCmd.Flags().StringVar(&findPages, "pages", "", "Restrict to a page range, e.g. 1-3")
	findCmd.Flags().IntVar(&findLimit, "limit", 0, "Limit the number of rows returned (0 = unlimited)")
	findCmd.Flags().StringVar(&findScope, "scope", "pages", "Scope to search: pages, documents, words, bookmarks, annotations, fonts, metadata, structure, objects, modifications")
	findCmd.Flags().StringSliceVar(&findNot, "not-words", nil, "Exclude rows matching any of these terms")
}

func runFind(cmd *cobra.Command, args []string) error {
	expression, scope := findExpressionAndScope()
	if expression == "" {
		return userErrorf(fmt.Errorf("find: one of --text, --header, --footer, --docs is required"))
	}

	result, err := current.engine.Search(scope, expression, findNot, args[0])
	if err != nil {
		return userErrorf(err)
	}

	matches := result.Matches
	if findPages != "" {
		matches = filterByPageRange(matches, findPages)
	}
	if findLimit > 0 && len(matches) > findLimit {
		matches = matches[:findLimit]
	}

	if len(result.MissingIDs) > 0 {
		printVerbosef("find: missing cache ids: %v", result.MissingIDs)
	}
	return renderRows(matches, "cacheId", "page", "label", "matchReason")
}

func findExpressionAndScope() (string, string) {
	switch {
	case findDocs != "":
		return findDocs, "documents"
	case findHeader != "":
		return findHeader, "pages"
	case findFooter != "":
		return findFooter, "pages"
	case findText != "":
		return findText, findScope
	default:
		return "", findScope
	}
}

func filterByPageRange(matches []query.Match, spec string) []query.Match {
	start, end, ok := parsePageRange(spec)
	if !ok {
		return matches
	}
	out := matches[:0:0]
	for _, m := range matches {
		if m.Page == 0 || (m.Page >= start && m.Page <= end) {
			out = append(out, m)
		}
	}
	return out
}

func parsePageRange(spec string) (int, int, bool) {
	parts := strings.SplitN(spec, "-", 2)
	var start, end int
	if _, err := fmt.Sscanf(parts[0], "%d", &start); err != nil {
		return 0, 0, false
	}
	end = start
	if len(parts) == 2 {
		if _, err := fmt.Sscanf(parts[1], "%d", &end); err != nil {
			return 0, 0, false
		}
	}
	return start, end, true
}
