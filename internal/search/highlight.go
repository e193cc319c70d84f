package search

import (
	"github.com/sahilm/fuzzy"
)

// Highlight reports the byte offsets in text that a subsequence match of
// query covers, for emphasis when rendering a result row. Typos that break
// the subsequence simply produce no highlight.
func Highlight(query, text string) []int {
	if query == "" || text == "" {
		return nil
	}
	matches := fuzzy.Find(query, []string{text})
	if len(matches) == 0 {
		return nil
	}
	return matches[0].MatchedIndexes
}
