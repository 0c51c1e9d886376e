// Package search finds the pane entry a filter query should jump to.
package search

import "github.com/sahilm/fuzzy"

// BestMatch returns the index of the name best matching the query, or -1
// when nothing matches or the query is empty. The listing itself is never
// narrowed; the caller only moves its selection.
func BestMatch(query string, names []string) int {
	if query == "" {
		return -1
	}
	matches := fuzzy.Find(query, names)
	if len(matches) == 0 {
		return -1
	}
	return matches[0].Index
}
