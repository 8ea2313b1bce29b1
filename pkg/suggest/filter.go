package suggest

import "github.com/bastiangx/suggestscope/internal/utils"

// Relevant reports whether suggestion contains query, ignoring case.
// It is the only relevance gate: plain substring, no token or fuzzy matching.
// An empty query matches everything.
func Relevant(query, suggestion string) bool {
	return utils.StringContainsIgnoreCase(suggestion, query)
}

// Filter keeps the relevant suggestions in their original order.
func Filter(query string, suggestions []string) []string {
	kept := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		if Relevant(query, s) {
			kept = append(kept, s)
		}
	}
	return kept
}
