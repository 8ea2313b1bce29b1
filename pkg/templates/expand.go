package templates

import "strings"

// Expand substitutes query into every template of g, keeping template order.
// Only the first placeholder is replaced; the query is used verbatim,
// including empty or whitespace-only input.
func Expand(query string, g Group) []string {
	phrases := make([]string, len(g.Templates))
	for i, tmpl := range g.Templates {
		phrases[i] = strings.Replace(tmpl, Placeholder, query, 1)
	}
	return phrases
}
