/*
Package templates holds the fixed phrase templates and expands a query into them.

Every template carries the Placeholder token exactly once. The five groups
are static and not configurable at runtime:

	Questions     "Why {query}", "How {query}", ...
	Prepositions  "For {query}", "Near {query}", ...
	Comparison    "Vs {query}", "Alternative {query}", ...
	Complaints    "Refund policy {query}", "Reviews {query}", ...
	Alphabet      "{query} a" .. "{query} z"

The group name, not the individual template, is what travels downstream
with each suggestion.
*/
package templates

// Placeholder is the token replaced by the user query.
const Placeholder = "{query}"

// Group names, in catalog order.
const (
	GroupQuestions    = "Questions"
	GroupPrepositions = "Prepositions"
	GroupComparison   = "Comparison"
	GroupComplaints   = "Complaints"
	GroupAlphabet     = "Alphabet"
)

// Group is a named, ordered set of phrase templates.
type Group struct {
	Name      string
	Templates []string
}

var (
	questions = []string{
		"Will {query}", "Why {query}", "Which {query}", "When {query}",
		"What {query}", "How {query}", "Can {query}", "Are {query}", "Does {query}",
	}
	prepositions = []string{
		"To {query}", "Without {query}", "With {query}", "On {query}",
		"For {query}", "In {query}", "Near {query}", "Of {query}", "At {query}",
	}
	comparison = []string{
		"Vs {query}", "Or {query}", "Like {query}", "And {query}", "Alternative {query}",
	}
	complaints = []string{
		"Issue {query}", "Problem {query}", "Complaints {query}",
		"Not working {query}", "Refund policy {query}", "Discount {query}", "Reviews {query}",
	}
)

// Catalog returns the five template groups in their fixed order.
// Each call returns fresh slices.
func Catalog() []Group {
	return []Group{
		{Name: GroupQuestions, Templates: clone(questions)},
		{Name: GroupPrepositions, Templates: clone(prepositions)},
		{Name: GroupComparison, Templates: clone(comparison)},
		{Name: GroupComplaints, Templates: clone(complaints)},
		{Name: GroupAlphabet, Templates: alphabet()},
	}
}

// alphabet builds "{query} a" through "{query} z".
func alphabet() []string {
	out := make([]string, 0, 26)
	for r := 'a'; r <= 'z'; r++ {
		out = append(out, Placeholder+" "+string(r))
	}
	return out
}

func clone(in []string) []string {
	return append([]string(nil), in...)
}
