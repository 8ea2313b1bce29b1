package taxonomy

import (
	"github.com/bastiangx/suggestscope/internal/utils"
	"github.com/bastiangx/suggestscope/pkg/suggest"
)

// Result maps each category to its unique suggestions in first-occurrence order.
type Result struct {
	names   []string
	buckets map[string]*utils.OrderedSet
}

// Categorize assigns every record to each category whose prefixes match the
// record's group name. Every category of t is present in the result, possibly empty.
func Categorize(records []suggest.Record, t *Taxonomy) *Result {
	r := &Result{
		names:   t.Names(),
		buckets: make(map[string]*utils.OrderedSet, len(t.categories)),
	}
	for _, name := range r.names {
		r.buckets[name] = utils.NewOrderedSet(0)
	}

	// group names repeat a lot; match each once
	matched := make(map[string][]int)
	for _, rec := range records {
		hits, ok := matched[rec.Group]
		if !ok {
			hits = t.Matches(rec.Group)
			matched[rec.Group] = hits
		}
		for _, ci := range hits {
			r.buckets[r.names[ci]].Add(rec.Text)
		}
	}
	return r
}

// Categories returns the category names in taxonomy order.
func (r *Result) Categories() []string {
	return append([]string(nil), r.names...)
}

// Get returns the suggestions of a category.
// Unknown categories yield an empty slice, never nil and never an error.
func (r *Result) Get(name string) []string {
	set, ok := r.buckets[name]
	if !ok || set.Len() == 0 {
		return []string{}
	}
	return append([]string(nil), set.Items()...)
}

// Total counts suggestions over all categories, including cross-category repeats.
func (r *Result) Total() int {
	n := 0
	for _, set := range r.buckets {
		n += set.Len()
	}
	return n
}
