/*
Package taxonomy buckets suggestion records into named categories.

A Taxonomy is an ordered list of categories, each with prefix strings.
A record lands in every category that has a prefix its template-group
name starts with. Categories are not exclusive, and inside one category
a suggestion is kept only at its first occurrence.

Prefixes are tested against group names ("Questions", "Complaints", ...),
not against suggestion text. The default table was written against the
words used in the templates instead, so with it only the Complaints
category ever matches a catalog group. That mismatch is kept as is.
A config file can supply a different table.
*/
package taxonomy

import (
	"errors"
	"fmt"
	"strings"
)

// Category is a named bucket and the group-name prefixes that feed it.
type Category struct {
	Name     string   `toml:"name"`
	Prefixes []string `toml:"prefixes"`
}

// Taxonomy is an immutable, ordered set of categories.
type Taxonomy struct {
	categories []Category
	index      *prefixIndex
}

var (
	ErrEmptyName     = errors.New("category name is empty")
	ErrDuplicateName = errors.New("duplicate category name")
)

// New validates categories and builds the prefix index.
// Names must be non-empty and unique. Prefix lists are copied.
func New(categories []Category) (*Taxonomy, error) {
	seen := make(map[string]struct{}, len(categories))
	owned := make([]Category, len(categories))

	for i, c := range categories {
		if strings.TrimSpace(c.Name) == "" {
			return nil, fmt.Errorf("category #%d: %w", i+1, ErrEmptyName)
		}
		if _, ok := seen[c.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, c.Name)
		}
		seen[c.Name] = struct{}{}
		owned[i] = Category{Name: c.Name, Prefixes: append([]string(nil), c.Prefixes...)}
	}

	return &Taxonomy{
		categories: owned,
		index:      newPrefixIndex(owned),
	}, nil
}

// MustNew is New for static tables; it panics on invalid input.
func MustNew(categories []Category) *Taxonomy {
	t, err := New(categories)
	if err != nil {
		panic(err)
	}
	return t
}

// DefaultCategories returns the built-in table.
func DefaultCategories() []Category {
	letters := make([]string, 0, 26)
	for r := 'a'; r <= 'z'; r++ {
		letters = append(letters, string(r))
	}
	return []Category{
		{Name: "Questions", Prefixes: []string{"Will", "Why", "Which", "When", "What", "How", "Can", "Are", "Does"}},
		{Name: "Prepositions", Prefixes: []string{"To", "Without", "With", "For", "Near", "In", "At", "On", "Of"}},
		{Name: "Comparison", Prefixes: []string{"Vs", "Or", "Like", "And", "Alternative"}},
		{Name: "Complaints", Prefixes: []string{"Issue", "Problem", "Complaints", "Not working", "Refund policy", "Discount", "Reviews"}},
		{Name: "Alphabet", Prefixes: letters},
	}
}

// Default returns the taxonomy built from DefaultCategories.
func Default() *Taxonomy {
	return MustNew(DefaultCategories())
}

// Names returns the category names in order.
func (t *Taxonomy) Names() []string {
	names := make([]string, len(t.categories))
	for i, c := range t.categories {
		names[i] = c.Name
	}
	return names
}

// Categories returns a copy of the categories.
func (t *Taxonomy) Categories() []Category {
	out := make([]Category, len(t.categories))
	for i, c := range t.categories {
		out[i] = Category{Name: c.Name, Prefixes: append([]string(nil), c.Prefixes...)}
	}
	return out
}

// Prefixes returns the prefixes of name, or nil for an unknown category.
func (t *Taxonomy) Prefixes(name string) []string {
	for _, c := range t.categories {
		if c.Name == name {
			return append([]string(nil), c.Prefixes...)
		}
	}
	return nil
}

// Matches returns the indexes, in taxonomy order, of the categories whose
// prefixes match group.
func (t *Taxonomy) Matches(group string) []int {
	return t.index.match(group)
}
