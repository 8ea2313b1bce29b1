package utils

// OrderedSet keeps unique strings in first-occurrence order.
// Comparison is exact: "Shoes" and "shoes" are distinct members.
type OrderedSet struct {
	seen  map[string]struct{}
	items []string
}

// NewOrderedSet creates an empty set with room for size members.
func NewOrderedSet(size int) *OrderedSet {
	return &OrderedSet{
		seen:  make(map[string]struct{}, size),
		items: make([]string, 0, size),
	}
}

// Add inserts s and reports whether it was new.
func (o *OrderedSet) Add(s string) bool {
	if _, ok := o.seen[s]; ok {
		return false
	}
	o.seen[s] = struct{}{}
	o.items = append(o.items, s)
	return true
}

// Len returns the number of members.
func (o *OrderedSet) Len() int {
	return len(o.items)
}

// Items returns the members in insertion order. The slice is shared with the set.
func (o *OrderedSet) Items() []string {
	return o.items
}
