package taxonomy

import (
	"sort"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// prefixIndex maps every declared prefix to the categories that declared it.
// A lookup walks the trie along the group name and collects every stored
// prefix on the way, which is exactly the set of prefixes the name starts with.
type prefixIndex struct {
	trie *patricia.Trie
	// categories with an empty prefix match any group, including ""
	matchAll []int
}

func newPrefixIndex(categories []Category) *prefixIndex {
	idx := &prefixIndex{trie: patricia.NewTrie()}

	for ci, c := range categories {
		for _, p := range c.Prefixes {
			if p == "" {
				idx.matchAll = appendUnique(idx.matchAll, ci)
				continue
			}
			key := patricia.Prefix(p)
			if item := idx.trie.Get(key); item != nil {
				idx.trie.Set(key, appendUnique(item.([]int), ci))
				continue
			}
			idx.trie.Insert(key, []int{ci})
		}
	}
	return idx
}

func (idx *prefixIndex) match(group string) []int {
	hits := append([]int(nil), idx.matchAll...)

	if group != "" {
		err := idx.trie.VisitPrefixes(patricia.Prefix(group), func(_ patricia.Prefix, item patricia.Item) error {
			for _, ci := range item.([]int) {
				hits = appendUnique(hits, ci)
			}
			return nil
		})
		if err != nil {
			log.Errorf("Error visiting taxonomy prefixes for %q: %v", group, err)
		}
	}

	sort.Ints(hits)
	return hits
}

func appendUnique(list []int, v int) []int {
	for _, x := range list {
		if x == v {
			return list
		}
	}
	return append(list, v)
}
