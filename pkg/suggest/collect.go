package suggest

import (
	"context"
	"time"

	"github.com/bastiangx/suggestscope/pkg/fetch"
	"github.com/bastiangx/suggestscope/pkg/templates"
	"github.com/charmbracelet/log"
)

// Collector expands a query across template groups and gathers relevant suggestions.
type Collector struct {
	fetcher    fetch.Fetcher
	skipFailed bool
}

// NewCollector creates a Collector. With skipFailed a failing phrase is logged
// and treated as having no suggestions; otherwise the first failure aborts Collect.
func NewCollector(fetcher fetch.Fetcher, skipFailed bool) *Collector {
	return &Collector{
		fetcher:    fetcher,
		skipFailed: skipFailed,
	}
}

// Collect fetches every phrase sequentially, group by group in the given order,
// and returns the relevant suggestions tagged with their group name.
// Duplicates across phrases and groups are kept.
func (c *Collector) Collect(ctx context.Context, query string, groups []templates.Group) ([]Record, error) {
	var records []Record

	for _, g := range groups {
		start := time.Now()
		before := len(records)

		for _, phrase := range templates.Expand(query, g) {
			suggestions, err := c.fetcher.Fetch(ctx, phrase)
			if err != nil {
				if c.skipFailed && ctx.Err() == nil {
					log.Warn("Skipping failed phrase", "group", g.Name, "phrase", phrase, "err", err)
					continue
				}
				return nil, &FetchError{Group: g.Name, Phrase: phrase, Err: err}
			}
			for _, s := range Filter(query, suggestions) {
				records = append(records, Record{Group: g.Name, Text: s})
			}
		}

		log.Debugf("Group %s: %d relevant suggestions in [ %v ]", g.Name, len(records)-before, time.Since(start))
	}
	return records, nil
}
