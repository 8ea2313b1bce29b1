/*
Package pipeline wires expansion, fetching, filtering, classification and
export into one synchronous call.

	p := pipeline.New(fetcher, taxonomy.Default(), export.New(".", "", false))
	out, err := p.Run(ctx, "shoes")

Run keeps no state between calls; every invocation builds its records and
result from scratch. Any front end (CLI, IPC server, MCP tool) calls Run and
nothing else.
*/
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/bastiangx/suggestscope/internal/utils"
	"github.com/bastiangx/suggestscope/pkg/fetch"
	"github.com/bastiangx/suggestscope/pkg/suggest"
	"github.com/bastiangx/suggestscope/pkg/taxonomy"
	"github.com/bastiangx/suggestscope/pkg/templates"
	"github.com/charmbracelet/log"
)

// Exporter persists a result and returns where it went.
type Exporter interface {
	Export(r *taxonomy.Result) (string, error)
}

// Runner is the invocation surface shared by every front end.
type Runner interface {
	Run(ctx context.Context, query string) (*Output, error)
}

// Output is everything a front end needs after a run.
type Output struct {
	Query    string
	Records  []suggest.Record
	Result   *taxonomy.Result
	Location string
	Elapsed  time.Duration
}

// Option tweaks a Pipeline.
type Option func(*Pipeline)

// WithSkipFailed makes per-phrase fetch failures non-fatal.
func WithSkipFailed(skip bool) Option {
	return func(p *Pipeline) { p.skipFailed = skip }
}

// WithGroups replaces the template catalog, mostly for tests.
func WithGroups(groups []templates.Group) Option {
	return func(p *Pipeline) { p.groups = groups }
}

// Pipeline runs the whole flow for one query at a time.
type Pipeline struct {
	fetcher    fetch.Fetcher
	taxonomy   *taxonomy.Taxonomy
	exporter   Exporter
	groups     []templates.Group
	skipFailed bool
}

// New creates a Pipeline over the full template catalog.
func New(fetcher fetch.Fetcher, tx *taxonomy.Taxonomy, exporter Exporter, opts ...Option) *Pipeline {
	p := &Pipeline{
		fetcher:  fetcher,
		taxonomy: tx,
		exporter: exporter,
		groups:   templates.Catalog(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run expands query, fetches and filters suggestions, categorizes them and
// exports the result. Fetch errors match suggest.ErrFetch and export errors
// match export.ErrExport.
func (p *Pipeline) Run(ctx context.Context, query string) (*Output, error) {
	start := time.Now()
	if utils.IsBlank(query) {
		log.Debug("Running with a blank query", "query", query)
	}

	collector := suggest.NewCollector(p.fetcher, p.skipFailed)
	records, err := collector.Collect(ctx, query, p.groups)
	if err != nil {
		return nil, err
	}

	result := taxonomy.Categorize(records, p.taxonomy)

	location, err := p.exporter.Export(result)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", query, err)
	}

	out := &Output{
		Query:    query,
		Records:  records,
		Result:   result,
		Location: location,
		Elapsed:  time.Since(start),
	}
	log.Debugf("Run %q: %d records, %d categorized, took [ %v ]", query, len(records), result.Total(), out.Elapsed)
	return out, nil
}
