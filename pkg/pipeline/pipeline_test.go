package pipeline

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bastiangx/suggestscope/pkg/export"
	"github.com/bastiangx/suggestscope/pkg/fetch"
	"github.com/bastiangx/suggestscope/pkg/suggest"
	"github.com/bastiangx/suggestscope/pkg/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// group-name aware table: each category lists its own group name
func groupTaxonomy() *taxonomy.Taxonomy {
	cats := taxonomy.DefaultCategories()
	for i := range cats {
		cats[i].Prefixes = append(cats[i].Prefixes, cats[i].Name)
	}
	return taxonomy.MustNew(cats)
}

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestRunShoesScenario(t *testing.T) {
	f := fetch.NewStatic(map[string][]string{
		"Why shoes": {"why shoes hurt", "why shoes smell", "socks"},
	})
	dir := t.TempDir()
	p := New(f, groupTaxonomy(), export.New(dir, "", false))

	out, err := p.Run(context.Background(), "shoes")
	require.NoError(t, err)

	assert.Equal(t, []string{"why shoes hurt", "why shoes smell"}, out.Result.Get("Questions"))
	for _, name := range []string{"Prepositions", "Comparison", "Complaints", "Alphabet", "Competitors"} {
		assert.Empty(t, out.Result.Get(name), name)
	}
	assert.Equal(t, []suggest.Record{
		{Group: "Questions", Text: "why shoes hurt"},
		{Group: "Questions", Text: "why shoes smell"},
	}, out.Records)

	assert.Equal(t, filepath.Join(dir, export.DefaultFileName), out.Location)
	rows := readRows(t, out.Location)
	assert.Equal(t, [][]string{{"Suggestion"}, {"why shoes hurt"}, {"why shoes smell"}}, rows)
	assert.Len(t, f.Calls(), 56)
}

// the built-in table never matches the Questions group name
func TestRunDefaultTaxonomyKeepsAsymmetry(t *testing.T) {
	f := fetch.NewStatic(map[string][]string{
		"Why shoes":          {"why shoes hurt"},
		"Reviews shoes":      {"shoes reviews 2024"},
		"shoes a":            {"shoes adidas"},
		"Alternative shoes":  {"alternative shoes brands"},
		"Not working shoes":  {"light up shoes not working"},
		"Refund policy shoe": {"never requested"},
	})
	p := New(f, taxonomy.Default(), export.New(t.TempDir(), "", false))

	out, err := p.Run(context.Background(), "shoes")
	require.NoError(t, err)

	assert.Empty(t, out.Result.Get("Questions"))
	assert.Empty(t, out.Result.Get("Comparison"))
	assert.Empty(t, out.Result.Get("Alphabet"))
	assert.Equal(t, []string{"light up shoes not working", "shoes reviews 2024"}, out.Result.Get("Complaints"))
	assert.Len(t, out.Records, 5)

	rows := readRows(t, out.Location)
	assert.Len(t, rows, 3)
}

// one suggestion claimed by two categories is exported once
func TestRunOverlapExportedOnce(t *testing.T) {
	f := fetch.NewStatic(map[string][]string{
		"Issue shoes": {"shoes issue"},
		"Vs shoes":    {"shoes issue", "shoes vs boots"},
	})
	tx := taxonomy.MustNew([]taxonomy.Category{
		{Name: "Complaints", Prefixes: []string{"Complaints"}},
		{Name: "Anything C", Prefixes: []string{"Co"}},
	})
	p := New(f, tx, export.New(t.TempDir(), "", false))

	out, err := p.Run(context.Background(), "shoes")
	require.NoError(t, err)

	assert.Equal(t, []string{"shoes issue"}, out.Result.Get("Complaints"))
	assert.Equal(t, []string{"shoes issue", "shoes vs boots"}, out.Result.Get("Anything C"))

	rows := readRows(t, out.Location)
	assert.Equal(t, [][]string{{"Suggestion"}, {"shoes issue"}, {"shoes vs boots"}}, rows)
}

func TestRunEmptyQuery(t *testing.T) {
	f := fetch.NewStatic(map[string][]string{"Why ": {"why is the sky blue"}})
	p := New(f, groupTaxonomy(), export.New(t.TempDir(), "", false))

	out, err := p.Run(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"why is the sky blue"}, out.Result.Get("Questions"))
	assert.Contains(t, f.Calls(), " a")
}

func TestRunFetchFailureAborts(t *testing.T) {
	f := fetch.NewStatic(nil)
	f.Errors["Will shoes"] = errors.New("503")
	dir := t.TempDir()
	p := New(f, groupTaxonomy(), export.New(dir, "", false))

	out, err := p.Run(context.Background(), "shoes")
	assert.Nil(t, out)
	assert.ErrorIs(t, err, suggest.ErrFetch)
	assert.NotErrorIs(t, err, export.ErrExport)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "nothing exported after a fetch failure")
}

func TestRunSkipFailed(t *testing.T) {
	f := fetch.NewStatic(map[string][]string{"How shoes": {"how shoes are made"}})
	f.Errors["Will shoes"] = errors.New("503")
	p := New(f, groupTaxonomy(), export.New(t.TempDir(), "", false), WithSkipFailed(true))

	out, err := p.Run(context.Background(), "shoes")
	require.NoError(t, err)
	assert.Equal(t, []string{"how shoes are made"}, out.Result.Get("Questions"))
}

type brokenExporter struct{}

func (brokenExporter) Export(*taxonomy.Result) (string, error) {
	return "", &export.Error{Path: "/nowhere.csv", Err: errors.New("permission denied")}
}

func TestRunExportFailureSurfaced(t *testing.T) {
	p := New(fetch.NewStatic(nil), groupTaxonomy(), brokenExporter{})

	out, err := p.Run(context.Background(), "shoes")
	assert.Nil(t, out)
	assert.ErrorIs(t, err, export.ErrExport)
	assert.NotErrorIs(t, err, suggest.ErrFetch)
}

func TestRunIsStateless(t *testing.T) {
	f := fetch.NewStatic(map[string][]string{
		"Why shoes": {"why shoes hurt"},
		"Why boots": {"why boots squeak"},
	})
	p := New(f, groupTaxonomy(), export.New(t.TempDir(), "", true))

	first, err := p.Run(context.Background(), "shoes")
	require.NoError(t, err)
	second, err := p.Run(context.Background(), "boots")
	require.NoError(t, err)

	assert.Equal(t, []string{"why shoes hurt"}, first.Result.Get("Questions"))
	assert.Equal(t, []string{"why boots squeak"}, second.Result.Get("Questions"))
	assert.NotEqual(t, first.Location, second.Location)
}
