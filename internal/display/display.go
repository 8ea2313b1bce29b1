// Package display renders categorized suggestions as fixed, titled sections.
//
// Every configured section is always rendered. A category without
// suggestions, or one missing from the result, shows NoData instead of
// being left out.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/bastiangx/suggestscope/pkg/config"
	"github.com/bastiangx/suggestscope/pkg/taxonomy"
	"github.com/charmbracelet/lipgloss"
)

// NoData is shown for empty sections.
const NoData = "No data found"

// Section is a heading and the category listed under it.
type Section struct {
	Title    string
	Category string
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#286983", Dark: "#9ccfd8"})
	itemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	emptyStyle = lipgloss.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#9893a5", Dark: "#6e6a86"})
	footerStyle = lipgloss.NewStyle().Faint(true)
)

// SectionsFromConfig converts the [[display]] tables.
func SectionsFromConfig(cfg []config.DisplayConfig) []Section {
	sections := make([]Section, len(cfg))
	for i, c := range cfg {
		sections[i] = Section{Title: c.Title, Category: c.Category}
	}
	return sections
}

// Render writes the styled sections to w, followed by the export location when set.
func Render(w io.Writer, r *taxonomy.Result, sections []Section, location string) error {
	var b strings.Builder
	for _, sec := range sections {
		b.WriteString(titleStyle.Render(sec.Title + ":"))
		b.WriteByte('\n')

		items := r.Get(sec.Category)
		if len(items) == 0 {
			b.WriteString("  " + emptyStyle.Render(NoData) + "\n\n")
			continue
		}
		for i, s := range items {
			fmt.Fprintf(&b, "  %2d. %s\n", i+1, itemStyle.Render(s))
		}
		b.WriteByte('\n')
	}
	if location != "" {
		b.WriteString(footerStyle.Render("Data saved to " + location))
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Markdown renders the sections as a markdown document.
func Markdown(query string, r *taxonomy.Result, sections []Section, location string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Suggestions for %q\n", query)

	for _, sec := range sections {
		fmt.Fprintf(&b, "\n## %s\n", sec.Title)
		items := r.Get(sec.Category)
		if len(items) == 0 {
			b.WriteString(NoData + "\n")
			continue
		}
		for _, s := range items {
			fmt.Fprintf(&b, "- %s\n", s)
		}
	}
	if location != "" {
		fmt.Fprintf(&b, "\nData saved to `%s`\n", location)
	}
	return b.String()
}
