// Package export writes categorized suggestions to a single-column CSV file.
//
// All categories are flattened into one list and deduplicated across
// category boundaries. Rows are sorted lexicographically so the same result
// always produces the same file.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"github.com/bastiangx/suggestscope/internal/utils"
	"github.com/bastiangx/suggestscope/pkg/taxonomy"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

const (
	// Header is the only column of the export.
	Header = "Suggestion"
	// DefaultFileName is used when no file name is configured.
	DefaultFileName = "google_suggestions_categorized.csv"
)

// ErrExport marks any failure to produce the CSV file.
var ErrExport = errors.New("export failed")

// Error records the destination that could not be written.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("export %s: %v", e.Path, e.Err)
}

// Unwrap exposes both ErrExport and the underlying cause to errors.Is.
func (e *Error) Unwrap() []error {
	return []error{ErrExport, e.Err}
}

// Exporter writes results into Dir.
// With UniqueNames each export gets a fresh <uuid>.csv name instead of FileName.
type Exporter struct {
	Dir         string
	FileName    string
	UniqueNames bool
}

// New creates an Exporter, defaulting the file name.
func New(dir, fileName string, uniqueNames bool) *Exporter {
	if fileName == "" {
		fileName = DefaultFileName
	}
	return &Exporter{Dir: dir, FileName: fileName, UniqueNames: uniqueNames}
}

// Export writes the deduplicated suggestions of r and returns the file path.
// The file appears only once fully written; any I/O failure is returned as *Error.
func (e *Exporter) Export(r *taxonomy.Result) (string, error) {
	path := e.nextPath()
	rows := Rows(r)

	err := utils.WriteFileAtomic(path, func(w io.Writer) error {
		return WriteCSV(w, rows)
	})
	if err != nil {
		return "", &Error{Path: path, Err: err}
	}

	log.Debugf("Exported %d suggestions to %s", len(rows), path)
	return path, nil
}

func (e *Exporter) nextPath() string {
	name := e.FileName
	if name == "" {
		name = DefaultFileName
	}
	if e.UniqueNames {
		name = uuid.NewString() + ".csv"
	}
	return filepath.Join(e.Dir, name)
}

// Rows flattens r in category order, drops repeats across categories and
// sorts the remaining suggestions.
func Rows(r *taxonomy.Result) []string {
	set := utils.NewOrderedSet(r.Total())
	for _, name := range r.Categories() {
		for _, s := range r.Get(name) {
			set.Add(s)
		}
	}

	rows := append([]string(nil), set.Items()...)
	sort.Strings(rows)
	return rows
}

// emptyRow is a lone empty field. encoding/csv writes it as a blank line,
// which readers skip.
const emptyRow = "\"\"\n"

// WriteCSV writes the header and one row per suggestion to w.
func WriteCSV(w io.Writer, rows []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{Header}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		if row == "" {
			cw.Flush()
			if err := cw.Error(); err != nil {
				return fmt.Errorf("flush csv: %w", err)
			}
			if _, err := io.WriteString(w, emptyRow); err != nil {
				return fmt.Errorf("write row: %w", err)
			}
			continue
		}
		if err := cw.Write([]string{row}); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
