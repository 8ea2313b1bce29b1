package fetch

import (
	"context"
	"fmt"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// Static serves suggestions from an in-memory table keyed by phrase.
// Unknown phrases return no suggestions. Every call is recorded in order.
// Fetch is safe for concurrent use; the tables must not change after the first call.
type Static struct {
	Responses map[string][]string
	Errors    map[string]error

	mu    sync.Mutex
	calls []string
}

// NewStatic creates a Static fetcher over responses.
func NewStatic(responses map[string][]string) *Static {
	return &Static{
		Responses: responses,
		Errors:    make(map[string]error),
	}
}

// Fetch returns the configured error or suggestions for phrase.
func (s *Static) Fetch(ctx context.Context, phrase string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.calls = append(s.calls, phrase)
	s.mu.Unlock()
	if err, ok := s.Errors[phrase]; ok {
		return nil, err
	}
	return s.Responses[phrase], nil
}

// Calls returns the phrases fetched so far.
func (s *Static) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// staticFile is the on-disk layout read by LoadStatic:
//
//	[responses]
//	"Why shoes" = ["why shoes hurt", "why shoes smell"]
type staticFile struct {
	Responses map[string][]string `toml:"responses"`
}

// LoadStatic reads a TOML fixture of phrase -> suggestions, used for offline runs.
func LoadStatic(path string) (*Static, error) {
	var f staticFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("load fixture %s: %w", path, err)
	}
	if f.Responses == nil {
		f.Responses = make(map[string][]string)
	}
	log.Debugf("Loaded %d fixture phrases from %s", len(f.Responses), path)
	return NewStatic(f.Responses), nil
}
