// Package cli handles cmd line queries, running the pipeline and printing the categorized sections.
//
// Handle passes its query to the pipeline verbatim. The interactive loop in
// Start trims each line and rejects lines over MaxQueryLength before running them.
package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/bastiangx/suggestscope/internal/display"
	"github.com/bastiangx/suggestscope/internal/utils"
	"github.com/bastiangx/suggestscope/pkg/pipeline"
	"github.com/charmbracelet/log"
)

// MaxQueryLength caps an interactive line; longer lines are rejected before any fetch.
const MaxQueryLength = 200

// InputHandler reads queries line by line and prints the categorized
// suggestions for each one.
type InputHandler struct {
	runner       pipeline.Runner
	sections     []display.Section
	in           io.Reader
	out          io.Writer
	requestCount int
}

// NewInputHandler creates a handler reading from in and rendering to out.
func NewInputHandler(runner pipeline.Runner, sections []display.Section, in io.Reader, out io.Writer) *InputHandler {
	return &InputHandler{
		runner:   runner,
		sections: sections,
		in:       in,
		out:      out,
	}
}

// Start begins the interface loop.
// Each non-empty line is one query. A failed run is logged and the loop
// continues; it ends when input is exhausted or ctx is done.
func (h *InputHandler) Start(ctx context.Context) error {
	log.Print("SuggestScope CLI")
	log.Print("type a keyword and press Enter to expand it (Ctrl+C to exit):")

	scanner := bufio.NewScanner(h.in)
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		log.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if len(query) > MaxQueryLength {
			log.Errorf("Query too long: %d bytes (max %d)", len(query), MaxQueryLength)
			continue
		}
		if err := h.Handle(ctx, query); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			log.Errorf("Query %q failed: %v", utils.Truncate(query, 60), err)
		}
	}
}

// Handle runs one query as given and renders the result.
func (h *InputHandler) Handle(ctx context.Context, query string) error {
	h.requestCount++

	log.Debug("Processing request", "n", h.requestCount, "query", query)
	out, err := h.runner.Run(ctx, query)
	if err != nil {
		return err
	}

	log.Debugf("Took [ %v ] for %q, %d suggestions", out.Elapsed, query, out.Result.Total())
	return display.Render(h.out, out.Result, h.sections, out.Location)
}
