// Package fetch defines the suggestion source consumed by the pipeline and ships two implementations:
// Google's public suggest endpoint and a static in-memory table.
package fetch

import "context"

// Fetcher returns autocomplete suggestions for a phrase in the provider's natural order.
// An empty result is not an error.
type Fetcher interface {
	Fetch(ctx context.Context, phrase string) ([]string, error)
}

// FetcherFunc adapts a plain function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, phrase string) ([]string, error)

// Fetch calls f(ctx, phrase).
func (f FetcherFunc) Fetch(ctx context.Context, phrase string) ([]string, error) {
	return f(ctx, phrase)
}
