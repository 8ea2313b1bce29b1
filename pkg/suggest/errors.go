package suggest

import (
	"errors"
	"fmt"
)

// ErrFetch marks failures of the suggestion source.
var ErrFetch = errors.New("suggestion fetch failed")

// FetchError records which phrase failed.
type FetchError struct {
	Group  string
	Phrase string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %q (%s): %v", e.Phrase, e.Group, e.Err)
}

// Unwrap exposes both ErrFetch and the underlying cause to errors.Is.
func (e *FetchError) Unwrap() []error {
	return []error{ErrFetch, e.Err}
}
