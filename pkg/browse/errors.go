package browse

import "errors"

var (
	// ErrExhausted is returned by Next once the end of the stream has
	// already been reported.
	ErrExhausted = errors.New("browse: cursor exhausted")

	ErrEmptyIndex = errors.New("browse: index name is required")
)
