package query

import "errors"

// ErrUnknownValue is returned when parsing an unknown enum token.
var ErrUnknownValue = errors.New("query: unknown value")
