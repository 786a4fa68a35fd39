package search

import "errors"

var (
	ErrMissingObjectID = errors.New("search: object has no objectID")
	ErrEmptyObjectID   = errors.New("search: objectID is required")
	ErrEmptyIndexName  = errors.New("search: index name is required")
	ErrEmptyKey        = errors.New("search: API key is required")
)
