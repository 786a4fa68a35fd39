package hostpool

import "errors"

var (
	// ErrEmptyPool is returned when a write or read host list is empty.
	ErrEmptyPool = errors.New("hostpool: host list must not be empty")

	// ErrEmptyAppID is returned by DefaultPool for an empty application id.
	ErrEmptyAppID = errors.New("hostpool: application id is required")
)
