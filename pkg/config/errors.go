package config

import "errors"

var (
	ErrParsingConfig  = errors.New("config: cannot parse environment")
	ErrNilPointer     = errors.New("config: nil destination")
	ErrLoadingEnvFile = errors.New("config: cannot load env file")
)
