// Package config loads typed configuration from environment variables.
//
// Structs describe their variables with caarlos0/env field tags. Parsed values
// are cached per type and prefix, so repeated loads are cheap and return the
// same snapshot:
//
//	var cfg search.Config
//	if err := config.LoadWithPrefix(&cfg, "SEARCH_"); err != nil {
//		return err
//	}
//
// The first load also reads a .env file from the working directory when one
// exists. Call LoadEnv beforehand to read specific files instead. Variables
// already present in the environment always win over file values.
//
// Parse failures wrap ErrParsingConfig and are not cached. ResetCache clears
// the cache between tests.
package config
