// Package cli implements the searchkit command line tool.
//
// Connection settings come from SEARCH_* environment variables (and .env
// files, see --env-file), optionally overridden by a TOML or YAML profile
// given with --profile.
package cli
