package config

import (
	"errors"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type cacheKey struct {
	typ    reflect.Type
	prefix string
}

var (
	mu    sync.Mutex
	cache = map[cacheKey]any{}

	dotenvOnce sync.Once
)

// Load parses environment variables into v using its `env` field tags.
// The result is cached per type; later calls return the cached copy.
// The .env file in the working directory, if any, is read on first use.
//
//	type SearchConfig struct {
//		AppID  string `env:"APP_ID,required"`
//		APIKey string `env:"API_KEY,required"`
//	}
//
//	var cfg SearchConfig
//	err := config.Load(&cfg)
func Load[T any](v *T) error {
	return load(v, "")
}

// LoadWithPrefix works like Load but prepends prefix to every variable name,
// so `env:"APP_ID"` reads SEARCH_APP_ID for the prefix "SEARCH_".
// Each (type, prefix) pair is cached separately.
func LoadWithPrefix[T any](v *T, prefix string) error {
	return load(v, prefix)
}

// LoadEnv reads .env files into the process environment. Variables that are
// already set keep their value. Once called, the implicit .env lookup of Load
// is skipped.
func LoadEnv(paths ...string) error {
	dotenvOnce.Do(func() {})
	if err := godotenv.Load(paths...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// ResetCache drops every cached configuration. Meant for tests.
func ResetCache() {
	mu.Lock()
	defer mu.Unlock()
	clear(cache)
}

func load[T any](v *T, prefix string) error {
	if v == nil {
		return ErrNilPointer
	}
	dotenvOnce.Do(func() {
		// A missing .env is fine.
		_ = godotenv.Load()
	})

	key := cacheKey{typ: reflect.TypeFor[T](), prefix: prefix}

	mu.Lock()
	defer mu.Unlock()

	if cached, ok := cache[key]; ok {
		*v = cached.(T)
		return nil
	}

	var parsed T
	if err := env.ParseWithOptions(&parsed, env.Options{Prefix: prefix}); err != nil {
		// Failures are not cached so a fixed environment can be retried.
		return errors.Join(ErrParsingConfig, err)
	}
	cache[key] = parsed
	*v = parsed
	return nil
}
