package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/searchkit/pkg/search"
)

// profile is the file form of search.Config. Files ending in .yaml or .yml
// are read as YAML, anything else as TOML. Durations are Go duration strings.
//
//	app_id = "APP"
//	api_key = "..."
//	read_hosts = ["APP-dsn.algolia.net"]
//	search_timeout = "1s"
type profile struct {
	AppID           string   `toml:"app_id" yaml:"app_id"`
	APIKey          string   `toml:"api_key" yaml:"api_key"`
	WriteHosts      []string `toml:"write_hosts" yaml:"write_hosts"`
	ReadHosts       []string `toml:"read_hosts" yaml:"read_hosts"`
	Scheme          string   `toml:"scheme" yaml:"scheme"`
	ConnectTimeout  string   `toml:"connect_timeout" yaml:"connect_timeout"`
	ReadTimeout     string   `toml:"read_timeout" yaml:"read_timeout"`
	SearchTimeout   string   `toml:"search_timeout" yaml:"search_timeout"`
	HostDownTimeout string   `toml:"host_down_timeout" yaml:"host_down_timeout"`
	RateLimit       float64  `toml:"rate_limit" yaml:"rate_limit"`
	RateBurst       int      `toml:"rate_burst" yaml:"rate_burst"`
	UserAgent       string   `toml:"user_agent" yaml:"user_agent"`
}

func loadProfile(path string) (profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return profile{}, fmt.Errorf("read profile: %w", err)
	}
	unmarshal := toml.Unmarshal
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		unmarshal = yaml.Unmarshal
	}
	var p profile
	if err := unmarshal(data, &p); err != nil {
		return profile{}, fmt.Errorf("decode profile %s: %w", path, err)
	}
	return p, nil
}

// apply overrides cfg with every field set in the profile.
func (p profile) apply(cfg search.Config) (search.Config, error) {
	if p.AppID != "" {
		cfg.AppID = p.AppID
	}
	if p.APIKey != "" {
		cfg.APIKey = p.APIKey
	}
	if len(p.WriteHosts) > 0 {
		cfg.WriteHosts = p.WriteHosts
	}
	if len(p.ReadHosts) > 0 {
		cfg.ReadHosts = p.ReadHosts
	}
	if p.Scheme != "" {
		cfg.Scheme = p.Scheme
	}
	if p.RateLimit > 0 {
		cfg.RateLimit = p.RateLimit
	}
	if p.RateBurst > 0 {
		cfg.RateBurst = p.RateBurst
	}
	if p.UserAgent != "" {
		cfg.UserAgent = p.UserAgent
	}

	durations := []struct {
		key string
		raw string
		dst *time.Duration
	}{
		{"connect_timeout", p.ConnectTimeout, &cfg.ConnectTimeout},
		{"read_timeout", p.ReadTimeout, &cfg.ReadTimeout},
		{"search_timeout", p.SearchTimeout, &cfg.SearchTimeout},
		{"host_down_timeout", p.HostDownTimeout, &cfg.HostDownTimeout},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return search.Config{}, fmt.Errorf("profile %s: %w", d.key, err)
		}
		*d.dst = v
	}
	return cfg, nil
}
