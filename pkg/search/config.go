package search

import (
	"time"

	"github.com/dmitrymomot/searchkit/pkg/config"
	"github.com/dmitrymomot/searchkit/pkg/hostpool"
)

// EnvPrefix is prepended to every variable read by LoadConfig.
const EnvPrefix = "SEARCH_"

// Config holds client connection parameters with environment variable mapping.
// Field tags are relative to EnvPrefix, so AppID reads SEARCH_APP_ID.
type Config struct {
	AppID  string `env:"APP_ID,required"`
	APIKey string `env:"API_KEY,required"`

	// WriteHosts and ReadHosts override the pools derived from AppID. When
	// only one list is set it is used for both.
	WriteHosts []string `env:"WRITE_HOSTS" envSeparator:","`
	ReadHosts  []string `env:"READ_HOSTS" envSeparator:","`
	Scheme     string   `env:"SCHEME" envDefault:"https"`

	ConnectTimeout  time.Duration `env:"CONNECT_TIMEOUT" envDefault:"2s"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"20s"`
	SearchTimeout   time.Duration `env:"SEARCH_TIMEOUT" envDefault:"2s"`
	HostDownTimeout time.Duration `env:"HOST_DOWN_TIMEOUT" envDefault:"5m"`

	// RateLimit caps logical calls per second on the client side. Zero disables it.
	RateLimit float64 `env:"RATE_LIMIT" envDefault:"0"`
	RateBurst int     `env:"RATE_BURST" envDefault:"1"`

	UserAgent string `env:"USER_AGENT"`
}

// LoadConfig reads Config from the environment (and a .env file when present).
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.LoadWithPrefix(&cfg, EnvPrefix); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) pool() (hostpool.Pool, error) {
	switch {
	case len(c.WriteHosts) == 0 && len(c.ReadHosts) == 0:
		return hostpool.DefaultPool(c.AppID)
	case len(c.WriteHosts) == 0:
		return hostpool.SinglePool(c.ReadHosts)
	case len(c.ReadHosts) == 0:
		return hostpool.SinglePool(c.WriteHosts)
	default:
		return hostpool.NewPool(c.WriteHosts, c.ReadHosts)
	}
}
