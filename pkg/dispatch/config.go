package dispatch

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrymomot/searchkit/pkg/hostpool"
)

const (
	DefaultConnectTimeout = 2 * time.Second
	DefaultReadTimeout    = 20 * time.Second
	DefaultSearchTimeout  = 2 * time.Second

	// Version is reported in the User-Agent header.
	Version = "1.0.0"
)

// Config is the static part of a dispatcher.
type Config struct {
	AppID  string
	APIKey string
	Pool   hostpool.Pool

	// Scheme defaults to https.
	Scheme string

	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	SearchTimeout  time.Duration

	// Headers are sent with every request.
	Headers map[string]string
	// Forwarding enables rate-limit forwarding when non-nil.
	Forwarding *Forwarding
	// UserAgent is appended to the library agent.
	UserAgent string
}

// Forwarding replaces the API key with an admin key and forwards the end
// user's IP and rate-limited key, so per-user quotas apply to a backend proxy.
type Forwarding struct {
	AdminAPIKey     string
	EndUserIP       string
	RateLimitAPIKey string
}

func (c Config) withDefaults() Config {
	if c.Scheme == "" {
		c.Scheme = "https"
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = DefaultConnectTimeout
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = DefaultReadTimeout
	}
	if c.SearchTimeout <= 0 {
		c.SearchTimeout = DefaultSearchTimeout
	}
	return c
}

func (c Config) validate() error {
	var errs []error
	if strings.TrimSpace(c.AppID) == "" {
		errs = append(errs, ErrEmptyAppID)
	}
	if strings.TrimSpace(c.APIKey) == "" {
		errs = append(errs, ErrEmptyAPIKey)
	}
	if c.Pool.IsZero() {
		errs = append(errs, hostpool.ErrEmptyPool)
	}
	if c.Scheme != "http" && c.Scheme != "https" {
		errs = append(errs, fmt.Errorf("unsupported scheme %q", c.Scheme))
	}
	return errors.Join(errs...)
}

func (c Config) userAgent() string {
	ua := "searchkit (Go) " + Version
	if c.UserAgent != "" {
		ua += "; " + c.UserAgent
	}
	return ua
}

func (c Config) timeout(class TimeoutClass) time.Duration {
	if class == Search {
		return c.SearchTimeout
	}
	return c.ReadTimeout
}

func (c Config) hosts(class OpClass) []string {
	if class == Read {
		return c.Pool.Read()
	}
	return c.Pool.Write()
}
