package hostpool

import (
	"fmt"
	"slices"
	"strings"
)

// Domains used to derive the default pools from an application id.
const (
	PrimaryDomain  = "algolia.net"
	FallbackDomain = "algolianet.com"
)

// fallbackCount is the number of numbered fallback hosts appended to each default pool.
const fallbackCount = 3

// Pool is an immutable pair of ordered host lists.
type Pool struct {
	write []string
	read  []string
}

// NewPool builds a pool from explicit write and read host lists.
// Blank entries are dropped; the remaining order is preserved.
func NewPool(write, read []string) (Pool, error) {
	w := cleanHosts(write)
	r := cleanHosts(read)
	if len(w) == 0 {
		return Pool{}, fmt.Errorf("%w: write hosts", ErrEmptyPool)
	}
	if len(r) == 0 {
		return Pool{}, fmt.Errorf("%w: read hosts", ErrEmptyPool)
	}
	return Pool{write: w, read: r}, nil
}

// SinglePool uses the same host list for both reads and writes.
func SinglePool(hosts []string) (Pool, error) {
	return NewPool(hosts, hosts)
}

// DefaultPool derives the standard pools for an application id:
// a low-latency primary host followed by the numbered fallback hosts.
//
//	write: {app}.algolia.net, {app}-1.algolianet.com, {app}-2..., {app}-3...
//	read:  {app}-dsn.algolia.net, {app}-1.algolianet.com, ...
func DefaultPool(appID string) (Pool, error) {
	appID = strings.TrimSpace(appID)
	if appID == "" {
		return Pool{}, ErrEmptyAppID
	}

	fallbacks := make([]string, 0, fallbackCount)
	for i := 1; i <= fallbackCount; i++ {
		fallbacks = append(fallbacks, fmt.Sprintf("%s-%d.%s", appID, i, FallbackDomain))
	}

	write := append([]string{appID + "." + PrimaryDomain}, fallbacks...)
	read := append([]string{appID + "-dsn." + PrimaryDomain}, fallbacks...)
	return NewPool(write, read)
}

// Write returns a copy of the write host list.
func (p Pool) Write() []string {
	return slices.Clone(p.write)
}

// Read returns a copy of the read host list.
func (p Pool) Read() []string {
	return slices.Clone(p.read)
}

// IsZero reports whether the pool was never initialized.
func (p Pool) IsZero() bool {
	return len(p.write) == 0 && len(p.read) == 0
}

func cleanHosts(hosts []string) []string {
	out := make([]string, 0, len(hosts))
	for _, h := range hosts {
		if h = strings.TrimSpace(h); h != "" {
			out = append(out, h)
		}
	}
	return out
}
