package hostpool

import (
	"sync"
	"time"
)

// DefaultDownTimeout is how long a failed host is skipped before it is retried.
const DefaultDownTimeout = 5 * time.Minute

// Record is the health state of one host.
type Record struct {
	Host           string
	Up             bool
	LastTransition time.Time
}

// Tracker remembers per-host health across requests.
// Safe for concurrent use.
type Tracker struct {
	mu          sync.RWMutex
	records     map[string]*Record
	downTimeout time.Duration
	now         func() time.Time
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithDownTimeout sets how long a down host stays excluded.
// Non-positive values are ignored.
func WithDownTimeout(d time.Duration) Option {
	return func(t *Tracker) {
		if d > 0 {
			t.downTimeout = d
		}
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		if now != nil {
			t.now = now
		}
	}
}

// NewTracker creates an empty tracker.
func NewTracker(opts ...Option) *Tracker {
	t := &Tracker{
		records:     make(map[string]*Record),
		downTimeout: DefaultDownTimeout,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// DownTimeout returns the configured down timeout.
func (t *Tracker) DownTimeout() time.Duration {
	return t.downTimeout
}

// OrderedHosts returns the hosts of pool that are eligible, in their original order.
// If none is eligible the full pool is returned unchanged.
// Hosts never seen before are recorded as up.
func (t *Tracker) OrderedHosts(pool []string) []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	eligible := make([]string, 0, len(pool))
	for _, host := range pool {
		rec, ok := t.records[host]
		if !ok {
			rec = &Record{Host: host, Up: true, LastTransition: now}
			t.records[host] = rec
		}
		if t.eligible(rec, now) {
			eligible = append(eligible, host)
		}
	}

	if len(eligible) == 0 {
		out := make([]string, len(pool))
		copy(out, pool)
		return out
	}
	return eligible
}

// IsUp reports whether host would be tried: it is up, unknown, or has been
// down for at least the down timeout.
func (t *Tracker) IsUp(host string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	rec, ok := t.records[host]
	if !ok {
		return true
	}
	return t.eligible(rec, t.now())
}

// RecordSuccess marks host up.
func (t *Tracker) RecordSuccess(host string) {
	t.set(host, true)
}

// RecordFailure marks host down.
func (t *Tracker) RecordFailure(host string) {
	t.set(host, false)
}

// Get returns a copy of the stored record for host.
func (t *Tracker) Get(host string) (Record, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	rec, ok := t.records[host]
	if !ok {
		return Record{}, false
	}
	return *rec, true
}

// Snapshot returns a copy of every known record.
func (t *Tracker) Snapshot() map[string]Record {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make(map[string]Record, len(t.records))
	for host, rec := range t.records {
		out[host] = *rec
	}
	return out
}

// Reset forgets every record.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.records = make(map[string]*Record)
}

func (t *Tracker) set(host string, up bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, ok := t.records[host]
	if !ok {
		rec = &Record{Host: host}
		t.records[host] = rec
	}
	rec.Up = up
	rec.LastTransition = t.now()
}

// eligible must be called with the lock held.
func (t *Tracker) eligible(rec *Record, now time.Time) bool {
	return rec.Up || now.Sub(rec.LastTransition) >= t.downTimeout
}
