package dispatch

import (
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/dmitrymomot/searchkit/pkg/hostpool"
)

// Doer executes a single HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Outcome classifies a single host attempt.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeClientError
	OutcomeFailover
	OutcomeCanceled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeClientError:
		return "client_error"
	case OutcomeFailover:
		return "failover"
	case OutcomeCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Attempt describes one host attempt and is passed to attempt hooks.
type Attempt struct {
	Host       string
	Method     string
	Path       string
	Class      OpClass
	Number     int
	StatusCode int
	Duration   time.Duration
	Outcome    Outcome
	Err        error
}

// AttemptHook observes every host attempt. Hooks run synchronously on the
// calling goroutine and must not block.
type AttemptHook func(Attempt)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithDoer overrides the HTTP client, mainly for tests.
func WithDoer(doer Doer) Option {
	return func(d *Dispatcher) {
		if doer != nil {
			d.doer = doer
		}
	}
}

// WithTracker shares a health tracker. By default every dispatcher owns one.
func WithTracker(t *hostpool.Tracker) Option {
	return func(d *Dispatcher) {
		if t != nil {
			d.tracker = t
		}
	}
}

// WithLogger sets the logger for attempt records. Output is discarded by default.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithAttemptHook registers a hook called after every host attempt.
func WithAttemptHook(hook AttemptHook) Option {
	return func(d *Dispatcher) {
		if hook != nil {
			d.hooks = append(d.hooks, hook)
		}
	}
}

// WithRateLimiter throttles logical calls on the client side.
// Each Execute waits for one token before the first attempt.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(d *Dispatcher) {
		d.limiter = l
	}
}
