package search

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/searchkit/pkg/dispatch"
	"github.com/dmitrymomot/searchkit/pkg/hostpool"
)

const (
	DefaultTaskInitialWait = 100 * time.Millisecond
	DefaultTaskMaxWait     = 10 * time.Second
	// DefaultTaskConcurrency bounds the parallel polls of WaitTasks.
	DefaultTaskConcurrency = 4
)

type options struct {
	logger          *slog.Logger
	dispatchOpts    []dispatch.Option
	tracker         *hostpool.Tracker
	headers         map[string]string
	forwarding      *dispatch.Forwarding
	taskInitialWait time.Duration
	taskMaxWait     time.Duration
	taskConcurrency int
}

// Option configures a Client.
type Option func(*options)

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithDoer replaces the HTTP client used for every host attempt.
func WithDoer(d dispatch.Doer) Option {
	return func(o *options) {
		o.dispatchOpts = append(o.dispatchOpts, dispatch.WithDoer(d))
	}
}

// WithAttemptHook observes every host attempt, for example to export metrics.
func WithAttemptHook(h dispatch.AttemptHook) Option {
	return func(o *options) {
		o.dispatchOpts = append(o.dispatchOpts, dispatch.WithAttemptHook(h))
	}
}

// WithTracker shares host health between clients of the same application.
func WithTracker(t *hostpool.Tracker) Option {
	return func(o *options) {
		o.tracker = t
	}
}

// WithHeaders adds headers sent with every request.
func WithHeaders(h map[string]string) Option {
	return func(o *options) {
		if o.headers == nil {
			o.headers = make(map[string]string, len(h))
		}
		for k, v := range h {
			o.headers[k] = v
		}
	}
}

// WithRateLimitForwarding makes the client authenticate with adminAPIKey on
// behalf of an end user, so the user's own rate limits apply.
func WithRateLimitForwarding(adminAPIKey, endUserIP, rateLimitAPIKey string) Option {
	return func(o *options) {
		o.forwarding = &dispatch.Forwarding{
			AdminAPIKey:     adminAPIKey,
			EndUserIP:       endUserIP,
			RateLimitAPIKey: rateLimitAPIKey,
		}
	}
}

// WithTaskPolling sets the first and the maximum delay between task status
// polls. Non-positive values keep the defaults.
func WithTaskPolling(initial, maxWait time.Duration) Option {
	return func(o *options) {
		if initial > 0 {
			o.taskInitialWait = initial
		}
		if maxWait > 0 {
			o.taskMaxWait = maxWait
		}
	}
}

// WithTaskConcurrency bounds the parallel polls of WaitTasks.
func WithTaskConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.taskConcurrency = n
		}
	}
}

type requestOptionsKey struct{}

// WithRequestOptions attaches per-call extras (headers, forwarded IP, extra
// query parameters) to every request made with ctx.
func WithRequestOptions(ctx context.Context, ro dispatch.RequestOptions) context.Context {
	return context.WithValue(ctx, requestOptionsKey{}, ro)
}

func requestOptionsFromContext(ctx context.Context) dispatch.RequestOptions {
	ro, _ := ctx.Value(requestOptionsKey{}).(dispatch.RequestOptions)
	return ro
}
