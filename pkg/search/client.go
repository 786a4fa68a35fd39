package search

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/dmitrymomot/searchkit/pkg/dispatch"
	"github.com/dmitrymomot/searchkit/pkg/hostpool"
	"github.com/dmitrymomot/searchkit/pkg/logger"
)

// Client talks to one search application. Safe for concurrent use.
type Client struct {
	dispatcher *dispatch.Dispatcher
	logger     *slog.Logger
	opts       options
}

// NewClient validates cfg and builds a client with its own host health tracker
// unless WithTracker shares one.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	o := options{
		logger:          logger.Discard(),
		taskInitialWait: DefaultTaskInitialWait,
		taskMaxWait:     DefaultTaskMaxWait,
		taskConcurrency: DefaultTaskConcurrency,
	}
	for _, opt := range opts {
		opt(&o)
	}

	pool, err := cfg.pool()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", dispatch.ErrInvalidConfiguration, err)
	}

	tracker := o.tracker
	if tracker == nil {
		tracker = hostpool.NewTracker(hostpool.WithDownTimeout(cfg.HostDownTimeout))
	}

	dopts := []dispatch.Option{
		dispatch.WithLogger(o.logger),
		dispatch.WithTracker(tracker),
	}
	if cfg.RateLimit > 0 {
		burst := max(cfg.RateBurst, 1)
		dopts = append(dopts, dispatch.WithRateLimiter(rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)))
	}
	dopts = append(dopts, o.dispatchOpts...)

	d, err := dispatch.New(dispatch.Config{
		AppID:          cfg.AppID,
		APIKey:         cfg.APIKey,
		Pool:           pool,
		Scheme:         cfg.Scheme,
		ConnectTimeout: cfg.ConnectTimeout,
		ReadTimeout:    cfg.ReadTimeout,
		SearchTimeout:  cfg.SearchTimeout,
		Headers:        o.headers,
		Forwarding:     o.forwarding,
		UserAgent:      cfg.UserAgent,
	}, dopts...)
	if err != nil {
		return nil, err
	}

	return &Client{
		dispatcher: d,
		logger:     o.logger.With(logger.Component("search")),
		opts:       o,
	}, nil
}

// InitIndex returns a handle on the named index. No request is made.
func (c *Client) InitIndex(name string) *Index {
	return &Index{name: name, client: c}
}

// HostStatus is the health of one host as seen by this client.
type HostStatus struct {
	Host     string `json:"host"`
	Up       bool   `json:"up"`
	Eligible bool   `json:"eligible"`
	// Since is the time of the last state change; zero if never used.
	Since time.Time `json:"since"`
}

// HostStatuses reports every host of the read and write pools in pool order.
// Eligible hosts are the ones the next request may be sent to.
func (c *Client) HostStatuses() []HostStatus {
	tracker := c.dispatcher.Tracker()
	pool := c.dispatcher.Config().Pool

	seen := make(map[string]bool)
	var out []HostStatus
	for _, hosts := range [][]string{pool.Read(), pool.Write()} {
		for _, h := range hosts {
			if seen[h] {
				continue
			}
			seen[h] = true
			st := HostStatus{Host: h, Up: true, Eligible: tracker.IsUp(h)}
			if rec, ok := tracker.Get(h); ok {
				st.Up = rec.Up
				st.Since = rec.LastTransition
			}
			out = append(out, st)
		}
	}
	return out
}

// Tracker exposes the host health tracker, for example to share it or export it.
func (c *Client) Tracker() *hostpool.Tracker {
	return c.dispatcher.Tracker()
}

func (c *Client) exec(ctx context.Context, req dispatch.Request, out any) error {
	ro := requestOptionsFromContext(ctx)
	req.Options = mergeRequestOptions(ro, req.Options)
	return c.dispatcher.Execute(ctx, req, out)
}

func (c *Client) read(ctx context.Context, path string, out any) error {
	return c.exec(ctx, dispatch.Request{Method: http.MethodGet, Path: path, Class: dispatch.Read}, out)
}

func (c *Client) write(ctx context.Context, method, path string, body, out any) error {
	return c.exec(ctx, dispatch.Request{Method: method, Path: path, Body: body, Class: dispatch.Write}, out)
}

func mergeRequestOptions(base, extra dispatch.RequestOptions) dispatch.RequestOptions {
	out := dispatch.RequestOptions{ForwardedFor: base.ForwardedFor}
	if extra.ForwardedFor != "" {
		out.ForwardedFor = extra.ForwardedFor
	}
	if len(base.Headers)+len(extra.Headers) > 0 {
		out.Headers = make(map[string]string, len(base.Headers)+len(extra.Headers))
		for k, v := range base.Headers {
			out.Headers[k] = v
		}
		for k, v := range extra.Headers {
			out.Headers[k] = v
		}
	}
	if len(base.Params)+len(extra.Params) > 0 {
		out.Params = url.Values{}
		for k, vs := range base.Params {
			out.Params[k] = append([]string(nil), vs...)
		}
		for k, vs := range extra.Params {
			out.Params[k] = append([]string(nil), vs...)
		}
	}
	return out
}

func indexPath(name string, parts ...string) string {
	p := "/1/indexes/" + url.PathEscape(name)
	for _, part := range parts {
		p += "/" + part
	}
	return p
}
