package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/dmitrymomot/searchkit/pkg/hostpool"
	"github.com/dmitrymomot/searchkit/pkg/logger"
	"github.com/dmitrymomot/searchkit/pkg/requestid"
)

// Dispatcher sends requests to a pool of hosts and fails over between them.
// Safe for concurrent use. Zero value is not usable; use New.
type Dispatcher struct {
	cfg     Config
	doer    Doer
	tracker *hostpool.Tracker
	logger  *slog.Logger
	hooks   []AttemptHook
	limiter *rate.Limiter
}

// New validates cfg and builds a dispatcher.
// Configuration problems are returned as an *Error of KindConfiguration.
func New(cfg Config, opts ...Option) (*Dispatcher, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, configError(err)
	}

	d := &Dispatcher{
		cfg:    cfg,
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.doer == nil {
		d.doer = newHTTPClient(cfg.ConnectTimeout)
	}
	if d.tracker == nil {
		d.tracker = hostpool.NewTracker()
	}
	d.logger = d.logger.With(logger.Component("dispatch"))

	return d, nil
}

// Tracker exposes the health tracker owned by this dispatcher.
func (d *Dispatcher) Tracker() *hostpool.Tracker {
	return d.tracker
}

// Config returns the effective configuration, defaults applied.
func (d *Dispatcher) Config() Config {
	return d.cfg
}

// Execute runs req against the hosts of its class until one answers with 2xx.
// A 2xx body is decoded into out when out is non-nil; a body that cannot be
// decoded counts as a failure of that host.
//
// A 4xx answer stops immediately with a KindClient error. Any other failure
// marks the host down and moves on. When every host failed the returned
// error is KindUnreachable and lists each attempt in order.
func (d *Dispatcher) Execute(ctx context.Context, req Request, out any) error {
	body, err := encodeBody(req.Body)
	if err != nil {
		return err
	}

	if d.limiter != nil {
		if err := d.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	ctx, reqID := requestid.Ensure(ctx)
	log := d.logger.With(
		logger.RequestID(reqID),
		logger.Method(req.method()),
		logger.Path(req.Path),
		logger.OpClass(req.Class.String()),
	)

	hosts := d.tracker.OrderedHosts(d.cfg.hosts(req.Class))
	timeout := d.cfg.timeout(req.Timeout)

	failures := make([]HostError, 0, len(hosts))
	for i, host := range hosts {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := time.Now()
		status, err := d.attempt(ctx, host, req, body, timeout, out)
		attempt := Attempt{
			Host:       host,
			Method:     req.method(),
			Path:       req.Path,
			Class:      req.Class,
			Number:     i + 1,
			StatusCode: status,
			Duration:   time.Since(start),
			Err:        err,
		}

		var clientErr *Error
		switch {
		case err == nil:
			d.tracker.RecordSuccess(host)
			attempt.Outcome = OutcomeSuccess
			d.notify(attempt)
			log.DebugContext(ctx, "request succeeded",
				logger.Host(host), logger.Attempt(i+1), logger.StatusCode(status), logger.Duration(attempt.Duration))
			return nil

		case errors.As(err, &clientErr):
			attempt.Outcome = OutcomeClientError
			d.notify(attempt)
			log.DebugContext(ctx, "client error",
				logger.Host(host), logger.StatusCode(status), logger.Error(err))
			return clientErr

		case ctx.Err() != nil:
			// Caller gave up; this says nothing about the host.
			attempt.Outcome = OutcomeCanceled
			d.notify(attempt)
			return ctx.Err()
		}

		d.tracker.RecordFailure(host)
		attempt.Outcome = OutcomeFailover
		d.notify(attempt)
		failures = append(failures, HostError{Host: host, StatusCode: status, Err: err})
		log.WarnContext(ctx, "host failed, trying next",
			logger.Host(host), logger.Attempt(i+1), logger.StatusCode(status), logger.Error(err))
	}

	causes := make([]error, len(failures))
	for i, f := range failures {
		causes[i] = f
	}
	log.ErrorContext(ctx, "all hosts failed", logger.Attempt(len(failures)), logger.Errors(causes...))
	return &Error{Kind: KindUnreachable, Hosts: failures}
}

// attempt performs one request against host. It returns the status code
// (0 when no response was received) and a classified error.
func (d *Dispatcher) attempt(ctx context.Context, host string, req Request, body []byte, timeout time.Duration, out any) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, req.method(), req.target(d.cfg.Scheme, host), newBodyReader(body))
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	d.setHeaders(httpReq, req, body != nil)

	resp, err := d.doer.Do(httpReq)
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, readErr := readBody(resp)
	status := resp.StatusCode

	switch {
	case status >= 200 && status < 300:
		if readErr != nil {
			return status, fmt.Errorf("%w: %w", ErrDecode, readErr)
		}
		if out != nil && len(data) > 0 {
			if err := decodeJSON(data, out); err != nil {
				return status, fmt.Errorf("%w: %w", ErrDecode, err)
			}
		}
		return status, nil

	case status >= 400 && status < 500:
		return status, &Error{
			Kind:       KindClient,
			StatusCode: status,
			Message:    clientMessage(status, data),
		}

	default:
		if readErr != nil {
			return status, fmt.Errorf("%w %d: %w", ErrServerStatus, status, readErr)
		}
		return status, fmt.Errorf("%w %d: %s", ErrServerStatus, status, snippet(data))
	}
}

func (d *Dispatcher) setHeaders(httpReq *http.Request, req Request, hasBody bool) {
	h := httpReq.Header
	h.Set("X-Algolia-Application-Id", d.cfg.AppID)
	if fwd := d.cfg.Forwarding; fwd != nil {
		key := fwd.AdminAPIKey
		if key == "" {
			key = d.cfg.APIKey
		}
		h.Set("X-Algolia-API-Key", key)
		h.Set("X-Forwarded-For", fwd.EndUserIP)
		h.Set("X-Forwarded-API-Key", fwd.RateLimitAPIKey)
	} else {
		h.Set("X-Algolia-API-Key", d.cfg.APIKey)
	}
	h.Set("Accept-Encoding", "gzip")
	h.Set("User-Agent", d.cfg.userAgent())

	for k, v := range d.cfg.Headers {
		h.Set(k, v)
	}
	for k, v := range req.Options.Headers {
		h.Set(k, v)
	}
	if req.Options.ForwardedFor != "" {
		h.Set("X-Forwarded-For", req.Options.ForwardedFor)
	}
	if hasBody {
		h.Set("Content-Type", "application/json; charset=UTF-8")
	}
}

func (d *Dispatcher) notify(a Attempt) {
	for _, hook := range d.hooks {
		hook(a)
	}
}
