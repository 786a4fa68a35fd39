package browse

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"net/http"
	"net/url"

	"github.com/dmitrymomot/searchkit/pkg/dispatch"
	"github.com/dmitrymomot/searchkit/pkg/query"
)

// DefaultHitsPerPage is used when the query does not set a page size.
const DefaultHitsPerPage = 1000

// Executor runs a dispatch request. *dispatch.Dispatcher satisfies it.
type Executor interface {
	Execute(ctx context.Context, req dispatch.Request, out any) error
}

// Page is one browse response.
type Page struct {
	Hits   []json.RawMessage `json:"hits"`
	Cursor string            `json:"cursor,omitempty"`
	NbHits int               `json:"nbHits"`
}

// Option configures a Cursor.
type Option func(*Cursor)

// From resumes browsing at a cursor returned by an earlier run.
func From(token string) Option {
	return func(c *Cursor) {
		c.token = token
	}
}

// WithRequestOptions attaches per-request extras to every page fetch.
func WithRequestOptions(opts dispatch.RequestOptions) Option {
	return func(c *Cursor) {
		c.reqOpts = opts
	}
}

// Cursor walks every record of an index matching a query, one page at a time.
// It is single pass and not safe for concurrent use.
type Cursor struct {
	exec    Executor
	index   string
	params  string
	reqOpts dispatch.RequestOptions

	page     []json.RawMessage
	pos      int
	token    string
	fetched  int
	finished bool
}

// New fetches the first page and returns a cursor positioned before its first
// hit. Page is cleared and a missing HitsPerPage is set to DefaultHitsPerPage:
// the server assigns the pages.
func New(ctx context.Context, exec Executor, index string, q query.Query, opts ...Option) (*Cursor, error) {
	if index == "" {
		return nil, ErrEmptyIndex
	}

	q = q.Clone()
	q.Page = nil
	if q.HitsPerPage == nil {
		q.HitsPerPage = query.Int(DefaultHitsPerPage)
	}

	c := &Cursor{
		exec:   exec,
		index:  index,
		params: q.Encode(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.fetch(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// HasNext reports whether Next may return another hit: either the current
// page is not consumed yet or the server announced another page.
func (c *Cursor) HasNext() bool {
	return c.pos < len(c.page) || c.token != ""
}

// Cursor returns the continuation token of the last fetched page, or "" when
// it was the last one.
func (c *Cursor) Cursor() string {
	return c.token
}

// Pages returns how many pages have been fetched so far.
func (c *Cursor) Pages() int {
	return c.fetched
}

// Next returns the next hit. ok is false at the end of the stream; calling
// Next again after that returns ErrExhausted. A failed page fetch leaves the
// cursor unchanged, so Next may be retried.
func (c *Cursor) Next(ctx context.Context) (hit json.RawMessage, ok bool, err error) {
	if c.finished {
		return nil, false, ErrExhausted
	}
	for {
		if c.pos < len(c.page) {
			hit = c.page[c.pos]
			c.pos++
			return hit, true, nil
		}
		if c.token == "" {
			c.finished = true
			return nil, false, nil
		}
		if err := c.fetch(ctx); err != nil {
			return nil, false, err
		}
	}
}

// All yields every remaining hit. Iteration stops after the first error.
func (c *Cursor) All(ctx context.Context) iter.Seq2[json.RawMessage, error] {
	return func(yield func(json.RawMessage, error) bool) {
		for {
			hit, ok, err := c.Next(ctx)
			if err != nil {
				yield(nil, err)
				return
			}
			if !ok || !yield(hit, nil) {
				return
			}
		}
	}
}

func (c *Cursor) fetch(ctx context.Context) error {
	var page Page
	if err := c.exec.Execute(ctx, dispatch.Request{
		Method:  http.MethodGet,
		Path:    c.path(),
		Class:   dispatch.Read,
		Timeout: dispatch.Search,
		Options: c.reqOpts,
	}, &page); err != nil {
		return fmt.Errorf("browse %s: %w", c.index, err)
	}

	c.page = page.Hits
	c.pos = 0
	c.token = page.Cursor
	c.fetched++
	return nil
}

func (c *Cursor) path() string {
	params := c.params
	if c.token != "" {
		if params != "" {
			params += "&"
		}
		params += "cursor=" + url.QueryEscape(c.token)
	}
	path := "/1/indexes/" + url.PathEscape(c.index) + "/browse"
	if params != "" {
		path += "?" + params
	}
	return path
}
