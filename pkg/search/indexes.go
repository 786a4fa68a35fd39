package search

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dmitrymomot/searchkit/pkg/dispatch"
	"github.com/dmitrymomot/searchkit/pkg/query"
)

// Scope limits what CopyIndex copies.
type Scope string

const (
	ScopeSettings Scope = "settings"
	ScopeSynonyms Scope = "synonyms"
	ScopeRules    Scope = "rules"
)

// ListIndexes returns every index of the application.
func (c *Client) ListIndexes(ctx context.Context) (*ListIndexesResult, error) {
	var res ListIndexesResult
	if err := c.read(ctx, "/1/indexes/", &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// DeleteIndex removes an index with its records and settings.
func (c *Client) DeleteIndex(ctx context.Context, name string) (*Task, error) {
	if name == "" {
		return nil, ErrEmptyIndexName
	}
	var t Task
	if err := c.write(ctx, http.MethodDelete, indexPath(name), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

type indexOperation struct {
	Operation   string  `json:"operation"`
	Destination string  `json:"destination"`
	Scope       []Scope `json:"scope,omitempty"`
}

// MoveIndex renames src to dst, replacing dst if it exists.
func (c *Client) MoveIndex(ctx context.Context, src, dst string) (*Task, error) {
	return c.indexOperation(ctx, src, indexOperation{Operation: "move", Destination: dst})
}

// CopyIndex copies src to dst. Without scopes everything is copied.
func (c *Client) CopyIndex(ctx context.Context, src, dst string, scopes ...Scope) (*Task, error) {
	return c.indexOperation(ctx, src, indexOperation{Operation: "copy", Destination: dst, Scope: scopes})
}

func (c *Client) indexOperation(ctx context.Context, src string, op indexOperation) (*Task, error) {
	if src == "" || op.Destination == "" {
		return nil, ErrEmptyIndexName
	}
	var t Task
	if err := c.write(ctx, http.MethodPost, indexPath(src, "operation"), op, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// MultipleQueries runs queries as one batch and returns the raw answers in
// request order.
func (c *Client) MultipleQueries(ctx context.Context, queries []query.IndexQuery, strategy query.Strategy) ([]json.RawMessage, error) {
	reqs := make([]query.Request, 0, len(queries))
	for _, q := range queries {
		reqs = append(reqs, q.Request())
	}
	if strategy == "" {
		strategy = query.StrategyNone
	}
	var res struct {
		Results []json.RawMessage `json:"results"`
	}
	err := c.exec(ctx, dispatch.Request{
		Method:  http.MethodPost,
		Path:    "/1/indexes/*/queries?strategy=" + string(strategy),
		Body:    map[string]any{"requests": reqs},
		Class:   dispatch.Read,
		Timeout: dispatch.Search,
	}, &res)
	if err != nil {
		return nil, err
	}
	return res.Results, nil
}

// Batch sends operations spanning several indices. Each operation must name
// its index.
func (c *Client) Batch(ctx context.Context, ops []BatchOperation) (*BatchTask, error) {
	for _, op := range ops {
		if op.IndexName == "" {
			return nil, ErrEmptyIndexName
		}
	}
	var t BatchTask
	if err := c.write(ctx, http.MethodPost, "/1/indexes/*/batch", batchRequest{Requests: ops}, &t); err != nil {
		return nil, err
	}
	return &t, nil
}
