package search

import (
	"context"
	"net/http"
	"net/url"
)

// APIKey describes a key and its restrictions. Value is empty when creating.
type APIKey struct {
	Value                  string   `json:"value,omitempty"`
	ACL                    []string `json:"acl"`
	Indexes                []string `json:"indexes,omitempty"`
	Validity               int      `json:"validity,omitempty"`
	Referers               []string `json:"referers,omitempty"`
	Description            string   `json:"description,omitempty"`
	MaxHitsPerQuery        int      `json:"maxHitsPerQuery,omitempty"`
	MaxQueriesPerIPPerHour int      `json:"maxQueriesPerIPPerHour,omitempty"`
	// QueryParameters are encoded query parameters forced on every search.
	QueryParameters string `json:"queryParameters,omitempty"`
	CreatedAt       int64  `json:"createdAt,omitempty"`
}

// KeyResult acknowledges a key change.
type KeyResult struct {
	Key       string `json:"key"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
	DeletedAt string `json:"deletedAt,omitempty"`
}

func (c *Client) ListAPIKeys(ctx context.Context) ([]APIKey, error) {
	var res struct {
		Keys []APIKey `json:"keys"`
	}
	if err := c.read(ctx, "/1/keys", &res); err != nil {
		return nil, err
	}
	return res.Keys, nil
}

func (c *Client) GetAPIKey(ctx context.Context, key string) (*APIKey, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	var k APIKey
	if err := c.read(ctx, "/1/keys/"+url.PathEscape(key), &k); err != nil {
		return nil, err
	}
	return &k, nil
}

// AddAPIKey creates a key. The generated value is returned in KeyResult.Key.
func (c *Client) AddAPIKey(ctx context.Context, k APIKey) (*KeyResult, error) {
	k.Value = ""
	var res KeyResult
	if err := c.write(ctx, http.MethodPost, "/1/keys", k, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// UpdateAPIKey replaces the restrictions of key.
func (c *Client) UpdateAPIKey(ctx context.Context, key string, k APIKey) (*KeyResult, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	k.Value = ""
	var res KeyResult
	if err := c.write(ctx, http.MethodPut, "/1/keys/"+url.PathEscape(key), k, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) DeleteAPIKey(ctx context.Context, key string) (*KeyResult, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	var res KeyResult
	if err := c.write(ctx, http.MethodDelete, "/1/keys/"+url.PathEscape(key), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
