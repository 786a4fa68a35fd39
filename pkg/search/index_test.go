package search_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/searchkit/pkg/facets"
	"github.com/dmitrymomot/searchkit/pkg/query"
	"github.com/dmitrymomot/searchkit/pkg/search"
)

func TestWrites(t *testing.T) {
	t.Parallel()

	byQuery := query.Query{Filters: "brand:acme"}

	tests := []struct {
		name     string
		call     func(ctx context.Context, c *search.Client) error
		method   string
		path     string
		rawQuery string
		body     string
	}{
		{
			name: "add object",
			call: func(ctx context.Context, c *search.Client) error {
				_, err := c.InitIndex("products").AddObject(ctx, map[string]string{"name": "a"})
				return err
			},
			method: http.MethodPost,
			path:   "/1/indexes/products",
			body:   `{"name":"a"}`,
		},
		{
			name: "save object escapes id",
			call: func(ctx context.Context, c *search.Client) error {
				_, err := c.InitIndex("products").SaveObject(ctx, "a/b", map[string]string{"name": "a"})
				return err
			},
			method: http.MethodPut,
			path:   "/1/indexes/products/a%2Fb",
			body:   `{"name":"a"}`,
		},
		{
			name: "partial update without create",
			call: func(ctx context.Context, c *search.Client) error {
				_, err := c.InitIndex("products").PartialUpdateObject(ctx, "42", map[string]int{"stock": 3}, false)
				return err
			},
			method:   http.MethodPost,
			path:     "/1/indexes/products/42/partial",
			rawQuery: "createIfNotExists=false",
			body:     `{"stock":3}`,
		},
		{
			name: "partial update with create",
			call: func(ctx context.Context, c *search.Client) error {
				_, err := c.InitIndex("products").PartialUpdateObject(ctx, "42", map[string]int{"stock": 3}, true)
				return err
			},
			method: http.MethodPost,
			path:   "/1/indexes/products/42/partial",
			body:   `{"stock":3}`,
		},
		{
			name: "delete object",
			call: func(ctx context.Context, c *search.Client) error {
				_, err := c.InitIndex("products").DeleteObject(ctx, "42")
				return err
			},
			method: http.MethodDelete,
			path:   "/1/indexes/products/42",
		},
		{
			name: "delete by query",
			call: func(ctx context.Context, c *search.Client) error {
				_, err := c.InitIndex("products").DeleteBy(ctx, byQuery)
				return err
			},
			method: http.MethodPost,
			path:   "/1/indexes/products/deleteByQuery",
			body:   mustJSON(t, map[string]string{"params": byQuery.Encode()}),
		},
		{
			name: "clear",
			call: func(ctx context.Context, c *search.Client) error {
				_, err := c.InitIndex("products").Clear(ctx)
				return err
			},
			method: http.MethodPost,
			path:   "/1/indexes/products/clear",
		},
		{
			name: "set settings",
			call: func(ctx context.Context, c *search.Client) error {
				_, err := c.InitIndex("products").SetSettings(ctx, search.Settings{"hitsPerPage": 50}, true)
				return err
			},
			method:   http.MethodPut,
			path:     "/1/indexes/products/settings",
			rawQuery: "forwardToReplicas=true",
			body:     `{"hitsPerPage":50}`,
		},
		{
			name: "add objects",
			call: func(ctx context.Context, c *search.Client) error {
				_, err := c.InitIndex("products").AddObjects(ctx, []any{map[string]string{"name": "a"}})
				return err
			},
			method: http.MethodPost,
			path:   "/1/indexes/products/batch",
			body:   `{"requests":[{"action":"addObject","body":{"name":"a"}}]}`,
		},
		{
			name: "save objects",
			call: func(ctx context.Context, c *search.Client) error {
				_, err := c.InitIndex("products").SaveObjects(ctx, []any{map[string]string{"objectID": "1", "name": "a"}})
				return err
			},
			method: http.MethodPost,
			path:   "/1/indexes/products/batch",
			body:   `{"requests":[{"action":"updateObject","body":{"objectID":"1","name":"a"}}]}`,
		},
		{
			name: "partial update objects without create",
			call: func(ctx context.Context, c *search.Client) error {
				_, err := c.InitIndex("products").PartialUpdateObjects(ctx, []any{map[string]any{"objectID": "1", "stock": 0}}, false)
				return err
			},
			method: http.MethodPost,
			path:   "/1/indexes/products/batch",
			body:   `{"requests":[{"action":"partialUpdateObjectNoCreate","body":{"objectID":"1","stock":0}}]}`,
		},
		{
			name: "delete objects",
			call: func(ctx context.Context, c *search.Client) error {
				_, err := c.InitIndex("products").DeleteObjects(ctx, []string{"1", "2"})
				return err
			},
			method: http.MethodPost,
			path:   "/1/indexes/products/batch",
			body:   `{"requests":[{"action":"deleteObject","body":{"objectID":"1"}},{"action":"deleteObject","body":{"objectID":"2"}}]}`,
		},
		{
			name: "delete index",
			call: func(ctx context.Context, c *search.Client) error {
				_, err := c.DeleteIndex(ctx, "products")
				return err
			},
			method: http.MethodDelete,
			path:   "/1/indexes/products",
		},
		{
			name: "move index",
			call: func(ctx context.Context, c *search.Client) error {
				_, err := c.MoveIndex(ctx, "products", "archive")
				return err
			},
			method: http.MethodPost,
			path:   "/1/indexes/products/operation",
			body:   `{"operation":"move","destination":"archive"}`,
		},
		{
			name: "copy index with scopes",
			call: func(ctx context.Context, c *search.Client) error {
				_, err := c.CopyIndex(ctx, "products", "archive", search.ScopeSettings, search.ScopeSynonyms)
				return err
			},
			method: http.MethodPost,
			path:   "/1/indexes/products/operation",
			body:   `{"operation":"copy","destination":"archive","scope":["settings","synonyms"]}`,
		},
		{
			name: "multi index batch",
			call: func(ctx context.Context, c *search.Client) error {
				_, err := c.Batch(ctx, []search.BatchOperation{
					{Action: search.ActionClear, IndexName: "a"},
					{Action: search.ActionAddObject, IndexName: "b", Body: map[string]int{"n": 1}},
				})
				return err
			},
			method: http.MethodPost,
			path:   "/1/indexes/*/batch",
			body:   `{"requests":[{"action":"clear","indexName":"a"},{"action":"addObject","indexName":"b","body":{"n":1}}]}`,
		},
		{
			name: "add api key",
			call: func(ctx context.Context, c *search.Client) error {
				_, err := c.AddAPIKey(ctx, search.APIKey{Value: "ignored", ACL: []string{"search"}, Validity: 3600})
				return err
			},
			method: http.MethodPost,
			path:   "/1/keys",
			body:   `{"acl":["search"],"validity":3600}`,
		},
		{
			name: "update api key",
			call: func(ctx context.Context, c *search.Client) error {
				_, err := c.UpdateAPIKey(ctx, "k1", search.APIKey{ACL: []string{"browse"}, Indexes: []string{"products"}})
				return err
			},
			method: http.MethodPut,
			path:   "/1/keys/k1",
			body:   `{"acl":["browse"],"indexes":["products"]}`,
		},
		{
			name: "delete api key",
			call: func(ctx context.Context, c *search.Client) error {
				_, err := c.DeleteAPIKey(ctx, "k1")
				return err
			},
			method: http.MethodDelete,
			path:   "/1/keys/k1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client, read, write := newClient(t)

			require.NoError(t, tt.call(context.Background(), client))

			assert.Empty(t, read.Calls(), "writes must not reach the read pool")
			got := write.Last(t)
			assert.Equal(t, tt.method, got.Method)
			assert.Equal(t, tt.path, got.Path)
			assert.Equal(t, tt.rawQuery, got.RawQuery)
			if tt.body == "" {
				assert.Empty(t, got.Body)
				assert.Empty(t, got.Header.Get("Content-Type"))
			} else {
				assert.JSONEq(t, tt.body, got.Body)
				assert.Equal(t, "application/json; charset=UTF-8", got.Header.Get("Content-Type"))
			}
		})
	}
}

func TestReads(t *testing.T) {
	t.Parallel()

	facetQuery := query.Query{FacetQuery: "ac"}

	tests := []struct {
		name     string
		call     func(ctx context.Context, c *search.Client) error
		method   string
		path     string
		rawQuery string
		body     string
	}{
		{
			name: "get object with attributes",
			call: func(ctx context.Context, c *search.Client) error {
				var out map[string]any
				return c.InitIndex("products").GetObject(ctx, "42", []string{"name", "price"}, &out)
			},
			method:   http.MethodGet,
			path:     "/1/indexes/products/42",
			rawQuery: "attributes=name%2Cprice",
		},
		{
			name: "get objects",
			call: func(ctx context.Context, c *search.Client) error {
				var out map[string]any
				return c.InitIndex("products").GetObjects(ctx, []string{"1", "2"}, nil, &out)
			},
			method: http.MethodPost,
			path:   "/1/indexes/*/objects",
			body:   `{"requests":[{"indexName":"products","objectID":"1"},{"indexName":"products","objectID":"2"}]}`,
		},
		{
			name: "get settings",
			call: func(ctx context.Context, c *search.Client) error {
				_, err := c.InitIndex("products").GetSettings(ctx)
				return err
			},
			method:   http.MethodGet,
			path:     "/1/indexes/products/settings",
			rawQuery: "getVersion=2",
		},
		{
			name: "task status",
			call: func(ctx context.Context, c *search.Client) error {
				_, err := c.InitIndex("products").TaskStatus(ctx, 7)
				return err
			},
			method: http.MethodGet,
			path:   "/1/indexes/products/task/7",
		},
		{
			name: "list indexes",
			call: func(ctx context.Context, c *search.Client) error {
				_, err := c.ListIndexes(ctx)
				return err
			},
			method: http.MethodGet,
			path:   "/1/indexes/",
		},
		{
			name: "list api keys",
			call: func(ctx context.Context, c *search.Client) error {
				_, err := c.ListAPIKeys(ctx)
				return err
			},
			method: http.MethodGet,
			path:   "/1/keys",
		},
		{
			name: "get api key",
			call: func(ctx context.Context, c *search.Client) error {
				_, err := c.GetAPIKey(ctx, "k1")
				return err
			},
			method: http.MethodGet,
			path:   "/1/keys/k1",
		},
		{
			name: "logs with defaults",
			call: func(ctx context.Context, c *search.Client) error {
				_, err := c.GetLogs(ctx, search.LogsOptions{})
				return err
			},
			method:   http.MethodGet,
			path:     "/1/logs",
			rawQuery: "length=10&offset=0&type=all",
		},
		{
			name: "error logs",
			call: func(ctx context.Context, c *search.Client) error {
				_, err := c.GetLogs(ctx, search.LogsOptions{Offset: 20, Length: 100, Type: search.LogError})
				return err
			},
			method:   http.MethodGet,
			path:     "/1/logs",
			rawQuery: "length=100&offset=20&type=error",
		},
		{
			name: "multiple queries",
			call: func(ctx context.Context, c *search.Client) error {
				_, err := c.MultipleQueries(ctx, []query.IndexQuery{
					{IndexName: "a", Query: query.New("x")},
				}, "")
				return err
			},
			method:   http.MethodPost,
			path:     "/1/indexes/*/queries",
			rawQuery: "strategy=none",
			body:     mustJSON(t, map[string]any{"requests": []map[string]string{{"indexName": "a", "params": query.New("x").Encode()}}}),
		},
		{
			name: "facet value search",
			call: func(ctx context.Context, c *search.Client) error {
				_, err := c.InitIndex("products").SearchForFacetValues(ctx, "brand", "ac", query.Query{})
				return err
			},
			method: http.MethodPost,
			path:   "/1/indexes/products/facets/brand/query",
			body:   mustJSON(t, map[string]string{"params": facetQuery.Encode()}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client, read, write := newClient(t)

			require.NoError(t, tt.call(context.Background(), client))

			assert.Empty(t, write.Calls(), "reads must not reach the write pool")
			got := read.Last(t)
			assert.Equal(t, tt.method, got.Method)
			assert.Equal(t, tt.path, got.Path)
			assert.Equal(t, tt.rawQuery, got.RawQuery)
			if tt.body == "" {
				assert.Empty(t, got.Body)
			} else {
				assert.JSONEq(t, tt.body, got.Body)
			}
		})
	}
}

func TestValidation(t *testing.T) {
	t.Parallel()

	client, read, write := newClient(t)
	ctx := context.Background()
	idx := client.InitIndex("products")

	_, err := idx.SaveObject(ctx, "", map[string]string{})
	assert.ErrorIs(t, err, search.ErrEmptyObjectID)

	_, err = idx.SaveObjects(ctx, []any{map[string]string{"name": "no id"}})
	assert.ErrorIs(t, err, search.ErrMissingObjectID)

	_, err = idx.DeleteObjects(ctx, []string{"1", ""})
	assert.ErrorIs(t, err, search.ErrEmptyObjectID)

	_, err = client.Batch(ctx, []search.BatchOperation{{Action: search.ActionClear}})
	assert.ErrorIs(t, err, search.ErrEmptyIndexName)

	_, err = client.MoveIndex(ctx, "products", "")
	assert.ErrorIs(t, err, search.ErrEmptyIndexName)

	_, err = client.GetAPIKey(ctx, "")
	assert.ErrorIs(t, err, search.ErrEmptyKey)

	assert.Empty(t, read.Calls())
	assert.Empty(t, write.Calls())
}

func TestIndex_Search(t *testing.T) {
	t.Parallel()

	client, read, _ := newClient(t)
	q := query.New("phone")
	q.HitsPerPage = query.Int(2)

	read.router.Post("/1/indexes/{index}/query", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Params string `json:"params"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Params != q.Encode() {
			reply(w, http.StatusBadRequest, map[string]string{"message": "unexpected params"})
			return
		}
		reply(w, http.StatusOK, map[string]any{
			"hits":             []map[string]string{{"objectID": "1"}, {"objectID": "2"}},
			"nbHits":           10,
			"page":             0,
			"nbPages":          5,
			"hitsPerPage":      2,
			"processingTimeMS": 1,
			"query":            "phone",
			"params":           body.Params,
			"index":            chi.URLParam(r, "index"),
			"facets":           map[string]map[string]int{"brand": {"acme": 4}},
		})
	})

	res, err := client.InitIndex("products").Search(context.Background(), q)
	require.NoError(t, err)

	require.Len(t, res.Hits, 2)
	assert.JSONEq(t, `{"objectID":"1"}`, string(res.Hits[0]))
	assert.Equal(t, 10, res.NbHits)
	assert.Equal(t, 5, res.NbPages)
	assert.Equal(t, "phone", res.Query)
	assert.Equal(t, "products", res.Index)
	assert.Equal(t, 4, res.Facets["brand"]["acme"])
}

func TestIndex_Browse(t *testing.T) {
	t.Parallel()

	client, read, _ := newClient(t)
	read.router.Get("/1/indexes/{index}/browse", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("cursor") {
		case "":
			reply(w, http.StatusOK, map[string]any{"hits": []map[string]string{{"objectID": "1"}}, "cursor": "c1"})
		case "c1":
			reply(w, http.StatusOK, map[string]any{"hits": []map[string]string{{"objectID": "2"}}})
		default:
			reply(w, http.StatusBadRequest, map[string]string{"message": "bad cursor"})
		}
	})

	ctx := context.Background()
	cur, err := client.InitIndex("products").Browse(ctx, query.Query{})
	require.NoError(t, err)

	var ids []string
	for hit, err := range cur.All(ctx) {
		require.NoError(t, err)
		var rec struct {
			ObjectID string `json:"objectID"`
		}
		require.NoError(t, json.Unmarshal(hit, &rec))
		ids = append(ids, rec.ObjectID)
	}
	assert.Equal(t, []string{"1", "2"}, ids)

	resumed, err := client.InitIndex("products").BrowseFrom(ctx, query.Query{}, "c1")
	require.NoError(t, err)
	hit, ok, err := resumed.Next(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"objectID":"2"}`, string(hit))
}

func TestIndex_SearchDisjunctiveFaceting(t *testing.T) {
	t.Parallel()

	client, read, _ := newClient(t)
	read.router.Post("/1/indexes/{index}/queries", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Requests []query.Request `json:"requests"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.Requests) != 2 {
			reply(w, http.StatusBadRequest, map[string]string{"message": "expected two queries"})
			return
		}
		reply(w, http.StatusOK, map[string]any{"results": []any{
			map[string]any{
				"hits":   []map[string]string{{"objectID": "1"}},
				"nbHits": 1,
				"facets": map[string]map[string]int{"brand": {"acme": 1}},
			},
			map[string]any{
				"hits":   []any{},
				"nbHits": 3,
				"facets": map[string]map[string]int{"stars": {"4": 1, "5": 2}},
			},
		}})
	})

	res, err := client.InitIndex("products").SearchDisjunctiveFaceting(
		context.Background(),
		query.New("phone"),
		[]string{"stars"},
		facets.Refinements{"stars": {"4"}},
	)
	require.NoError(t, err)

	assert.Equal(t, 1, res.NbHits)
	assert.Equal(t, facets.Counts{"4": 1, "5": 2}, res.DisjunctiveFacets["stars"])
	assert.Equal(t, "/1/indexes/*/queries", read.Last(t).Path)
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}
