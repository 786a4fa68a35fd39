package search_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/searchkit/pkg/search"
)

type call struct {
	Method   string
	Path     string
	RawQuery string
	Body     string
	Header   http.Header
}

// engine is an in-process backend. Unrouted requests get a published task.
type engine struct {
	mu     sync.Mutex
	calls  []call
	router chi.Router
	srv    *httptest.Server
}

func newEngine(t *testing.T) *engine {
	t.Helper()
	e := &engine{router: chi.NewRouter()}
	e.router.Use(e.record)
	e.router.HandleFunc("/*", func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, map[string]any{"taskID": 7, "status": "published"})
	})
	e.srv = httptest.NewServer(e.router)
	t.Cleanup(e.srv.Close)
	return e
}

func (e *engine) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))
		e.mu.Lock()
		e.calls = append(e.calls, call{
			Method:   r.Method,
			Path:     r.URL.EscapedPath(),
			RawQuery: r.URL.RawQuery,
			Body:     string(body),
			Header:   r.Header.Clone(),
		})
		e.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (e *engine) Calls() []call {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]call(nil), e.calls...)
}

func (e *engine) Last(t *testing.T) call {
	t.Helper()
	calls := e.Calls()
	require.NotEmpty(t, calls)
	return calls[len(calls)-1]
}

func (e *engine) Host(t *testing.T) string {
	t.Helper()
	u, err := url.Parse(e.srv.URL)
	require.NoError(t, err)
	return u.Host
}

func reply(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// newClient wires a client to separate read and write engines.
func newClient(t *testing.T, opts ...search.Option) (*search.Client, *engine, *engine) {
	t.Helper()
	read, write := newEngine(t), newEngine(t)
	client, err := search.NewClient(search.Config{
		AppID:      "APP",
		APIKey:     "secret",
		ReadHosts:  []string{read.Host(t)},
		WriteHosts: []string{write.Host(t)},
		Scheme:     "http",
	}, opts...)
	require.NoError(t, err)
	return client, read, write
}
