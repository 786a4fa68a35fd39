package search_test

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/searchkit/pkg/config"
	"github.com/dmitrymomot/searchkit/pkg/dispatch"
	"github.com/dmitrymomot/searchkit/pkg/hostpool"
	"github.com/dmitrymomot/searchkit/pkg/query"
	"github.com/dmitrymomot/searchkit/pkg/search"
)

func TestNewClient(t *testing.T) {
	t.Parallel()

	t.Run("missing app id", func(t *testing.T) {
		t.Parallel()
		_, err := search.NewClient(search.Config{APIKey: "secret"})
		require.Error(t, err)
		assert.ErrorIs(t, err, dispatch.ErrInvalidConfiguration)
		assert.ErrorIs(t, err, hostpool.ErrEmptyAppID)
	})

	t.Run("missing api key", func(t *testing.T) {
		t.Parallel()
		_, err := search.NewClient(search.Config{AppID: "APP"})
		require.Error(t, err)
		assert.ErrorIs(t, err, dispatch.ErrInvalidConfiguration)
		assert.ErrorIs(t, err, dispatch.ErrEmptyAPIKey)
	})

	t.Run("derives pools from app id", func(t *testing.T) {
		t.Parallel()
		client, err := search.NewClient(search.Config{AppID: "APP", APIKey: "secret"})
		require.NoError(t, err)

		statuses := client.HostStatuses()
		require.Len(t, statuses, 5)
		assert.Equal(t, "APP-dsn.algolia.net", statuses[0].Host)
		assert.Equal(t, "APP.algolia.net", statuses[4].Host)
		for _, st := range statuses {
			assert.True(t, st.Up)
			assert.True(t, st.Eligible)
			assert.True(t, st.Since.IsZero())
		}
	})

	t.Run("single host list serves both pools", func(t *testing.T) {
		t.Parallel()
		client, err := search.NewClient(search.Config{
			AppID:     "APP",
			APIKey:    "secret",
			ReadHosts: []string{"a.example", "b.example"},
		})
		require.NoError(t, err)
		hosts := make([]string, 0)
		for _, st := range client.HostStatuses() {
			hosts = append(hosts, st.Host)
		}
		assert.Equal(t, []string{"a.example", "b.example"}, hosts)
	})
}

func TestClient_SharedTracker(t *testing.T) {
	t.Parallel()

	tracker := hostpool.NewTracker()
	tracker.RecordFailure("a.example")

	client, err := search.NewClient(search.Config{
		AppID:     "APP",
		APIKey:    "secret",
		ReadHosts: []string{"a.example", "b.example"},
	}, search.WithTracker(tracker))
	require.NoError(t, err)

	assert.Same(t, tracker, client.Tracker())
	statuses := client.HostStatuses()
	require.Len(t, statuses, 2)
	assert.False(t, statuses[0].Up)
	assert.False(t, statuses[0].Eligible)
	assert.False(t, statuses[0].Since.IsZero())
	assert.True(t, statuses[1].Eligible)
}

func TestClient_Failover(t *testing.T) {
	t.Parallel()

	backup := newEngine(t)
	client, err := search.NewClient(search.Config{
		AppID:     "APP",
		APIKey:    "secret",
		ReadHosts: []string{"127.0.0.1:1", backup.Host(t)},
		Scheme:    "http",
	})
	require.NoError(t, err)

	_, err = client.InitIndex("products").Search(context.Background(), query.New("phone"))
	require.NoError(t, err)

	require.Len(t, backup.Calls(), 1)
	statuses := client.HostStatuses()
	assert.False(t, statuses[0].Up)
	assert.True(t, statuses[1].Up)
}

func TestClient_Headers(t *testing.T) {
	t.Parallel()

	client, read, _ := newClient(t,
		search.WithHeaders(map[string]string{"X-Team": "catalog"}),
		search.WithRateLimitForwarding("admin", "10.0.0.1", "user-key"),
	)

	_, err := client.ListIndexes(context.Background())
	require.NoError(t, err)

	h := read.Last(t).Header
	assert.Equal(t, "APP", h.Get("X-Algolia-Application-Id"))
	assert.Equal(t, "admin", h.Get("X-Algolia-API-Key"))
	assert.Equal(t, "10.0.0.1", h.Get("X-Forwarded-For"))
	assert.Equal(t, "user-key", h.Get("X-Forwarded-API-Key"))
	assert.Equal(t, "catalog", h.Get("X-Team"))
}

func TestWithRequestOptions(t *testing.T) {
	t.Parallel()

	client, read, _ := newClient(t)
	ctx := search.WithRequestOptions(context.Background(), dispatch.RequestOptions{
		Headers:      map[string]string{"X-Trace": "abc"},
		ForwardedFor: "192.0.2.7",
		Params:       url.Values{"clickAnalytics": {"true"}},
	})

	_, err := client.InitIndex("products").Search(ctx, query.New("phone"))
	require.NoError(t, err)

	last := read.Last(t)
	assert.Equal(t, "abc", last.Header.Get("X-Trace"))
	assert.Equal(t, "192.0.2.7", last.Header.Get("X-Forwarded-For"))
	assert.Equal(t, "clickAnalytics=true", last.RawQuery)
}

func TestClient_ClientErrorIsTerminal(t *testing.T) {
	t.Parallel()

	client, read, _ := newClient(t)
	read.router.Get("/1/indexes/{index}/{objectID}", func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusNotFound, map[string]any{"message": "ObjectID does not exist"})
	})

	var out map[string]any
	err := client.InitIndex("products").GetObject(context.Background(), "42", nil, &out)
	require.Error(t, err)
	assert.True(t, dispatch.IsNotFound(err))

	var derr *dispatch.Error
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, "ObjectID does not exist", derr.Message)
	assert.Len(t, read.Calls(), 1)
}

func TestLoadConfig(t *testing.T) {
	config.ResetCache()
	t.Cleanup(config.ResetCache)

	t.Setenv("SEARCH_APP_ID", "APP")
	t.Setenv("SEARCH_API_KEY", "secret")
	t.Setenv("SEARCH_READ_HOSTS", "r1.example,r2.example")
	t.Setenv("SEARCH_SEARCH_TIMEOUT", "750ms")

	cfg, err := search.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "APP", cfg.AppID)
	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, []string{"r1.example", "r2.example"}, cfg.ReadHosts)
	assert.Empty(t, cfg.WriteHosts)
	assert.Equal(t, "https", cfg.Scheme)
	assert.Equal(t, "750ms", cfg.SearchTimeout.String())
	assert.Equal(t, "20s", cfg.ReadTimeout.String())
	assert.Equal(t, "5m0s", cfg.HostDownTimeout.String())
	assert.Zero(t, cfg.RateLimit)
	assert.Equal(t, 1, cfg.RateBurst)
}
