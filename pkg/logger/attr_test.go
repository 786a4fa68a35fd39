package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/searchkit/pkg/logger"
)

func TestErrors(t *testing.T) {
	t.Parallel()

	err1 := errors.New("first")
	err2 := errors.New("second")

	attr := logger.Errors(err1, nil, err2)
	require.Equal(t, "errors", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, err1, g[0].Value.Any())
	assert.Equal(t, err2, g[1].Value.Any())

	empty := logger.Errors(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")
	attr := logger.Error(err)
	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
}

func TestDomainAttrs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		attr slog.Attr
		key  string
		want any
	}{
		{"host", logger.Host("app-1.algolianet.com"), "host", "app-1.algolianet.com"},
		{"index", logger.Index("products"), "index", "products"},
		{"method", logger.Method("POST"), "method", "POST"},
		{"path", logger.Path("/1/indexes"), "path", "/1/indexes"},
		{"attempt", logger.Attempt(2), "attempt", int64(2)},
		{"status code", logger.StatusCode(503), "status_code", int64(503)},
		{"op class", logger.OpClass("read"), "op_class", "read"},
		{"task id", logger.TaskID(42), "task_id", int64(42)},
		{"duration", logger.Duration(time.Second), "duration", time.Second},
		{"component", logger.Component("dispatch"), "component", "dispatch"},
		{"request id", logger.RequestID("abc"), "request_id", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.key, tt.attr.Key)
			assert.Equal(t, tt.want, tt.attr.Value.Any())
		})
	}
}

func TestEmptyDomainAttrs(t *testing.T) {
	t.Parallel()

	assert.True(t, logger.StatusCode(0).Equal(slog.Attr{}))
	assert.True(t, logger.Index("").Equal(slog.Attr{}))
	assert.True(t, logger.RequestID("").Equal(slog.Attr{}))
}
