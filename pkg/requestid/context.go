package requestid

import (
	"context"
	"log/slog"
	"regexp"

	"github.com/google/uuid"

	"github.com/dmitrymomot/searchkit/pkg/logger"
)

const maxIDLength = 128

var validIDRegex = regexp.MustCompile("^[a-zA-Z0-9_-]+$")

type contextKey struct{}

// New generates a fresh correlation id.
func New() string {
	return uuid.New().String()
}

func WithContext(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextKey{}, requestID)
}

func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	requestID, ok := ctx.Value(contextKey{}).(string)
	if !ok {
		return ""
	}
	return requestID
}

// Ensure returns ctx unchanged when it already carries a valid id.
// Otherwise a new id is generated and stored.
func Ensure(ctx context.Context) (context.Context, string) {
	if id := FromContext(ctx); isValidRequestID(id) {
		return ctx, id
	}
	id := New()
	return WithContext(ctx, id), id
}

func isValidRequestID(id string) bool {
	if len(id) == 0 || len(id) > maxIDLength {
		return false
	}
	return validIDRegex.MatchString(id)
}

// Attr returns the id stored in ctx as a request_id attribute. Its signature
// matches logger.ContextExtractor.
func Attr(ctx context.Context) (slog.Attr, bool) {
	if id := FromContext(ctx); id != "" {
		return logger.RequestID(id), true
	}
	return slog.Attr{}, false
}
