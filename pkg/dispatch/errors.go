package dispatch

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrClient               = errors.New("search: client error")
	ErrHostsUnreachable     = errors.New("search: all hosts failed")
	ErrInvalidConfiguration = errors.New("search: invalid configuration")

	ErrEmptyAppID   = errors.New("application id is required")
	ErrEmptyAPIKey  = errors.New("api key is required")
	ErrServerStatus = errors.New("unexpected status")
	ErrDecode       = errors.New("undecodable response")
	ErrEncodeBody   = errors.New("search: failed to encode request body")
)

// Kind tells callers which class of failure an Error represents.
type Kind int

const (
	// KindClient is a 4xx answer. It is never retried on another host.
	KindClient Kind = iota + 1
	// KindUnreachable means every candidate host failed.
	KindUnreachable
	// KindConfiguration is raised at construction time.
	KindConfiguration
)

func (k Kind) String() string {
	switch k {
	case KindClient:
		return "client"
	case KindUnreachable:
		return "unreachable"
	case KindConfiguration:
		return "configuration"
	default:
		return "unknown"
	}
}

// HostError is the failure of one host attempt.
// StatusCode is zero when no response was received.
type HostError struct {
	Host       string
	StatusCode int
	Err        error
}

func (e HostError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Host, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Host, e.Err)
}

func (e HostError) Unwrap() error { return e.Err }

// Error is the single error type returned by the dispatcher.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	// Hosts lists every failed attempt in the order it was made.
	Hosts []HostError

	cause error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindClient:
		return fmt.Sprintf("%v: status %d: %s", ErrClient, e.StatusCode, e.Message)
	case KindUnreachable:
		parts := make([]string, 0, len(e.Hosts))
		for _, h := range e.Hosts {
			parts = append(parts, h.Error())
		}
		return fmt.Sprintf("%v: %s", ErrHostsUnreachable, strings.Join(parts, "; "))
	case KindConfiguration:
		return fmt.Sprintf("%v: %v", ErrInvalidConfiguration, e.cause)
	default:
		return "search: unknown error"
	}
}

// Is matches the sentinel of the error's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrClient:
		return e.Kind == KindClient
	case ErrHostsUnreachable:
		return e.Kind == KindUnreachable
	case ErrInvalidConfiguration:
		return e.Kind == KindConfiguration
	}
	return false
}

func (e *Error) Unwrap() []error {
	errs := make([]error, 0, len(e.Hosts)+1)
	for _, h := range e.Hosts {
		errs = append(errs, h)
	}
	if e.cause != nil {
		errs = append(errs, e.cause)
	}
	return errs
}

func configError(cause error) *Error {
	return &Error{Kind: KindConfiguration, cause: cause}
}

// IsClientError reports whether err is a 4xx answer from the backend.
func IsClientError(err error) bool {
	return errors.Is(err, ErrClient)
}

// IsNotFound reports whether err is a 404 answer from the backend.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// StatusCode returns the HTTP status of a client error, or 0.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) && e.Kind == KindClient {
		return e.StatusCode
	}
	return 0
}

func defaultClientMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "Bad request"
	case http.StatusForbidden:
		return "Invalid Application-ID or API-Key"
	case http.StatusNotFound:
		return "Resource does not exist"
	default:
		return "Error"
	}
}
