package dispatch

import (
	"net/http"
	"net/url"
	"strings"
)

// OpClass selects the host pool a request is sent to.
type OpClass int

const (
	// Write uses the write pool: indexing and administrative calls.
	Write OpClass = iota
	// Read uses the read pool: queries and browsing.
	Read
)

func (c OpClass) String() string {
	if c == Read {
		return "read"
	}
	return "write"
}

// TimeoutClass selects the per-attempt read timeout.
type TimeoutClass int

const (
	Standard TimeoutClass = iota
	Search
)

func (c TimeoutClass) String() string {
	if c == Search {
		return "search"
	}
	return "standard"
}

// Request describes one logical call. It is attempted on each candidate host
// until one answers.
type Request struct {
	Method string
	// Path starts with a slash and may carry a query string.
	Path string
	// Body is JSON encoded unless it is already []byte or json.RawMessage.
	Body    any
	Class   OpClass
	Timeout TimeoutClass
	Options RequestOptions
}

// RequestOptions are per-call extras.
type RequestOptions struct {
	Headers      map[string]string
	ForwardedFor string
	// Params are appended to the query string, sorted by key.
	Params url.Values
}

func (r Request) method() string {
	if r.Method == "" {
		return http.MethodGet
	}
	return r.Method
}

func (r Request) target(scheme, host string) string {
	target := scheme + "://" + host + r.Path
	if len(r.Options.Params) == 0 {
		return target
	}
	sep := "?"
	if strings.Contains(r.Path, "?") {
		sep = "&"
	}
	return target + sep + r.Options.Params.Encode()
}
