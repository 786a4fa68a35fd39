package search

import (
	"context"
	"net"
	"net/http"
	"strings"
)

// endUserHeaders are checked in order; the first valid address wins.
var endUserHeaders = []string{"CF-Connecting-IP", "DO-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}

// EndUserIP returns the address of the user behind r, looking at the usual
// proxy headers before RemoteAddr. X-Forwarded-For yields its first valid entry.
// It returns "" when nothing parses as an IP.
func EndUserIP(r *http.Request) string {
	for _, name := range endUserHeaders {
		v := r.Header.Get(name)
		if v == "" {
			continue
		}
		for part := range strings.SplitSeq(v, ",") {
			if ip := normalizeIP(part); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return normalizeIP(r.RemoteAddr)
	}
	return normalizeIP(host)
}

// ForwardEndUser returns a context whose requests carry r's end-user address
// in X-Forwarded-For, keeping any request options already in ctx.
func ForwardEndUser(ctx context.Context, r *http.Request) context.Context {
	ip := EndUserIP(r)
	if ip == "" {
		return ctx
	}
	ro := requestOptionsFromContext(ctx)
	ro.ForwardedFor = ip
	return WithRequestOptions(ctx, ro)
}

func normalizeIP(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil {
		return ""
	}
	return ip.String()
}
