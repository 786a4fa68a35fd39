// Package dispatch executes authenticated HTTP calls against a pool of
// search hosts and fails over between them.
//
// Each Request names an operation class (Write or Read) that selects the host
// pool, and a timeout class (Standard or Search) that selects the per-attempt
// read timeout. The dispatcher asks its hostpool.Tracker for the hosts that are
// currently up, then tries them one after the other:
//
//   - 2xx: the host is marked up and the body is decoded into the caller's value.
//   - 4xx: the call fails at once with a KindClient *Error. A client error is
//     the same on every host, so no other host is contacted.
//   - anything else (connection failure, timeout, 5xx, undecodable 2xx body):
//     the host is marked down and the next one is tried.
//
// When all hosts fail, the *Error has KindUnreachable and its Hosts field lists
// every attempt in order.
//
// # Usage
//
//	pool, _ := hostpool.DefaultPool(appID)
//	d, err := dispatch.New(dispatch.Config{AppID: appID, APIKey: key, Pool: pool},
//		dispatch.WithLogger(log),
//	)
//	if err != nil {
//		return err
//	}
//
//	var res struct{ NbHits int `json:"nbHits"` }
//	err = d.Execute(ctx, dispatch.Request{
//		Method:  http.MethodPost,
//		Path:    "/1/indexes/products/query",
//		Body:    map[string]string{"params": "query=phone"},
//		Class:   dispatch.Read,
//		Timeout: dispatch.Search,
//	}, &res)
//
// # Errors
//
// Use errors.Is with ErrClient, ErrHostsUnreachable or ErrInvalidConfiguration,
// or the helpers IsClientError, IsNotFound and StatusCode.
package dispatch
