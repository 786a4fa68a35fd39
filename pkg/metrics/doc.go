// Package metrics exports dispatch attempts and host health to Prometheus and
// serves them, together with a host status page, over HTTP.
//
//	tracker := hostpool.NewTracker()
//	col := metrics.NewCollector()
//	reg := prometheus.NewRegistry()
//	reg.MustRegister(col, metrics.NewHostCollector(tracker))
//
//	client, err := search.NewClient(cfg,
//		search.WithTracker(tracker),
//		search.WithAttemptHook(col.Hook()),
//	)
//
// NewHandler mounts /metrics, /hosts and /healthz on a chi router and Server
// runs it until the context is cancelled.
package metrics
