// Package hostpool holds the candidate hosts of a search application and
// remembers which of them are currently answering.
//
// A Pool is fixed at construction: one ordered list of write hosts (indexing
// and administration) and one of read hosts (queries and browsing). Both must
// be non-empty.
//
// A Tracker keeps one Record per hostname. Unknown hosts start up. A failed
// attempt marks a host down; a successful one marks it up again. Health is
// evaluated lazily: there is no background prober. Instead, a host that has
// been down for at least the configured down timeout is considered eligible
// again the next time OrderedHosts is called, so the next request doubles as
// the recovery probe.
//
// # Usage
//
//	pool, err := hostpool.NewPool(
//	    []string{"app.example.net", "app-1.example.com"},
//	    []string{"app-dsn.example.net", "app-1.example.com"},
//	)
//	if err != nil {
//	    // errors.Is(err, hostpool.ErrEmptyPool)
//	}
//
//	tracker := hostpool.NewTracker(hostpool.WithDownTimeout(time.Minute))
//	for _, host := range tracker.OrderedHosts(pool.Read()) {
//	    if err := try(host); err != nil {
//	        tracker.RecordFailure(host)
//	        continue
//	    }
//	    tracker.RecordSuccess(host)
//	    break
//	}
//
// OrderedHosts never returns an empty list for a non-empty input: when every
// host is down the full list is returned unchanged, because the stored state
// may itself be stale.
//
// Tracker is safe for concurrent use.
package hostpool
