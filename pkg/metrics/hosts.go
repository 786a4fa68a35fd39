package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/searchkit/pkg/hostpool"
)

var (
	hostUpDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "host", "up"),
		"1 if the last attempt on the host succeeded.",
		[]string{"host"}, nil,
	)
	hostEligibleDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "host", "eligible"),
		"1 if the next request may be sent to the host.",
		[]string{"host"}, nil,
	)
)

// HostCollector exports the tracker state at scrape time.
type HostCollector struct {
	tracker *hostpool.Tracker
}

func NewHostCollector(t *hostpool.Tracker) *HostCollector {
	return &HostCollector{tracker: t}
}

func (c *HostCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- hostUpDesc
	ch <- hostEligibleDesc
}

func (c *HostCollector) Collect(ch chan<- prometheus.Metric) {
	for host, rec := range c.tracker.Snapshot() {
		ch <- prometheus.MustNewConstMetric(hostUpDesc, prometheus.GaugeValue, boolValue(rec.Up), host)
		ch <- prometheus.MustNewConstMetric(hostEligibleDesc, prometheus.GaugeValue, boolValue(c.tracker.IsUp(host)), host)
	}
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
