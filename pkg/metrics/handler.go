package metrics

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/searchkit/pkg/logger"
	"github.com/dmitrymomot/searchkit/pkg/search"
)

// StatusFunc reports the current host statuses, usually Client.HostStatuses.
type StatusFunc func() []search.HostStatus

// NewHandler serves:
//
//	GET /metrics  Prometheus exposition of gatherer
//	GET /hosts    JSON host statuses
//	GET /healthz  200 READY while at least one host is eligible, else 503 NOT_READY
func NewHandler(gatherer prometheus.Gatherer, status StatusFunc, log *slog.Logger) http.Handler {
	if log == nil {
		log = logger.Discard()
	}

	mux := chi.NewRouter()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	mux.Get("/hosts", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(status()); err != nil {
			log.ErrorContext(r.Context(), "encode host statuses", logger.Error(err))
		}
	})
	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		for _, st := range status() {
			if st.Eligible {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte("READY"))
				return
			}
		}
		log.WarnContext(r.Context(), "no eligible host")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("NOT_READY"))
	})
	return mux
}
