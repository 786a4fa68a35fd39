package cli

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/searchkit/pkg/logger"
	"github.com/dmitrymomot/searchkit/pkg/metrics"
	"github.com/dmitrymomot/searchkit/pkg/search"
)

func newMonitorCmd(a *app) *cobra.Command {
	var (
		addr     string
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Probe the hosts periodically and serve metrics and host health",
		Long: `Lists the indices every interval so host health stays current, and serves
/metrics (Prometheus), /hosts (JSON) and /healthz until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			col := metrics.NewCollector()
			client, err := a.client(search.WithAttemptHook(col.Hook()))
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				col,
				metrics.NewHostCollector(client.Tracker()),
				collectors.NewGoCollector(),
			)

			srv := metrics.NewServer(metrics.WithAddr(addr), metrics.WithServerLogger(a.logger))
			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				return srv.Run(ctx, metrics.NewHandler(reg, client.HostStatuses, a.logger))
			})
			g.Go(func() error {
				probe(ctx, client, interval, a.logger)
				return nil
			})
			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":9091", "listen address of the status server")
	cmd.Flags().DurationVar(&interval, "interval", 30*time.Second, "time between probes")
	return cmd
}

// probe lists the indices now and then every interval until ctx is done.
func probe(ctx context.Context, client *search.Client, interval time.Duration, log *slog.Logger) {
	ticker := time.NewTicker(max(interval, time.Millisecond))
	defer ticker.Stop()

	for {
		start := time.Now()
		if _, err := client.ListIndexes(ctx); err != nil && ctx.Err() == nil {
			log.WarnContext(ctx, "probe failed", logger.Error(err))
		} else if err == nil {
			log.DebugContext(ctx, "probe succeeded", logger.Duration(time.Since(start)))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
