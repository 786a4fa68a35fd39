package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/searchkit/pkg/query"
)

func newBrowseCmd(a *app) *cobra.Command {
	var (
		filters string
		cursor  string
		hits    int
	)

	cmd := &cobra.Command{
		Use:   "browse <index>",
		Short: "Stream every record of an index as JSON lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}

			q := query.Query{Filters: filters}
			if hits > 0 {
				q.HitsPerPage = query.Int(hits)
			}

			ctx := cmd.Context()
			cur, err := client.InitIndex(args[0]).BrowseFrom(ctx, q, cursor)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			count := 0
			for hit, err := range cur.All(ctx) {
				if err != nil {
					if token := cur.Cursor(); token != "" {
						fmt.Fprintf(cmd.ErrOrStderr(), "resume with --cursor %s\n", token)
					}
					return err
				}
				if err := printLine(out, hit); err != nil {
					return err
				}
				count++
			}
			a.logger.DebugContext(ctx, "browse finished", slog.Int("records", count), slog.Int("pages", cur.Pages()))
			return nil
		},
	}

	cmd.Flags().StringVar(&filters, "filters", "", "filter expression")
	cmd.Flags().StringVar(&cursor, "cursor", "", "resume from a cursor printed by an interrupted run")
	cmd.Flags().IntVar(&hits, "hits", 0, "records per page (1000 when 0)")
	return cmd
}
