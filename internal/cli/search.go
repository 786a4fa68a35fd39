package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/searchkit/pkg/query"
)

func newSearchCmd(a *app) *cobra.Command {
	var (
		hits    int
		page    int
		filters string
		facets  []string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "search <index> [text]",
		Short: "Run a query against an index",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}

			q := query.New(textArg(args))
			q.Filters = filters
			q.Facets = facets
			if hits > 0 {
				q.HitsPerPage = query.Int(hits)
			}
			if cmd.Flags().Changed("page") {
				q.Page = query.Int(page)
			}

			res, err := client.InitIndex(args[0]).Search(cmd.Context(), q)
			if err != nil {
				return fmt.Errorf("search %s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return printJSON(out, res)
			}
			fmt.Fprintf(out, "%d hits, page %d/%d, %dms\n", res.NbHits, res.Page+1, max(res.NbPages, 1), res.ProcessingTimeMS)
			for _, hit := range res.Hits {
				if err := printLine(out, hit); err != nil {
					return err
				}
			}
			printCounts(out, res.Facets)
			return nil
		},
	}

	cmd.Flags().IntVarP(&hits, "hits", "n", 0, "hits per page (server default when 0)")
	cmd.Flags().IntVar(&page, "page", 0, "zero-based page number")
	cmd.Flags().StringVar(&filters, "filters", "", "filter expression")
	cmd.Flags().StringSliceVar(&facets, "facets", nil, "facets to count")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full answer as JSON")
	return cmd
}
