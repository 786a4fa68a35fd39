package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/searchkit/pkg/facets"
	"github.com/dmitrymomot/searchkit/pkg/query"
)

func newFacetsCmd(a *app) *cobra.Command {
	var (
		disjunctive []string
		refine      []string
		conjunctive []string
	)

	cmd := &cobra.Command{
		Use:   "facets <index> [text]",
		Short: "Search with disjunctive faceting and print the merged answer",
		Example: `  searchkit facets products phone --disjunctive brand,stars \
    --refine brand=acme --refine stars=4 --refine stars=5`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			refinements, err := parseRefinements(refine)
			if err != nil {
				return err
			}

			client, err := a.client()
			if err != nil {
				return err
			}

			q := query.New(textArg(args))
			q.Facets = conjunctive
			res, err := client.InitIndex(args[0]).SearchDisjunctiveFaceting(cmd.Context(), q, disjunctive, refinements)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringSliceVar(&disjunctive, "disjunctive", nil, "facets whose values are OR-ed")
	cmd.Flags().StringArrayVar(&refine, "refine", nil, "selected facet value as facet=value, repeatable")
	cmd.Flags().StringSliceVar(&conjunctive, "facets", nil, "conjunctive facets to count")
	return cmd
}

func parseRefinements(raw []string) (facets.Refinements, error) {
	out := facets.Refinements{}
	for _, r := range raw {
		name, value, ok := strings.Cut(r, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid refinement %q: want facet=value", r)
		}
		out[name] = append(out[name], value)
	}
	return out, nil
}
