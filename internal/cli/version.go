package cli

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/searchkit/pkg/dispatch"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("searchkit version %s\n", dispatch.Version)
		},
	}
}
