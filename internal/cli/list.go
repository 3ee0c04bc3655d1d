package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lolijho/crm-grab-backend-sub000/internal/suites"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available suites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defaults := map[string]bool{}
			for _, name := range suites.DefaultNames() {
				defaults[name] = true
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, s := range suites.Registry() {
				mark := " "
				if defaults[s.Name] {
					mark = "*"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", mark, s.Name, s.Description)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "\n* runs by default")
			return nil
		},
	}
}
