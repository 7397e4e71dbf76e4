package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) redirectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "redirects",
		Short: "List the legacy URL redirect table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			module, err := a.build(a.options("warn"))
			if err != nil {
				return err
			}
			entries, err := module.Redirects().Entries()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.flags.jsonOut {
				return writeJSON(out, entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, mutedStyle.Render("no redirects configured"))
				return nil
			}
			for _, entry := range entries {
				fmt.Fprintf(out, "%s -> %s\n", entry.From, entry.To)
			}
			return nil
		},
	}
}
