package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oukeidos/mnmlrec/internal/version"
)

func newAboutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "about",
		Short: "Show a short description and link",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s — recording controls settings\n", version.Name)
			fmt.Fprintln(out, "https://github.com/oukeidos/mnmlrec")
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}
