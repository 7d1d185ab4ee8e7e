package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gsarma/codepad/internal/code"
)

func newLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List supported languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tJUDGE0 ID")
			for _, l := range code.Languages() {
				fmt.Fprintf(tw, "%s\t%d\n", l.Name, l.LanguageID)
			}
			return tw.Flush()
		},
	}
}
