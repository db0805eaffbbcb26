package cli

import (
	"github.com/specialistvlad/factgraph/internal/facts"
	"github.com/specialistvlad/factgraph/internal/report"
	"github.com/spf13/cobra"
)

func newKeysCommand(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "List the fact key catalog",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			rawFormat, _ := cmd.Flags().GetString("format")
			format, err := report.ParseFormat(rawFormat)
			if err != nil {
				return usageError(err)
			}
			keys := report.Keys(facts.Registry)
			if sorted, _ := cmd.Flags().GetBool("sort"); sorted {
				report.SortKeys(keys)
			}
			return report.WriteKeys(o.outW, format, keys)
		},
	}
	cmd.Flags().String("format", "text", "Output format: text or yaml.")
	cmd.Flags().Bool("sort", false, "Sort by key name instead of registration order.")
	return cmd
}
