package cli

import (
	"errors"
	"io"

	"github.com/specialistvlad/factgraph/internal/label"
	"github.com/specialistvlad/factgraph/internal/report"
	"github.com/spf13/cobra"
)

func newInspectCommand(o *options, errW io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [ROOT] --target LABEL",
		Short: "Print the facts or the export record of one target",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			rawTarget, _ := cmd.Flags().GetString("target")
			if rawTarget == "" {
				return usageError(errors.New("--target is required"))
			}
			target, err := label.Parse(rawTarget)
			if err != nil {
				return usageError(err)
			}
			rawFormat, _ := cmd.Flags().GetString("format")
			format, err := report.ParseFormat(rawFormat)
			if err != nil {
				return usageError(err)
			}
			key, _ := cmd.Flags().GetString("key")
			exports, _ := cmd.Flags().GetBool("exports")

			a, err := o.newApp(errW, args)
			if err != nil {
				return err
			}
			ctx := a.Context(cmd.Context())

			// A failure elsewhere in the graph does not hide a target that
			// was analyzed.
			res, runErr := a.Run(ctx)
			if res == nil {
				return analysisError(runErr)
			}
			b, err := res.Bundle(ctx, target)
			if err != nil {
				if runErr != nil {
					return analysisError(runErr)
				}
				return analysisError(err)
			}

			if exports {
				return report.WriteFacts(o.outW, format, report.ExportRecord(target, b))
			}
			view, err := report.BundleFacts(target, b, key)
			if err != nil {
				return analysisError(err)
			}
			return report.WriteFacts(o.outW, format, view)
		},
	}
	cmd.Flags().String("target", "", "Label of the target to inspect, e.g. //lib/net:net.")
	cmd.Flags().String("key", "", "Only print this key (key name or export name).")
	cmd.Flags().Bool("exports", false, "Print the export record instead of every fact.")
	cmd.Flags().String("format", "text", "Output format: text or yaml.")
	return cmd
}
