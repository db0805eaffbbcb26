package cli

import (
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/specialistvlad/factgraph/internal/dag"
	"github.com/spf13/cobra"
)

func newAnalyzeCommand(o *options, errW io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [ROOT]",
		Short: "Analyze every target and print a summary",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := o.newApp(errW, args)
			if err != nil {
				return err
			}
			ctx := a.Context(cmd.Context())

			if err := a.StartServer(ctx); err != nil {
				return analysisError(err)
			}
			defer func() { _ = a.Shutdown(ctx) }()

			res, runErr := a.Run(ctx)
			if res != nil {
				summary, err := res.Summary(ctx)
				if err != nil {
					return analysisError(err)
				}
				fmt.Fprintf(o.outW, "Analyzed %d targets: %d done, %d failed, %d skipped (run %s)\n",
					len(res.Order), summary[dag.Done], summary[dag.Failed], summary[dag.Skipped], res.RunID)
			}
			if runErr != nil {
				return analysisError(runErr)
			}

			if o.v.GetBool("serve") {
				ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
				defer stop()
				<-ctx.Done()
			}
			return nil
		},
	}
	cmd.Flags().Bool("serve", false, "Keep the metrics server running after the analysis until interrupted.")
	o.bind(cmd.Flags())
	return cmd
}
