package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [input]",
		Short: "Process one input and deliver the result",
		Long: "Process one input and deliver the result to the configured sinks.\n" +
			"Without an argument the input comes from the configuration file.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipelineOptions(cmd)
			if len(args) == 1 {
				opts.Input = args[0]
				opts.HasInput = true
			}
			return c.app.Run(cmd.Context(), opts)
		},
	}
	addPipelineFlags(cmd)
	return cmd
}
