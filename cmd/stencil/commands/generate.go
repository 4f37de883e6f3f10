package commands

import (
	"github.com/spf13/cobra"
	"github.com/stencilkit/stencil/internal/app"
)

func (c *CLI) newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <name>",
		Short: "Emit provisioning artifacts for a committed blueprint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats, _ := cmd.Flags().GetStringSlice("format")
			outputDir, _ := cmd.Flags().GetString("output")

			return c.app.Generate(cmd.Context(), args[0], app.GenerateOptions{
				Formats:   formats,
				OutputDir: outputDir,
			})
		},
	}
	cmd.Flags().StringSliceP("format", "f", nil, "Output format: puppet, chef, posix, or all")
	cmd.Flags().StringP("output", "o", "", "Directory to write artifacts to")
	return cmd
}
