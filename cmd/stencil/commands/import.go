package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <name> <blueprint.json>",
		Short: "Validate a blueprint document and commit it to the store",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			message, _ := cmd.Flags().GetString("message")
			return c.app.Import(cmd.Context(), args[0], args[1], message)
		},
	}
	cmd.Flags().StringP("message", "m", "", "Message recorded with the committed revision")
	return cmd
}
