package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"
)

func (c *CLI) newArchiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive <dir>",
		Short: "Pack a source directory into the archive store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			if name == "" {
				name = filepath.Base(filepath.Clean(args[0])) + ".tar.gz"
			}
			return c.app.Archive(cmd.Context(), args[0], name)
		},
	}
	cmd.Flags().StringP("name", "n", "", "Archive name (defaults to <dir>.tar.gz)")
	return cmd
}
