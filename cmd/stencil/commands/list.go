package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/stencilkit/stencil/internal/ui/style"
)

func (c *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List committed blueprints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			revisions, err := c.app.List(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(revisions) == 0 {
				_, _ = fmt.Fprintln(out, "no blueprints committed")
				return nil
			}

			_, _ = fmt.Fprintln(out, style.Header.Render("NAME  DIGEST  CREATED  MESSAGE"))
			for _, rev := range revisions {
				line := fmt.Sprintf("%s  %s  %s", rev.Name, rev.Digest, rev.Timestamp.Format(time.RFC3339))
				if rev.Message != "" {
					line += "  " + rev.Message
				}
				_, _ = fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}
