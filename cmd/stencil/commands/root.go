// Package commands implements the CLI commands for the stencil tool.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/stencilkit/stencil/internal/app"
	"github.com/stencilkit/stencil/internal/build"
	"github.com/stencilkit/stencil/internal/core/domain"
)

// CLI represents the command line interface for stencil.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Import(ctx context.Context, name, path, message string) error
	Generate(ctx context.Context, name string, opts app.GenerateOptions) error
	Archive(ctx context.Context, dir, name string) error
	List(ctx context.Context) ([]domain.Revision, error)
	Show(ctx context.Context, name string) ([]byte, error)
	Remove(ctx context.Context, name string) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "stencil",
		Short:         "Turn server snapshots into provisioning artifacts",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))

	// Verbose owns the -v shorthand, so it must be registered before the
	// version flag: InitDefaultVersionFlag only claims -v when it is free.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newImportCmd())
	rootCmd.AddCommand(c.newGenerateCmd())
	rootCmd.AddCommand(c.newArchiveCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newShowCmd())
	rootCmd.AddCommand(c.newRmCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
