// Package main is the entry point for the stencil tool.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/grindlemire/graft"
	"github.com/stencilkit/stencil/cmd/stencil/commands"
	"github.com/stencilkit/stencil/internal/app"
	_ "github.com/stencilkit/stencil/internal/wiring"
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr, func(ctx context.Context) (*app.Components, func(), error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		return c, func() {}, err
	}))
}

func run(
	ctx context.Context,
	args []string,
	stderr io.Writer,
	provider ComponentProvider,
) int {
	// 0. Context with signal handling
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 1. Initialize application components
	components, _, err := provider(ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		// Write directly to stderr passed in
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}

	if components.Settings.Verbose || slices.Contains(args, "--verbose") || slices.Contains(args, "-v") {
		components.Logger.SetVerbose(true)
	}

	// 2. Interface - CLI
	cli := commands.New(components.App)
	cli.SetArgs(args)
	cli.SetOutput(os.Stdout, stderr)

	// 3. Execution
	if err := cli.Execute(ctx); err != nil {
		components.Logger.Error(err)
		return 1
	}
	return 0
}
