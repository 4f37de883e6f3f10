// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/stencilkit/stencil/internal/adapters/archive"
	_ "github.com/stencilkit/stencil/internal/adapters/config"
	_ "github.com/stencilkit/stencil/internal/adapters/logger"
	_ "github.com/stencilkit/stencil/internal/adapters/revstore"
	// Register app nodes.
	_ "github.com/stencilkit/stencil/internal/app"
)
