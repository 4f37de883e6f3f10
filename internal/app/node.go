package app

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/stencilkit/stencil/internal/adapters/archive"
	"github.com/stencilkit/stencil/internal/adapters/config"
	"github.com/stencilkit/stencil/internal/adapters/logger"
	"github.com/stencilkit/stencil/internal/adapters/revstore"
	"github.com/stencilkit/stencil/internal/core/domain"
	"github.com/stencilkit/stencil/internal/core/ports"
)

// NodeID is the unique identifier for the application components Graft node.
const NodeID graft.ID = "app.components"

// Components contains all the initialized application components. This struct
// provides controlled access to components needed by the CLI layer.
type Components struct {
	App      *App
	Logger   ports.Logger
	Settings domain.Settings
}

func init() {
	graft.Register(graft.Node[*Components]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			logger.NodeID,
			config.NodeID,
			revstore.NodeID,
			archive.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			settings, err := graft.Dep[domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[ports.RevisionStore](ctx)
			if err != nil {
				return nil, err
			}
			archives, err := graft.Dep[ports.ArchiveStore](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{
				App:      New(store, archives, log, settings),
				Logger:   log,
				Settings: settings,
			}, nil
		},
	})
}
