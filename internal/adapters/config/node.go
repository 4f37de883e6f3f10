package config

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"github.com/stencilkit/stencil/internal/adapters/logger"
	"github.com/stencilkit/stencil/internal/core/domain"
	"github.com/stencilkit/stencil/internal/core/ports"
)

// NodeID is the unique identifier for the settings Graft node.
const NodeID graft.ID = "adapter.settings"

func init() {
	graft.Register(graft.Node[domain.Settings]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (domain.Settings, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return domain.Settings{}, err
			}
			cwd, err := os.Getwd()
			if err != nil {
				return domain.Settings{}, err
			}
			return NewLoader(log).Load(cwd)
		},
	})
}
