package revstore

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/stencilkit/stencil/internal/adapters/config"
	"github.com/stencilkit/stencil/internal/core/domain"
	"github.com/stencilkit/stencil/internal/core/ports"
)

// NodeID is the unique identifier for the revision store Graft node.
const NodeID graft.ID = "adapter.revision_store"

func init() {
	graft.Register(graft.Node[ports.RevisionStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.RevisionStore, error) {
			settings, err := graft.Dep[domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(settings.StorePath), nil
		},
	})
}
