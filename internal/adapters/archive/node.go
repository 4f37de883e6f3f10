package archive

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"github.com/stencilkit/stencil/internal/adapters/config"
	"github.com/stencilkit/stencil/internal/core/domain"
	"github.com/stencilkit/stencil/internal/core/ports"
	"go.trai.ch/zerr"
)

// NodeID is the unique identifier for the archive store Graft node.
const NodeID graft.ID = "adapter.archive_store"

// Environment variables supplying S3 credentials.
const (
	EnvS3AccessKey = "STENCIL_S3_ACCESS_KEY"
	EnvS3SecretKey = "STENCIL_S3_SECRET_KEY"
)

func init() {
	graft.Register(graft.Node[ports.ArchiveStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.ArchiveStore, error) {
			settings, err := graft.Dep[domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			switch settings.ArchiveBackend {
			case domain.ArchiveBackendFS, "":
				return NewFSStore(settings.ArchivePath), nil
			case domain.ArchiveBackendS3:
				return NewS3Store(
					settings.S3,
					os.Getenv(EnvS3AccessKey),
					os.Getenv(EnvS3SecretKey),
				)
			default:
				return nil, zerr.With(
					zerr.New("unknown archive backend, expected 'fs' or 's3'"),
					"backend", string(settings.ArchiveBackend),
				)
			}
		},
	})
}
