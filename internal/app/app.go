// Package app implements the application layer for stencil.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/stencilkit/stencil/internal/adapters/wire"
	"github.com/stencilkit/stencil/internal/core/domain"
	"github.com/stencilkit/stencil/internal/core/ports"
	"github.com/stencilkit/stencil/internal/engine/bind"
	"github.com/stencilkit/stencil/internal/engine/generate"
	"github.com/stencilkit/stencil/internal/engine/materialize"
	"github.com/stencilkit/stencil/internal/engine/resolver"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	store    ports.RevisionStore
	archives ports.ArchiveStore
	logger   ports.Logger
	settings domain.Settings
}

// New creates a new App instance.
func New(
	store ports.RevisionStore,
	archives ports.ArchiveStore,
	log ports.Logger,
	settings domain.Settings,
) *App {
	return &App{
		store:    store,
		archives: archives,
		logger:   log,
		settings: settings,
	}
}

// Settings returns the resolved tool settings.
func (a *App) Settings() domain.Settings {
	return a.settings
}

// Import validates a blueprint document and commits it to the revision store
// under the given name. The full pipeline runs once as a dry run so malformed
// blueprints are rejected at import time, not at generation time.
func (a *App) Import(_ context.Context, name, path, message string) error {
	if err := domain.ValidateName(name); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return zerr.With(
			zerr.Wrap(err, "failed to read blueprint document"),
			"path", path,
		)
	}

	b, err := wire.Parse(name, data)
	if err != nil {
		return err
	}
	if err := b.Validate(); err != nil {
		return err
	}
	if _, err := a.prepare(b); err != nil {
		return err
	}

	canonical, err := wire.Serialize(b)
	if err != nil {
		return err
	}
	if err := a.store.Commit(name, canonical, message); err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("imported blueprint %q", name))
	return nil
}

// GenerateOptions configuration for the Generate method.
type GenerateOptions struct {
	// Formats names the variants to emit. Empty means the configured
	// default; the single entry "all" means every variant.
	Formats []string
	// OutputDir overrides the configured output directory when non-empty.
	OutputDir string
}

// Generate loads a committed blueprint, resolves it, and emits provisioning
// artifacts for the requested variants. Variants are independent and
// side-effect-free, so they generate concurrently; nothing is written to disk
// unless every requested variant succeeded.
func (a *App) Generate(ctx context.Context, name string, opts GenerateOptions) error {
	variants, err := a.resolveVariants(opts.Formats)
	if err != nil {
		return err
	}

	data, err := a.store.Get(name)
	if err != nil {
		return err
	}
	b, err := wire.Parse(name, data)
	if err != nil {
		return err
	}
	if err := b.Validate(); err != nil {
		return err
	}

	in, err := a.prepare(b)
	if err != nil {
		return err
	}

	sets := make([]*domain.ArtifactSet, len(variants))
	g, ctx := errgroup.WithContext(ctx)
	for i, variant := range variants {
		g.Go(func() error {
			set, err := generate.Generate(variant, in)
			if err != nil {
				return zerr.With(err, "format", string(variant))
			}
			sets[i] = set
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = a.settings.OutputPath
	}
	for i, variant := range variants {
		root := filepath.Join(outputDir, string(variant))
		if err := a.writeSet(ctx, root, sets[i]); err != nil {
			return err
		}
		a.logger.Info(fmt.Sprintf("wrote %s artifacts for blueprint %q to %s", variant, name, root))
	}
	return nil
}

// Archive packs a source directory into the archive store under the given
// name, so blueprints can reference it from their source sets.
func (a *App) Archive(ctx context.Context, dir, name string) error {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return domain.Tag(domain.ErrArchiveCreateFailed, "directory", dir)
	}
	if err := a.archives.Pack(ctx, dir, name); err != nil {
		return err
	}
	a.logger.Info(fmt.Sprintf("packed %s into archive %q", dir, name))
	return nil
}

// List returns the metadata of all committed blueprints.
func (a *App) List(_ context.Context) ([]domain.Revision, error) {
	return a.store.List()
}

// Show returns the canonical serialized form of a committed blueprint.
func (a *App) Show(_ context.Context, name string) ([]byte, error) {
	return a.store.Get(name)
}

// Remove deletes a committed blueprint from the revision store.
func (a *App) Remove(_ context.Context, name string) error {
	if err := a.store.Delete(name); err != nil {
		return err
	}
	a.logger.Info(fmt.Sprintf("removed blueprint %q", name))
	return nil
}

// prepare runs the pure pipeline over a blueprint: installation order, file
// descriptors, source bindings.
func (a *App) prepare(b *domain.Blueprint) (generate.Input, error) {
	order, err := resolver.Resolve(b.Packages)
	if err != nil {
		return generate.Input{}, err
	}
	files, err := materialize.All(b.Files)
	if err != nil {
		return generate.Input{}, err
	}
	bindings, err := bind.Bind(b.Sources, b.Arch)
	if err != nil {
		return generate.Input{}, err
	}
	return generate.Input{
		Blueprint: b,
		Order:     order,
		Files:     files,
		Bindings:  bindings,
	}, nil
}

func (a *App) resolveVariants(formats []string) ([]generate.Variant, error) {
	if len(formats) == 0 {
		formats = []string{a.settings.Format}
	}
	if len(formats) == 1 && formats[0] == "all" {
		return generate.Variants(), nil
	}

	variants := make([]generate.Variant, 0, len(formats))
	seen := make(map[generate.Variant]bool, len(formats))
	for _, format := range formats {
		variant, err := generate.ParseVariant(format)
		if err != nil {
			return nil, err
		}
		if !seen[variant] {
			seen[variant] = true
			variants = append(variants, variant)
		}
	}
	return variants, nil
}

// writeSet writes one complete artifact set under root, then copies each
// referenced archive from the archive store into the set's archive directory.
func (a *App) writeSet(ctx context.Context, root string, set *domain.ArtifactSet) error {
	for _, artifact := range set.Artifacts() {
		if !filepath.IsLocal(artifact.Path) {
			return domain.Tag(domain.ErrArtifactWriteFailed, "path", artifact.Path)
		}
		target := filepath.Join(root, filepath.FromSlash(artifact.Path))
		if err := os.MkdirAll(filepath.Dir(target), domain.DirPerm); err != nil {
			return zerr.Wrap(err, domain.ErrArtifactWriteFailed.Error())
		}
		perm := os.FileMode(domain.FilePerm)
		if filepath.Ext(artifact.Path) == ".sh" {
			perm = domain.ScriptPerm
		}
		if err := os.WriteFile(target, artifact.Content, perm); err != nil {
			return zerr.With(
				zerr.Wrap(err, domain.ErrArtifactWriteFailed.Error()),
				"path", target,
			)
		}
	}

	for _, name := range set.Archives() {
		data, err := a.archives.Fetch(ctx, name)
		if err != nil {
			return err
		}
		dir := filepath.Join(root, filepath.FromSlash(set.ArchiveDir))
		if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
			return zerr.Wrap(err, domain.ErrArtifactWriteFailed.Error())
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, domain.FilePerm); err != nil {
			return zerr.With(
				zerr.Wrap(err, domain.ErrArtifactWriteFailed.Error()),
				"archive", name,
			)
		}
	}
	return nil
}
