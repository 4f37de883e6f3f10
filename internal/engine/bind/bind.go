// Package bind associates tracked source directories with their archives.
package bind

import (
	"sort"

	"github.com/stencilkit/stencil/internal/core/domain"
	"go.trai.ch/zerr"
)

// Bind produces the manifest-level binding between source directories and
// their stored archives. Archive bytes are owned by the archive store; the
// binding only guarantees each directory maps to exactly one uniquely named
// archive and that the architecture co-presence invariant holds.
func Bind(sources map[string]string, arch domain.Arch) ([]domain.SourceBinding, error) {
	if len(sources) == 0 {
		return nil, nil
	}
	if arch == "" {
		return nil, domain.Tag(domain.ErrMissingArchitecture, "sources", len(sources))
	}
	if !arch.Valid() {
		return nil, domain.Tag(domain.ErrInvalidArchitecture, "arch", string(arch))
	}

	dirs := make([]string, 0, len(sources))
	for dir := range sources {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	seen := make(map[string]string, len(sources))
	bindings := make([]domain.SourceBinding, 0, len(dirs))
	for _, dir := range dirs {
		archive := sources[dir]
		if first, dup := seen[archive]; dup {
			return nil, zerr.With(
				domain.Tag(domain.ErrInvalidSourceSet, "archive", archive),
				"directories", first+", "+dir,
			)
		}
		seen[archive] = dir
		bindings = append(bindings, domain.SourceBinding{
			Directory: dir,
			Archive:   archive,
			Arch:      arch,
		})
	}
	return bindings, nil
}
