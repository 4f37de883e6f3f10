// Package materialize validates and normalizes file entries for emission.
package materialize

import (
	"encoding/base64"
	"path"
	"sort"
	"strconv"

	"github.com/stencilkit/stencil/internal/core/domain"
	"go.trai.ch/zerr"
)

// Materialize turns one file entry into a normalized descriptor. It is a pure
// transformation: the descriptor carries decoded content bytes, and nothing is
// ever written to disk here. Target generators choose how to embed the result.
func Materialize(filePath string, entry domain.FileEntry) (domain.FileDescriptor, error) {
	var desc domain.FileDescriptor

	if !path.IsAbs(filePath) {
		return desc, zerr.With(
			domain.Tag(domain.ErrInvalidFileEntry, "path", filePath),
			"reason", "path must be absolute",
		)
	}
	if !domain.ModePattern.MatchString(entry.Mode) {
		return desc, zerr.With(
			domain.Tag(domain.ErrInvalidFileEntry, "path", filePath),
			"mode", entry.Mode,
		)
	}
	if !entry.Encoding.Valid() {
		return desc, zerr.With(
			domain.Tag(domain.ErrInvalidFileEntry, "path", filePath),
			"encoding", string(entry.Encoding),
		)
	}

	content := []byte(entry.Content)
	if entry.Encoding == domain.EncodingBase64 {
		decoded, err := base64.StdEncoding.DecodeString(entry.Content)
		if err != nil {
			return desc, zerr.With(
				zerr.Wrap(err, domain.ErrEncodingFailed.Error()),
				"path", filePath,
			)
		}
		content = decoded
	}

	// The mode string already matched ^[0-7]{6}$.
	mode, err := strconv.ParseUint(entry.Mode, 8, 32)
	if err != nil {
		return desc, zerr.With(
			domain.Tag(domain.ErrInvalidFileEntry, "path", filePath),
			"mode", entry.Mode,
		)
	}

	desc = domain.FileDescriptor{
		Path:    filePath,
		Owner:   normalizeOwner(entry.Owner),
		Group:   normalizeOwner(entry.Group),
		Mode:    uint32(mode),
		Content: content,
	}
	return desc, nil
}

// All materializes every file entry of a blueprint, sorted by path so the
// descriptor order is deterministic across generator variants.
func All(files map[string]domain.FileEntry) ([]domain.FileDescriptor, error) {
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	descs := make([]domain.FileDescriptor, 0, len(paths))
	for _, p := range paths {
		desc, err := Materialize(p, files[p])
		if err != nil {
			return nil, err
		}
		descs = append(descs, desc)
	}
	return descs, nil
}

// normalizeOwner defaults empty ownership to root, matching what a snapshot
// of a system file would have carried.
func normalizeOwner(name string) string {
	if name == "" {
		return "root"
	}
	return name
}
