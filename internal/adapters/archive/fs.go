// Package archive implements source archive stores. Archives are created at
// snapshot time and fetched at generation time; the core only ever sees
// archive names.
package archive

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/stencilkit/stencil/internal/core/domain"
	"go.trai.ch/zerr"
)

// archiveEpoch is the fixed modification time stamped on every archive entry
// so that packing the same tree twice yields identical bytes.
var archiveEpoch = time.Unix(0, 0).UTC()

// FSStore keeps archives as tar.gz files in a local directory.
type FSStore struct {
	root string
}

// NewFSStore creates an archive store rooted at the given directory.
func NewFSStore(root string) *FSStore {
	return &FSStore{root: root}
}

// Pack archives the given directory and stores the result under name.
// Entries are written in sorted path order with a fixed timestamp, so the
// archive bytes are reproducible for an unchanged tree.
func (s *FSStore) Pack(ctx context.Context, dir, name string) error {
	if err := os.MkdirAll(s.root, domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrArchiveCreateFailed.Error())
	}

	paths, err := collectFiles(dir)
	if err != nil {
		return zerr.With(
			zerr.Wrap(err, domain.ErrArchiveCreateFailed.Error()),
			"directory", dir,
		)
	}

	out, err := os.Create(filepath.Join(s.root, name))
	if err != nil {
		return zerr.Wrap(err, domain.ErrArchiveCreateFailed.Error())
	}
	defer func() { _ = out.Close() }()

	gw := gzip.NewWriter(out)
	tw := tar.NewWriter(gw)

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := addFile(tw, dir, p); err != nil {
			return zerr.With(
				zerr.Wrap(err, domain.ErrArchiveCreateFailed.Error()),
				"file", p,
			)
		}
	}

	if err := tw.Close(); err != nil {
		return zerr.Wrap(err, domain.ErrArchiveCreateFailed.Error())
	}
	if err := gw.Close(); err != nil {
		return zerr.Wrap(err, domain.ErrArchiveCreateFailed.Error())
	}
	return out.Close()
}

// Fetch retrieves the bytes of the named archive.
func (s *FSStore) Fetch(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.root, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.Tag(domain.ErrArchiveNotFound, "archive", name)
		}
		return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}
	return data, nil
}

func collectFiles(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

func addFile(tw *tar.Writer, dir, p string) error {
	rel, err := filepath.Rel(dir, p)
	if err != nil {
		return err
	}
	info, err := os.Stat(p)
	if err != nil {
		return err
	}

	header := &tar.Header{
		Name:    filepath.ToSlash(rel),
		Size:    info.Size(),
		Mode:    int64(info.Mode().Perm()),
		ModTime: archiveEpoch,
	}
	if err := tw.WriteHeader(header); err != nil {
		return err
	}

	f, err := os.Open(p)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	_, err = io.Copy(tw, f)
	return err
}
