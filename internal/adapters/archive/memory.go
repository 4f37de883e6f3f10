package archive

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"sync"

	"github.com/stencilkit/stencil/internal/core/domain"
	"go.trai.ch/zerr"
)

// MemoryStore is an in-memory archive store used in tests and as a scratch
// store when no persistence is wanted.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore creates an empty in-memory archive store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Pack archives the given directory into memory under name.
func (s *MemoryStore) Pack(ctx context.Context, dir, name string) error {
	paths, err := collectFiles(dir)
	if err != nil {
		return zerr.With(
			zerr.Wrap(err, domain.ErrArchiveCreateFailed.Error()),
			"directory", dir,
		)
	}

	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := addFile(tw, dir, p); err != nil {
			return zerr.Wrap(err, domain.ErrArchiveCreateFailed.Error())
		}
	}
	if err := tw.Close(); err != nil {
		return zerr.Wrap(err, domain.ErrArchiveCreateFailed.Error())
	}
	if err := gw.Close(); err != nil {
		return zerr.Wrap(err, domain.ErrArchiveCreateFailed.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = buf.Bytes()
	return nil
}

// Put stores raw archive bytes directly, bypassing packing. Tests use this to
// seed fixture archives.
func (s *MemoryStore) Put(name string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = append([]byte(nil), data...)
}

// Fetch retrieves the bytes of the named archive.
func (s *MemoryStore) Fetch(_ context.Context, name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.data[name]
	if !ok {
		return nil, domain.Tag(domain.ErrArchiveNotFound, "archive", name)
	}
	return append([]byte(nil), raw...), nil
}
