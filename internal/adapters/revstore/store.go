// Package revstore implements the blueprint revision store on the local
// filesystem, one committed document per blueprint name.
package revstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/stencilkit/stencil/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	dataSuffix = ".json"
	metaSuffix = ".meta.json"
)

// Store implements ports.RevisionStore using a file-per-blueprint strategy.
// Blueprint names are filesystem-safe by invariant, so they are used as
// filenames directly.
type Store struct {
	root string
}

// NewStore creates a revision store rooted at the given directory.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// Commit stores the serialized blueprint under the given name. A name can be
// committed exactly once.
func (s *Store) Commit(name string, data []byte, message string) error {
	if err := domain.ValidateName(name); err != nil {
		return err
	}
	if err := os.MkdirAll(s.root, domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}

	dataPath := s.path(name, dataSuffix)
	if _, err := os.Stat(dataPath); err == nil {
		return domain.Tag(domain.ErrNameCollision, "name", name)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}

	meta, err := json.MarshalIndent(domain.Revision{
		Name:      name,
		Digest:    fmt.Sprintf("%016x", xxhash.Sum64(data)),
		Message:   message,
		Timestamp: time.Now().UTC(),
	}, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}

	if err := os.WriteFile(dataPath, data, domain.FilePerm); err != nil {
		return zerr.With(
			zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()),
			"name", name,
		)
	}
	if err := os.WriteFile(s.path(name, metaSuffix), meta, domain.FilePerm); err != nil {
		return zerr.With(
			zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()),
			"name", name,
		)
	}
	return nil
}

// Get retrieves the serialized blueprint for the given name.
func (s *Store) Get(name string) ([]byte, error) {
	if err := domain.ValidateName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path(name, dataSuffix))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.Tag(domain.ErrBlueprintNotFound, "name", name)
		}
		return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}
	return data, nil
}

// List returns the metadata of all committed blueprints, sorted by name.
func (s *Store) List() ([]domain.Revision, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}

	var revisions []domain.Revision
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), metaSuffix) {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(s.root, entry.Name()))
		if err != nil {
			return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
		}
		var rev domain.Revision
		if err := json.Unmarshal(raw, &rev); err != nil {
			return nil, zerr.With(
				zerr.Wrap(err, domain.ErrStoreReadFailed.Error()),
				"file", entry.Name(),
			)
		}
		revisions = append(revisions, rev)
	}
	sort.Slice(revisions, func(i, j int) bool { return revisions[i].Name < revisions[j].Name })
	return revisions, nil
}

// Delete removes the named blueprint and its metadata.
func (s *Store) Delete(name string) error {
	if err := domain.ValidateName(name); err != nil {
		return err
	}
	dataPath := s.path(name, dataSuffix)
	if _, err := os.Stat(dataPath); errors.Is(err, fs.ErrNotExist) {
		return domain.Tag(domain.ErrBlueprintNotFound, "name", name)
	}
	if err := os.Remove(dataPath); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	if err := os.Remove(s.path(name, metaSuffix)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	return nil
}

func (s *Store) path(name, suffix string) string {
	return filepath.Join(s.root, name+suffix)
}
