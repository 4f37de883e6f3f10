package ports

import "github.com/stencilkit/stencil/internal/core/domain"

// RevisionStore persists serialized blueprints keyed by name. A name can be
// committed exactly once; committing an existing name fails with
// domain.ErrNameCollision.
type RevisionStore interface {
	// Commit stores the serialized blueprint under the given name.
	Commit(name string, data []byte, message string) error
	// Get retrieves the serialized blueprint for the given name.
	Get(name string) ([]byte, error)
	// List returns the metadata of all committed blueprints, sorted by name.
	List() ([]domain.Revision, error)
	// Delete removes the named blueprint and its metadata.
	Delete(name string) error
}
