package ports

import "context"

// ArchiveStore produces and retrieves source archive bytes. Archive creation
// happens at snapshot time and retrieval at generation time; the core only
// threads archive names through, never archive bytes.
type ArchiveStore interface {
	// Pack archives the given directory and stores the result under name.
	Pack(ctx context.Context, dir, name string) error
	// Fetch retrieves the bytes of the named archive.
	Fetch(ctx context.Context, name string) ([]byte, error)
}
