package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidName is returned when a blueprint name contains path separators or whitespace.
	ErrInvalidName = zerr.New("invalid blueprint name")

	// ErrNameCollision is returned when the revision store already holds a blueprint with this name.
	ErrNameCollision = zerr.New("blueprint name already exists")

	// ErrBlueprintNotFound is returned when a requested blueprint is not in the revision store.
	ErrBlueprintNotFound = zerr.New("blueprint not found")

	// ErrCyclicDependency is returned when a manager transitively depends on itself
	// through the installed-as-package relation.
	ErrCyclicDependency = zerr.New("cyclic manager dependency")

	// ErrUnresolvableManager is returned when a manager is referenced but never
	// installable as a package under any other manager.
	ErrUnresolvableManager = zerr.New("manager is not installable")

	// ErrInvalidFileEntry is returned when a file entry fails metadata validation.
	ErrInvalidFileEntry = zerr.New("invalid file entry")

	// ErrEncodingFailed is returned when a file entry declares base64 encoding
	// but its content is not valid base64.
	ErrEncodingFailed = zerr.New("content is not valid base64")

	// ErrMissingArchitecture is returned when sources are present without an architecture.
	ErrMissingArchitecture = zerr.New("architecture required when sources are present")

	// ErrInvalidArchitecture is returned when the architecture is not a supported value.
	ErrInvalidArchitecture = zerr.New("invalid architecture, expected 'amd64' or 'i386'")

	// ErrInvalidSourceSet is returned when two source directories share one archive name.
	ErrInvalidSourceSet = zerr.New("duplicate archive name in sources")

	// ErrGeneration is returned when a generator variant rejects its input.
	ErrGeneration = zerr.New("generation failed")

	// ErrUnknownVariant is returned when an output format name is not a known variant.
	ErrUnknownVariant = zerr.New("unknown output format, expected 'puppet', 'chef' or 'posix'")

	// ErrWireDecodeFailed is returned when a blueprint document cannot be parsed.
	ErrWireDecodeFailed = zerr.New("failed to decode blueprint document")

	// ErrWireEncodeFailed is returned when a blueprint cannot be serialized.
	ErrWireEncodeFailed = zerr.New("failed to encode blueprint document")

	// ErrStoreCreateFailed is returned when the revision store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create revision store directory")

	// ErrStoreReadFailed is returned when a stored blueprint cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read from revision store")

	// ErrStoreWriteFailed is returned when a blueprint cannot be written to the store.
	ErrStoreWriteFailed = zerr.New("failed to write to revision store")

	// ErrArchiveCreateFailed is returned when a source archive cannot be created.
	ErrArchiveCreateFailed = zerr.New("failed to create source archive")

	// ErrArchiveNotFound is returned when a named archive is not in the archive store.
	ErrArchiveNotFound = zerr.New("archive not found")

	// ErrArtifactWriteFailed is returned when generated artifacts cannot be written out.
	ErrArtifactWriteFailed = zerr.New("failed to write generated artifacts")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")
)

// Tag attaches a key-value pair to a sentinel error. zerr.With on a
// *zerr.Error returns a detached copy, so the sentinel is wrapped first to
// keep it reachable through the Unwrap chain for errors.Is.
func Tag(sentinel error, key string, value any) error {
	return zerr.With(zerr.Wrap(sentinel, ""), key, value)
}
