package domain

import (
	"os"
	"path/filepath"
)

// ArchiveBackend selects where source archive bytes are kept.
type ArchiveBackend string

const (
	// ArchiveBackendFS keeps archives in a local directory.
	ArchiveBackendFS ArchiveBackend = "fs"
	// ArchiveBackendS3 keeps archives in an S3-compatible object store.
	ArchiveBackendS3 ArchiveBackend = "s3"
)

// S3Settings holds the connection parameters for an S3-compatible archive store.
// Credentials are supplied through the environment, never through the config file.
type S3Settings struct {
	Endpoint string
	Region   string
	Bucket   string
	UseSSL   bool
}

// Settings is the resolved tool configuration threaded from the CLI into the
// application. Verbosity is an explicit setting here, not process-wide state.
type Settings struct {
	// StorePath is the directory holding the blueprint revision store.
	StorePath string
	// ArchivePath is the directory holding source archives for the fs backend.
	ArchivePath string
	// OutputPath is the default directory generated artifacts are written to.
	OutputPath string
	// Format is the default generator variant name.
	Format string
	// ArchiveBackend selects the archive store implementation.
	ArchiveBackend ArchiveBackend
	// S3 is only consulted when ArchiveBackend is "s3".
	S3 S3Settings
	// Verbose enables debug-level logging.
	Verbose bool
}

// DefaultSettings returns the settings used when no config file is found.
func DefaultSettings() Settings {
	return Settings{
		StorePath:      DefaultStorePath(),
		ArchivePath:    DefaultArchivePath(),
		OutputPath:     ".",
		Format:         "posix",
		ArchiveBackend: ArchiveBackendFS,
	}
}

// DefaultStorePath returns the default blueprint store location.
func DefaultStorePath() string {
	return filepath.Join(baseDir(), "store")
}

// DefaultArchivePath returns the default source archive location.
func DefaultArchivePath() string {
	return filepath.Join(baseDir(), "archives")
}

func baseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".stencil"
	}
	return filepath.Join(home, ".stencil")
}

// Directory and file permissions used across the tool.
const (
	DirPerm  = 0o755
	FilePerm = 0o644
	// ScriptPerm is used for generated shell scripts.
	ScriptPerm = 0o755
)
