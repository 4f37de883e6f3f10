// Package domain contains the core blueprint types shared across the tool.
package domain

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// Arch identifies the machine architecture a blueprint's sources were built for.
type Arch string

const (
	// ArchAMD64 is the 64-bit x86 architecture.
	ArchAMD64 Arch = "amd64"
	// ArchI386 is the 32-bit x86 architecture.
	ArchI386 Arch = "i386"
)

// Valid reports whether the architecture is one of the supported values.
func (a Arch) Valid() bool {
	return a == ArchAMD64 || a == ArchI386
}

// Encoding identifies how a file entry's content is encoded on the wire.
type Encoding string

const (
	// EncodingPlain indicates the content is stored verbatim.
	EncodingPlain Encoding = "plain"
	// EncodingBase64 indicates the content is base64-encoded.
	EncodingBase64 Encoding = "base64"
)

// Valid reports whether the encoding is one of the supported values.
func (e Encoding) Valid() bool {
	return e == EncodingPlain || e == EncodingBase64
}

// PackageSet maps a manager name to its packages, each with an ordered list of
// versions. Multiple versions mean multiple side-by-side installations, not a
// preference list.
type PackageSet map[string]map[string][]string

// FileEntry describes one tracked configuration file.
type FileEntry struct {
	Owner    string
	Group    string
	Mode     string
	Content  string
	Encoding Encoding
}

// Blueprint is the canonical snapshot record for one server configuration.
// It is constructed once per snapshot and never mutated by the core.
type Blueprint struct {
	Name     string
	Packages PackageSet
	Files    map[string]FileEntry
	Sources  map[string]string
	Arch     Arch
}

// ModePattern is the shape every file mode string must match.
var ModePattern = regexp.MustCompile(`^[0-7]{6}$`)

// ValidateName checks that a blueprint name is safe to use as a filesystem and
// revision-store key. Names must be non-empty and contain no path separators
// or whitespace.
func ValidateName(name string) error {
	if name == "" {
		return Tag(ErrInvalidName, "name", name)
	}
	if strings.ContainsAny(name, "/\\") {
		return Tag(ErrInvalidName, "name", name)
	}
	for _, r := range name {
		if unicode.IsSpace(r) {
			return Tag(ErrInvalidName, "name", name)
		}
	}
	return nil
}

// Validate checks the blueprint's structural invariants: a valid name, a known
// architecture, and the arch-iff-sources co-presence rule. Per-entry file and
// package validation belongs to the materializer and resolver.
func (b *Blueprint) Validate() error {
	if err := ValidateName(b.Name); err != nil {
		return err
	}
	if len(b.Sources) > 0 {
		if b.Arch == "" {
			return Tag(ErrMissingArchitecture, "blueprint", b.Name)
		}
		if !b.Arch.Valid() {
			return Tag(ErrInvalidArchitecture, "arch", string(b.Arch))
		}
	} else if b.Arch != "" {
		return Tag(ErrInvalidArchitecture, "arch", string(b.Arch))
	}
	return nil
}

// Managers returns the manager names present in the package set, sorted.
func (p PackageSet) Managers() []string {
	managers := make([]string, 0, len(p))
	for m := range p {
		managers = append(managers, m)
	}
	sort.Strings(managers)
	return managers
}

// InstallStep is one entry in the authoritative installation order: install
// the named package, at the listed versions, via the named manager.
type InstallStep struct {
	Manager  string
	Package  string
	Versions []string
}

// FileDescriptor is the materializer's normalized view of one file entry.
// Content is always decoded bytes regardless of the wire encoding.
type FileDescriptor struct {
	Path    string
	Owner   string
	Group   string
	Mode    uint32
	Content []byte
}

// Perm returns the permission bits of the mode as a four-digit octal string,
// the form understood by chmod and the provisioning targets.
func (d FileDescriptor) Perm() string {
	perm := strconv.FormatUint(uint64(d.Mode&0o7777), 8)
	for len(perm) < 4 {
		perm = "0" + perm
	}
	return perm
}

// SourceBinding associates one tracked source directory with its stored
// archive artifact and target architecture.
type SourceBinding struct {
	Directory string
	Archive   string
	Arch      Arch
}
