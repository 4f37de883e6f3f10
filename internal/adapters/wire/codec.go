// Package wire implements the canonical serialized blueprint format.
package wire

import (
	"bytes"
	"encoding/json"

	"github.com/stencilkit/stencil/internal/core/domain"
	"go.trai.ch/zerr"
)

// document mirrors the wire shape of a blueprint. The blueprint name is the
// store key and never part of the document itself.
type document struct {
	Packages map[string]map[string][]string `json:"packages"`
	Files    map[string]fileDTO             `json:"files,omitempty"`
	Sources  map[string]string              `json:"sources,omitempty"`
	Arch     string                         `json:"arch,omitempty"`
}

type fileDTO struct {
	Owner    string `json:"owner"`
	Group    string `json:"group"`
	Mode     string `json:"mode"`
	Content  string `json:"content"`
	Encoding string `json:"encoding,omitempty"`
}

// Parse decodes a wire document into a blueprint with the given name.
// Unknown top-level or file-entry keys are rejected. Absent optional sections
// normalize to empty maps so that Parse(Serialize(b)) is structurally
// equal to b.
func Parse(name string, data []byte) (*domain.Blueprint, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, zerr.With(
			zerr.Wrap(err, domain.ErrWireDecodeFailed.Error()),
			"blueprint", name,
		)
	}
	if doc.Packages == nil {
		return nil, zerr.With(
			domain.Tag(domain.ErrWireDecodeFailed, "blueprint", name),
			"missing_key", "packages",
		)
	}

	b := &domain.Blueprint{
		Name:     name,
		Packages: make(domain.PackageSet, len(doc.Packages)),
		Files:    make(map[string]domain.FileEntry, len(doc.Files)),
		Sources:  make(map[string]string, len(doc.Sources)),
		Arch:     domain.Arch(doc.Arch),
	}

	for manager, pkgs := range doc.Packages {
		set := make(map[string][]string, len(pkgs))
		for pkg, versions := range pkgs {
			vs := make([]string, len(versions))
			copy(vs, versions)
			set[pkg] = vs
		}
		b.Packages[manager] = set
	}

	for path, dto := range doc.Files {
		b.Files[path] = domain.FileEntry{
			Owner:    dto.Owner,
			Group:    dto.Group,
			Mode:     dto.Mode,
			Content:  dto.Content,
			Encoding: domain.Encoding(dto.Encoding),
		}
	}

	for dir, archive := range doc.Sources {
		b.Sources[dir] = archive
	}

	return b, nil
}

// Serialize encodes a blueprint into its canonical wire form. Map keys are
// emitted sorted, so the output is byte-stable for a given blueprint and safe
// to digest.
func Serialize(b *domain.Blueprint) ([]byte, error) {
	doc := document{
		Packages: b.Packages,
		Arch:     string(b.Arch),
	}
	if doc.Packages == nil {
		doc.Packages = map[string]map[string][]string{}
	}

	if len(b.Files) > 0 {
		doc.Files = make(map[string]fileDTO, len(b.Files))
		for path, entry := range b.Files {
			doc.Files[path] = fileDTO{
				Owner:    entry.Owner,
				Group:    entry.Group,
				Mode:     entry.Mode,
				Content:  entry.Content,
				Encoding: string(entry.Encoding),
			}
		}
	}
	if len(b.Sources) > 0 {
		doc.Sources = b.Sources
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, zerr.With(
			zerr.Wrap(err, domain.ErrWireEncodeFailed.Error()),
			"blueprint", b.Name,
		)
	}
	return append(data, '\n'), nil
}
