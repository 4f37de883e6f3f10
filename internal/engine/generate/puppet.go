package generate

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/stencilkit/stencil/internal/core/domain"
	"go.trai.ch/zerr"
)

// generatePuppet emits a Puppet module: one class per manager stage, chained
// in install order, plus file resources and source extraction in the main
// class. Artifacts land under "<name>/", with archives expected in
// "<name>/files/" so the staged file resources can reference them.
func generatePuppet(in Input) (*domain.ArtifactSet, error) {
	b := in.Blueprint
	module := puppetName(b.Name)
	blocks := groupByManager(in.Order)
	bindings := sortedBindings(in.Bindings)

	var sb strings.Builder
	fmt.Fprintf(&sb, "# Provisioning module for blueprint %q.\n", b.Name)
	if len(bindings) > 0 {
		fmt.Fprintf(&sb, "# Target architecture: %s.\n", b.Arch)
	}
	fmt.Fprintf(&sb, "class %s {\n", module)

	for _, block := range blocks {
		fmt.Fprintf(&sb, "  include %s::%s\n", module, puppetName(block.Manager))
	}
	for i := 1; i < len(blocks); i++ {
		if i == 1 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "  Class['%s::%s'] -> Class['%s::%s']\n",
			module, puppetName(blocks[i-1].Manager),
			module, puppetName(blocks[i].Manager),
		)
	}

	for _, desc := range in.Files {
		sb.WriteString("\n")
		writePuppetFile(&sb, desc)
	}

	for _, binding := range bindings {
		stage := path.Join("/tmp", binding.Archive)
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "  file { %s:\n", singleQuote(stage))
		sb.WriteString("    ensure => file,\n")
		fmt.Fprintf(&sb, "    source => 'puppet:///modules/%s/%s',\n", module, binding.Archive)
		sb.WriteString("  }\n")
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "  exec { 'extract %s':\n", binding.Archive)
		fmt.Fprintf(&sb, "    command => %s,\n", singleQuote(fmt.Sprintf("tar xf %s -C %s", stage, binding.Directory)))
		sb.WriteString("    path    => '/usr/bin:/bin',\n")
		fmt.Fprintf(&sb, "    require => File[%s],\n", singleQuote(stage))
		sb.WriteString("  }\n")
	}
	sb.WriteString("}\n")

	for _, block := range blocks {
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "class %s::%s {\n", module, puppetName(block.Manager))
		for i, step := range block.Steps {
			if i > 0 {
				sb.WriteString("\n")
			}
			writePuppetPackage(&sb, block.Manager, step)
		}
		sb.WriteString("}\n")
	}

	metadata, err := puppetMetadata(b.Name)
	if err != nil {
		return nil, zerr.With(
			zerr.Wrap(err, domain.ErrGeneration.Error()),
			"blueprint", b.Name,
		)
	}

	set := domain.NewArtifactSet(b.Name)
	set.ArchiveDir = path.Join(b.Name, "files")
	set.Add(path.Join(b.Name, "manifests", "init.pp"), []byte(sb.String()))
	set.Add(path.Join(b.Name, "metadata.json"), metadata)
	for _, binding := range bindings {
		set.AddArchive(binding.Archive)
	}
	return set, nil
}

func writePuppetFile(sb *strings.Builder, desc domain.FileDescriptor) {
	fmt.Fprintf(sb, "  file { %s:\n", singleQuote(desc.Path))
	fmt.Fprintf(sb, "    owner   => %s,\n", singleQuote(desc.Owner))
	fmt.Fprintf(sb, "    group   => %s,\n", singleQuote(desc.Group))
	fmt.Fprintf(sb, "    mode    => '%s',\n", desc.Perm())
	if isText(desc.Content) {
		fmt.Fprintf(sb, "    content => %s,\n", singleQuote(string(desc.Content)))
	} else {
		fmt.Fprintf(sb, "    content => Binary('%s'),\n", base64.StdEncoding.EncodeToString(desc.Content))
	}
	sb.WriteString("  }\n")
}

func writePuppetPackage(sb *strings.Builder, manager string, step domain.InstallStep) {
	fmt.Fprintf(sb, "  package { %s:\n", singleQuote(step.Package))
	switch len(step.Versions) {
	case 0:
		sb.WriteString("    ensure   => installed,\n")
	case 1:
		fmt.Fprintf(sb, "    ensure   => %s,\n", singleQuote(step.Versions[0]))
	default:
		quoted := make([]string, len(step.Versions))
		for i, version := range step.Versions {
			quoted[i] = singleQuote(version)
		}
		fmt.Fprintf(sb, "    ensure   => [%s],\n", strings.Join(quoted, ", "))
	}
	fmt.Fprintf(sb, "    provider => %s,\n", singleQuote(manager))
	sb.WriteString("  }\n")
}

func puppetMetadata(name string) ([]byte, error) {
	meta := struct {
		Name    string `json:"name"`
		Version string `json:"version"`
		Summary string `json:"summary"`
	}{
		Name:    puppetName(name),
		Version: "0.1.0",
		Summary: fmt.Sprintf("Provisioning module generated from blueprint %q", name),
	}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// puppetName maps a blueprint or manager name onto a legal Puppet class name:
// lowercase, starting with a letter, alphanumerics and underscores only.
func puppetName(name string) string {
	var out strings.Builder
	for _, r := range strings.ToLower(name) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			out.WriteRune(r)
		} else {
			out.WriteRune('_')
		}
	}
	if out.Len() == 0 || !unicode.IsLetter(rune(out.String()[0])) {
		return "b" + out.String()
	}
	return out.String()
}

// isText reports whether content can be embedded as a quoted literal: valid
// UTF-8 with no NUL bytes. Anything else is embedded base64-encoded.
func isText(content []byte) bool {
	if !utf8.Valid(content) {
		return false
	}
	for _, c := range content {
		if c == 0 {
			return false
		}
	}
	return true
}
