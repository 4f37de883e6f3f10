package generate

import (
	"encoding/base64"
	"fmt"
	"path"
	"strings"

	"github.com/stencilkit/stencil/internal/core/domain"
)

// heredocDelim terminates inline file content in the generated script.
const heredocDelim = "EOF_STENCIL"

// generatePosix emits a single portable shell script performing, in install
// order: package installation (batched where the manager's CLI allows it),
// file materialization, and source archive extraction. Archive bytes are
// never embedded; they travel alongside the script and are referenced by
// name.
func generatePosix(in Input) (*domain.ArtifactSet, error) {
	b := in.Blueprint
	blocks := groupByManager(in.Order)
	bindings := sortedBindings(in.Bindings)

	var sb strings.Builder
	sb.WriteString("#!/bin/sh\n")
	fmt.Fprintf(&sb, "# Provisioning script for blueprint %q.\n", b.Name)
	sb.WriteString("set -e\n")

	if len(bindings) > 0 {
		sb.WriteString("\n")
		sb.WriteString(`arch="$(dpkg --print-architecture)"` + "\n")
		fmt.Fprintf(&sb, "if [ \"$arch\" != %s ]; then\n", shellQuote(string(b.Arch)))
		fmt.Fprintf(&sb, "  echo %s >&2\n", shellQuote(fmt.Sprintf("blueprint %s requires %s", b.Name, b.Arch)))
		sb.WriteString("  exit 1\n")
		sb.WriteString("fi\n")
	}

	for _, block := range blocks {
		commands := installCommands(block)
		if len(commands) == 0 {
			continue
		}
		sb.WriteString("\n")
		for _, command := range commands {
			sb.WriteString(command + "\n")
		}
	}

	for _, desc := range in.Files {
		sb.WriteString("\n")
		writeShellFile(&sb, desc)
	}

	for _, binding := range bindings {
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "mkdir -p %s\n", shellQuote(binding.Directory))
		sb.WriteString(extractionCommand(binding, binding.Archive) + "\n")
	}

	set := domain.NewArtifactSet(b.Name)
	set.ArchiveDir = "."
	set.Add("bootstrap.sh", []byte(sb.String()))
	for _, binding := range bindings {
		set.AddArchive(binding.Archive)
	}
	return set, nil
}

func writeShellFile(sb *strings.Builder, desc domain.FileDescriptor) {
	if dir := path.Dir(desc.Path); dir != "/" {
		fmt.Fprintf(sb, "mkdir -p %s\n", shellQuote(dir))
	}

	content := desc.Content
	switch {
	case !isText(content):
		fmt.Fprintf(sb, "base64 -d >%s <<'%s'\n", shellQuote(desc.Path), heredocDelim)
		sb.WriteString(wrapBase64(content))
		sb.WriteString(heredocDelim + "\n")
	case heredocSafe(content):
		fmt.Fprintf(sb, "cat >%s <<'%s'\n", shellQuote(desc.Path), heredocDelim)
		sb.Write(content)
		sb.WriteString(heredocDelim + "\n")
	default:
		// Content without a trailing newline (or colliding with the heredoc
		// delimiter) must round-trip bit for bit, which a heredoc cannot do.
		fmt.Fprintf(sb, "printf '%%s' %s >%s\n", shellQuote(string(content)), shellQuote(desc.Path))
	}

	fmt.Fprintf(sb, "chown %s %s\n", shellQuote(desc.Owner+":"+desc.Group), shellQuote(desc.Path))
	fmt.Fprintf(sb, "chmod %s %s\n", desc.Perm(), shellQuote(desc.Path))
}

// heredocSafe reports whether content can travel through a quoted heredoc
// unchanged: non-empty, newline-terminated, and no line equal to the
// delimiter itself.
func heredocSafe(content []byte) bool {
	if len(content) == 0 || content[len(content)-1] != '\n' {
		return false
	}
	for _, line := range strings.Split(string(content), "\n") {
		if line == heredocDelim {
			return false
		}
	}
	return true
}

func wrapBase64(content []byte) string {
	encoded := base64.StdEncoding.EncodeToString(content)
	var sb strings.Builder
	for len(encoded) > 76 {
		sb.WriteString(encoded[:76] + "\n")
		encoded = encoded[76:]
	}
	if len(encoded) > 0 {
		sb.WriteString(encoded + "\n")
	}
	return sb.String()
}
