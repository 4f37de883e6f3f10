package generate

import (
	"encoding/base64"
	"fmt"
	"path"
	"strings"

	"github.com/stencilkit/stencil/internal/core/domain"
)

// generateChef emits a Chef cookbook: a default recipe plus a metadata file.
// Package, file and source semantics are identical to the Puppet variant;
// only the packaging convention differs. System packages use the native
// package resource, while language managers are driven through execute
// resources with the shared manager command table.
func generateChef(in Input) (*domain.ArtifactSet, error) {
	b := in.Blueprint
	blocks := groupByManager(in.Order)
	bindings := sortedBindings(in.Bindings)

	var sb strings.Builder
	fmt.Fprintf(&sb, "# Provisioning recipe for blueprint %q.\n", b.Name)
	if len(bindings) > 0 {
		fmt.Fprintf(&sb, "# Target architecture: %s.\n", b.Arch)
	}

	for _, block := range blocks {
		if block.Manager == "apt" {
			for _, step := range block.Steps {
				sb.WriteString("\n")
				writeChefPackage(&sb, step)
			}
			continue
		}
		for _, command := range installCommands(block) {
			sb.WriteString("\n")
			fmt.Fprintf(&sb, "execute %s\n", singleQuote(command))
		}
	}

	for _, desc := range in.Files {
		sb.WriteString("\n")
		writeChefFile(&sb, desc)
	}

	for _, binding := range bindings {
		stage := path.Join("/tmp", binding.Archive)
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "cookbook_file %s do\n", singleQuote(stage))
		fmt.Fprintf(&sb, "  source %s\n", singleQuote(binding.Archive))
		sb.WriteString("end\n")
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "execute %s\n", singleQuote(fmt.Sprintf("tar xf %s -C %s", stage, binding.Directory)))
	}

	var meta strings.Builder
	fmt.Fprintf(&meta, "name %s\n", singleQuote(b.Name))
	fmt.Fprintf(&meta, "description %s\n", singleQuote(fmt.Sprintf("Provisioning cookbook generated from blueprint %q", b.Name)))
	meta.WriteString("version '0.1.0'\n")

	set := domain.NewArtifactSet(b.Name)
	set.ArchiveDir = path.Join(b.Name, "files", "default")
	set.Add(path.Join(b.Name, "recipes", "default.rb"), []byte(sb.String()))
	set.Add(path.Join(b.Name, "metadata.rb"), []byte(meta.String()))
	for _, binding := range bindings {
		set.AddArchive(binding.Archive)
	}
	return set, nil
}

func writeChefPackage(sb *strings.Builder, step domain.InstallStep) {
	switch len(step.Versions) {
	case 0:
		fmt.Fprintf(sb, "package %s\n", singleQuote(step.Package))
	case 1:
		fmt.Fprintf(sb, "package %s do\n", singleQuote(step.Package))
		fmt.Fprintf(sb, "  version %s\n", singleQuote(step.Versions[0]))
		sb.WriteString("end\n")
	default:
		// Side-by-side versions need distinct resource names.
		for i, version := range step.Versions {
			if i > 0 {
				sb.WriteString("\n")
			}
			fmt.Fprintf(sb, "package %s do\n", singleQuote(step.Package+"@"+version))
			fmt.Fprintf(sb, "  package_name %s\n", singleQuote(step.Package))
			fmt.Fprintf(sb, "  version %s\n", singleQuote(version))
			sb.WriteString("end\n")
		}
	}
}

func writeChefFile(sb *strings.Builder, desc domain.FileDescriptor) {
	fmt.Fprintf(sb, "file %s do\n", singleQuote(desc.Path))
	fmt.Fprintf(sb, "  owner %s\n", singleQuote(desc.Owner))
	fmt.Fprintf(sb, "  group %s\n", singleQuote(desc.Group))
	fmt.Fprintf(sb, "  mode '%s'\n", desc.Perm())
	if isText(desc.Content) {
		fmt.Fprintf(sb, "  content %s\n", singleQuote(string(desc.Content)))
	} else {
		fmt.Fprintf(sb, "  content ::Base64.decode64('%s')\n", base64.StdEncoding.EncodeToString(desc.Content))
	}
	sb.WriteString("end\n")
}
