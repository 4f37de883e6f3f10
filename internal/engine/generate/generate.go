// Package generate emits provisioning artifacts from a resolved blueprint.
//
// Three variants share one contract: given the same blueprint and install
// order they produce artifacts that install the same packages in the same
// relative order, create the same files with identical metadata, and extract
// the same sources. That equivalence is the primary correctness property of
// the whole tool.
package generate

import (
	"path"
	"sort"

	"github.com/stencilkit/stencil/internal/core/domain"
	"go.trai.ch/zerr"
)

// Variant selects one of the closed set of output formats. Format names are
// validated at the boundary with ParseVariant; there is no name-based dynamic
// dispatch anywhere.
type Variant string

const (
	// VariantPuppet emits a Puppet module.
	VariantPuppet Variant = "puppet"
	// VariantChef emits a Chef cookbook.
	VariantChef Variant = "chef"
	// VariantPosix emits a single portable shell script.
	VariantPosix Variant = "posix"
)

// Variants returns all known variants in stable order.
func Variants() []Variant {
	return []Variant{VariantPuppet, VariantChef, VariantPosix}
}

// ParseVariant validates a format name supplied at the boundary.
func ParseVariant(name string) (Variant, error) {
	v := Variant(name)
	if _, ok := generators[v]; !ok {
		return "", domain.Tag(domain.ErrUnknownVariant, "format", name)
	}
	return v, nil
}

// Input is everything a generator variant consumes. All fields are pure
// in-memory values; generation performs no I/O.
type Input struct {
	Blueprint *domain.Blueprint
	Order     []domain.InstallStep
	Files     []domain.FileDescriptor
	Bindings  []domain.SourceBinding
}

type generatorFunc func(Input) (*domain.ArtifactSet, error)

var generators = map[Variant]generatorFunc{
	VariantPuppet: generatePuppet,
	VariantChef:   generateChef,
	VariantPosix:  generatePosix,
}

// Generate runs the selected variant over the input. It fails fast on
// malformed input and never returns a truncated artifact set: on error the
// set is nil.
func Generate(variant Variant, in Input) (*domain.ArtifactSet, error) {
	fn, ok := generators[variant]
	if !ok {
		return nil, domain.Tag(domain.ErrUnknownVariant, "format", string(variant))
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}
	return fn(in)
}

func validateInput(in Input) error {
	if in.Blueprint == nil {
		return domain.Tag(domain.ErrGeneration, "reason", "nil blueprint")
	}
	if err := domain.ValidateName(in.Blueprint.Name); err != nil {
		return zerr.Wrap(err, domain.ErrGeneration.Error())
	}
	for _, step := range in.Order {
		if step.Manager == "" || step.Package == "" {
			return zerr.With(
				domain.Tag(domain.ErrGeneration, "manager", step.Manager),
				"package", step.Package,
			)
		}
	}
	for _, desc := range in.Files {
		if !path.IsAbs(desc.Path) {
			return domain.Tag(domain.ErrGeneration, "file", desc.Path)
		}
	}
	for _, binding := range in.Bindings {
		if binding.Archive == "" {
			return domain.Tag(domain.ErrGeneration, "source", binding.Directory)
		}
	}
	return nil
}

// managerBlock is a run of consecutive install steps sharing one manager.
// The resolver emits each manager's packages contiguously, so grouping runs
// preserves the authoritative order exactly.
type managerBlock struct {
	Manager string
	Steps   []domain.InstallStep
}

func groupByManager(order []domain.InstallStep) []managerBlock {
	var blocks []managerBlock
	for _, step := range order {
		if len(blocks) == 0 || blocks[len(blocks)-1].Manager != step.Manager {
			blocks = append(blocks, managerBlock{Manager: step.Manager})
		}
		last := &blocks[len(blocks)-1]
		last.Steps = append(last.Steps, step)
	}
	return blocks
}

// sortedBindings returns the bindings ordered by directory. Bind already
// sorts, but generators must not depend on caller discipline for byte
// stability.
func sortedBindings(bindings []domain.SourceBinding) []domain.SourceBinding {
	out := make([]domain.SourceBinding, len(bindings))
	copy(out, bindings)
	sort.Slice(out, func(i, j int) bool { return out[i].Directory < out[j].Directory })
	return out
}
