// Package resolver computes the authoritative installation order over a
// blueprint's package section.
package resolver

import (
	"sort"
	"strings"

	"github.com/stencilkit/stencil/internal/core/domain"
)

// RootManager is the manager every resolution starts from. It is assumed to
// be present on the target machine and has no install-time dependency of its
// own.
const RootManager = "apt"

// Resolve orders the package set into an installable sequence.
//
// Managers are processed in breadth-first waves rooted at apt: wave zero is
// apt itself, and each later wave contains the managers that were installed
// as packages by an earlier wave. Emitting a manager's packages therefore
// always happens after the step that installed the manager itself.
//
// Within one manager, packages are emitted in lexical order by name, and
// newly discovered managers join their wave in lexical order. This is the
// documented deterministic tie-break; generated artifacts depend on it being
// stable.
func Resolve(packages domain.PackageSet) ([]domain.InstallStep, error) {
	if len(packages) == 0 {
		return nil, nil
	}

	processed := make(map[string]bool, len(packages))
	queued := make(map[string]bool, len(packages))

	var wave []string
	if _, ok := packages[RootManager]; ok {
		wave = []string{RootManager}
		queued[RootManager] = true
	}

	var order []domain.InstallStep
	for len(wave) > 0 {
		var next []string
		for _, manager := range wave {
			for _, pkg := range sortedPackages(packages[manager]) {
				versions := make([]string, len(packages[manager][pkg]))
				copy(versions, packages[manager][pkg])
				order = append(order, domain.InstallStep{
					Manager:  manager,
					Package:  pkg,
					Versions: versions,
				})

				// A package that provides a manager key brings that manager
				// into the next wave. This is a lookup relation, not
				// ownership.
				for candidate := range packages {
					if !queued[candidate] && provides(pkg, candidate) {
						queued[candidate] = true
						next = append(next, candidate)
					}
				}
			}
			processed[manager] = true
		}
		sort.Strings(next)
		wave = next
	}

	if err := checkUnprocessed(packages, processed); err != nil {
		return nil, err
	}

	return order, nil
}

// checkUnprocessed classifies managers the wave expansion never reached.
// A leftover manager that no manager installs at all is unresolvable; one
// that is installed only by other leftover managers is part of a dependency
// cycle unreachable from the root. The lexically smallest offender is
// reported so failures are deterministic.
func checkUnprocessed(packages domain.PackageSet, processed map[string]bool) error {
	var unresolvable, cyclic []string
	for _, manager := range packages.Managers() {
		if processed[manager] {
			continue
		}
		if installedBySomeManager(manager, packages) {
			cyclic = append(cyclic, manager)
		} else {
			unresolvable = append(unresolvable, manager)
		}
	}

	// An unresolvable manager can strand others into apparent cycles, so it
	// is the more actionable report.
	if len(unresolvable) > 0 {
		return domain.Tag(domain.ErrUnresolvableManager, "manager", unresolvable[0])
	}
	if len(cyclic) > 0 {
		return domain.Tag(domain.ErrCyclicDependency, "manager", cyclic[0])
	}
	return nil
}

func installedBySomeManager(manager string, packages domain.PackageSet) bool {
	// A manager providing itself through its own package list counts: that
	// is a direct self-cycle, not a missing definition.
	for _, pkgs := range packages {
		for pkg := range pkgs {
			if provides(pkg, manager) {
				return true
			}
		}
	}
	return false
}

// provides reports whether installing pkg makes manager available. A manager
// is usually listed under its own name, but system packages commonly carry a
// runtime prefix: python-pip provides pip.
func provides(pkg, manager string) bool {
	return pkg == manager || strings.HasSuffix(pkg, "-"+manager)
}

func sortedPackages(pkgs map[string][]string) []string {
	names := make([]string, 0, len(pkgs))
	for name := range pkgs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
