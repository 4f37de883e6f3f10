package generate

import (
	"fmt"
	"strings"

	"github.com/stencilkit/stencil/internal/core/domain"
)

// managerRule describes how one package manager's CLI is invoked. Managers
// without a rule fall back to a generic "install" phrasing with an apt-style
// version pin.
type managerRule struct {
	// batch indicates the CLI accepts multiple packages in one invocation.
	batch bool
	// prefix is the command up to the package tokens.
	prefix string
	// pin renders one package at one version as a single CLI token.
	pin func(pkg, version string) string
}

var managerRules = map[string]managerRule{
	"apt": {
		batch:  true,
		prefix: "apt-get -q -y install",
		pin:    func(pkg, version string) string { return pkg + "=" + version },
	},
	"yum": {
		batch:  true,
		prefix: "yum -y install",
		pin:    func(pkg, version string) string { return pkg + "-" + version },
	},
	"pip": {
		batch:  true,
		prefix: "pip install",
		pin:    func(pkg, version string) string { return pkg + "==" + version },
	},
	"gem": {
		batch:  false,
		prefix: "gem install",
		pin:    func(pkg, version string) string { return pkg + " -v " + version },
	},
	"npm": {
		batch:  true,
		prefix: "npm install -g",
		pin:    func(pkg, version string) string { return pkg + "@" + version },
	},
}

func ruleFor(manager string) managerRule {
	if rule, ok := managerRules[manager]; ok {
		return rule
	}
	return managerRule{
		batch:  false,
		prefix: manager + " install",
		pin:    func(pkg, version string) string { return pkg + "=" + version },
	}
}

// installCommands renders the CLI invocations for one manager block. Batched
// managers get a single invocation covering every package token; the rest get
// one invocation per package and version.
func installCommands(block managerBlock) []string {
	rule := ruleFor(block.Manager)

	var tokens []string
	for _, step := range block.Steps {
		tokens = append(tokens, packageTokens(rule, step)...)
	}
	if len(tokens) == 0 {
		return nil
	}

	if rule.batch {
		return []string{rule.prefix + " " + strings.Join(tokens, " ")}
	}
	commands := make([]string, 0, len(tokens))
	for _, token := range tokens {
		commands = append(commands, rule.prefix+" "+token)
	}
	return commands
}

func packageTokens(rule managerRule, step domain.InstallStep) []string {
	if len(step.Versions) == 0 {
		return []string{step.Package}
	}
	tokens := make([]string, 0, len(step.Versions))
	for _, version := range step.Versions {
		tokens = append(tokens, rule.pin(step.Package, version))
	}
	return tokens
}

// shellQuote wraps s in single quotes for POSIX sh, escaping embedded quotes.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// singleQuote renders a Puppet or Ruby single-quoted string literal. Both
// languages use the same escape rules: backslash and the quote itself.
func singleQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}

// extractionCommand renders the tar invocation both the script and the
// recipe-style variants use for one source binding.
func extractionCommand(binding domain.SourceBinding, archivePath string) string {
	return fmt.Sprintf("tar xf %s -C %s", shellQuote(archivePath), shellQuote(binding.Directory))
}
