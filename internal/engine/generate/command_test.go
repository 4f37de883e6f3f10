package generate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stencilkit/stencil/internal/core/domain"
)

func block(manager string, steps ...domain.InstallStep) managerBlock {
	return managerBlock{Manager: manager, Steps: steps}
}

func TestInstallCommands(t *testing.T) {
	tests := []struct {
		name  string
		block managerBlock
		want  []string
	}{
		{
			name: "apt batches with version pins",
			block: block("apt",
				domain.InstallStep{Manager: "apt", Package: "git", Versions: []string{"1:2.1.4-2"}},
				domain.InstallStep{Manager: "apt", Package: "zsh", Versions: []string{"5.0.7-5"}},
			),
			want: []string{"apt-get -q -y install git=1:2.1.4-2 zsh=5.0.7-5"},
		},
		{
			name: "yum pins with dash",
			block: block("yum",
				domain.InstallStep{Manager: "yum", Package: "httpd", Versions: []string{"2.4.6"}},
			),
			want: []string{"yum -y install httpd-2.4.6"},
		},
		{
			name: "pip pins with double equals",
			block: block("pip",
				domain.InstallStep{Manager: "pip", Package: "flask", Versions: []string{"0.10.1"}},
			),
			want: []string{"pip install flask==0.10.1"},
		},
		{
			name: "gem runs one invocation per version",
			block: block("gem",
				domain.InstallStep{Manager: "gem", Package: "rake", Versions: []string{"10.4.2", "11.0.1"}},
				domain.InstallStep{Manager: "gem", Package: "rails", Versions: []string{"4.2.0"}},
			),
			want: []string{
				"gem install rake -v 10.4.2",
				"gem install rake -v 11.0.1",
				"gem install rails -v 4.2.0",
			},
		},
		{
			name: "npm pins with at sign",
			block: block("npm",
				domain.InstallStep{Manager: "npm", Package: "bower", Versions: []string{"1.4.1"}},
			),
			want: []string{"npm install -g bower@1.4.1"},
		},
		{
			name: "unknown manager falls back to generic install",
			block: block("cargo",
				domain.InstallStep{Manager: "cargo", Package: "ripgrep", Versions: []string{"0.8.1"}},
			),
			want: []string{"cargo install ripgrep=0.8.1"},
		},
		{
			name: "versionless package installs bare",
			block: block("apt",
				domain.InstallStep{Manager: "apt", Package: "git"},
			),
			want: []string{"apt-get -q -y install git"},
		},
		{
			name: "multiple versions batch side by side",
			block: block("apt",
				domain.InstallStep{Manager: "apt", Package: "ruby", Versions: []string{"2.1.5", "2.2.0"}},
			),
			want: []string{"apt-get -q -y install ruby=2.1.5 ruby=2.2.0"},
		},
		{
			name:  "empty block yields nothing",
			block: block("apt"),
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, installCommands(tt.block))
		})
	}
}

func TestShellQuote(t *testing.T) {
	assert.Equal(t, "'/opt/app'", shellQuote("/opt/app"))
	assert.Equal(t, `'it'\''s'`, shellQuote("it's"))
}

func TestSingleQuote(t *testing.T) {
	assert.Equal(t, `'plain'`, singleQuote("plain"))
	assert.Equal(t, `'a\\b'`, singleQuote(`a\b`))
	assert.Equal(t, `'it\'s'`, singleQuote("it's"))
}

func TestExtractionCommand(t *testing.T) {
	binding := domain.SourceBinding{Directory: "/opt/app", Archive: "app.tar.gz"}
	assert.Equal(t, "tar xf 'app.tar.gz' -C '/opt/app'", extractionCommand(binding, "app.tar.gz"))
}
