package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stencilkit/stencil/internal/core/domain"
)

func TestValidateName(t *testing.T) {
	for _, name := range []string{"web", "api-v2", "db_primary", "node.01"} {
		assert.NoError(t, domain.ValidateName(name), "name %q", name)
	}
	for _, name := range []string{"", "a/b", `a\b`, "a b", "a\tb", "a\nb"} {
		assert.ErrorIs(t, domain.ValidateName(name), domain.ErrInvalidName, "name %q", name)
	}
}

func TestBlueprint_Validate(t *testing.T) {
	t.Run("minimal blueprint", func(t *testing.T) {
		b := &domain.Blueprint{Name: "web", Packages: domain.PackageSet{}}
		assert.NoError(t, b.Validate())
	})

	t.Run("sources require arch", func(t *testing.T) {
		b := &domain.Blueprint{
			Name:     "web",
			Packages: domain.PackageSet{},
			Sources:  map[string]string{"/opt/app": "app.tar.gz"},
		}
		assert.ErrorIs(t, b.Validate(), domain.ErrMissingArchitecture)

		b.Arch = domain.ArchI386
		assert.NoError(t, b.Validate())
	})

	t.Run("unknown arch rejected", func(t *testing.T) {
		b := &domain.Blueprint{
			Name:     "web",
			Packages: domain.PackageSet{},
			Sources:  map[string]string{"/opt/app": "app.tar.gz"},
			Arch:     "sparc",
		}
		assert.ErrorIs(t, b.Validate(), domain.ErrInvalidArchitecture)
	})

	t.Run("arch without sources rejected", func(t *testing.T) {
		b := &domain.Blueprint{
			Name:     "web",
			Packages: domain.PackageSet{},
			Arch:     domain.ArchAMD64,
		}
		assert.ErrorIs(t, b.Validate(), domain.ErrInvalidArchitecture)
	})

	t.Run("invalid name rejected", func(t *testing.T) {
		b := &domain.Blueprint{Name: "a/b", Packages: domain.PackageSet{}}
		assert.ErrorIs(t, b.Validate(), domain.ErrInvalidName)
	})
}

func TestPackageSet_Managers(t *testing.T) {
	set := domain.PackageSet{
		"pip": {},
		"apt": {},
		"gem": {},
	}
	assert.Equal(t, []string{"apt", "gem", "pip"}, set.Managers())
}

func TestFileDescriptor_Perm(t *testing.T) {
	tests := []struct {
		mode uint32
		want string
	}{
		{0o100644, "0644"},
		{0o100755, "0755"},
		{0o100600, "0600"},
		{0o104755, "4755"},
		{0o100000, "0000"},
	}
	for _, tt := range tests {
		d := domain.FileDescriptor{Mode: tt.mode}
		require.Equal(t, tt.want, d.Perm())
	}
}
