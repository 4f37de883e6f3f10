package wire_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stencilkit/stencil/internal/adapters/wire"
	"github.com/stencilkit/stencil/internal/core/domain"
)

func sampleBlueprint() *domain.Blueprint {
	return &domain.Blueprint{
		Name: "web",
		Packages: domain.PackageSet{
			"apt": {"git": {"1:2.1.4-2"}, "ruby": {"2.1.5", "2.2.0"}},
			"pip": {"flask": {"0.10.1"}},
		},
		Files: map[string]domain.FileEntry{
			"/etc/motd": {
				Owner:    "root",
				Group:    "root",
				Mode:     "100644",
				Content:  "welcome\n",
				Encoding: domain.EncodingPlain,
			},
		},
		Sources: map[string]string{"/opt/app": "app.tar.gz"},
		Arch:    domain.ArchAMD64,
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	b := sampleBlueprint()

	data, err := wire.Serialize(b)
	require.NoError(t, err)

	parsed, err := wire.Parse("web", data)
	require.NoError(t, err)
	assert.Equal(t, b, parsed)
}

func TestCodec_SerializeIsByteStable(t *testing.T) {
	b := sampleBlueprint()

	first, err := wire.Serialize(b)
	require.NoError(t, err)
	second, err := wire.Serialize(b)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Re-serializing a parsed document reproduces the canonical bytes.
	parsed, err := wire.Parse("web", first)
	require.NoError(t, err)
	again, err := wire.Serialize(parsed)
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestParse_AbsentOptionalSectionsNormalizeToEmpty(t *testing.T) {
	b, err := wire.Parse("min", []byte(`{"packages": {}}`))
	require.NoError(t, err)

	assert.Equal(t, "min", b.Name)
	assert.NotNil(t, b.Packages)
	assert.NotNil(t, b.Files)
	assert.NotNil(t, b.Sources)
	assert.Empty(t, b.Arch)
}

func TestParse_MissingPackagesKey(t *testing.T) {
	_, err := wire.Parse("bad", []byte(`{"files": {}}`))
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to decode blueprint document")
}

func TestParse_UnknownTopLevelKey(t *testing.T) {
	_, err := wire.Parse("bad", []byte(`{"packages": {}, "bogus": 1}`))
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to decode blueprint document")
}

func TestParse_UnknownFileEntryKey(t *testing.T) {
	doc := `{
		"packages": {},
		"files": {"/etc/motd": {"owner": "root", "group": "root",
			"mode": "100644", "content": "x", "encoding": "plain", "extra": true}}
	}`
	_, err := wire.Parse("bad", []byte(doc))
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to decode blueprint document")
}

func TestParse_MalformedJSON(t *testing.T) {
	_, err := wire.Parse("bad", []byte(`{"packages":`))
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to decode blueprint document")
}

func TestSerialize_OmitsEmptySections(t *testing.T) {
	b := &domain.Blueprint{
		Name:     "min",
		Packages: domain.PackageSet{"apt": {"git": {"1:2.1.4-2"}}},
		Files:    map[string]domain.FileEntry{},
		Sources:  map[string]string{},
	}

	data, err := wire.Serialize(b)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"files"`)
	assert.NotContains(t, string(data), `"sources"`)
	assert.NotContains(t, string(data), `"arch"`)
}

func TestSerialize_TrailingNewline(t *testing.T) {
	data, err := wire.Serialize(sampleBlueprint())
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, byte('\n'), data[len(data)-1])
}
