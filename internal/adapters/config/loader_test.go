package config_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stencilkit/stencil/internal/adapters/config"
	"github.com/stencilkit/stencil/internal/adapters/logger"
	"github.com/stencilkit/stencil/internal/core/domain"
)

func newTestLoader() *config.Loader {
	log := logger.New()
	log.SetOutput(io.Discard)
	return config.NewLoader(log)
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, config.FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_NoConfigFileUsesDefaults(t *testing.T) {
	t.Setenv(config.EnvConfigPath, "")

	settings, err := newTestLoader().Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), settings)
}

func TestLoad_AppliesFileValues(t *testing.T) {
	t.Setenv(config.EnvConfigPath, "")
	dir := t.TempDir()
	writeConfig(t, dir, `
store: /var/lib/stencil/store
archives:
  backend: s3
  s3:
    endpoint: minio.local:9000
    region: eu-central-1
    bucket: stencil-archives
    ssl: true
output: /tmp/out
format: puppet
verbose: true
`)

	settings, err := newTestLoader().Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/stencil/store", settings.StorePath)
	assert.Equal(t, "/tmp/out", settings.OutputPath)
	assert.Equal(t, "puppet", settings.Format)
	assert.Equal(t, domain.ArchiveBackendS3, settings.ArchiveBackend)
	assert.True(t, settings.Verbose)
	assert.Equal(t, domain.S3Settings{
		Endpoint: "minio.local:9000",
		Region:   "eu-central-1",
		Bucket:   "stencil-archives",
		UseSSL:   true,
	}, settings.S3)

	// Unset fields keep their defaults.
	assert.Equal(t, domain.DefaultArchivePath(), settings.ArchivePath)
}

func TestLoad_WalksUpward(t *testing.T) {
	t.Setenv(config.EnvConfigPath, "")
	root := t.TempDir()
	writeConfig(t, root, "format: chef\n")

	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	settings, err := newTestLoader().Load(nested)
	require.NoError(t, err)
	assert.Equal(t, "chef", settings.Format)
}

func TestLoad_ExplicitConfigPathWins(t *testing.T) {
	cwd := t.TempDir()
	writeConfig(t, cwd, "format: chef\n")

	other := t.TempDir()
	explicit := writeConfig(t, other, "format: puppet\n")
	t.Setenv(config.EnvConfigPath, explicit)

	settings, err := newTestLoader().Load(cwd)
	require.NoError(t, err)
	assert.Equal(t, "puppet", settings.Format)
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Setenv(config.EnvConfigPath, "")
	dir := t.TempDir()
	writeConfig(t, dir, "format: [unclosed\n")

	_, err := newTestLoader().Load(dir)
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestLoad_DotenvNextToConfig(t *testing.T) {
	t.Setenv(config.EnvConfigPath, "")
	t.Setenv("STENCIL_S3_ACCESS_KEY", "")
	require.NoError(t, os.Unsetenv("STENCIL_S3_ACCESS_KEY"))

	dir := t.TempDir()
	writeConfig(t, dir, "format: posix\n")
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, ".env"),
		[]byte("STENCIL_S3_ACCESS_KEY=from-dotenv\n"),
		0o600,
	))

	_, err := newTestLoader().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", os.Getenv("STENCIL_S3_ACCESS_KEY"))
}
