package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stencilkit/stencil/cmd/stencil/commands"
	"github.com/stencilkit/stencil/internal/app"
	"github.com/stencilkit/stencil/internal/build"
	"github.com/stencilkit/stencil/internal/core/domain"
)

type mockApp struct {
	importFunc   func(ctx context.Context, name, path, message string) error
	generateFunc func(ctx context.Context, name string, opts app.GenerateOptions) error
	archiveFunc  func(ctx context.Context, dir, name string) error
	listFunc     func(ctx context.Context) ([]domain.Revision, error)
	showFunc     func(ctx context.Context, name string) ([]byte, error)
	removeFunc   func(ctx context.Context, name string) error
}

func (m *mockApp) Import(ctx context.Context, name, path, message string) error {
	if m.importFunc != nil {
		return m.importFunc(ctx, name, path, message)
	}
	return nil
}

func (m *mockApp) Generate(ctx context.Context, name string, opts app.GenerateOptions) error {
	if m.generateFunc != nil {
		return m.generateFunc(ctx, name, opts)
	}
	return nil
}

func (m *mockApp) Archive(ctx context.Context, dir, name string) error {
	if m.archiveFunc != nil {
		return m.archiveFunc(ctx, dir, name)
	}
	return nil
}

func (m *mockApp) List(ctx context.Context) ([]domain.Revision, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockApp) Show(ctx context.Context, name string) ([]byte, error) {
	if m.showFunc != nil {
		return m.showFunc(ctx, name)
	}
	return nil, nil
}

func (m *mockApp) Remove(ctx context.Context, name string) error {
	if m.removeFunc != nil {
		return m.removeFunc(ctx, name)
	}
	return nil
}

func execute(t *testing.T, mock *mockApp, args ...string) (string, string, error) {
	t.Helper()
	cli := commands.New(mock)
	var out, errOut bytes.Buffer
	cli.SetArgs(args)
	cli.SetOutput(&out, &errOut)
	err := cli.Execute(context.Background())
	return out.String(), errOut.String(), err
}

func TestCommands_Import(t *testing.T) {
	t.Run("wires arguments and message flag", func(t *testing.T) {
		var gotName, gotPath, gotMessage string
		mock := &mockApp{
			importFunc: func(_ context.Context, name, path, message string) error {
				gotName, gotPath, gotMessage = name, path, message
				return nil
			},
		}

		_, _, err := execute(t, mock, "import", "web", "blueprint.json", "-m", "first")
		require.NoError(t, err)
		assert.Equal(t, "web", gotName)
		assert.Equal(t, "blueprint.json", gotPath)
		assert.Equal(t, "first", gotMessage)
	})

	t.Run("requires both arguments", func(t *testing.T) {
		_, _, err := execute(t, &mockApp{}, "import", "web")
		assert.Error(t, err)
	})
}

func TestCommands_Generate(t *testing.T) {
	t.Run("wires format and output flags", func(t *testing.T) {
		var gotName string
		var gotOpts app.GenerateOptions
		mock := &mockApp{
			generateFunc: func(_ context.Context, name string, opts app.GenerateOptions) error {
				gotName = name
				gotOpts = opts
				return nil
			},
		}

		_, _, err := execute(t, mock, "generate", "web", "-f", "puppet,chef", "-o", "/tmp/out")
		require.NoError(t, err)
		assert.Equal(t, "web", gotName)
		assert.Equal(t, []string{"puppet", "chef"}, gotOpts.Formats)
		assert.Equal(t, "/tmp/out", gotOpts.OutputDir)
	})

	t.Run("propagates errors", func(t *testing.T) {
		mock := &mockApp{
			generateFunc: func(_ context.Context, _ string, _ app.GenerateOptions) error {
				return errors.New("simulated error")
			},
		}

		_, _, err := execute(t, mock, "generate", "web")
		assert.ErrorContains(t, err, "simulated error")
	})
}

func TestCommands_Archive(t *testing.T) {
	t.Run("derives archive name from directory", func(t *testing.T) {
		var gotDir, gotName string
		mock := &mockApp{
			archiveFunc: func(_ context.Context, dir, name string) error {
				gotDir, gotName = dir, name
				return nil
			},
		}

		_, _, err := execute(t, mock, "archive", "/opt/app")
		require.NoError(t, err)
		assert.Equal(t, "/opt/app", gotDir)
		assert.Equal(t, "app.tar.gz", gotName)
	})

	t.Run("honors explicit name", func(t *testing.T) {
		var gotName string
		mock := &mockApp{
			archiveFunc: func(_ context.Context, _, name string) error {
				gotName = name
				return nil
			},
		}

		_, _, err := execute(t, mock, "archive", "/opt/app", "-n", "custom.tar.gz")
		require.NoError(t, err)
		assert.Equal(t, "custom.tar.gz", gotName)
	})
}

func TestCommands_List(t *testing.T) {
	mock := &mockApp{
		listFunc: func(_ context.Context) ([]domain.Revision, error) {
			return []domain.Revision{
				{Name: "api", Digest: "00000000deadbeef", Timestamp: time.Unix(0, 0).UTC()},
				{Name: "web", Digest: "00000000cafebabe", Timestamp: time.Unix(0, 0).UTC(), Message: "first"},
			}, nil
		},
	}

	out, _, err := execute(t, mock, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "api")
	assert.Contains(t, out, "web")
	assert.Contains(t, out, "00000000deadbeef")
	assert.Contains(t, out, "first")
}

func TestCommands_Show(t *testing.T) {
	mock := &mockApp{
		showFunc: func(_ context.Context, name string) ([]byte, error) {
			assert.Equal(t, "web", name)
			return []byte(`{"packages": {}}` + "\n"), nil
		},
	}

	out, _, err := execute(t, mock, "show", "web")
	require.NoError(t, err)
	assert.Equal(t, `{"packages": {}}`+"\n", out)
}

func TestCommands_Rm(t *testing.T) {
	var gotName string
	mock := &mockApp{
		removeFunc: func(_ context.Context, name string) error {
			gotName = name
			return nil
		},
	}

	_, _, err := execute(t, mock, "rm", "web")
	require.NoError(t, err)
	assert.Equal(t, "web", gotName)
}

func TestCommands_Version(t *testing.T) {
	out, _, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "stencil version "+build.Version)
}

func TestCommands_VerboseShorthand(t *testing.T) {
	// -v belongs to the persistent verbose flag; the version flag stays
	// long-form only.
	_, _, err := execute(t, &mockApp{}, "-v", "list")
	require.NoError(t, err)

	out, _, err := execute(t, &mockApp{}, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "stencil version "+build.Version)
}

func TestCommands_UnknownCommand(t *testing.T) {
	_, _, err := execute(t, &mockApp{}, "bogus")
	assert.Error(t, err)
}
