// Package config provides the configuration loader for stencil.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/stencilkit/stencil/internal/core/domain"
	"github.com/stencilkit/stencil/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file stencil looks for.
const FileName = "stencil.yaml"

// EnvConfigPath points stencil at an explicit configuration file, bypassing
// the upward directory walk.
const EnvConfigPath = "STENCIL_CONFIG"

// Loader implements ports.ConfigLoader using a YAML file found by walking
// from the working directory toward the filesystem root.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load finds and parses the configuration. A missing config file is not an
// error; defaults apply. A .env file next to the config (or in cwd) is loaded
// for S3 credentials before settings are resolved.
func (l *Loader) Load(cwd string) (domain.Settings, error) {
	settings := domain.DefaultSettings()

	configPath, found := findConfiguration(cwd)
	if !found {
		l.Logger.Debug(fmt.Sprintf("no %s found, using defaults", FileName))
		return settings, nil
	}

	// Credentials may live in a .env alongside the config file.
	_ = godotenv.Load(filepath.Join(filepath.Dir(configPath), ".env"))

	raw, err := os.ReadFile(configPath)
	if err != nil {
		return settings, zerr.With(
			zerr.Wrap(err, domain.ErrConfigReadFailed.Error()),
			"path", configPath,
		)
	}

	var file Stencilfile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return settings, zerr.With(
			zerr.Wrap(err, domain.ErrConfigParseFailed.Error()),
			"path", configPath,
		)
	}

	applyFile(&settings, file)
	return settings, nil
}

func applyFile(settings *domain.Settings, file Stencilfile) {
	if file.Store != "" {
		settings.StorePath = file.Store
	}
	if file.Output != "" {
		settings.OutputPath = file.Output
	}
	if file.Format != "" {
		settings.Format = file.Format
	}
	if file.Archives.Dir != "" {
		settings.ArchivePath = file.Archives.Dir
	}
	if file.Archives.Backend != "" {
		settings.ArchiveBackend = domain.ArchiveBackend(file.Archives.Backend)
	}
	if file.Verbose {
		settings.Verbose = true
	}
	settings.S3 = domain.S3Settings{
		Endpoint: file.Archives.S3.Endpoint,
		Region:   file.Archives.S3.Region,
		Bucket:   file.Archives.S3.Bucket,
		UseSSL:   file.Archives.S3.SSL,
	}
}

func findConfiguration(cwd string) (string, bool) {
	if explicit := os.Getenv(EnvConfigPath); explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit, true
		}
		return "", false
	}

	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", false
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", false
		}
		currentDir = parentDir
	}
}
