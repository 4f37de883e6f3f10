package ports

import "github.com/stencilkit/stencil/internal/core/domain"

// ConfigLoader resolves the tool settings for the current working directory.
type ConfigLoader interface {
	// Load finds and parses the configuration, falling back to defaults when
	// no config file exists.
	Load(cwd string) (domain.Settings, error)
}
