package config

// Stencilfile represents the structure of the stencil.yaml configuration file.
// Every field is optional; absent fields fall back to defaults.
type Stencilfile struct {
	// Store is the directory holding the blueprint revision store.
	Store string `yaml:"store"`
	// Archives configures where source archive bytes live.
	Archives ArchivesDTO `yaml:"archives"`
	// Output is the default directory generated artifacts are written to.
	Output string `yaml:"output"`
	// Format is the default output format (puppet, chef or posix).
	Format string `yaml:"format"`
	// Verbose enables debug-level logging by default.
	Verbose bool `yaml:"verbose"`
}

// ArchivesDTO selects and configures the archive store backend.
type ArchivesDTO struct {
	Backend string `yaml:"backend"`
	Dir     string `yaml:"dir"`
	S3      S3DTO  `yaml:"s3"`
}

// S3DTO holds S3 connection parameters. Credentials are taken from the
// STENCIL_S3_ACCESS_KEY and STENCIL_S3_SECRET_KEY environment variables,
// never from the file.
type S3DTO struct {
	Endpoint string `yaml:"endpoint"`
	Region   string `yaml:"region"`
	Bucket   string `yaml:"bucket"`
	SSL      bool   `yaml:"ssl"`
}
