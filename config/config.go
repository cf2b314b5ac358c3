package config

// Config represents the monokit configuration
type Config struct {
	Workspace WorkspaceConfig `mapstructure:"workspace"`
	Sync      SyncConfig      `mapstructure:"sync"`
	Release   ReleaseConfig   `mapstructure:"release"`
	Log       LogConfig       `mapstructure:"log"`
}

// WorkspaceConfig configures how monokit locates packages in the monorepo
type WorkspaceConfig struct {
	Root           string `mapstructure:"root"`            // Workspace root (default: walk up to pnpm-workspace.yaml)
	PackageManager string `mapstructure:"package_manager"` // pnpm, npm, or yarn (default: pnpm)
	ManifestFile   string `mapstructure:"manifest_file"`   // Workspace manifest listing package globs
}

// SyncConfig configures the export-manifest synchronizer
type SyncConfig struct {
	DescriptorPath string `mapstructure:"descriptor_path"` // Descriptor location inside each package
	IgnoreFile     string `mapstructure:"ignore_file"`     // Ignore file carrying the generated-section block
	DistDir        string `mapstructure:"dist_dir"`        // Compiled output directory inside each package
}

// ReleaseConfig configures the release workflow
type ReleaseConfig struct {
	ChangesetDir string `mapstructure:"changeset_dir"` // Directory holding pending changesets
	TagFormat    string `mapstructure:"tag_format"`    // Tag name template ({name}, {version})
	BaseBranch   string `mapstructure:"base_branch"`   // PR base branch
	Remote       string `mapstructure:"remote"`        // Git remote for pushes
}

// LogConfig configures log output
type LogConfig struct {
	JSON bool `mapstructure:"json"` // JSON structured output instead of console
}
