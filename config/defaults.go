package config

import (
	"github.com/spf13/viper"
)

// File permission constants
const (
	DefaultFilePermissions = 0644
	DefaultDirPermissions  = 0755
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Workspace defaults
	v.SetDefault("workspace.root", "")                            // empty = discover via manifest walk-up
	v.SetDefault("workspace.package_manager", "pnpm")
	v.SetDefault("workspace.manifest_file", "pnpm-workspace.yaml")

	// Sync defaults
	v.SetDefault("sync.descriptor_path", "etc/config/entrypoint-file.json") // fixed relative location inside each package
	v.SetDefault("sync.ignore_file", ".gitignore")
	v.SetDefault("sync.dist_dir", "dist")

	// Release defaults
	v.SetDefault("release.changeset_dir", ".changeset")
	v.SetDefault("release.tag_format", "{name}@{version}")
	v.SetDefault("release.base_branch", "main")
	v.SetDefault("release.remote", "origin")

	// Log defaults
	v.SetDefault("log.json", false)
}
