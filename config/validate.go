package config

import (
	"strings"

	"github.com/solterra/monokit/errors"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	switch c.Workspace.PackageManager {
	case "pnpm", "npm", "yarn":
	default:
		return errors.Newf("workspace.package_manager must be pnpm, npm, or yarn, got %q", c.Workspace.PackageManager)
	}

	if c.Sync.DescriptorPath == "" {
		return errors.New("sync.descriptor_path cannot be empty")
	}
	if strings.HasPrefix(c.Sync.DescriptorPath, "/") {
		return errors.Newf("sync.descriptor_path must be relative to the package root, got %q", c.Sync.DescriptorPath)
	}

	if c.Sync.IgnoreFile == "" {
		return errors.New("sync.ignore_file cannot be empty")
	}
	if c.Sync.DistDir == "" {
		return errors.New("sync.dist_dir cannot be empty")
	}

	if c.Release.ChangesetDir == "" {
		return errors.New("release.changeset_dir cannot be empty")
	}

	// Tag format must carry both placeholders or tags collide across packages
	if !strings.Contains(c.Release.TagFormat, "{name}") || !strings.Contains(c.Release.TagFormat, "{version}") {
		return errors.Newf("release.tag_format must contain {name} and {version}, got %q", c.Release.TagFormat)
	}

	return nil
}
