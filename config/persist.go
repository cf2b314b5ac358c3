package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/solterra/monokit/errors"
)

// persistedConfig mirrors Config with toml tags for writing.
// Viper reads with mapstructure tags; writes go through go-toml directly
// so key casing stays stable across save/load round trips.
type persistedConfig struct {
	Workspace persistedWorkspace `toml:"workspace"`
	Sync      persistedSync      `toml:"sync"`
	Release   persistedRelease   `toml:"release"`
	Log       persistedLog       `toml:"log"`
}

type persistedWorkspace struct {
	Root           string `toml:"root,omitempty"`
	PackageManager string `toml:"package_manager"`
	ManifestFile   string `toml:"manifest_file"`
}

type persistedSync struct {
	DescriptorPath string `toml:"descriptor_path"`
	IgnoreFile     string `toml:"ignore_file"`
	DistDir        string `toml:"dist_dir"`
}

type persistedRelease struct {
	ChangesetDir string `toml:"changeset_dir"`
	TagFormat    string `toml:"tag_format"`
	BaseBranch   string `toml:"base_branch"`
	Remote       string `toml:"remote"`
}

type persistedLog struct {
	JSON bool `toml:"json"`
}

// Save writes the configuration to the given path as TOML, creating rotating
// backups (.back1, .back2, .back3) of any existing file first.
func Save(c *Config, configPath string) error {
	if err := createBackup(configPath); err != nil {
		return err
	}

	out := persistedConfig{
		Workspace: persistedWorkspace(c.Workspace),
		Sync:      persistedSync(c.Sync),
		Release:   persistedRelease(c.Release),
		Log:       persistedLog(c.Log),
	}

	data, err := toml.Marshal(out)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if err := os.MkdirAll(filepath.Dir(configPath), DefaultDirPermissions); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	if err := os.WriteFile(configPath, data, DefaultFilePermissions); err != nil {
		return errors.Wrapf(err, "failed to write config to %s", configPath)
	}

	return nil
}

// createBackup creates rotating backups (.back1, .back2, .back3) before modifying config
func createBackup(configPath string) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil // No file to backup
	}

	// Rotate backups: .back3 -> delete, .back2 -> .back3, .back1 -> .back2, current -> .back1
	back3 := configPath + ".back3"
	back2 := configPath + ".back2"
	back1 := configPath + ".back1"

	if err := os.Remove(back3); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "failed to delete oldest backup")
	}

	if _, err := os.Stat(back2); err == nil {
		if err := os.Rename(back2, back3); err != nil {
			return errors.Wrap(err, "failed to rotate .back2 to .back3")
		}
	}

	if _, err := os.Stat(back1); err == nil {
		if err := os.Rename(back1, back2); err != nil {
			return errors.Wrap(err, "failed to rotate .back1 to .back2")
		}
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}

	if err := os.WriteFile(back1, content, DefaultFilePermissions); err != nil {
		return errors.Wrap(err, "failed to create .back1")
	}

	return nil
}
