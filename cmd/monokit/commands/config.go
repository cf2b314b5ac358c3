package commands

import (
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/solterra/monokit/config"
)

// ConfigCmd represents the config command group
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or initialize monokit configuration",
	Long: `Inspect the effective configuration or write a project config file.

Configuration is merged from defaults, the user config
(~/.monokit/monokit.toml), the nearest project monokit.toml, and
MONOKIT_* environment variables, in that order.

Examples:
  monokit config show
  monokit config init`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// ConfigShowCmd prints the effective merged configuration
var ConfigShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		pterm.DefaultSection.Println("workspace")
		pterm.Printf("  root:            %s\n", orDefault(cfg.Workspace.Root, "(discovered)"))
		pterm.Printf("  package_manager: %s\n", cfg.Workspace.PackageManager)
		pterm.Printf("  manifest_file:   %s\n", cfg.Workspace.ManifestFile)

		pterm.DefaultSection.Println("sync")
		pterm.Printf("  descriptor_path: %s\n", cfg.Sync.DescriptorPath)
		pterm.Printf("  ignore_file:     %s\n", cfg.Sync.IgnoreFile)
		pterm.Printf("  dist_dir:        %s\n", cfg.Sync.DistDir)

		pterm.DefaultSection.Println("release")
		pterm.Printf("  changeset_dir: %s\n", cfg.Release.ChangesetDir)
		pterm.Printf("  tag_format:    %s\n", cfg.Release.TagFormat)
		pterm.Printf("  base_branch:   %s\n", cfg.Release.BaseBranch)
		pterm.Printf("  remote:        %s\n", cfg.Release.Remote)
		return nil
	},
}

// ConfigInitCmd writes the current configuration as a project monokit.toml
var ConfigInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a project monokit.toml with the current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		path := filepath.Join(cwd, "monokit.toml")

		if err := config.Save(cfg, path); err != nil {
			return err
		}
		pterm.Success.Printf("Wrote %s\n", path)
		return nil
	},
}

func init() {
	ConfigCmd.AddCommand(ConfigShowCmd)
	ConfigCmd.AddCommand(ConfigInitCmd)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
