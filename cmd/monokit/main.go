package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/solterra/monokit/cmd/monokit/commands"
	"github.com/solterra/monokit/config"
	"github.com/solterra/monokit/logger"
)

var rootCmd = &cobra.Command{
	Use:   "monokit",
	Short: "monokit - Monorepo export-manifest synchronizer and release tooling",
	Long: `monokit - Tooling for npm monorepos.

monokit keeps each package's publish surface in sync with its entry-point
descriptor: it generates CJS/ESM re-export stubs with their declaration
files, rewrites the package.json files/exports metadata, and maintains the
generated section of .gitignore. The release commands drive the changeset
workflow from pending bumps to git tags and the release PR.

Available commands:
  sync      - Synchronize a package's stubs and manifest metadata
  postbuild - Sync plus ESM declaration mirroring over dist/
  release   - Changesets, version bumps, tags, release PR
  config    - Show or initialize monokit configuration
  version   - Show build information

Examples:
  monokit sync --package @solterra/buttons
  monokit sync --package @solterra/buttons --watch
  monokit postbuild --package @solterra/buttons
  monokit release add --package @solterra/buttons --bump minor --summary "Add variant"
  monokit release version
  monokit release tag`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")

		jsonOutput := false
		if cfg, err := config.Load(); err == nil {
			jsonOutput = cfg.Log.JSON
		}
		if flagJSON, err := cmd.Flags().GetBool("json-logs"); err == nil && flagJSON {
			jsonOutput = true
		}

		if err := logger.InitializeWithVerbosity(jsonOutput, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "Emit structured JSON logs instead of console output")
	rootCmd.PersistentFlags().Bool("scan", false, "Resolve packages by scanning the workspace manifest instead of querying the package manager")

	rootCmd.AddCommand(commands.SyncCmd)
	rootCmd.AddCommand(commands.PostbuildCmd)
	rootCmd.AddCommand(commands.ReleaseCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
