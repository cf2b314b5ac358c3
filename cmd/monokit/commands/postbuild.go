package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/solterra/monokit/config"
	"github.com/solterra/monokit/glyph"
	"github.com/solterra/monokit/syncer"
)

// PostbuildCmd represents the postbuild command
var PostbuildCmd = &cobra.Command{
	Use:   "postbuild",
	Short: glyph.Stub + " Sync plus ESM declaration mirroring over dist/",
	Long: glyph.Stub + ` Run after the package's bundler.

Performs a full sync, then walks the compiled dist/ tree and mirrors every
plain .d.ts declaration into an .esm.d.ts companion so ESM consumers get
types for each compiled module. Files that are already variant declarations
(.esm.d.ts, .cjs.d.ts) are left alone.

Example:
  monokit postbuild --package @solterra/buttons`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pkgName, _ := cmd.Flags().GetString("package")
		if pkgName == "" {
			pkgName, _ = cmd.Flags().GetString("file-name")
		}
		if pkgName == "" {
			return cmd.Help()
		}
		return runPostbuild(cmd, pkgName)
	},
}

func init() {
	PostbuildCmd.Flags().StringP("package", "p", "", "Workspace package to process")
	PostbuildCmd.Flags().String("file-name", "", "Alias for --package")
}

func runPostbuild(cmd *cobra.Command, pkgName string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	resolver, _, err := newResolver(cmd, cfg)
	if err != nil {
		return err
	}

	s := syncer.New(resolver, syncer.Options{
		DescriptorPath: cfg.Sync.DescriptorPath,
		IgnoreFile:     cfg.Sync.IgnoreFile,
		DistDir:        cfg.Sync.DistDir,
	})

	result, err := s.PostBuild(cmd.Context(), pkgName)
	if err != nil {
		return err
	}
	if result == nil {
		pterm.Warning.Printf("Package %s not found in workspace, nothing to do\n", pkgName)
		return nil
	}

	reportResult(result, false)
	return nil
}
