package commands

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/solterra/monokit/config"
	"github.com/solterra/monokit/glyph"
	"github.com/solterra/monokit/logger"
	"github.com/solterra/monokit/syncer"
)

// SyncCmd represents the sync command
var SyncCmd = &cobra.Command{
	Use:   "sync",
	Short: glyph.Sync + " Synchronize a package's export stubs and manifest metadata",
	Long: glyph.Sync + ` Synchronize one workspace package.

Reads the package's entry-point descriptor, generates the four re-export
stubs for every jsFile entry (CJS, ESM, and their declaration files),
rewrites the files/exports sections of package.json, and updates the
generated section of the ignore file. Entries the generator cannot handle
are logged and skipped; the run continues with the rest.

Examples:
  monokit sync --package @solterra/buttons
  monokit sync --package @solterra/buttons --dry-run
  monokit sync --package @solterra/buttons --watch`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pkgName, _ := cmd.Flags().GetString("package")
		if pkgName == "" {
			// legacy flag name from the original postbuild script
			pkgName, _ = cmd.Flags().GetString("file-name")
		}
		if pkgName == "" {
			return cmd.Help()
		}

		watch, _ := cmd.Flags().GetBool("watch")
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		return runSync(cmd, pkgName, watch, dryRun)
	},
}

func init() {
	SyncCmd.Flags().StringP("package", "p", "", "Workspace package to synchronize")
	SyncCmd.Flags().String("file-name", "", "Alias for --package")
	SyncCmd.Flags().Bool("watch", false, "Re-run sync whenever the descriptor file changes")
	SyncCmd.Flags().Bool("dry-run", false, "Plan artifacts without writing anything")
}

func runSync(cmd *cobra.Command, pkgName string, watch, dryRun bool) error {
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
		DryRun:         dryRun,
	})

	ctx := cmd.Context()
	if err := syncOnce(ctx, s, pkgName, dryRun); err != nil {
		return err
	}
	if !watch {
		return nil
	}

	// Watch mode re-runs the whole pipeline on each descriptor change.
	// The descriptor is re-read every run, so edits between events are
	// never lost, only coalesced.
	pkgDir, err := resolver.Resolve(ctx, pkgName)
	if err != nil {
		return err
	}
	descriptorPath := filepath.Join(pkgDir, cfg.Sync.DescriptorPath)

	watcher, err := syncer.NewDescriptorWatcher(descriptorPath)
	if err != nil {
		return err
	}
	defer watcher.Close()

	watcher.OnChange(func() {
		if err := syncOnce(ctx, s, pkgName, dryRun); err != nil {
			pterm.Error.Printf("Sync failed: %v\n", err)
		}
	})
	watcher.Start()

	logger.WatchInfow("Watching descriptor", logger.FieldPath, descriptorPath)
	pterm.Info.Printf("Watching %s (ctrl-c to stop)\n", descriptorPath)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sig:
	case <-ctx.Done():
	}
	return nil
}

func syncOnce(ctx context.Context, s *syncer.Syncer, pkgName string, dryRun bool) error {
	result, err := s.Sync(ctx, pkgName)
	if err != nil {
		return err
	}
	if result == nil {
		pterm.Warning.Printf("Package %s not found in workspace, nothing to do\n", pkgName)
		return nil
	}

	reportResult(result, dryRun)
	return nil
}

func reportResult(result *syncer.Result, dryRun bool) {
	if dryRun {
		pterm.Info.Printf("Dry run: %d artifacts planned for %s\n", len(result.Artifacts), result.PackageDir)
		for _, artifact := range result.Artifacts {
			pterm.Printf("  %s %s\n", glyph.Stub, artifact.Path)
		}
	} else {
		pterm.Success.Printf("Synchronized %s (%d stubs)\n", result.PackageDir, len(result.Artifacts))
	}

	for _, skipped := range result.Skipped {
		pterm.Warning.Printf("  %s skipped %s: %v\n", glyph.Skip, skipped.Entry.Name, skipped.Err)
	}
	for _, mirrored := range result.Mirrored {
		pterm.Printf("  %s mirrored %s\n", glyph.Stub, mirrored)
	}
}
