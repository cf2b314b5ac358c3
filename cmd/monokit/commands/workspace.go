package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/solterra/monokit/config"
	"github.com/solterra/monokit/errors"
	"github.com/solterra/monokit/workspace"
)

// newResolver builds the workspace resolver from configuration and the
// persistent --scan flag: by default package locations come from the
// package manager, with --scan they come from walking the workspace
// manifest globs directly.
func newResolver(cmd *cobra.Command, cfg *config.Config) (workspace.Resolver, string, error) {
	root := cfg.Workspace.Root
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, "", errors.Wrap(err, "failed to determine working directory")
		}
		root, err = workspace.FindRoot(cwd, cfg.Workspace.ManifestFile)
		if err != nil {
			return nil, "", err
		}
	}

	if scan, _ := cmd.Flags().GetBool("scan"); scan {
		return workspace.NewScanResolver(root, cfg.Workspace.ManifestFile), root, nil
	}
	return workspace.NewCommandResolver(cfg.Workspace.PackageManager, root), root, nil
}
