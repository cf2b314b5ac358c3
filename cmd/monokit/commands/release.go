package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/solterra/monokit/config"
	"github.com/solterra/monokit/errors"
	"github.com/solterra/monokit/glyph"
	"github.com/solterra/monokit/release"
)

// ReleaseCmd represents the release command group
var ReleaseCmd = &cobra.Command{
	Use:   "release",
	Short: glyph.Release + " Changesets, version bumps, tags, release PR",
	Long: glyph.Release + ` Release workflow.

Changes accumulate as changeset files under .changeset/, each recording a
bump level per affected package and a summary. Versioning consumes them
all at once; tagging and PR creation publish the result.

Workflow:
  monokit release add       # record a pending change
  monokit release version   # apply all pending changesets
  monokit release tag       # tag every package at its current version
  monokit release pr        # push branch and open the release PR`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// ReleaseAddCmd records a new changeset
var ReleaseAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a pending changeset",
	Long: `Record a changeset: one or more package bumps plus a summary.

Examples:
  monokit release add --package @solterra/buttons --bump minor --summary "Add ButtonGroup"
  monokit release add -p @solterra/buttons -p @solterra/theme --bump patch --summary "Fix tokens"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		packages, _ := cmd.Flags().GetStringSlice("package")
		bumpLevel, _ := cmd.Flags().GetString("bump")
		summary, _ := cmd.Flags().GetString("summary")

		if len(packages) == 0 {
			return errors.New("at least one --package is required")
		}
		if summary == "" {
			return errors.New("--summary is required")
		}

		bump := release.Bump(bumpLevel)
		if !bump.Valid() {
			return errors.Newf("unknown bump level %q (patch, minor, or major)", bumpLevel)
		}

		bumps := make(map[string]release.Bump, len(packages))
		for _, name := range packages {
			bumps[name] = bump
		}
		return runReleaseAdd(cmd, bumps, summary)
	},
}

// ReleaseVersionCmd consumes pending changesets
var ReleaseVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Apply all pending changesets",
	Long: `Consume every pending changeset: bump each affected package's version
(highest bump level wins when changesets disagree), prepend its changelog,
and delete the consumed changeset files.

Example:
  monokit release version`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		return runReleaseVersion(cmd, dryRun)
	},
}

// ReleaseTagCmd tags every package at its current version
var ReleaseTagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Create annotated git tags for workspace packages",
	Long: `Create an annotated tag for every public workspace package at its
current version. Existing tags are skipped, so rerunning after a partial
failure is safe.

Example:
  monokit release tag`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReleaseTag(cmd)
	},
}

// ReleasePrCmd pushes the branch and opens the release PR
var ReleasePrCmd = &cobra.Command{
	Use:   "pr",
	Short: "Push branch and open a release PR",
	Long: `Push the given branch and open a release pull request through the
gh CLI. The PR body lists each pending package bump with its summaries.

Example:
  monokit release pr --branch release/2026-08`,
	RunE: func(cmd *cobra.Command, args []string) error {
		branch, _ := cmd.Flags().GetString("branch")
		draft, _ := cmd.Flags().GetBool("draft")
		if branch == "" {
			return errors.New("--branch is required")
		}
		return runReleasePR(cmd, branch, draft)
	},
}

func init() {
	ReleaseAddCmd.Flags().StringSliceP("package", "p", nil, "Package to bump (repeatable)")
	ReleaseAddCmd.Flags().String("bump", "patch", "Bump level: patch, minor, or major")
	ReleaseAddCmd.Flags().String("summary", "", "Markdown summary of the change")

	ReleaseVersionCmd.Flags().Bool("dry-run", false, "Show the release plan without applying it")

	ReleasePrCmd.Flags().String("branch", "", "Head branch holding the version bumps")
	ReleasePrCmd.Flags().Bool("draft", false, "Open the PR as a draft")

	ReleaseCmd.AddCommand(ReleaseAddCmd)
	ReleaseCmd.AddCommand(ReleaseVersionCmd)
	ReleaseCmd.AddCommand(ReleaseTagCmd)
	ReleaseCmd.AddCommand(ReleasePrCmd)
}

func newReleaseManager(cmd *cobra.Command) (*release.Manager, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	resolver, root, err := newResolver(cmd, cfg)
	if err != nil {
		return nil, err
	}
	return release.NewManager(resolver, root, cfg.Release), nil
}

func runReleaseAdd(cmd *cobra.Command, bumps map[string]release.Bump, summary string) error {
	mgr, err := newReleaseManager(cmd)
	if err != nil {
		return err
	}

	path, err := mgr.Add(bumps, summary)
	if err != nil {
		return err
	}
	pterm.Success.Printf("Recorded changeset %s\n", path)
	return nil
}

func runReleaseVersion(cmd *cobra.Command, dryRun bool) error {
	mgr, err := newReleaseManager(cmd)
	if err != nil {
		return err
	}

	if dryRun {
		plan, _, err := mgr.Plan(cmd.Context())
		if err != nil {
			return err
		}
		pterm.Info.Printf("Release plan (%d packages):\n", len(plan))
		printPlan(plan)
		return nil
	}

	plan, err := mgr.Version(cmd.Context())
	if err != nil {
		if errors.Is(err, errors.ErrNoChangesets) {
			pterm.Warning.Println("No pending changesets")
			return nil
		}
		return err
	}

	pterm.Success.Printf("Versioned %d packages:\n", len(plan))
	printPlan(plan)
	return nil
}

func runReleaseTag(cmd *cobra.Command) error {
	mgr, err := newReleaseManager(cmd)
	if err != nil {
		return err
	}

	created, err := mgr.Tag(cmd.Context())
	if err != nil {
		return err
	}
	if len(created) == 0 {
		pterm.Info.Println("All packages already tagged")
		return nil
	}
	for _, tag := range created {
		pterm.Success.Printf("  %s %s\n", glyph.Tag, tag)
	}
	return nil
}

func runReleasePR(cmd *cobra.Command, branch string, draft bool) error {
	mgr, err := newReleaseManager(cmd)
	if err != nil {
		return err
	}

	// Pending changesets give the richest PR body. After `release version`
	// has consumed them the body falls back to current package versions.
	plan, _, err := mgr.Plan(cmd.Context())
	if errors.Is(err, errors.ErrNoChangesets) {
		plan, err = mgr.CurrentVersions(cmd.Context())
	}
	if err != nil {
		return err
	}

	url, err := mgr.PullRequest(cmd.Context(), branch, plan, draft)
	if err != nil {
		return err
	}
	pterm.Success.Printf("Opened %s\n", url)
	return nil
}

func printPlan(plan []release.PackageRelease) {
	for _, rel := range plan {
		pterm.Printf("  %s: %s → %s (%s)\n", rel.Name, rel.OldVersion, rel.NewVersion, rel.Bump)
	}
}
