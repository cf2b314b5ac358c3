package release

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/solterra/monokit/errors"
	"github.com/solterra/monokit/logger"
)

// PullRequestOptions controls release PR creation.
type PullRequestOptions struct {
	// Branch is the head branch holding the version bumps. Required.
	Branch string
	// Base is the branch the PR targets. Defaults to "main".
	Base string
	// Remote is the git remote pushed to. Defaults to "origin".
	Remote string
	// Title overrides the generated PR title.
	Title string
	// Draft opens the PR as a draft.
	Draft bool
}

// CreatePullRequest pushes the current branch and opens a release PR through
// the gh CLI. The PR body lists each package with its old and new version so
// reviewers see the full scope of the release at a glance.
func CreatePullRequest(ctx context.Context, repoPath string, plan []PackageRelease, opts PullRequestOptions) (string, error) {
	if opts.Branch == "" {
		return "", errors.New("release PR requires a branch name")
	}
	if opts.Base == "" {
		opts.Base = "main"
	}
	if opts.Remote == "" {
		opts.Remote = "origin"
	}
	if opts.Title == "" {
		opts.Title = prTitle(plan)
	}

	if err := runGit(ctx, repoPath, "push", "--set-upstream", opts.Remote, opts.Branch); err != nil {
		return "", errors.Wrapf(err, "failed to push branch %s", opts.Branch)
	}

	args := []string{"pr", "create",
		"--head", opts.Branch,
		"--base", opts.Base,
		"--title", opts.Title,
		"--body", prBody(plan),
	}
	if opts.Draft {
		args = append(args, "--draft")
	}

	logger.ReleaseInfow("Opening release PR",
		logger.FieldCommand, shellquote.Join(append([]string{"gh"}, args...)...))

	cmd := exec.CommandContext(ctx, "gh", args...)
	cmd.Dir = repoPath
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", errors.Newf("gh pr create failed: %s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", errors.Wrap(err, "failed to run gh pr create")
	}

	// gh prints the PR URL on success
	url := strings.TrimSpace(string(output))
	logger.ReleaseInfow("Release PR opened", logger.FieldTarget, url)
	return url, nil
}

func runGit(ctx context.Context, dir string, args ...string) error {
	logger.ReleaseDebugw("Running git",
		logger.FieldCommand, shellquote.Join(append([]string{"git"}, args...)...))

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	if output, err := cmd.CombinedOutput(); err != nil {
		return errors.Newf("git %s: %s", args[0], strings.TrimSpace(string(output)))
	}
	return nil
}

func prTitle(plan []PackageRelease) string {
	if len(plan) == 1 {
		return fmt.Sprintf("Release %s@%s", plan[0].Name, plan[0].NewVersion)
	}
	return fmt.Sprintf("Release %d packages", len(plan))
}

func prBody(plan []PackageRelease) string {
	var b strings.Builder
	b.WriteString("## Packages\n\n")
	for _, rel := range plan {
		if rel.Bump != "" {
			fmt.Fprintf(&b, "- `%s`: %s → %s (%s)\n", rel.Name, rel.OldVersion, rel.NewVersion, rel.Bump)
		} else {
			fmt.Fprintf(&b, "- `%s`: %s\n", rel.Name, rel.NewVersion)
		}
	}

	var changes []string
	for _, rel := range plan {
		for _, summary := range rel.Summaries {
			changes = append(changes, fmt.Sprintf("- **%s**: %s", rel.Name, summary))
		}
	}
	if len(changes) > 0 {
		b.WriteString("\n## Changes\n\n")
		b.WriteString(strings.Join(changes, "\n"))
		b.WriteString("\n")
	}
	return b.String()
}
