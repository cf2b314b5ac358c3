package release

import (
	"context"
	"os"
	"path/filepath"

	"github.com/solterra/monokit/config"
	"github.com/solterra/monokit/errors"
	"github.com/solterra/monokit/logger"
	"github.com/solterra/monokit/workspace"
)

// Manager drives the release workflow over a workspace.
type Manager struct {
	resolver workspace.Resolver
	root     string
	cfg      config.ReleaseConfig
}

// NewManager creates a release manager rooted at the workspace root.
func NewManager(resolver workspace.Resolver, root string, cfg config.ReleaseConfig) *Manager {
	return &Manager{resolver: resolver, root: root, cfg: cfg}
}

// Add records a new changeset and returns its path.
func (m *Manager) Add(bumps map[string]Bump, summary string) (string, error) {
	// Reject unknown packages up front so a typo surfaces at add time,
	// not at version time.
	for name := range bumps {
		if _, err := m.resolver.Resolve(context.Background(), name); err != nil {
			return "", err
		}
	}

	path, err := Write(m.changesetDir(), bumps, summary)
	if err != nil {
		return "", err
	}
	logger.ReleaseInfow("Recorded changeset", logger.FieldChangeset, path)
	return path, nil
}

// Plan folds pending changesets into the per-package release plan without
// touching any files. Used by Version and by dry-run reporting.
func (m *Manager) Plan(ctx context.Context) ([]PackageRelease, []Changeset, error) {
	changesets, err := ReadDir(m.changesetDir())
	if err != nil {
		return nil, nil, err
	}
	if len(changesets) == 0 {
		return nil, nil, errors.ErrNoChangesets
	}

	pkgs, err := m.resolver.List(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to enumerate workspace packages")
	}

	current := make(map[string]PackageRelease, len(pkgs))
	for _, pkg := range pkgs {
		current[pkg.Name] = PackageRelease{Name: pkg.Name, Dir: pkg.Dir, OldVersion: pkg.Version}
	}

	plan, err := ComputePlan(changesets, current)
	if err != nil {
		return nil, nil, err
	}
	return plan, changesets, nil
}

// Version consumes all pending changesets: bumps each affected package's
// version, prepends its changelog, and deletes the consumed changeset files.
// Returns the applied plan.
func (m *Manager) Version(ctx context.Context) ([]PackageRelease, error) {
	plan, changesets, err := m.Plan(ctx)
	if err != nil {
		return nil, err
	}

	for _, rel := range plan {
		if err := SetPackageVersion(rel.Dir, rel.NewVersion); err != nil {
			return nil, errors.Wrapf(err, "package %s", rel.Name)
		}
		if err := PrependChangelog(rel.Dir, rel.Name, rel.NewVersion, rel.Summaries); err != nil {
			return nil, errors.Wrapf(err, "package %s", rel.Name)
		}
		logger.ReleaseInfow("Bumped version",
			logger.FieldPackage, rel.Name,
			logger.FieldBump, string(rel.Bump),
			logger.FieldVersion, rel.NewVersion)
	}

	// Changesets are consumed only after every bump landed, so a failed run
	// leaves them in place for a retry.
	for _, cs := range changesets {
		if err := os.Remove(cs.Path); err != nil {
			return nil, errors.Wrapf(err, "failed to remove consumed changeset %s", cs.Path)
		}
	}

	return plan, nil
}

// CurrentVersions reports every public workspace package at its current
// version, with no pending bump. Used for PR bodies after changesets have
// already been consumed.
func (m *Manager) CurrentVersions(ctx context.Context) ([]PackageRelease, error) {
	pkgs, err := m.resolver.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to enumerate workspace packages")
	}

	var plan []PackageRelease
	for _, pkg := range pkgs {
		if pkg.Private || pkg.Version == "" {
			continue
		}
		plan = append(plan, PackageRelease{
			Name:       pkg.Name,
			Dir:        pkg.Dir,
			OldVersion: pkg.Version,
			NewVersion: pkg.Version,
		})
	}
	return plan, nil
}

// Tag creates the annotated git tag for every workspace package at its
// current version. Existing tags are skipped, so Tag is safe to rerun after
// a partial failure. Returns the tag names created on this run.
func (m *Manager) Tag(ctx context.Context) ([]string, error) {
	pkgs, err := m.resolver.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to enumerate workspace packages")
	}

	var created []string
	for _, pkg := range pkgs {
		if pkg.Private || pkg.Version == "" {
			continue
		}

		name := TagName(m.cfg.TagFormat, pkg.Name, pkg.Version)
		ok, err := EnsureTag(m.root, name, "Release "+pkg.Name+" "+pkg.Version)
		if err != nil {
			return created, errors.Wrapf(err, "package %s", pkg.Name)
		}
		if ok {
			created = append(created, name)
		}
	}
	return created, nil
}

// PullRequest pushes branch and opens a release PR for the given plan.
func (m *Manager) PullRequest(ctx context.Context, branch string, plan []PackageRelease, draft bool) (string, error) {
	return CreatePullRequest(ctx, m.root, plan, PullRequestOptions{
		Branch: branch,
		Base:   m.cfg.BaseBranch,
		Remote: m.cfg.Remote,
		Draft:  draft,
	})
}

func (m *Manager) changesetDir() string {
	dir := m.cfg.ChangesetDir
	if dir == "" {
		dir = ".changeset"
	}
	if !filepath.IsAbs(dir) {
		return filepath.Join(m.root, dir)
	}
	return dir
}
