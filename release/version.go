package release

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/Masterminds/semver/v3"

	"github.com/solterra/monokit/errors"
)

// PackageRelease describes one package's pending version change.
type PackageRelease struct {
	Name       string
	Dir        string
	OldVersion string
	NewVersion string
	Bump       Bump
	Summaries  []string
}

// Apply bumps a semver string by one level.
func Apply(version string, bump Bump) (string, error) {
	v, err := semver.StrictNewVersion(version)
	if err != nil {
		return "", errors.Wrapf(err, "invalid version %q", version)
	}

	var next semver.Version
	switch bump {
	case BumpMajor:
		next = v.IncMajor()
	case BumpMinor:
		next = v.IncMinor()
	case BumpPatch:
		next = v.IncPatch()
	default:
		return "", errors.Newf("unknown bump level %q", bump)
	}
	return next.String(), nil
}

// ComputePlan folds all changesets into one release per affected package.
// The highest bump level wins; summaries accumulate in changeset order.
// A changeset naming a package absent from current is an error: releasing
// half a changeset would leave the workspace inconsistent.
func ComputePlan(changesets []Changeset, current map[string]PackageRelease) ([]PackageRelease, error) {
	pending := map[string]*PackageRelease{}

	for _, cs := range changesets {
		for name, bump := range cs.Bumps {
			base, ok := current[name]
			if !ok {
				return nil, errors.Wrapf(errors.ErrPackageNotFound, "changeset %s references %s", filepath.Base(cs.Path), name)
			}

			rel, ok := pending[name]
			if !ok {
				rel = &PackageRelease{Name: name, Dir: base.Dir, OldVersion: base.OldVersion, Bump: bump}
				pending[name] = rel
			} else {
				rel.Bump = Highest(rel.Bump, bump)
			}
			if cs.Summary != "" {
				rel.Summaries = append(rel.Summaries, cs.Summary)
			}
		}
	}

	plan := make([]PackageRelease, 0, len(pending))
	for _, rel := range pending {
		next, err := Apply(rel.OldVersion, rel.Bump)
		if err != nil {
			return nil, errors.Wrapf(err, "package %s", rel.Name)
		}
		rel.NewVersion = next
		plan = append(plan, *rel)
	}

	sort.Slice(plan, func(i, j int) bool { return plan[i].Name < plan[j].Name })
	return plan, nil
}

// SetPackageVersion rewrites the version field of pkgDir/package.json,
// passing every other field through unchanged.
func SetPackageVersion(pkgDir, version string) error {
	path := filepath.Join(pkgDir, "package.json")

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", path)
	}

	var meta map[string]interface{}
	if err := json.Unmarshal(data, &meta); err != nil {
		return errors.Wrapf(err, "malformed %s", path)
	}

	meta["version"] = version

	out, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal package metadata")
	}
	out = append(out, '\n')

	if err := os.WriteFile(path, out, 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}
