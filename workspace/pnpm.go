package workspace

import (
	"context"
	"encoding/json"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/solterra/monokit/errors"
	"github.com/solterra/monokit/logger"
)

// CommandResolver resolves packages by querying the workspace package manager.
// The query blocks on subprocess output before any generation proceeds.
type CommandResolver struct {
	// PackageManager is the binary to invoke: pnpm, npm, or yarn.
	PackageManager string

	// Root is the workspace root the subprocess runs in. Empty means the
	// current working directory.
	Root string
}

// NewCommandResolver creates a resolver for the given package manager binary.
func NewCommandResolver(packageManager, root string) *CommandResolver {
	if packageManager == "" {
		packageManager = "pnpm"
	}
	return &CommandResolver{PackageManager: packageManager, Root: root}
}

// Resolve implements Resolver by shelling out to the package manager.
//
//	pnpm list --filter <name> --depth -1 --parseable
//
// prints the package directory on the first line, or nothing when the filter
// matches no package.
//
// yarn resolves through the workspace listing instead: it has no quiet
// single-package directory query, and framing `yarn workspace <name> exec pwd`
// output with banner lines would make the first line a yarn version string,
// not a directory.
func (r *CommandResolver) Resolve(ctx context.Context, name string) (string, error) {
	if r.PackageManager == "yarn" {
		return r.resolveFromList(ctx, name)
	}

	args := r.resolveArgs(name)

	cmd := exec.CommandContext(ctx, r.PackageManager, args...)
	cmd.Dir = r.Root

	logger.Logger.Debugw("Resolving package directory",
		logger.FieldPackage, name,
		logger.FieldCommand, shellquote.Join(append([]string{r.PackageManager}, args...)...))

	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
			return "", errors.Wrapf(errors.ErrPackageNotFound, "%s: %s", name, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", errors.Wrapf(err, "workspace query for %s failed", name)
	}

	dir := firstLine(string(output))
	if dir == "" {
		return "", notFound(name)
	}
	return dir, nil
}

// List implements Resolver via a recursive parseable listing.
func (r *CommandResolver) List(ctx context.Context) ([]Package, error) {
	args := r.listArgs()

	cmd := exec.CommandContext(ctx, r.PackageManager, args...)
	cmd.Dir = r.Root

	output, err := cmd.Output()
	if err != nil {
		return nil, errors.Wrap(err, "workspace listing failed")
	}

	return r.parseList(output)
}

// resolveFromList finds one package through the full workspace listing.
func (r *CommandResolver) resolveFromList(ctx context.Context, name string) (string, error) {
	pkgs, err := r.List(ctx)
	if err != nil {
		return "", err
	}
	for _, pkg := range pkgs {
		if pkg.Name == name {
			return pkg.Dir, nil
		}
	}
	return "", notFound(name)
}

func (r *CommandResolver) resolveArgs(name string) []string {
	switch r.PackageManager {
	case "npm":
		return []string{"ls", "--workspace", name, "--parseable", "--depth", "0"}
	default: // pnpm
		return []string{"list", "--filter", name, "--depth", "-1", "--parseable"}
	}
}

func (r *CommandResolver) listArgs() []string {
	switch r.PackageManager {
	case "npm":
		return []string{"query", ".workspace"}
	case "yarn":
		return []string{"workspaces", "list", "--json"}
	default: // pnpm
		return []string{"list", "--recursive", "--depth", "-1", "--json"}
	}
}

// parseList decodes the package manager's listing output.
// pnpm and npm emit a JSON array of {name, path, version, private};
// yarn emits one JSON object per line and is parsed separately.
func (r *CommandResolver) parseList(output []byte) ([]Package, error) {
	if r.PackageManager == "yarn" {
		return r.parseYarnList(output)
	}

	var raw []struct {
		Name    string `json:"name"`
		Path    string `json:"path"`
		Version string `json:"version"`
		Private bool   `json:"private"`
	}
	if err := json.Unmarshal(output, &raw); err != nil {
		return nil, errors.Wrap(err, "failed to parse workspace listing")
	}

	pkgs := make([]Package, 0, len(raw))
	for _, entry := range raw {
		if entry.Name == "" {
			continue
		}
		pkgs = append(pkgs, Package{
			Name:    entry.Name,
			Dir:     entry.Path,
			Version: entry.Version,
			Private: entry.Private,
		})
	}
	sortPackages(pkgs)
	return pkgs, nil
}

// parseYarnList decodes `yarn workspaces list --json` output: newline-delimited
// JSON objects ({"location": ..., "name": ...}), possibly framed by non-JSON
// banner lines that yarn classic prints around command output. Locations are
// relative to the workspace root, and the listing carries neither version nor
// private, so both come from each package's package.json.
func (r *CommandResolver) parseYarnList(output []byte) ([]Package, error) {
	var pkgs []Package
	for _, line := range strings.Split(string(output), "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "{") {
			continue
		}

		var entry struct {
			Name     string `json:"name"`
			Location string `json:"location"`
		}
		if err := json.Unmarshal([]byte(line), &entry); err != nil || entry.Name == "" {
			continue
		}

		dir := filepath.Join(r.Root, entry.Location)
		if pkg, ok := readPackageJSON(dir); ok {
			pkgs = append(pkgs, pkg)
		} else {
			pkgs = append(pkgs, Package{Name: entry.Name, Dir: dir})
		}
	}
	sortPackages(pkgs)
	return pkgs, nil
}

func notFound(name string) error {
	return errors.NewPackageNotFound(name)
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}

func sortPackages(pkgs []Package) {
	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].Name < pkgs[j].Name })
}
