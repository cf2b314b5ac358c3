package workspace

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/solterra/monokit/errors"
)

// ScanResolver resolves packages by reading the workspace manifest
// (pnpm-workspace.yaml) and globbing for package.json files. It needs no
// subprocess, which makes it the fallback when the package manager binary is
// unavailable (bare CI containers, tests).
type ScanResolver struct {
	// Root is the workspace root containing the manifest.
	Root string

	// ManifestFile is the manifest name relative to Root.
	ManifestFile string
}

// workspaceManifest models the packages stanza of pnpm-workspace.yaml.
type workspaceManifest struct {
	Packages []string `yaml:"packages"`
}

// packageJSON models the fields of package.json the scanner needs.
type packageJSON struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Private bool   `json:"private"`
}

// NewScanResolver creates a manifest-walking resolver rooted at root.
func NewScanResolver(root, manifestFile string) *ScanResolver {
	if manifestFile == "" {
		manifestFile = "pnpm-workspace.yaml"
	}
	return &ScanResolver{Root: root, ManifestFile: manifestFile}
}

// Resolve implements Resolver.
func (r *ScanResolver) Resolve(ctx context.Context, name string) (string, error) {
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

// List implements Resolver by expanding the manifest globs and reading each
// matched directory's package.json.
func (r *ScanResolver) List(_ context.Context) ([]Package, error) {
	manifestPath := filepath.Join(r.Root, r.ManifestFile)
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read workspace manifest %s", manifestPath)
	}

	var manifest workspaceManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, errors.Wrapf(err, "failed to parse workspace manifest %s", manifestPath)
	}

	var pkgs []Package
	seen := map[string]bool{}
	for _, pattern := range manifest.Packages {
		// Exclusion patterns (!docs/**) are honored by skipping; glob-level
		// exclusion is not needed for the flat layouts monokit targets.
		if strings.HasPrefix(pattern, "!") {
			continue
		}

		dirs, err := r.expandGlob(pattern)
		if err != nil {
			return nil, err
		}

		for _, dir := range dirs {
			pkg, ok := readPackageJSON(dir)
			if !ok || seen[pkg.Name] {
				continue
			}
			seen[pkg.Name] = true
			pkgs = append(pkgs, pkg)
		}
	}

	sortPackages(pkgs)
	return pkgs, nil
}

// expandGlob expands a workspace glob (packages/*, apps/**) into directories.
func (r *ScanResolver) expandGlob(pattern string) ([]string, error) {
	// `dir/**` means every directory below dir; filepath.Glob has no **, so
	// walk instead.
	if strings.HasSuffix(pattern, "/**") {
		base := filepath.Join(r.Root, strings.TrimSuffix(pattern, "/**"))
		var dirs []string
		err := filepath.WalkDir(base, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return nil // unreadable subtree, skip
			}
			if d.IsDir() && path != base {
				dirs = append(dirs, path)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to walk %s", base)
		}
		return dirs, nil
	}

	matches, err := filepath.Glob(filepath.Join(r.Root, pattern))
	if err != nil {
		return nil, errors.Wrapf(err, "bad workspace glob %q", pattern)
	}

	var dirs []string
	for _, match := range matches {
		info, err := os.Stat(match)
		if err == nil && info.IsDir() {
			dirs = append(dirs, match)
		}
	}
	return dirs, nil
}

// readPackageJSON reads dir/package.json into a Package.
// Returns ok=false when the file is missing, unparseable, or unnamed.
func readPackageJSON(dir string) (Package, bool) {
	data, err := os.ReadFile(filepath.Join(dir, "package.json"))
	if err != nil {
		return Package{}, false
	}

	var pj packageJSON
	if err := json.Unmarshal(data, &pj); err != nil || pj.Name == "" {
		return Package{}, false
	}

	return Package{Name: pj.Name, Dir: dir, Version: pj.Version, Private: pj.Private}, true
}
