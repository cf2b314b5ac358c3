// Package workspace resolves package names to directories within the monorepo.
//
// Resolution is abstracted behind the Resolver interface so the synchronizer
// core stays independent of the process environment: production code shells
// out to the workspace package manager, tests inject a map-backed fake.
package workspace

import (
	"context"
)

// Package identifies one workspace package.
type Package struct {
	Name    string `json:"name"`
	Dir     string `json:"dir"`
	Version string `json:"version,omitempty"`
	Private bool   `json:"private,omitempty"`
}

// Resolver maps workspace package names to their directories.
type Resolver interface {
	// Resolve returns the absolute directory of the named package.
	// Returns an error wrapping errors.ErrPackageNotFound when the
	// workspace query yields nothing.
	Resolve(ctx context.Context, name string) (string, error)

	// List enumerates every package in the workspace.
	List(ctx context.Context) ([]Package, error)
}

// Static is a map-backed Resolver for tests and offline use.
type Static map[string]Package

// Resolve implements Resolver.
func (s Static) Resolve(_ context.Context, name string) (string, error) {
	if pkg, ok := s[name]; ok {
		return pkg.Dir, nil
	}
	return "", notFound(name)
}

// List implements Resolver.
func (s Static) List(_ context.Context) ([]Package, error) {
	pkgs := make([]Package, 0, len(s))
	for _, pkg := range s {
		pkgs = append(pkgs, pkg)
	}
	sortPackages(pkgs)
	return pkgs, nil
}
