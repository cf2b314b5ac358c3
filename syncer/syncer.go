// Package syncer orchestrates one export-manifest synchronization run:
// descriptor read, then stub generation and metadata rewriting as concurrent
// independent tasks.
package syncer

import (
	"context"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/solterra/monokit/errors"
	"github.com/solterra/monokit/logger"
	"github.com/solterra/monokit/manifest"
	"github.com/solterra/monokit/pkgmeta"
	"github.com/solterra/monokit/stubgen"
	"github.com/solterra/monokit/workspace"
)

// Options configures a synchronizer run.
type Options struct {
	// DescriptorPath is the descriptor location relative to the package root.
	DescriptorPath string

	// IgnoreFile is the ignore file name relative to the package root.
	IgnoreFile string

	// DistDir is the compiled output directory relative to the package root.
	DistDir string

	// DryRun plans artifacts without writing anything.
	DryRun bool
}

// Result reports what one run produced.
type Result struct {
	PackageDir string
	Artifacts  []stubgen.Artifact
	Skipped    []stubgen.Skipped
	Mirrored   []string
}

// Syncer runs export-manifest synchronization for workspace packages.
type Syncer struct {
	resolver workspace.Resolver
	opts     Options
}

// New creates a Syncer with the given resolver and options.
func New(resolver workspace.Resolver, opts Options) *Syncer {
	if opts.DescriptorPath == "" {
		opts.DescriptorPath = manifest.DefaultDescriptorPath
	}
	if opts.IgnoreFile == "" {
		opts.IgnoreFile = ".gitignore"
	}
	if opts.DistDir == "" {
		opts.DistDir = "dist"
	}
	return &Syncer{resolver: resolver, opts: opts}
}

// Sync runs the full pipeline for one package: resolve its directory, read
// the descriptor, then run the stub generator and the two metadata mutations
// as concurrent tasks. The tasks share only the immutable descriptor and
// write disjoint files, so they need no coordination and carry no ordering
// guarantee.
//
// An unresolvable package is a warn-and-skip no-op returning (nil, nil);
// descriptor and filesystem failures are hard errors.
func (s *Syncer) Sync(ctx context.Context, pkgName string) (*Result, error) {
	pkgDir, err := s.resolver.Resolve(ctx, pkgName)
	if err != nil {
		if errors.IsPackageNotFound(err) {
			logger.SyncWarnw("Package not found in workspace, skipping", logger.FieldPackage, pkgName)
			return nil, nil
		}
		return nil, err
	}

	desc, err := manifest.Read(pkgDir, s.opts.DescriptorPath)
	if err != nil {
		return nil, err
	}

	for _, dup := range desc.DuplicateNames() {
		logger.SyncWarnw("Duplicate jsFile name, later entry overwrites earlier stubs",
			logger.FieldPackage, pkgName, logger.FieldEntry, dup)
	}

	artifacts, skipped := stubgen.Plan(desc)
	for _, skip := range skipped {
		logger.StubFailw("Entry produced no stubs",
			logger.FieldPackage, pkgName,
			logger.FieldEntry, skip.Entry.Name,
			logger.FieldKind, string(skip.Entry.ExportKind),
			logger.FieldError, skip.Err.Error())
	}

	result := &Result{PackageDir: pkgDir, Artifacts: artifacts, Skipped: skipped}
	if s.opts.DryRun {
		return result, nil
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		return stubgen.Write(pkgDir, artifacts)
	})
	g.Go(func() error {
		return pkgmeta.RegisterExposedFiles(pkgDir, desc)
	})
	g.Go(func() error {
		return pkgmeta.RegisterIgnoreFiles(pkgDir, s.opts.IgnoreFile, desc)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.SyncInfow("Generated stubs",
		logger.FieldPackage, pkgName,
		logger.FieldCount, len(artifacts))
	return result, nil
}

// PostBuild runs Sync and then mirrors plain declaration files in the
// compiled output directory. Mirroring is independent of the descriptor and
// runs after the concurrent phase, once dist is assumed complete and stable.
func (s *Syncer) PostBuild(ctx context.Context, pkgName string) (*Result, error) {
	result, err := s.Sync(ctx, pkgName)
	if err != nil || result == nil {
		return result, err
	}

	if s.opts.DryRun {
		return result, nil
	}

	mirrored, err := stubgen.MirrorDeclarations(filepath.Join(result.PackageDir, s.opts.DistDir))
	if err != nil {
		return nil, err
	}
	result.Mirrored = mirrored

	if len(mirrored) > 0 {
		logger.SyncInfow("Mirrored declarations",
			logger.FieldPackage, pkgName,
			logger.FieldCount, len(mirrored))
	}
	return result, nil
}
