// Package stubgen synthesizes the proxy files that keep package-root-relative
// import paths working without shipping the compiled tree at those names.
//
// For each declared JS entry it emits four stubs re-exporting from the
// compiled output: a CJS source stub, an ESM source stub, and their two
// type-declaration counterparts. Planning is pure; writing is a thin
// effectful shell (write.go) so content and path computation stay unit
// testable without a filesystem.
package stubgen

import (
	"strings"

	"github.com/solterra/monokit/errors"
	"github.com/solterra/monokit/manifest"
)

// ClientDirective marks generated JS stubs for client-side execution so they
// stay compatible with server/client component boundaries in the consuming
// framework. Emitted verbatim at the top of each JS stub.
const ClientDirective = "'use client';"

// Artifact is one planned stub: a path relative to the package root and its
// full content.
type Artifact struct {
	Path    string
	Content string
}

// Skipped records a jsFile entry that produced no artifacts, with the reason.
// Skips are logged, not fatal; sibling entries are unaffected.
type Skipped struct {
	Entry manifest.JSFileEntry
	Err   error
}

// GeneratedFileNames returns the four stub filenames for an entry name, in
// stable order: CJS source, ESM source, CJS declarations, ESM declarations.
// The name may contain subdirectories.
func GeneratedFileNames(name string) [4]string {
	return [4]string{
		name + ".js",
		name + ".esm.js",
		name + ".d.ts",
		name + ".esm.d.ts",
	}
}

// TargetPath adjusts the compiled-artifact path for an entry's nesting depth.
// The generated stub lives depth directories below the package root while the
// descriptor expresses file relative to the root, so the path gains one ../
// per separator. A leading ./ is stripped first to avoid producing .././ runs.
func TargetPath(entry manifest.JSFileEntry) string {
	depth := entry.Depth()
	if depth == 0 {
		return entry.File
	}

	file := strings.TrimPrefix(entry.File, "./")
	return strings.Repeat("../", depth) + file
}

// PlanEntry computes the four artifacts for one jsFile entry.
//
// Unsupported export kinds and named exports with no entry points return a
// skippable error: no content for any of the four files, no partial writes.
func PlanEntry(entry manifest.JSFileEntry) ([]Artifact, error) {
	switch entry.ExportKind {
	case manifest.ExportKindDefault:
		return planDefaultExport(entry), nil
	case manifest.ExportKindNamed:
		if len(entry.EntryPoint) == 0 {
			return nil, errors.Wrap(errors.ErrEmptyEntryPoint, entry.Name)
		}
		return planNamedExport(entry), nil
	default:
		return nil, errors.Wrapf(errors.ErrUnsupportedExportKind, "%s: %q", entry.Name, entry.ExportKind)
	}
}

// Plan computes artifacts for every jsFile entry in the descriptor.
// Entries that fail planning are collected in skipped and do not abort
// siblings.
func Plan(desc *manifest.EntryPointDescriptor) (artifacts []Artifact, skipped []Skipped) {
	for _, entry := range desc.JSFile {
		planned, err := PlanEntry(entry)
		if err != nil {
			skipped = append(skipped, Skipped{Entry: entry, Err: err})
			continue
		}
		artifacts = append(artifacts, planned...)
	}
	return artifacts, skipped
}

func planDefaultExport(entry manifest.JSFileEntry) []Artifact {
	names := GeneratedFileNames(entry.Name)
	target := TargetPath(entry)

	return []Artifact{
		{Path: names[0], Content: ClientDirective + "\nmodule.exports = require('" + target + "');\n"},
		{Path: names[1], Content: ClientDirective + "\nexport { default } from '" + target + ".esm';\n"},
		{Path: names[2], Content: "export { default } from '" + target + "';\n"},
		{Path: names[3], Content: "export { default } from '" + target + ".esm';\n"},
	}
}

func planNamedExport(entry manifest.JSFileEntry) []Artifact {
	names := GeneratedFileNames(entry.Name)
	target := TargetPath(entry)

	// Value list: runtime exports only, interface-marked entries excluded.
	// Declaration list: everything, interface entries with a type qualifier.
	var values, decls []string
	for _, ep := range entry.EntryPoint {
		if ep.TypeOnly {
			decls = append(decls, "type "+ep.Name)
			continue
		}
		values = append(values, ep.Name)
		decls = append(decls, ep.Name)
	}
	valueList := strings.Join(values, ", ")
	declList := strings.Join(decls, ", ")

	return []Artifact{
		{Path: names[0], Content: ClientDirective + "\nconst { " + valueList + " } = require('" + target + "');\nmodule.exports = { " + valueList + " };\n"},
		{Path: names[1], Content: ClientDirective + "\nexport { " + valueList + " } from '" + target + ".esm';\n"},
		{Path: names[2], Content: "export { " + declList + " } from '" + target + "';\n"},
		{Path: names[3], Content: "export { " + declList + " } from '" + target + ".esm';\n"},
	}
}
