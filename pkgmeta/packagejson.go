// Package pkgmeta keeps a package's published metadata consistent with the
// generated proxy files: the package.json files/exports fields and the ignore
// file's generated-section block.
package pkgmeta

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/solterra/monokit/errors"
	"github.com/solterra/monokit/manifest"
	"github.com/solterra/monokit/stubgen"
)

// conditionalExport is one exports-map value. Field order matters to
// consumers that read types first, so this is a struct rather than a map.
type conditionalExport struct {
	Types   string `json:"types"`
	Import  string `json:"import"`
	Require string `json:"require"`
}

// RegisterExposedFiles rewrites pkgDir/package.json so its files list and
// exports map match what the stub generator produces.
//
// The metadata object is read, mutated, and rewritten wholesale: files is
// reset to ["dist"] and exports to empty, then custom, static, and jsFile
// entries are applied in that order. All other fields pass through unchanged.
func RegisterExposedFiles(pkgDir string, desc *manifest.EntryPointDescriptor) error {
	path := filepath.Join(pkgDir, "package.json")

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", path)
	}

	var meta map[string]interface{}
	if err := json.Unmarshal(data, &meta); err != nil {
		return errors.Wrapf(err, "malformed %s", path)
	}

	files := []interface{}{"dist"}
	exports := map[string]interface{}{}

	// Custom overrides first: name used verbatim as the exports key
	for _, custom := range desc.CustomConfig {
		exports[custom.Name] = custom.ExportConfig.Value()
		for _, extra := range custom.FilesConfig {
			files = append(files, extra)
		}
	}

	// Static assets point directly at their file, no stubs involved
	for _, static := range desc.StaticFile {
		exports["./"+static.Name] = static.File
	}

	// JS entries expose the generated stubs. Both import and require of the
	// bare subpath resolve to the ESM stub; the .cjs subpath resolves to the
	// CJS stub.
	for _, entry := range desc.JSFile {
		names := stubgen.GeneratedFileNames(entry.Name)
		for _, name := range names {
			files = append(files, name)
		}

		exports["./"+entry.Name] = conditionalExport{
			Types:   "./" + names[2],
			Import:  "./" + names[1],
			Require: "./" + names[1],
		}
		exports["./"+entry.Name+".cjs"] = conditionalExport{
			Types:   "./" + names[2],
			Import:  "./" + names[0],
			Require: "./" + names[0],
		}
	}

	meta["files"] = files
	meta["exports"] = exports

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
