package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/solterra/monokit/errors"
)

// DefaultDescriptorPath is the fixed relative location of the entry-point
// descriptor inside a package.
const DefaultDescriptorPath = "etc/config/entrypoint-file.json"

// Read loads the entry-point descriptor from its relative location inside
// pkgDir. Absent list fields default to empty slices.
//
// A missing descriptor returns an error wrapping ErrDescriptorNotFound;
// malformed JSON propagates as a hard parse failure aborting the run for
// that package.
func Read(pkgDir, relPath string) (*EntryPointDescriptor, error) {
	if relPath == "" {
		relPath = DefaultDescriptorPath
	}
	path := filepath.Join(pkgDir, relPath)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrDescriptorNotFound, path)
		}
		return nil, errors.Wrapf(err, "failed to read descriptor %s", path)
	}

	return Parse(data)
}

// Parse decodes descriptor JSON, defaulting absent sections to empty slices.
func Parse(data []byte) (*EntryPointDescriptor, error) {
	var desc EntryPointDescriptor
	if err := json.Unmarshal(data, &desc); err != nil {
		return nil, errors.Wrap(err, "malformed entry-point descriptor")
	}

	if desc.JSFile == nil {
		desc.JSFile = []JSFileEntry{}
	}
	if desc.StaticFile == nil {
		desc.StaticFile = []StaticFileEntry{}
	}
	if desc.CustomConfig == nil {
		desc.CustomConfig = []CustomConfigEntry{}
	}

	return &desc, nil
}
