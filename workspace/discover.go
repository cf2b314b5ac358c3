package workspace

import (
	"os"
	"path/filepath"

	"github.com/solterra/monokit/errors"
)

// FindRoot walks up from start looking for the workspace manifest
// (pnpm-workspace.yaml by default) and returns the directory holding it.
func FindRoot(start, manifestFile string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", errors.Wrapf(err, "failed to resolve %s", start)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, manifestFile)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.Newf("no %s found above %s", manifestFile, start)
		}
		dir = parent
	}
}
