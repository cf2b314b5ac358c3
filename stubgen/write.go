package stubgen

import (
	"os"
	"path/filepath"

	"github.com/solterra/monokit/errors"
	"github.com/solterra/monokit/logger"
)

// Write materializes planned artifacts under pkgDir, creating parent
// directories on demand and overwriting unconditionally. Filesystem failures
// surface immediately with no retry and no rollback; rerunning the
// synchronizer fully regenerates all owned outputs.
func Write(pkgDir string, artifacts []Artifact) error {
	for _, artifact := range artifacts {
		path := filepath.Join(pkgDir, artifact.Path)

		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return errors.Wrapf(err, "failed to create directory for %s", artifact.Path)
			}
		}

		if err := os.WriteFile(path, []byte(artifact.Content), 0644); err != nil {
			return errors.Wrapf(err, "failed to write stub %s", artifact.Path)
		}

		logger.SyncDebugw("Wrote stub", logger.FieldFile, artifact.Path)
	}

	return nil
}
