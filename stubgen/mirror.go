package stubgen

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/solterra/monokit/errors"
	"github.com/solterra/monokit/internal/util"
)

// MirrorDeclarations scans the compiled output directory recursively and
// writes an ESM counterpart next to every plain declaration file, so each
// .d.ts gets an .esm.d.ts even when not listed in the descriptor.
//
// The scan is synchronous; it runs after the compiled output is complete and
// stable, so no coordination with writers is needed. Returns the mirrored
// file paths.
func MirrorDeclarations(distDir string) ([]string, error) {
	var mirrored []string

	err := filepath.WalkDir(distDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isPlainDeclaration(d.Name()) {
			return nil
		}

		base := strings.TrimSuffix(d.Name(), ".d.ts")
		content := "export * from './" + base + "';\nexport { default } from './" + base + "';\n"

		esmPath := filepath.Join(filepath.Dir(path), base+".esm.d.ts")
		if err := os.WriteFile(esmPath, []byte(content), 0644); err != nil {
			return errors.Wrapf(err, "failed to mirror declaration %s", path)
		}

		mirrored = append(mirrored, esmPath)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "declaration scan of %s failed", distDir)
	}

	return mirrored, nil
}

// isPlainDeclaration reports whether name is a declaration file that is not
// already a module-format-suffixed variant.
func isPlainDeclaration(name string) bool {
	if !strings.HasSuffix(name, ".d.ts") {
		return false
	}
	return !util.HasSuffixAny(name, ".esm.d.ts", ".cjs.d.ts")
}
