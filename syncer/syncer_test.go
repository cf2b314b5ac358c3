package syncer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solterra/monokit/manifest"
	"github.com/solterra/monokit/pkgmeta"
	"github.com/solterra/monokit/workspace"
)

const testDescriptor = `{
  "jsFile": [
    {
      "name": "button",
      "file": "./dist/button",
      "exportKind": "named export",
      "entryPoint": ["Button", {"type": "interface", "name": "ButtonProps"}]
    },
    {
      "name": "hooks/use-theme",
      "file": "./dist/hooks/use-theme",
      "exportKind": "default export"
    },
    {
      "name": "broken",
      "file": "./dist/broken",
      "exportKind": "side export"
    }
  ],
  "staticFile": [
    {"name": "styles", "file": "./dist/styles.css"}
  ]
}`

func scaffold(t *testing.T) (workspace.Resolver, string) {
	t.Helper()
	pkgDir := t.TempDir()

	write := func(rel, content string) {
		path := filepath.Join(pkgDir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	write("package.json", `{"name": "@solterra/buttons", "version": "1.4.0"}`)
	write(".gitignore", "node_modules\n")
	write(manifest.DefaultDescriptorPath, testDescriptor)
	write("dist/button.d.ts", "export declare const Button: unknown;\n")
	write("dist/button.js", "module.exports = {};\n")

	resolver := workspace.Static{
		"@solterra/buttons": {Name: "@solterra/buttons", Dir: pkgDir},
	}
	return resolver, pkgDir
}

func TestSyncWritesAllOutputs(t *testing.T) {
	resolver, pkgDir := scaffold(t)
	s := New(resolver, Options{})

	result, err := s.Sync(context.Background(), "@solterra/buttons")
	require.NoError(t, err)
	require.NotNil(t, result)

	// Two good entries made stubs; one was skipped
	assert.Len(t, result.Artifacts, 8)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "broken", result.Skipped[0].Entry.Name)

	// Stubs on disk, including the nested entry
	for _, rel := range []string{
		"button.js", "button.esm.js", "button.d.ts", "button.esm.d.ts",
		"hooks/use-theme.esm.js",
	} {
		_, err := os.Stat(filepath.Join(pkgDir, rel))
		assert.NoError(t, err, "missing %s", rel)
	}

	// Skipped entry produced no partial files
	_, err = os.Stat(filepath.Join(pkgDir, "broken.js"))
	assert.True(t, os.IsNotExist(err))

	// Metadata and ignore file rewritten
	meta, err := os.ReadFile(filepath.Join(pkgDir, "package.json"))
	require.NoError(t, err)
	assert.Contains(t, string(meta), `"./styles": "./dist/styles.css"`)

	ignore, err := os.ReadFile(filepath.Join(pkgDir, ".gitignore"))
	require.NoError(t, err)
	assert.Contains(t, string(ignore), pkgmeta.StartMarker)
	assert.Contains(t, string(ignore), "hooks/use-theme.esm.d.ts")
}

func TestSyncUnknownPackageIsNoOp(t *testing.T) {
	resolver, _ := scaffold(t)
	s := New(resolver, Options{})

	result, err := s.Sync(context.Background(), "@solterra/nonexistent")
	assert.NoError(t, err)
	assert.Nil(t, result)
}

func TestSyncMalformedDescriptorFails(t *testing.T) {
	resolver, pkgDir := scaffold(t)
	descPath := filepath.Join(pkgDir, manifest.DefaultDescriptorPath)
	require.NoError(t, os.WriteFile(descPath, []byte(`{"jsFile": [`), 0644))

	s := New(resolver, Options{})
	_, err := s.Sync(context.Background(), "@solterra/buttons")
	assert.Error(t, err)
}

func TestSyncDryRunWritesNothing(t *testing.T) {
	resolver, pkgDir := scaffold(t)
	s := New(resolver, Options{DryRun: true})

	result, err := s.Sync(context.Background(), "@solterra/buttons")
	require.NoError(t, err)
	assert.Len(t, result.Artifacts, 8)

	_, err = os.Stat(filepath.Join(pkgDir, "button.js"))
	assert.True(t, os.IsNotExist(err))

	ignore, err := os.ReadFile(filepath.Join(pkgDir, ".gitignore"))
	require.NoError(t, err)
	assert.NotContains(t, string(ignore), pkgmeta.StartMarker)
}

func TestSyncIsIdempotent(t *testing.T) {
	resolver, pkgDir := scaffold(t)
	s := New(resolver, Options{})

	_, err := s.Sync(context.Background(), "@solterra/buttons")
	require.NoError(t, err)
	first := snapshot(t, pkgDir)

	_, err = s.Sync(context.Background(), "@solterra/buttons")
	require.NoError(t, err)
	second := snapshot(t, pkgDir)

	assert.Equal(t, first, second)
}

func TestPostBuildMirrorsDeclarations(t *testing.T) {
	resolver, pkgDir := scaffold(t)
	s := New(resolver, Options{})

	result, err := s.PostBuild(context.Background(), "@solterra/buttons")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.NotEmpty(t, result.Mirrored)
	content, err := os.ReadFile(filepath.Join(pkgDir, "dist", "button.esm.d.ts"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "export * from './button';"))
}

func snapshot(t *testing.T, dir string) map[string]string {
	t.Helper()
	files := map[string]string{}
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(dir, path)
		files[rel] = string(data)
		return nil
	})
	require.NoError(t, err)
	return files
}
