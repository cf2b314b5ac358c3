package pkgmeta

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solterra/monokit/manifest"
)

func scaffoldPackage(t *testing.T, packageJSON string) string {
	t.Helper()
	pkgDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(pkgDir, "package.json"), []byte(packageJSON), 0644))
	return pkgDir
}

func readMeta(t *testing.T, pkgDir string) map[string]interface{} {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(pkgDir, "package.json"))
	require.NoError(t, err)
	var meta map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &meta))
	return meta
}

func TestRegisterExposedFilesJSEntry(t *testing.T) {
	pkgDir := scaffoldPackage(t, `{"name": "@solterra/buttons", "version": "1.4.0", "files": ["old"], "exports": {"./stale": "./stale.js"}}`)

	desc := &manifest.EntryPointDescriptor{
		JSFile: []manifest.JSFileEntry{
			{Name: "button", File: "./dist/button", ExportKind: manifest.ExportKindDefault},
		},
	}
	require.NoError(t, RegisterExposedFiles(pkgDir, desc))

	meta := readMeta(t, pkgDir)

	// Untouched fields pass through
	assert.Equal(t, "@solterra/buttons", meta["name"])
	assert.Equal(t, "1.4.0", meta["version"])

	// files fully replaced: dist plus the four stubs
	assert.Equal(t, []interface{}{"dist", "button.js", "button.esm.js", "button.d.ts", "button.esm.d.ts"},
		meta["files"])

	exports := meta["exports"].(map[string]interface{})
	assert.NotContains(t, exports, "./stale", "exports must be fully replaced")

	bare := exports["./button"].(map[string]interface{})
	assert.Equal(t, "./button.d.ts", bare["types"])
	// Both conditions resolve to the ESM stub
	assert.Equal(t, "./button.esm.js", bare["import"])
	assert.Equal(t, "./button.esm.js", bare["require"])

	cjs := exports["./button.cjs"].(map[string]interface{})
	assert.Equal(t, "./button.d.ts", cjs["types"])
	assert.Equal(t, "./button.js", cjs["import"])
	assert.Equal(t, "./button.js", cjs["require"])
}

func TestRegisterExposedFilesStaticEntry(t *testing.T) {
	pkgDir := scaffoldPackage(t, `{"name": "@solterra/theme"}`)

	desc := &manifest.EntryPointDescriptor{
		StaticFile: []manifest.StaticFileEntry{
			{Name: "styles", File: "./dist/styles.css"},
		},
	}
	require.NoError(t, RegisterExposedFiles(pkgDir, desc))

	meta := readMeta(t, pkgDir)
	exports := meta["exports"].(map[string]interface{})
	assert.Equal(t, "./dist/styles.css", exports["./styles"])

	// Static entries generate no stubs and add no files
	assert.Equal(t, []interface{}{"dist"}, meta["files"])
}

func TestRegisterExposedFilesCustomEntry(t *testing.T) {
	pkgDir := scaffoldPackage(t, `{"name": "@solterra/icons"}`)

	desc := &manifest.EntryPointDescriptor{
		CustomConfig: []manifest.CustomConfigEntry{
			{
				Name:         ".",
				ExportConfig: manifest.ExportConfig{Conditions: map[string]string{"types": "./dist/index.d.ts", "default": "./dist/index.js"}},
				FilesConfig:  []string{"dist/index.js", "dist/index.d.ts"},
			},
			{
				Name:         "./package.json",
				ExportConfig: manifest.ExportConfig{Path: "./package.json"},
			},
		},
	}
	require.NoError(t, RegisterExposedFiles(pkgDir, desc))

	meta := readMeta(t, pkgDir)
	exports := meta["exports"].(map[string]interface{})

	// Custom names are NOT prefixed with "./"
	root := exports["."].(map[string]interface{})
	assert.Equal(t, "./dist/index.js", root["default"])
	assert.Equal(t, "./package.json", exports["./package.json"])

	assert.Equal(t, []interface{}{"dist", "dist/index.js", "dist/index.d.ts"}, meta["files"])
}

func TestRegisterExposedFilesMissingMetadata(t *testing.T) {
	err := RegisterExposedFiles(t.TempDir(), &manifest.EntryPointDescriptor{})
	assert.Error(t, err)
}

func TestRegisterExposedFilesMalformedMetadata(t *testing.T) {
	pkgDir := scaffoldPackage(t, `{"name": `)
	err := RegisterExposedFiles(pkgDir, &manifest.EntryPointDescriptor{})
	assert.Error(t, err)
}

func TestRegisterExposedFilesTrailingNewline(t *testing.T) {
	pkgDir := scaffoldPackage(t, `{"name": "@solterra/buttons"}`)
	require.NoError(t, RegisterExposedFiles(pkgDir, &manifest.EntryPointDescriptor{}))

	data, err := os.ReadFile(filepath.Join(pkgDir, "package.json"))
	require.NoError(t, err)
	assert.True(t, len(data) > 0 && data[len(data)-1] == '\n')
}
