package pkgmeta

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solterra/monokit/manifest"
)

var ignoreDesc = &manifest.EntryPointDescriptor{
	JSFile: []manifest.JSFileEntry{
		{Name: "button", File: "./dist/button", ExportKind: manifest.ExportKindDefault},
		{Name: "hooks/use-theme", File: "./dist/hooks/use-theme", ExportKind: manifest.ExportKindDefault},
	},
}

func scaffoldIgnore(t *testing.T, content string) string {
	t.Helper()
	pkgDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(pkgDir, ".gitignore"), []byte(content), 0644))
	return pkgDir
}

func readIgnore(t *testing.T, pkgDir string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(pkgDir, ".gitignore"))
	require.NoError(t, err)
	return string(data)
}

func TestRegisterIgnoreFilesAppendsBlock(t *testing.T) {
	pkgDir := scaffoldIgnore(t, "node_modules\ndist\n")
	require.NoError(t, RegisterIgnoreFiles(pkgDir, ".gitignore", ignoreDesc))

	got := readIgnore(t, pkgDir)
	assert.Equal(t, "node_modules\ndist\n"+
		StartMarker+"\n"+
		"button.js\nbutton.esm.js\nbutton.d.ts\nbutton.esm.d.ts\n"+
		"hooks/use-theme.js\nhooks/use-theme.esm.js\nhooks/use-theme.d.ts\nhooks/use-theme.esm.d.ts\n"+
		EndMarker+"\n", got)
}

func TestRegisterIgnoreFilesIdempotent(t *testing.T) {
	pkgDir := scaffoldIgnore(t, "node_modules\n")

	require.NoError(t, RegisterIgnoreFiles(pkgDir, ".gitignore", ignoreDesc))
	first := readIgnore(t, pkgDir)

	require.NoError(t, RegisterIgnoreFiles(pkgDir, ".gitignore", ignoreDesc))
	second := readIgnore(t, pkgDir)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, strings.Count(second, StartMarker), "exactly one generated block")
	assert.Equal(t, 1, strings.Count(second, EndMarker))
}

func TestRegisterIgnoreFilesReplacesBlockInPlace(t *testing.T) {
	pkgDir := scaffoldIgnore(t, "node_modules\n"+
		StartMarker+"\nobsolete.js\n"+EndMarker+"\n"+
		"# local overrides\n.env\n")

	require.NoError(t, RegisterIgnoreFiles(pkgDir, ".gitignore", ignoreDesc))
	got := readIgnore(t, pkgDir)

	assert.NotContains(t, got, "obsolete.js", "stale block content must be removed")
	assert.True(t, strings.HasSuffix(got, "# local overrides\n.env\n"),
		"content after the block must be preserved untouched: %q", got)
	assert.True(t, strings.HasPrefix(got, "node_modules\n"+StartMarker+"\n"),
		"block must stay at its original position: %q", got)
}

func TestRegisterIgnoreFilesTruncatedBlock(t *testing.T) {
	// Start marker with a missing end marker claims the rest of the file
	pkgDir := scaffoldIgnore(t, "node_modules\n"+StartMarker+"\norphan.js\n")

	require.NoError(t, RegisterIgnoreFiles(pkgDir, ".gitignore", ignoreDesc))
	got := readIgnore(t, pkgDir)

	assert.NotContains(t, got, "orphan.js")
	assert.Equal(t, 1, strings.Count(got, StartMarker))
}

func TestRegisterIgnoreFilesMissingFile(t *testing.T) {
	err := RegisterIgnoreFiles(t.TempDir(), ".gitignore", ignoreDesc)
	assert.Error(t, err)
}
