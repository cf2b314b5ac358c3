package workspace

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solterra/monokit/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func scaffoldWorkspace(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "pnpm-workspace.yaml"), "packages:\n  - \"packages/*\"\n  - \"!docs/**\"\n")
	writeFile(t, filepath.Join(root, "packages", "buttons", "package.json"),
		`{"name": "@solterra/buttons", "version": "1.4.0"}`)
	writeFile(t, filepath.Join(root, "packages", "theme", "package.json"),
		`{"name": "@solterra/theme", "version": "0.9.1", "private": true}`)
	// Directory without package.json must be ignored
	require.NoError(t, os.MkdirAll(filepath.Join(root, "packages", "scratch"), 0755))

	return root
}

func TestScanResolverList(t *testing.T) {
	root := scaffoldWorkspace(t)
	r := NewScanResolver(root, "pnpm-workspace.yaml")

	pkgs, err := r.List(context.Background())
	require.NoError(t, err)
	require.Len(t, pkgs, 2)

	// Sorted by name
	assert.Equal(t, "@solterra/buttons", pkgs[0].Name)
	assert.Equal(t, "1.4.0", pkgs[0].Version)
	assert.Equal(t, "@solterra/theme", pkgs[1].Name)
	assert.True(t, pkgs[1].Private)
}

func TestScanResolverResolve(t *testing.T) {
	root := scaffoldWorkspace(t)
	r := NewScanResolver(root, "pnpm-workspace.yaml")

	dir, err := r.Resolve(context.Background(), "@solterra/buttons")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "packages", "buttons"), dir)
}

func TestScanResolverNotFound(t *testing.T) {
	root := scaffoldWorkspace(t)
	r := NewScanResolver(root, "pnpm-workspace.yaml")

	_, err := r.Resolve(context.Background(), "@solterra/nonexistent")
	require.Error(t, err)
	assert.True(t, errors.IsPackageNotFound(err))
}

func TestScanResolverMissingManifest(t *testing.T) {
	r := NewScanResolver(t.TempDir(), "pnpm-workspace.yaml")
	_, err := r.List(context.Background())
	assert.Error(t, err)
}

func TestStaticResolver(t *testing.T) {
	s := Static{
		"@solterra/buttons": {Name: "@solterra/buttons", Dir: "/ws/packages/buttons"},
	}

	dir, err := s.Resolve(context.Background(), "@solterra/buttons")
	require.NoError(t, err)
	assert.Equal(t, "/ws/packages/buttons", dir)

	_, err = s.Resolve(context.Background(), "@solterra/missing")
	assert.True(t, errors.IsPackageNotFound(err))
}

func TestParseListPnpmJSON(t *testing.T) {
	r := NewCommandResolver("pnpm", "")
	output := []byte(`[
  {"name": "@solterra/buttons", "path": "/ws/packages/buttons", "version": "1.4.0"},
  {"name": "@solterra/theme", "path": "/ws/packages/theme", "version": "0.9.1", "private": true},
  {"path": "/ws"}
]`)

	pkgs, err := r.parseList(output)
	require.NoError(t, err)
	require.Len(t, pkgs, 2, "unnamed workspace root must be skipped")
	assert.Equal(t, "@solterra/buttons", pkgs[0].Name)
	assert.True(t, pkgs[1].Private)
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "/ws/packages/buttons", firstLine("/ws/packages/buttons\n"))
	assert.Equal(t, "/ws/packages/buttons", firstLine("/ws/packages/buttons\n/ws\n"))
	assert.Equal(t, "", firstLine("  \n"))
}

func TestFindRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "pnpm-workspace.yaml"),
		[]byte("packages:\n  - packages/*\n"), 0644))

	nested := filepath.Join(root, "packages", "buttons", "src")
	require.NoError(t, os.MkdirAll(nested, 0755))

	found, err := FindRoot(nested, "pnpm-workspace.yaml")
	require.NoError(t, err)
	assert.Equal(t, root, found)

	_, err = FindRoot(t.TempDir(), "pnpm-workspace.yaml")
	assert.Error(t, err)
}

func TestParseListYarnLineDelimited(t *testing.T) {
	root := t.TempDir()
	buttonsDir := filepath.Join(root, "packages", "buttons")
	require.NoError(t, os.MkdirAll(buttonsDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(buttonsDir, "package.json"),
		[]byte(`{"name":"@solterra/buttons","version":"1.4.0"}`+"\n"), 0644))

	r := NewCommandResolver("yarn", root)

	// One JSON object per line, not a JSON array
	output := []byte(`{"location":"packages/buttons","name":"@solterra/buttons"}
{"location":"packages/theme","name":"@solterra/theme"}
`)

	pkgs, err := r.parseList(output)
	require.NoError(t, err)
	require.Len(t, pkgs, 2)
	assert.Equal(t, "@solterra/buttons", pkgs[0].Name)
	assert.Equal(t, buttonsDir, pkgs[0].Dir)
	assert.Equal(t, "1.4.0", pkgs[0].Version, "version comes from package.json, the listing has none")
	assert.Equal(t, filepath.Join(root, "packages", "theme"), pkgs[1].Dir)
}

func TestParseListYarnIgnoresBannerLines(t *testing.T) {
	r := NewCommandResolver("yarn", "/ws")

	// yarn classic frames command output with banner and timing lines
	output := []byte(`yarn workspaces v1.22.19
{"location":"packages/buttons","name":"@solterra/buttons"}
Done in 0.07s.
`)

	pkgs, err := r.parseList(output)
	require.NoError(t, err)
	require.Len(t, pkgs, 1)
	assert.Equal(t, "@solterra/buttons", pkgs[0].Name)
	assert.Equal(t, filepath.Join("/ws", "packages", "buttons"), pkgs[0].Dir)
}

func TestCommandResolverArgs(t *testing.T) {
	yarn := NewCommandResolver("yarn", "/ws")
	assert.Equal(t, []string{"workspaces", "list", "--json"}, yarn.listArgs())

	pnpm := NewCommandResolver("pnpm", "/ws")
	assert.Equal(t, []string{"list", "--filter", "@solterra/buttons", "--depth", "-1", "--parseable"},
		pnpm.resolveArgs("@solterra/buttons"))
	assert.Equal(t, []string{"list", "--recursive", "--depth", "-1", "--json"}, pnpm.listArgs())

	npm := NewCommandResolver("npm", "/ws")
	assert.Equal(t, []string{"ls", "--workspace", "@solterra/buttons", "--parseable", "--depth", "0"},
		npm.resolveArgs("@solterra/buttons"))
}
