package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solterra/monokit/errors"
)

const sampleDescriptor = `{
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
    }
  ],
  "staticFile": [
    {"name": "styles", "file": "./dist/styles.css"}
  ],
  "customConfig": [
    {
      "name": ".",
      "exportConfig": {"types": "./dist/index.d.ts", "default": "./dist/index.js"},
      "filesConfig": ["dist/index.js", "dist/index.d.ts"]
    },
    {
      "name": "./package.json",
      "exportConfig": "./package.json",
      "filesConfig": []
    }
  ]
}`

func TestParse(t *testing.T) {
	desc, err := Parse([]byte(sampleDescriptor))
	require.NoError(t, err)

	require.Len(t, desc.JSFile, 2)
	require.Len(t, desc.StaticFile, 1)
	require.Len(t, desc.CustomConfig, 2)

	named := desc.JSFile[0]
	assert.Equal(t, ExportKindNamed, named.ExportKind)
	require.Len(t, named.EntryPoint, 2)
	assert.Equal(t, EntryName{Name: "Button"}, named.EntryPoint[0])
	assert.Equal(t, EntryName{Name: "ButtonProps", TypeOnly: true}, named.EntryPoint[1])

	assert.Equal(t, 0, named.Depth())
	assert.Equal(t, 1, desc.JSFile[1].Depth())
}

func TestParseExportConfigShapes(t *testing.T) {
	desc, err := Parse([]byte(sampleDescriptor))
	require.NoError(t, err)

	root := desc.CustomConfig[0].ExportConfig
	require.NotNil(t, root.Conditions)
	assert.Equal(t, "./dist/index.js", root.Conditions["default"])
	assert.Equal(t, map[string]string{"types": "./dist/index.d.ts", "default": "./dist/index.js"},
		root.Value())

	plain := desc.CustomConfig[1].ExportConfig
	assert.Nil(t, plain.Conditions)
	assert.Equal(t, "./package.json", plain.Value())
}

func TestParseDefaultsAbsentSections(t *testing.T) {
	desc, err := Parse([]byte(`{}`))
	require.NoError(t, err)

	assert.NotNil(t, desc.JSFile)
	assert.NotNil(t, desc.StaticFile)
	assert.NotNil(t, desc.CustomConfig)
	assert.Empty(t, desc.JSFile)
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte(`{"jsFile": [{"name": }`))
	assert.Error(t, err)
}

func TestEntryNameRejectsUnknownMarker(t *testing.T) {
	var entry EntryName
	err := json.Unmarshal([]byte(`{"type": "enum", "name": "Color"}`), &entry)
	assert.Error(t, err)

	err = json.Unmarshal([]byte(`{"type": "interface"}`), &entry)
	assert.Error(t, err)
}

func TestEntryNameRoundTrip(t *testing.T) {
	for _, entry := range []EntryName{
		{Name: "Button"},
		{Name: "ButtonProps", TypeOnly: true},
	} {
		data, err := json.Marshal(entry)
		require.NoError(t, err)

		var decoded EntryName
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, entry, decoded)
	}
}

func TestRead(t *testing.T) {
	pkgDir := t.TempDir()
	descPath := filepath.Join(pkgDir, DefaultDescriptorPath)
	require.NoError(t, os.MkdirAll(filepath.Dir(descPath), 0755))
	require.NoError(t, os.WriteFile(descPath, []byte(sampleDescriptor), 0644))

	desc, err := Read(pkgDir, "")
	require.NoError(t, err)
	assert.Len(t, desc.JSFile, 2)
}

func TestReadMissingDescriptor(t *testing.T) {
	_, err := Read(t.TempDir(), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrDescriptorNotFound))
}

func TestDuplicateNames(t *testing.T) {
	desc := &EntryPointDescriptor{
		JSFile: []JSFileEntry{
			{Name: "button"},
			{Name: "avatar"},
			{Name: "button"},
		},
	}
	assert.Equal(t, []string{"button"}, desc.DuplicateNames())

	assert.Empty(t, (&EntryPointDescriptor{}).DuplicateNames())
}
