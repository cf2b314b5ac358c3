package pkgmeta

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/solterra/monokit/errors"
	"github.com/solterra/monokit/manifest"
	"github.com/solterra/monokit/stubgen"
)

// Ignore-file block markers. Content between them is fully owned by monokit
// and must not be hand-edited.
const (
	StartMarker = "### Start Generated Section"
	EndMarker   = "### End Generated Section"
)

// RegisterIgnoreFiles rewrites the ignore file's generated-section block to
// list the four stub filenames of every jsFile entry.
//
// An existing block is replaced in place so surrounding content keeps its
// position byte-for-byte; with no existing block, a fresh one is appended.
// Reruns with an unchanged descriptor are idempotent.
func RegisterIgnoreFiles(pkgDir, ignoreFile string, desc *manifest.EntryPointDescriptor) error {
	path := filepath.Join(pkgDir, ignoreFile)

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", path)
	}

	lines := strings.Split(string(data), "\n")
	block := generatedBlock(desc)

	start, end := findBlock(lines)
	var out []string
	if start >= 0 {
		out = append(out, lines[:start]...)
		out = append(out, block...)
		out = append(out, lines[end+1:]...)
	} else {
		out = lines
		// Drop a single trailing empty line so the block lands after the
		// last entry, then restore the trailing newline via Join
		if len(out) > 0 && out[len(out)-1] == "" {
			out = out[:len(out)-1]
		}
		out = append(out, block...)
		out = append(out, "")
	}

	if err := os.WriteFile(path, []byte(strings.Join(out, "\n")), 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}

	return nil
}

// generatedBlock builds the marker-delimited block listing every generated
// stub filename.
func generatedBlock(desc *manifest.EntryPointDescriptor) []string {
	block := []string{StartMarker}
	for _, entry := range desc.JSFile {
		names := stubgen.GeneratedFileNames(entry.Name)
		block = append(block, names[0], names[1], names[2], names[3])
	}
	block = append(block, EndMarker)
	return block
}

// findBlock locates an existing marker-delimited block. Returns start and end
// line indexes (inclusive), or -1, -1 when no block exists. A start marker
// without an end marker claims the rest of the file, keeping a truncated
// block from duplicating on rewrite.
func findBlock(lines []string) (int, int) {
	start := -1
	for i, line := range lines {
		switch strings.TrimSpace(line) {
		case StartMarker:
			if start < 0 {
				start = i
			}
		case EndMarker:
			if start >= 0 {
				return start, i
			}
		}
	}
	if start >= 0 {
		return start, len(lines) - 1
	}
	return -1, -1
}
