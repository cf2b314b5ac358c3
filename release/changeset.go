// Package release implements the release workflow: changeset files recording
// pending version bumps, semver computation, changelog updates, idempotent
// git tagging, and release PR creation.
package release

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/solterra/monokit/errors"
)

// Bump is a semver bump level.
type Bump string

const (
	BumpPatch Bump = "patch"
	BumpMinor Bump = "minor"
	BumpMajor Bump = "major"
)

// rank orders bump levels so the highest wins when changesets disagree.
var rank = map[Bump]int{BumpPatch: 1, BumpMinor: 2, BumpMajor: 3}

// Valid reports whether b is a known bump level.
func (b Bump) Valid() bool {
	_, ok := rank[b]
	return ok
}

// Highest returns the greater of two bump levels.
func Highest(a, b Bump) Bump {
	if rank[b] > rank[a] {
		return b
	}
	return a
}

// Changeset is one pending release note: a YAML frontmatter block mapping
// package names to bump levels, followed by a markdown summary.
//
//	---
//	"@solterra/buttons": minor
//	---
//
//	Add ButtonGroup orientation prop.
type Changeset struct {
	// Path is the changeset file location, empty for unsaved changesets.
	Path string

	// Bumps maps package name to bump level.
	Bumps map[string]Bump

	// Summary is the markdown body describing the change.
	Summary string
}

const frontmatterFence = "---"

// ParseChangeset decodes a changeset file.
func ParseChangeset(data []byte) (*Changeset, error) {
	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	lines := strings.Split(content, "\n")

	if len(lines) == 0 || strings.TrimSpace(lines[0]) != frontmatterFence {
		return nil, errors.New("changeset missing frontmatter fence")
	}

	close := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == frontmatterFence {
			close = i
			break
		}
	}
	if close < 0 {
		return nil, errors.New("changeset frontmatter not closed")
	}

	var raw map[string]string
	frontmatter := strings.Join(lines[1:close], "\n")
	if err := yaml.Unmarshal([]byte(frontmatter), &raw); err != nil {
		return nil, errors.Wrap(err, "malformed changeset frontmatter")
	}
	if len(raw) == 0 {
		return nil, errors.New("changeset names no packages")
	}

	bumps := make(map[string]Bump, len(raw))
	for name, level := range raw {
		bump := Bump(level)
		if !bump.Valid() {
			return nil, errors.Newf("unknown bump level %q for %s", level, name)
		}
		bumps[name] = bump
	}

	return &Changeset{
		Bumps:   bumps,
		Summary: strings.TrimSpace(strings.Join(lines[close+1:], "\n")),
	}, nil
}

// ReadDir loads every .md changeset in dir, sorted by filename for
// deterministic processing. A missing directory reads as empty.
func ReadDir(dir string) ([]Changeset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to read changeset directory %s", dir)
	}

	var changesets []Changeset
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		// README.md in the changeset directory is documentation, not a changeset
		if strings.EqualFold(entry.Name(), "README.md") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read changeset %s", path)
		}

		cs, err := ParseChangeset(data)
		if err != nil {
			return nil, errors.Wrapf(err, "changeset %s", entry.Name())
		}
		cs.Path = path
		changesets = append(changesets, *cs)
	}

	sort.Slice(changesets, func(i, j int) bool { return changesets[i].Path < changesets[j].Path })
	return changesets, nil
}

// Write saves a new changeset into dir under a generated slug filename and
// returns its path.
func Write(dir string, bumps map[string]Bump, summary string) (string, error) {
	if len(bumps) == 0 {
		return "", errors.New("changeset names no packages")
	}
	for name, bump := range bumps {
		if !bump.Valid() {
			return "", errors.Newf("unknown bump level %q for %s", bump, name)
		}
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrapf(err, "failed to create changeset directory %s", dir)
	}

	// Stable key order for deterministic files
	names := make([]string, 0, len(bumps))
	for name := range bumps {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString(frontmatterFence + "\n")
	for _, name := range names {
		sb.WriteString("\"" + name + "\": " + string(bumps[name]) + "\n")
	}
	sb.WriteString(frontmatterFence + "\n\n")
	sb.WriteString(strings.TrimSpace(summary) + "\n")

	path := filepath.Join(dir, NewSlug()+".md")
	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return "", errors.Wrapf(err, "failed to write changeset %s", path)
	}
	return path, nil
}
