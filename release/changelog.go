package release

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/solterra/monokit/errors"
)

// PrependChangelog inserts a version section at the top of the package's
// CHANGELOG.md, below the title heading when one exists. A missing changelog
// is created with the package name as title.
func PrependChangelog(pkgDir, pkgName, version string, summaries []string) error {
	path := filepath.Join(pkgDir, "CHANGELOG.md")

	var sb strings.Builder
	sb.WriteString("## " + version + "\n\n")
	for _, summary := range summaries {
		sb.WriteString("- " + strings.TrimSpace(summary) + "\n")
	}
	sb.WriteString("\n")
	entry := sb.String()

	existing, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return errors.Wrapf(err, "failed to read %s", path)
		}
		content := "# " + pkgName + "\n\n" + entry
		return writeChangelog(path, content)
	}

	content := string(existing)
	if strings.HasPrefix(content, "# ") {
		// Keep the title heading, insert below it
		if i := strings.Index(content, "\n\n"); i >= 0 {
			return writeChangelog(path, content[:i+2]+entry+content[i+2:])
		}
	}
	return writeChangelog(path, entry+content)
}

func writeChangelog(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}
