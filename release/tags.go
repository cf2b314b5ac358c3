package release

import (
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/solterra/monokit/errors"
	"github.com/solterra/monokit/internal/util"
	"github.com/solterra/monokit/logger"
)

// Tagger identity for annotated release tags.
const (
	taggerName  = "monokit"
	taggerEmail = "release@monokit.dev"
)

// TagName expands a tag format template ({name}, {version}) for a package.
func TagName(format, name, version string) string {
	return util.ExpandPlaceholders(format, map[string]string{
		"name":    name,
		"version": version,
	})
}

// EnsureTag creates an annotated tag at HEAD of the repository at repoPath.
// Creation is idempotent: an existing tag of the same name is left untouched
// and reported with created=false, never an error, so release reruns are safe.
func EnsureTag(repoPath, tagName, message string) (created bool, err error) {
	repo, err := git.PlainOpenWithOptions(repoPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return false, errors.Wrapf(err, "failed to open repository at %s", repoPath)
	}

	if _, err := repo.Tag(tagName); err == nil {
		logger.TagInfow("Tag exists, skipping", logger.FieldTagName, tagName)
		return false, nil
	} else if !errors.Is(err, git.ErrTagNotFound) {
		return false, errors.Wrapf(err, "failed to look up tag %s", tagName)
	}

	head, err := repo.Head()
	if err != nil {
		return false, errors.Wrap(err, "failed to resolve HEAD")
	}

	_, err = repo.CreateTag(tagName, head.Hash(), &git.CreateTagOptions{
		Tagger: &object.Signature{
			Name:  taggerName,
			Email: taggerEmail,
			When:  time.Now(),
		},
		Message: message,
	})
	if err != nil {
		return false, errors.Wrapf(err, "failed to create tag %s", tagName)
	}

	logger.TagInfow("Tagged release", logger.FieldTagName, tagName)
	return true, nil
}
