// Package scm answers version-control questions through go-git, without
// shelling out to a git binary.
package scm

import (
	"log/slog"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Tags reads tag history from the repository containing Dir.
type Tags struct {
	Dir string
}

// LatestTagVersion returns the short name of the tag whose commit is newest.
// Any failure (no repository, no tags, unreadable objects) reports false;
// version resolution treats that as an ordinary fallthrough.
func (t *Tags) LatestTagVersion() (string, bool) {
	repo, err := git.PlainOpenWithOptions(t.Dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		slog.Debug("no repository for tag lookup", "dir", t.Dir, "error", err)
		return "", false
	}

	iter, err := repo.Tags()
	if err != nil {
		slog.Debug("listing tags failed", "dir", t.Dir, "error", err)
		return "", false
	}

	var (
		latest     string
		latestTime time.Time
	)
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		hash := ref.Hash()
		// Annotated tags point at a tag object, not the commit.
		if tagObj, tagErr := repo.TagObject(hash); tagErr == nil {
			hash = tagObj.Target
		}
		commit, commitErr := repo.CommitObject(hash)
		if commitErr != nil {
			return nil
		}
		when := commit.Committer.When
		if latest == "" || when.After(latestTime) {
			latest = ref.Name().Short()
			latestTime = when
		}
		return nil
	})
	if err != nil || latest == "" {
		return "", false
	}
	return latest, true
}

// FindRepoRoot walks up from dir to the enclosing worktree root. When dir is
// not inside a repository it is returned unchanged.
func FindRepoRoot(dir string) string {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return dir
	}
	wt, err := repo.Worktree()
	if err != nil {
		return dir
	}
	return wt.Filesystem.Root()
}
