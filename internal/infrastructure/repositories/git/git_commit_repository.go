package git

import (
	"context"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/rangewriter/internal/domain/repositories"
)

const (
	defaultAuthorName  = "rangewriter"
	defaultAuthorEmail = "rangewriter@users.noreply.localhost"
)

// ErrNothingToCommit is returned when none of the given paths changed.
var ErrNothingToCommit = errors.New("nothing to commit")

// GitCommitRepository stages rewritten manifests and commits them in the
// enclosing Git worktree.
type GitCommitRepository struct {
	authorName  string
	authorEmail string
	now         func() time.Time
}

// NewGitCommitRepository creates a committer using the default author.
func NewGitCommitRepository() repositories.CommitRepository {
	return NewGitCommitRepositoryWithAuthor(defaultAuthorName, defaultAuthorEmail)
}

// NewGitCommitRepositoryWithAuthor creates a committer signing as name <email>.
func NewGitCommitRepositoryWithAuthor(name, email string) *GitCommitRepository {
	if name == "" {
		name = defaultAuthorName
	}
	if email == "" {
		email = defaultAuthorEmail
	}
	return &GitCommitRepository{authorName: name, authorEmail: email, now: time.Now}
}

// Commit stages paths (absolute or relative to dir) and records a single
// commit with message. dir may be any directory inside the worktree.
func (r *GitCommitRepository) Commit(ctx context.Context, dir string, paths []string, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return errors.Wrapf(err, "failed to open git repository at %s", dir)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return errors.Wrap(err, "failed to get worktree")
	}
	root := worktree.Filesystem.Root()

	for _, path := range paths {
		rel, relErr := relativeTo(root, dir, path)
		if relErr != nil {
			return relErr
		}
		if _, err = worktree.Add(rel); err != nil {
			return errors.Wrapf(err, "failed to stage %s", rel)
		}
		logger.Debugf("[git] Staged %s", rel)
	}

	status, err := worktree.Status()
	if err != nil {
		return errors.Wrap(err, "failed to read worktree status")
	}
	if !hasStaged(status) {
		return ErrNothingToCommit
	}

	hash, err := worktree.Commit(message, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  r.authorName,
			Email: r.authorEmail,
			When:  r.now(),
		},
	})
	if err != nil {
		return errors.Wrap(err, "failed to commit")
	}

	logger.Infof("[git] Committed %d file(s) as %s", len(paths), hash.String()[:7])
	return nil
}

func relativeTo(root, dir, path string) (string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to resolve %s", path)
	}
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return "", errors.Wrapf(err, "failed to resolve %s", root)
	}
	rel, err := filepath.Rel(rootAbs, abs)
	if err != nil {
		return "", errors.Wrapf(err, "%s is outside the worktree", path)
	}
	return filepath.ToSlash(rel), nil
}

func hasStaged(status gogit.Status) bool {
	for _, file := range status {
		if file.Staging != gogit.Unmodified && file.Staging != gogit.Untracked {
			return true
		}
	}
	return false
}
