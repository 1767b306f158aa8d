package repositories

import "context"

// CommitRepository records rewritten manifests in version control.
type CommitRepository interface {
	Commit(ctx context.Context, dir string, paths []string, message string) error
}
