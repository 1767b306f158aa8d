//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/rangewriter/internal/domain/repositories"
)

// SpyCommitRepository implements repositories.CommitRepository as a spy.
type SpyCommitRepository struct {
	CommitErr   error
	CommitCalls []CommitCall
}

// CommitCall records a single invocation of Commit.
type CommitCall struct {
	Dir     string
	Paths   []string
	Message string
}

var _ repositories.CommitRepository = (*SpyCommitRepository)(nil)

func (s *SpyCommitRepository) Commit(_ context.Context, dir string, paths []string, message string) error {
	s.CommitCalls = append(s.CommitCalls, CommitCall{Dir: dir, Paths: paths, Message: message})
	return s.CommitErr
}

// DummyCommitRepository is a no-op implementation of repositories.CommitRepository.
type DummyCommitRepository struct{}

var _ repositories.CommitRepository = (*DummyCommitRepository)(nil)

func (d *DummyCommitRepository) Commit(context.Context, string, []string, string) error { return nil }
