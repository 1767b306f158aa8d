//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/rangewriter/internal/domain/repositories"
)

// StubVersionsRepository implements repositories.VersionsRepository with a fixed answer.
type StubVersionsRepository struct {
	Versions  []string
	Err       error
	Requested []string
	Closed    int
}

var _ repositories.VersionsRepository = (*StubVersionsRepository)(nil)

func (s *StubVersionsRepository) AvailableVersions(_ context.Context, group, artifact string) ([]string, error) {
	s.Requested = append(s.Requested, group+":"+artifact)
	return s.Versions, s.Err
}

func (s *StubVersionsRepository) Close() error {
	s.Closed++
	return nil
}

// Factory returns a VersionsRepositoryFactory always yielding s and
// recording the requested sources.
func (s *StubVersionsRepository) Factory(sources *[]repositories.VersionsSource) repositories.VersionsRepositoryFactory {
	return func(source repositories.VersionsSource) (repositories.VersionsRepository, error) {
		if sources != nil {
			*sources = append(*sources, source)
		}
		return s, nil
	}
}
