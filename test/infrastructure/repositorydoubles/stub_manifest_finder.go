//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/rangewriter/internal/domain/repositories"
)

// StubManifestFinder implements repositories.ManifestFinder with a fixed answer.
type StubManifestFinder struct {
	Paths     []string
	FindErr   error
	FindRoots []string
}

var _ repositories.ManifestFinder = (*StubManifestFinder)(nil)

func (s *StubManifestFinder) Find(_ context.Context, root string) ([]string, error) {
	s.FindRoots = append(s.FindRoots, root)
	return s.Paths, s.FindErr
}
