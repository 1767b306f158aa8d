//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"path/filepath"

	"github.com/rios0rios0/rangewriter/internal/domain/entities"
	"github.com/rios0rios0/rangewriter/internal/domain/repositories"
)

// SpyManifestRepository implements repositories.ManifestRepository as a configurable spy.
type SpyManifestRepository struct {
	// --- identity ---
	ManifestName string
	FileName     string // Base name accepted by Supports

	// --- Read ---
	Dependencies map[string][]entities.Dependency // keyed by path
	ReadErr      error
	ReadPaths    []string

	// --- Write ---
	WriteErr   error
	WriteCalls []WriteCall
}

// WriteCall records a single invocation of Write.
type WriteCall struct {
	Path    string
	Results []entities.RewriteResult
}

var _ repositories.ManifestRepository = (*SpyManifestRepository)(nil)

func (s *SpyManifestRepository) Name() string { return s.ManifestName }

func (s *SpyManifestRepository) Supports(path string) bool {
	return filepath.Base(path) == s.FileName
}

func (s *SpyManifestRepository) Read(_ context.Context, path string) ([]entities.Dependency, error) {
	s.ReadPaths = append(s.ReadPaths, path)
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	return s.Dependencies[path], nil
}

// Write records the call and reports every changed result as applied.
func (s *SpyManifestRepository) Write(
	_ context.Context,
	path string,
	results []entities.RewriteResult,
) ([]entities.RewriteResult, error) {
	s.WriteCalls = append(s.WriteCalls, WriteCall{Path: path, Results: results})
	if s.WriteErr != nil {
		return nil, s.WriteErr
	}
	var applied []entities.RewriteResult
	for _, result := range results {
		if result.Changed() {
			applied = append(applied, result)
		}
	}
	return applied, nil
}
