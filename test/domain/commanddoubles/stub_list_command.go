//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/rangewriter/internal/domain/commands"
)

// StubListCommand is a stub implementation of commands.List.
type StubListCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Listed           []commands.ListedManifest
	LastPath         string
}

var _ commands.List = (*StubListCommand)(nil)

func (s *StubListCommand) Execute(_ context.Context, path string) ([]commands.ListedManifest, error) {
	s.ExecuteCallCount++
	s.LastPath = path
	return s.Listed, s.ExecuteErr
}
