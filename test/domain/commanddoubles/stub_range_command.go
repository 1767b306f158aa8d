//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/rangewriter/internal/domain/commands"
)

// StubRangeCommand is a stub implementation of commands.Range.
type StubRangeCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Spec             string
	LastOpts         commands.RangeOptions
}

var _ commands.Range = (*StubRangeCommand)(nil)

func (s *StubRangeCommand) Execute(_ context.Context, opts commands.RangeOptions) (string, error) {
	s.ExecuteCallCount++
	s.LastOpts = opts
	return s.Spec, s.ExecuteErr
}
