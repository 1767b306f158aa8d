//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/rangewriter/internal/domain/commands"
)

// StubRewriteCommand is a stub implementation of commands.Rewrite.
type StubRewriteCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Report           *commands.RewriteReport
	LastOpts         commands.RewriteOptions
}

var _ commands.Rewrite = (*StubRewriteCommand)(nil)

func (s *StubRewriteCommand) Execute(_ context.Context, opts commands.RewriteOptions) (*commands.RewriteReport, error) {
	s.ExecuteCallCount++
	s.LastOpts = opts
	if s.Report == nil {
		return &commands.RewriteReport{}, s.ExecuteErr
	}
	return s.Report, s.ExecuteErr
}
