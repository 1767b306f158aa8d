package commands

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/rangewriter/internal/domain/entities"
	"github.com/rios0rios0/rangewriter/internal/domain/repositories"
)

// Range is the interface for the range command.
type Range interface {
	Execute(ctx context.Context, opts RangeOptions) (string, error)
}

// RangeOptions holds the inputs of a range conversion.
type RangeOptions struct {
	Compatible []string
	Available  []string // Fetched for Coordinate when empty
	Coordinate string   // "group:artifact"
	Source     repositories.VersionsSource
}

// RangeCommand turns a set of compatible versions into a Maven range spec.
type RangeCommand struct {
	versionsFactory repositories.VersionsRepositoryFactory
}

// NewRangeCommand creates a new RangeCommand.
func NewRangeCommand(versionsFactory repositories.VersionsRepositoryFactory) *RangeCommand {
	return &RangeCommand{versionsFactory: versionsFactory}
}

// Execute returns the range spec covering opts.Compatible among the
// available versions.
func (it *RangeCommand) Execute(ctx context.Context, opts RangeOptions) (string, error) {
	available := opts.Available
	if len(available) == 0 {
		fetched, err := it.fetchAvailable(ctx, opts)
		if err != nil {
			return "", err
		}
		available = fetched
	}

	spec := entities.CreateRangeSpec(opts.Compatible, available)
	logger.Debugf("Range for %d compatible of %d available version(s): %s",
		len(opts.Compatible), len(available), spec)
	return spec, nil
}

func (it *RangeCommand) fetchAvailable(ctx context.Context, opts RangeOptions) ([]string, error) {
	group, artifact, ok := strings.Cut(opts.Coordinate, ":")
	if !ok || group == "" || artifact == "" {
		return nil, errors.Newf(
			"a group:artifact coordinate is required when no available versions are given, got %q",
			opts.Coordinate,
		)
	}

	versions, err := it.versionsFactory(opts.Source)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize the versions repository")
	}
	defer func() {
		if closeErr := versions.Close(); closeErr != nil {
			logger.Warnf("Failed to close the versions repository: %v", closeErr)
		}
	}()

	available, err := versions.AvailableVersions(ctx, group, artifact)
	if err != nil {
		return nil, err
	}
	logger.Infof("Fetched %d published version(s) of %s", len(available), opts.Coordinate)
	return available, nil
}
