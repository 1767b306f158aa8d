package commands

import (
	"context"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/rangewriter/internal/domain/entities"
	"github.com/rios0rios0/rangewriter/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/rangewriter/internal/infrastructure/repositories"
)

// List is the interface for the list command.
type List interface {
	Execute(ctx context.Context, path string) ([]ListedManifest, error)
}

// ListedManifest holds the dependencies declared in one manifest.
type ListedManifest struct {
	Path         string
	Adapter      string
	Dependencies []ListedDependency
}

// ListedDependency is a declared dependency with its parse outcome.
type ListedDependency struct {
	Dependency entities.Dependency
	Parsed     bool
	Canonical  string // Canonical version when Parsed
	Prerelease bool
}

// ListCommand reports the dependencies of every manifest without changing them.
type ListCommand struct {
	manifestRegistry *infraRepos.ManifestRegistry
	finder           repositories.ManifestFinder
}

// NewListCommand creates a new ListCommand.
func NewListCommand(
	manifestRegistry *infraRepos.ManifestRegistry,
	finder repositories.ManifestFinder,
) *ListCommand {
	return &ListCommand{manifestRegistry: manifestRegistry, finder: finder}
}

// Execute reads every manifest under path. Unreadable manifests are logged
// and skipped.
func (it *ListCommand) Execute(ctx context.Context, path string) ([]ListedManifest, error) {
	paths, err := it.finder.Find(ctx, path)
	if err != nil {
		return nil, err
	}

	var listed []ListedManifest
	for _, manifestPath := range paths {
		manifest := it.manifestRegistry.For(manifestPath)
		if manifest == nil {
			continue
		}

		deps, readErr := manifest.Read(ctx, manifestPath)
		if readErr != nil {
			logger.Errorf("[%s] Failed to read %s: %v", manifest.Name(), manifestPath, readErr)
			continue
		}

		entry := ListedManifest{Path: manifestPath, Adapter: manifest.Name()}
		for _, dep := range deps {
			item := ListedDependency{Dependency: dep}
			if version, parseErr := entities.ParseVersion(dep.Version); parseErr == nil {
				item.Parsed = true
				item.Canonical = version.String()
				item.Prerelease = version.IsPrerelease()
			}
			entry.Dependencies = append(entry.Dependencies, item)
		}
		listed = append(listed, entry)
	}

	return listed, nil
}
