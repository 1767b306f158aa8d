package repositories

import (
	"go.uber.org/dig"

	domainRepos "github.com/rios0rios0/rangewriter/internal/domain/repositories"
	bazelRepo "github.com/rios0rios0/rangewriter/internal/infrastructure/repositories/bazel"
	"github.com/rios0rios0/rangewriter/internal/infrastructure/repositories/filesystem"
	gitRepo "github.com/rios0rios0/rangewriter/internal/infrastructure/repositories/git"
	goRepo "github.com/rios0rios0/rangewriter/internal/infrastructure/repositories/golang"
	mavenRepo "github.com/rios0rios0/rangewriter/internal/infrastructure/repositories/maven"
	"github.com/rios0rios0/rangewriter/internal/infrastructure/repositories/mavencentral"
	pyRepo "github.com/rios0rios0/rangewriter/internal/infrastructure/repositories/python"
	tfRepo "github.com/rios0rios0/rangewriter/internal/infrastructure/repositories/terraform"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register manifest registry with all manifest adapters
	if err := container.Provide(NewDefaultManifestRegistry); err != nil {
		return err
	}

	// Discovery only keeps files some registered adapter supports
	if err := container.Provide(func(registry *ManifestRegistry) domainRepos.ManifestFinder {
		return filesystem.NewManifestFinder(registry.Supports)
	}); err != nil {
		return err
	}

	if err := container.Provide(mavencentral.NewVersionsRepositoryFactory); err != nil {
		return err
	}
	if err := container.Provide(gitRepo.NewGitCommitRepository); err != nil {
		return err
	}

	return nil
}

// NewDefaultManifestRegistry returns a registry holding every built-in adapter.
func NewDefaultManifestRegistry() *ManifestRegistry {
	reg := NewManifestRegistry()
	reg.Register(mavenRepo.NewMavenManifestRepository())
	reg.Register(goRepo.NewGolangManifestRepository())
	reg.Register(tfRepo.NewTerraformManifestRepository())
	reg.Register(bazelRepo.NewBazelManifestRepository())
	reg.Register(pyRepo.NewPythonManifestRepository())
	return reg
}
