package repositories

import (
	"context"
	"time"
)

// VersionsRepository lists the published versions of an artifact.
// Close releases any connection the repository holds.
type VersionsRepository interface {
	AvailableVersions(ctx context.Context, group, artifact string) ([]string, error)
	Close() error
}

// VersionsSource configures where available versions are fetched from and
// how long they are cached. Empty fields fall back to adapter defaults.
type VersionsSource struct {
	BaseURL  string
	RedisURL string
	CacheTTL time.Duration
}

// VersionsRepositoryFactory builds a VersionsRepository for a source.
type VersionsRepositoryFactory func(source VersionsSource) (VersionsRepository, error)
