//go:build unit

package mavencentral_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/rangewriter/internal/domain/repositories"
	"github.com/rios0rios0/rangewriter/internal/infrastructure/repositories/mavencentral"
)

const sampleMetadata = `<?xml version="1.0" encoding="UTF-8"?>
<metadata>
  <groupId>com.example</groupId>
  <artifactId>lib</artifactId>
  <versioning>
    <latest>2.0.0</latest>
    <release>2.0.0</release>
    <versions>
      <version>1.0.0</version>
      <version>1.1.0</version>
      <version>2.0.0</version>
    </versions>
  </versioning>
</metadata>`

type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]string
	ttls    map[string]time.Duration
	closed  bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]string{}, ttls: map[string]time.Duration{}}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	versions, ok := c.entries[key]
	return versions, ok, nil
}

func (c *memoryCache) Set(_ context.Context, key string, versions []string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = versions
	c.ttls[key] = ttl
	return nil
}

func (c *memoryCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func TestMavenCentralVersionsRepository_AvailableVersions(t *testing.T) {
	t.Parallel()

	t.Run("should list the versions from maven-metadata.xml", func(t *testing.T) {
		t.Parallel()

		// given
		requested := make(chan string, 1)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requested <- r.URL.Path
			_, _ = w.Write([]byte(sampleMetadata))
		}))
		t.Cleanup(server.Close)
		repo := mavencentral.NewMavenCentralVersionsRepository(server.URL, nil, 0)

		// when
		versions, err := repo.AvailableVersions(context.Background(), "com.example", "lib")

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"1.0.0", "1.1.0", "2.0.0"}, versions)
		assert.Equal(t, "/com/example/lib/maven-metadata.xml", <-requested)
	})

	t.Run("should serve repeated lookups from the cache", func(t *testing.T) {
		t.Parallel()

		// given
		var hits atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			hits.Add(1)
			_, _ = w.Write([]byte(sampleMetadata))
		}))
		t.Cleanup(server.Close)
		metadataCache := newMemoryCache()
		repo := mavencentral.NewMavenCentralVersionsRepository(server.URL, metadataCache, time.Minute)

		// when
		first, err := repo.AvailableVersions(context.Background(), "com.example", "lib")
		require.NoError(t, err)
		second, err := repo.AvailableVersions(context.Background(), "com.example", "lib")

		// then
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Equal(t, int32(1), hits.Load())
		assert.Equal(t, time.Minute, metadataCache.ttls["com.example:lib"])
	})

	t.Run("should report a missing artifact", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.NotFoundHandler())
		t.Cleanup(server.Close)
		repo := mavencentral.NewMavenCentralVersionsRepository(server.URL, nil, 0)

		// when
		_, err := repo.AvailableVersions(context.Background(), "com.example", "missing")

		// then
		require.ErrorIs(t, err, mavencentral.ErrArtifactNotFound)
	})

	t.Run("should fail on malformed metadata", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("<metadata><versioning>"))
		}))
		t.Cleanup(server.Close)
		repo := mavencentral.NewMavenCentralVersionsRepository(server.URL, nil, 0)

		// when
		_, err := repo.AvailableVersions(context.Background(), "com.example", "lib")

		// then
		require.Error(t, err)
	})

	t.Run("should require both group and artifact", func(t *testing.T) {
		t.Parallel()

		// given
		repo := mavencentral.NewMavenCentralVersionsRepository("http://127.0.0.1:1", nil, 0)

		// when
		_, err := repo.AvailableVersions(context.Background(), "com.example", "")

		// then
		require.Error(t, err)
	})

	t.Run("should close its cache", func(t *testing.T) {
		t.Parallel()

		// given
		metadataCache := newMemoryCache()
		repo := mavencentral.NewMavenCentralVersionsRepository("http://127.0.0.1:1", metadataCache, 0)

		// when
		err := repo.Close()

		// then
		require.NoError(t, err)
		assert.True(t, metadataCache.closed)
	})
}

func TestNewVersionsRepositoryFactory(t *testing.T) {
	t.Parallel()

	t.Run("should build a repository without a cache", func(t *testing.T) {
		t.Parallel()

		// given
		factory := mavencentral.NewVersionsRepositoryFactory()

		// when
		repo, err := factory(repositories.VersionsSource{BaseURL: "http://localhost"})

		// then
		require.NoError(t, err)
		assert.NotNil(t, repo)
	})

	t.Run("should reject an invalid redis url", func(t *testing.T) {
		t.Parallel()

		// given
		factory := mavencentral.NewVersionsRepositoryFactory()

		// when
		_, err := factory(repositories.VersionsSource{RedisURL: "not-a-url"})

		// then
		require.Error(t, err)
	})

	t.Run("should release the redis client on close", func(t *testing.T) {
		t.Parallel()

		// given
		factory := mavencentral.NewVersionsRepositoryFactory()
		repo, err := factory(repositories.VersionsSource{RedisURL: "redis://127.0.0.1:1/0"})
		require.NoError(t, err)

		// when
		closeErr := repo.Close()

		// then
		require.NoError(t, closeErr)
	})
}
