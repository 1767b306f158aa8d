package mavencentral

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-retryablehttp"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/rangewriter/internal/domain/repositories"
	"github.com/rios0rios0/rangewriter/internal/infrastructure/repositories/cache"
)

const (
	// DefaultBaseURL is the Maven Central repository root.
	DefaultBaseURL = "https://repo1.maven.org/maven2"
	// DefaultCacheTTL applies when the source leaves the TTL unset.
	DefaultCacheTTL = time.Hour

	metadataFile   = "maven-metadata.xml"
	cacheNamespace = "rangewriter:versions:"
	retryMax       = 3
	requestTimeout = 30 * time.Second
	maxBodyBytes   = 8 << 20
)

// ErrArtifactNotFound is returned when the repository has no metadata for
// the requested artifact.
var ErrArtifactNotFound = errors.New("artifact not found")

type metadata struct {
	XMLName  xml.Name `xml:"metadata"`
	Versions []string `xml:"versioning>versions>version"`
}

// MavenCentralVersionsRepository fetches published versions from a Maven
// repository's maven-metadata.xml.
type MavenCentralVersionsRepository struct {
	baseURL string
	client  *retryablehttp.Client
	cache   cache.MetadataCache
	ttl     time.Duration
}

// NewMavenCentralVersionsRepository creates an adapter for baseURL backed
// by metadataCache. A nil cache disables caching.
func NewMavenCentralVersionsRepository(
	baseURL string,
	metadataCache cache.MetadataCache,
	ttl time.Duration,
) *MavenCentralVersionsRepository {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if metadataCache == nil {
		metadataCache = cache.NewNullCache()
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	client := retryablehttp.NewClient()
	client.RetryMax = retryMax
	client.HTTPClient.Timeout = requestTimeout
	client.Logger = leveledLogger{}

	return &MavenCentralVersionsRepository{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		cache:   metadataCache,
		ttl:     ttl,
	}
}

// NewVersionsRepositoryFactory returns the factory the commands use to
// build a versions repository from the configured source.
func NewVersionsRepositoryFactory() repositories.VersionsRepositoryFactory {
	return func(source repositories.VersionsSource) (repositories.VersionsRepository, error) {
		var metadataCache cache.MetadataCache = cache.NewNullCache()
		if source.RedisURL != "" {
			redisCache, err := cache.NewRedisCache(source.RedisURL, cacheNamespace)
			if err != nil {
				return nil, err
			}
			metadataCache = redisCache
		}
		return NewMavenCentralVersionsRepository(source.BaseURL, metadataCache, source.CacheTTL), nil
	}
}

// Close releases the metadata cache.
func (r *MavenCentralVersionsRepository) Close() error {
	return r.cache.Close()
}

// AvailableVersions returns the versions listed in the artifact's
// metadata, in the order the repository publishes them.
func (r *MavenCentralVersionsRepository) AvailableVersions(
	ctx context.Context,
	group, artifact string,
) ([]string, error) {
	if group == "" || artifact == "" {
		return nil, errors.Newf("group and artifact are required, got %q:%q", group, artifact)
	}

	key := group + ":" + artifact
	if versions, hit, err := r.cache.Get(ctx, key); err != nil {
		logger.Warnf("[maven-central] Cache lookup failed for %s: %v", key, err)
	} else if hit {
		logger.Debugf("[maven-central] Cache hit for %s", key)
		return versions, nil
	}

	versions, err := r.fetch(ctx, group, artifact)
	if err != nil {
		return nil, err
	}

	if err = r.cache.Set(ctx, key, versions, r.ttl); err != nil {
		logger.Warnf("[maven-central] Failed to cache %s: %v", key, err)
	}
	return versions, nil
}

func (r *MavenCentralVersionsRepository) metadataURL(group, artifact string) string {
	return fmt.Sprintf("%s/%s/%s/%s", r.baseURL, strings.ReplaceAll(group, ".", "/"), artifact, metadataFile)
}

func (r *MavenCentralVersionsRepository) fetch(ctx context.Context, group, artifact string) ([]string, error) {
	url := r.metadataURL(group, artifact)
	logger.Debugf("[maven-central] GET %s", url)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build request for %s", url)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch %s", url)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.Wrapf(ErrArtifactNotFound, "%s:%s", group, artifact)
	case resp.StatusCode != http.StatusOK:
		return nil, errors.Newf("unexpected status %d from %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", url)
	}

	var doc metadata
	if err = xml.Unmarshal(body, &doc); err != nil {
		return nil, errors.Wrapf(err, "failed to parse metadata for %s:%s", group, artifact)
	}

	versions := make([]string, 0, len(doc.Versions))
	for _, version := range doc.Versions {
		if trimmed := strings.TrimSpace(version); trimmed != "" {
			versions = append(versions, trimmed)
		}
	}
	logger.Debugf("[maven-central] %s:%s has %d published version(s)", group, artifact, len(versions))
	return versions, nil
}

// leveledLogger routes retryablehttp's messages to logrus at debug level,
// keeping retries visible with --verbose only.
type leveledLogger struct{}

func (leveledLogger) Error(msg string, keysAndValues ...any) {
	logger.WithFields(fields(keysAndValues)).Debug("[maven-central] " + msg)
}

func (leveledLogger) Info(msg string, keysAndValues ...any) {
	logger.WithFields(fields(keysAndValues)).Debug("[maven-central] " + msg)
}

func (leveledLogger) Debug(msg string, keysAndValues ...any) {
	logger.WithFields(fields(keysAndValues)).Trace("[maven-central] " + msg)
}

func (leveledLogger) Warn(msg string, keysAndValues ...any) {
	logger.WithFields(fields(keysAndValues)).Debug("[maven-central] " + msg)
}

func fields(keysAndValues []any) logger.Fields {
	out := make(logger.Fields, len(keysAndValues)/2) //nolint:mnd // key/value pairs
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		out[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return out
}
