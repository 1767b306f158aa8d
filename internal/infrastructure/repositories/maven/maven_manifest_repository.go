package maven

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/rangewriter/internal/domain/entities"
	"github.com/rios0rios0/rangewriter/internal/domain/repositories"
)

const (
	manifestName = "maven"
	pomFileName  = "pom.xml"
)

// MavenManifestRepository reads and patches the dependencies of a pom.xml.
// Only the text of <version> elements is touched; formatting, comments and
// property references elsewhere in the file survive a write byte-for-byte.
type MavenManifestRepository struct{}

// NewMavenManifestRepository creates a new pom.xml adapter.
func NewMavenManifestRepository() repositories.ManifestRepository {
	return &MavenManifestRepository{}
}

func (r *MavenManifestRepository) Name() string { return manifestName }

// Supports returns true for files named pom.xml.
func (r *MavenManifestRepository) Supports(path string) bool {
	return filepath.Base(path) == pomFileName
}

// Read returns the direct and managed dependencies that declare a version.
func (r *MavenManifestRepository) Read(_ context.Context, path string) ([]entities.Dependency, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	entries, err := scanPOM(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to scan %s", path)
	}

	deps := make([]entities.Dependency, 0, len(entries))
	for _, entry := range entries {
		deps = append(deps, entities.Dependency{
			Group:    entry.groupID,
			Artifact: entry.artifactID,
			Version:  entry.version,
			FilePath: path,
			Line:     entry.line,
		})
	}
	logger.Debugf("[maven] Found %d versioned dependencies in %s", len(deps), path)
	return deps, nil
}

// Write replaces the version text of every rewritten dependency.
func (r *MavenManifestRepository) Write(
	_ context.Context,
	path string,
	results []entities.RewriteResult,
) ([]entities.RewriteResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to stat %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	entries, err := scanPOM(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to scan %s", path)
	}

	wanted := make(map[string]entities.RewriteResult, len(results))
	for _, result := range results {
		if !result.Changed() {
			continue
		}
		wanted[entryKey(result.Dependency.Line, result.Dependency.Coordinate(), result.Original)] = result
	}

	patches := make(map[int64]pomPatch)
	var applied []entities.RewriteResult
	for _, entry := range entries {
		coordinate := entry.groupID + ":" + entry.artifactID
		result, ok := wanted[entryKey(entry.line, coordinate, entry.version)]
		if !ok {
			continue
		}
		patches[entry.start] = pomPatch{end: entry.end, value: result.Constraint}
		applied = append(applied, result)
		logger.Debugf("[maven] %s: %s -> %s", coordinate, entry.version, result.Constraint)
	}

	if len(patches) == 0 {
		logger.Debugf("[maven] Nothing to write in %s", path)
		return nil, nil
	}

	patched, err := patchPOM(data, patches)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to patch %s", path)
	}
	if err = os.WriteFile(path, patched, info.Mode().Perm()); err != nil {
		return nil, errors.Wrapf(err, "failed to write %s", path)
	}

	logger.Infof("[maven] Updated %d version(s) in %s", len(patches), path)
	return applied, nil
}

func entryKey(line int, coordinate, version string) string {
	return fmt.Sprintf("%d|%s|%s", line, coordinate, version)
}
