package golang

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	logger "github.com/sirupsen/logrus"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/semver"

	"github.com/rios0rios0/rangewriter/internal/domain/entities"
	"github.com/rios0rios0/rangewriter/internal/domain/repositories"
)

const (
	manifestName = "golang"
	goModFile    = "go.mod"
)

// GolangManifestRepository reads the require directives of a go.mod file.
// Module versions are exposed without their "v" prefix so the rewriter can
// parse them. Go cannot express ranges, so only exact versions are written.
type GolangManifestRepository struct{}

// NewGolangManifestRepository creates a new go.mod adapter.
func NewGolangManifestRepository() repositories.ManifestRepository {
	return &GolangManifestRepository{}
}

func (r *GolangManifestRepository) Name() string { return manifestName }

// Supports returns true for files named go.mod.
func (r *GolangManifestRepository) Supports(path string) bool {
	return filepath.Base(path) == goModFile
}

// Read returns every required module, direct and indirect.
func (r *GolangManifestRepository) Read(_ context.Context, path string) ([]entities.Dependency, error) {
	file, err := parseGoMod(path)
	if err != nil {
		return nil, err
	}

	deps := make([]entities.Dependency, 0, len(file.Require))
	for _, req := range file.Require {
		dep := entities.Dependency{
			Group:    req.Mod.Path,
			Version:  trimVersion(req.Mod.Version),
			FilePath: path,
		}
		if req.Syntax != nil {
			dep.Line = req.Syntax.Start.Line
		}
		deps = append(deps, dep)
	}
	logger.Debugf("[golang] Found %d required modules in %s", len(deps), path)
	return deps, nil
}

// Write updates required module versions to exact constraints. Ranges are
// skipped with a warning.
func (r *GolangManifestRepository) Write(
	_ context.Context,
	path string,
	results []entities.RewriteResult,
) ([]entities.RewriteResult, error) {
	file, err := parseGoMod(path)
	if err != nil {
		return nil, err
	}

	current := make(map[string]string, len(file.Require))
	for _, req := range file.Require {
		current[req.Mod.Path] = req.Mod.Version
	}

	var applied []entities.RewriteResult
	for _, result := range results {
		if !result.Changed() {
			continue
		}
		modulePath := result.Dependency.Group
		original, ok := current[modulePath]
		if !ok {
			continue
		}

		version, ok := toModuleVersion(result.Constraint, original)
		if !ok {
			logger.Warnf("[golang] %s: %q is not a module version, keeping %s",
				modulePath, result.Constraint, original)
			continue
		}
		if version == original {
			continue
		}
		if addErr := file.AddRequire(modulePath, version); addErr != nil {
			return nil, errors.Wrapf(addErr, "failed to update %s in %s", modulePath, path)
		}
		logger.Debugf("[golang] %s: %s -> %s", modulePath, original, version)
		applied = append(applied, result)
	}

	if len(applied) == 0 {
		logger.Debugf("[golang] Nothing to write in %s", path)
		return nil, nil
	}

	file.Cleanup()
	data, err := file.Format()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to format %s", path)
	}
	if err = writePreservingMode(path, data); err != nil {
		return nil, err
	}

	logger.Infof("[golang] Updated %d module version(s) in %s", len(applied), path)
	return applied, nil
}

func parseGoMod(path string) (*modfile.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	file, err := modfile.Parse(path, data, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}
	return file, nil
}

// trimVersion drops the "v" prefix of valid module versions.
func trimVersion(version string) string {
	if semver.IsValid(version) {
		return strings.TrimPrefix(version, "v")
	}
	return version
}

// toModuleVersion turns an exact constraint back into a canonical module
// version, keeping the "+incompatible" marker of the original.
func toModuleVersion(constraint, original string) (string, bool) {
	candidate := "v" + constraint
	if !semver.IsValid(candidate) {
		return "", false
	}
	version := semver.Canonical(candidate)
	if build := semver.Build(original); build != "" && semver.Build(candidate) == "" {
		version += build
	}
	return version, true
}

func writePreservingMode(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "failed to stat %s", path)
	}
	if err = os.WriteFile(path, data, info.Mode().Perm()); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}
