package bazel

import (
	"context"
	"os"
	"path/filepath"

	"github.com/bazelbuild/buildtools/build"
	"github.com/cockroachdb/errors"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/rangewriter/internal/domain/entities"
	"github.com/rios0rios0/rangewriter/internal/domain/repositories"
)

const (
	manifestName   = "bazel"
	moduleFileName = "MODULE.bazel"
	bazelDepCall   = "bazel_dep"
)

// BazelManifestRepository reads bazel_dep declarations from MODULE.bazel.
// Bzlmod resolves with minimal version selection and has no range syntax,
// so only exact constraints are written back.
type BazelManifestRepository struct{}

// NewBazelManifestRepository creates a new MODULE.bazel adapter.
func NewBazelManifestRepository() repositories.ManifestRepository {
	return &BazelManifestRepository{}
}

func (r *BazelManifestRepository) Name() string { return manifestName }

// Supports returns true for files named MODULE.bazel.
func (r *BazelManifestRepository) Supports(path string) bool {
	return filepath.Base(path) == moduleFileName
}

// Read returns every bazel_dep with a name and a version.
func (r *BazelManifestRepository) Read(_ context.Context, path string) ([]entities.Dependency, error) {
	file, err := parseModule(path)
	if err != nil {
		return nil, err
	}

	var deps []entities.Dependency
	for _, call := range bazelDeps(file) {
		name := stringArg(call, "name")
		version := stringArg(call, "version")
		if name == nil || version == nil {
			continue
		}
		start, _ := call.Span()
		deps = append(deps, entities.Dependency{
			Group:    name.Value,
			Version:  version.Value,
			FilePath: path,
			Line:     start.Line,
		})
	}
	logger.Debugf("[bazel] Found %d bazel_dep entries in %s", len(deps), path)
	return deps, nil
}

// Write updates the version of each rewritten bazel_dep. Interval
// constraints are skipped with a warning.
func (r *BazelManifestRepository) Write(
	_ context.Context,
	path string,
	results []entities.RewriteResult,
) ([]entities.RewriteResult, error) {
	file, err := parseModule(path)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]entities.RewriteResult, len(results))
	for _, result := range results {
		if !result.Changed() {
			continue
		}
		if _, rangeErr := entities.ParseRange(result.Constraint); rangeErr == nil {
			logger.Warnf("[bazel] %s: MODULE.bazel cannot express %q, keeping %s",
				result.Dependency.Group, result.Constraint, result.Original)
			continue
		}
		wanted[result.Dependency.Group] = result
	}

	var applied []entities.RewriteResult
	for _, call := range bazelDeps(file) {
		name := stringArg(call, "name")
		version := stringArg(call, "version")
		if name == nil || version == nil {
			continue
		}
		result, ok := wanted[name.Value]
		if !ok {
			continue
		}
		logger.Debugf("[bazel] %s: %s -> %s", name.Value, version.Value, result.Constraint)
		version.Value = result.Constraint
		version.Token = ""
		applied = append(applied, result)
	}

	if len(applied) == 0 {
		logger.Debugf("[bazel] Nothing to write in %s", path)
		return nil, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to stat %s", path)
	}
	if err = os.WriteFile(path, build.Format(file), info.Mode().Perm()); err != nil {
		return nil, errors.Wrapf(err, "failed to write %s", path)
	}

	logger.Infof("[bazel] Updated %d bazel_dep version(s) in %s", len(applied), path)
	return applied, nil
}

func parseModule(path string) (*build.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	file, err := build.ParseModule(path, data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}
	return file, nil
}

func bazelDeps(file *build.File) []*build.CallExpr {
	var calls []*build.CallExpr
	for _, stmt := range file.Stmt {
		call, ok := stmt.(*build.CallExpr)
		if !ok {
			continue
		}
		if ident, isIdent := call.X.(*build.Ident); isIdent && ident.Name == bazelDepCall {
			calls = append(calls, call)
		}
	}
	return calls
}

// stringArg returns the string literal bound to a keyword argument.
func stringArg(call *build.CallExpr, name string) *build.StringExpr {
	for _, arg := range call.List {
		assign, ok := arg.(*build.AssignExpr)
		if !ok {
			continue
		}
		if lhs, isIdent := assign.LHS.(*build.Ident); isIdent && lhs.Name == name {
			if str, isString := assign.RHS.(*build.StringExpr); isString {
				return str
			}
		}
	}
	return nil
}
