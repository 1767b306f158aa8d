package python

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/rangewriter/internal/domain/entities"
	"github.com/rios0rios0/rangewriter/internal/domain/repositories"
)

const (
	manifestName = "python"
	pinOperator  = "=="
)

// requirementPattern matches a pinned requirement line:
// name[extras] == version [; markers] [# comment].
var requirementPattern = regexp.MustCompile(
	`^(\s*)([A-Za-z0-9][A-Za-z0-9._-]*)(\[[^\]]*\])?(\s*)==(\s*)([^\s;#,]+)(.*)$`,
)

// PythonManifestRepository reads "name==version" pins from pip
// requirements files and writes constraints back as pip specifiers.
type PythonManifestRepository struct{}

// NewPythonManifestRepository creates a new requirements.txt adapter.
func NewPythonManifestRepository() repositories.ManifestRepository {
	return &PythonManifestRepository{}
}

func (r *PythonManifestRepository) Name() string { return manifestName }

// Supports returns true for requirements.txt and requirements-*.txt files.
func (r *PythonManifestRepository) Supports(path string) bool {
	base := filepath.Base(path)
	if base == "requirements.txt" {
		return true
	}
	return strings.HasPrefix(base, "requirements-") && strings.HasSuffix(base, ".txt")
}

// Read returns every pinned requirement in file order. Ranges, URLs,
// editable installs and option lines are not pins and are ignored.
func (r *PythonManifestRepository) Read(_ context.Context, path string) ([]entities.Dependency, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}

	var deps []entities.Dependency
	for i, line := range lines {
		matches := requirementPattern.FindStringSubmatch(line)
		if matches == nil {
			continue
		}
		deps = append(deps, entities.Dependency{
			Group:    matches[2],
			Version:  matches[6],
			FilePath: path,
			Line:     i + 1,
		})
	}
	logger.Debugf("[python] Found %d pinned requirements in %s", len(deps), path)
	return deps, nil
}

// Write replaces the "==version" of each rewritten requirement with the
// pip specifier of its constraint, keeping extras, markers and comments.
func (r *PythonManifestRepository) Write(
	_ context.Context,
	path string,
	results []entities.RewriteResult,
) ([]entities.RewriteResult, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}

	var applied []entities.RewriteResult
	for _, result := range results {
		if !result.Changed() {
			continue
		}
		index := result.Dependency.Line - 1
		if index < 0 || index >= len(lines) {
			logger.Warnf("[python] %s: line %d is out of range in %s",
				result.Dependency.Group, result.Dependency.Line, path)
			continue
		}

		matches := requirementPattern.FindStringSubmatch(lines[index])
		if matches == nil || matches[2] != result.Dependency.Group || matches[6] != result.Original {
			logger.Warnf("[python] %s: line %d changed since it was read, skipping",
				result.Dependency.Group, result.Dependency.Line)
			continue
		}

		specifier := toPipSpecifier(result.Constraint)
		lines[index] = matches[1] + matches[2] + matches[3] + matches[4] + specifier + matches[7]
		logger.Debugf("[python] %s: %s -> %s", result.Dependency.Group, result.Original, specifier)
		applied = append(applied, result)
	}

	if len(applied) == 0 {
		logger.Debugf("[python] Nothing to write in %s", path)
		return nil, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to stat %s", path)
	}
	if err = os.WriteFile(path, []byte(strings.Join(lines, "\n")), info.Mode().Perm()); err != nil {
		return nil, errors.Wrapf(err, "failed to write %s", path)
	}

	logger.Infof("[python] Updated %d requirement(s) in %s", len(applied), path)
	return applied, nil
}

// toPipSpecifier renders a constraint in PEP 440 specifier syntax:
// intervals become ">=a,<b", anything else is pinned with "==" unless it
// already carries an operator.
func toPipSpecifier(constraint string) string {
	if versionRange, err := entities.ParseRange(constraint); err == nil {
		if versionRange.IsPinned() {
			return pinOperator + versionRange.Lower.String()
		}
		return strings.ReplaceAll(versionRange.ComparatorString(), " ", "")
	}
	if constraint == "" || strings.ContainsAny(constraint[:1], "=<>!~") {
		return constraint
	}
	return pinOperator + constraint
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	return strings.Split(string(data), "\n"), nil
}
