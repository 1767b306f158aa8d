package filesystem

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/cockroachdb/errors"
	ignore "github.com/sabhiram/go-gitignore"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/rangewriter/internal/domain/repositories"
)

const gitignoreFile = ".gitignore"

// skippedDirs are never descended into.
var skippedDirs = map[string]struct{}{ //nolint:gochecknoglobals // lookup table
	".git":         {},
	".terraform":   {},
	"node_modules": {},
	"target":       {},
	"vendor":       {},
}

// ManifestFinder walks a directory for files some adapter supports,
// honoring the .gitignore at the walk root.
type ManifestFinder struct {
	supports func(path string) bool
}

// NewManifestFinder creates a finder that keeps the files accepted by supports.
func NewManifestFinder(supports func(path string) bool) *ManifestFinder {
	return &ManifestFinder{supports: supports}
}

var _ repositories.ManifestFinder = (*ManifestFinder)(nil)

// Find returns root itself when it is a file, otherwise every supported
// manifest below it in lexical order.
func (f *ManifestFinder) Find(ctx context.Context, root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to stat %s", root)
	}
	if !info.IsDir() {
		if !f.supports(root) {
			return nil, errors.Newf("%s is not a supported manifest", root)
		}
		return []string{root}, nil
	}

	ignored := loadGitignore(root)

	var found []string
	walkErr := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		if rel == "." {
			return nil
		}

		if entry.IsDir() {
			if _, skip := skippedDirs[entry.Name()]; skip {
				return filepath.SkipDir
			}
			if ignored != nil && ignored.MatchesPath(filepath.ToSlash(rel)+"/") {
				logger.Debugf("Skipping ignored directory %s", rel)
				return filepath.SkipDir
			}
			return nil
		}

		if ignored != nil && ignored.MatchesPath(filepath.ToSlash(rel)) {
			return nil
		}
		if f.supports(path) {
			found = append(found, path)
		}
		return nil
	})
	if walkErr != nil {
		return nil, errors.Wrapf(walkErr, "failed to walk %s", root)
	}

	sort.Strings(found)
	logger.Debugf("Found %d manifest(s) under %s", len(found), root)
	return found, nil
}

func loadGitignore(root string) *ignore.GitIgnore {
	path := filepath.Join(root, gitignoreFile)
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	ignored, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		logger.Warnf("Failed to read %s: %v", path, err)
		return nil
	}
	return ignored
}
