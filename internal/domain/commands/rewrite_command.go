package commands

import (
	"context"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/rangewriter/internal/domain/entities"
	"github.com/rios0rios0/rangewriter/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/rangewriter/internal/infrastructure/repositories"
)

// Rewrite is the interface for the rewrite command.
type Rewrite interface {
	Execute(ctx context.Context, opts RewriteOptions) (*RewriteReport, error)
}

// RewriteOptions holds runtime options for a single rewrite.
type RewriteOptions struct {
	Path          string                  // File or directory to process
	Selector      entities.PolicySelector // Policy per dependency; Exact when nil
	Exclude       func(coordinate string) bool
	AdapterName   string // If set, only run this adapter (CLI override)
	DryRun        bool
	ChangelogPath string // If set, record changed constraints in this CHANGELOG.md
	Commit        bool   // Commit written files in the enclosing Git worktree
}

// ManifestReport is the outcome for one manifest file.
type ManifestReport struct {
	Path    string
	Adapter string
	Results []entities.RewriteResult
	Applied []entities.RewriteResult // Results the adapter actually wrote
	Written bool
}

// RewriteReport aggregates a whole run.
type RewriteReport struct {
	Manifests []ManifestReport
	Failed    []string
	Summary   entities.RewriteSummary
}

// Results returns every result of the run in manifest order.
func (r *RewriteReport) Results() []entities.RewriteResult {
	var all []entities.RewriteResult
	for _, manifest := range r.Manifests {
		all = append(all, manifest.Results...)
	}
	return all
}

// Applied returns the results that reached a manifest file.
func (r *RewriteReport) Applied() []entities.RewriteResult {
	var all []entities.RewriteResult
	for _, manifest := range r.Manifests {
		all = append(all, manifest.Applied...)
	}
	return all
}

// RewriteCommand orchestrates the rewrite flow:
// find manifests -> read dependencies -> rewrite -> write back -> changelog -> commit.
type RewriteCommand struct {
	manifestRegistry *infraRepos.ManifestRegistry
	finder           repositories.ManifestFinder
	committer        repositories.CommitRepository
}

// NewRewriteCommand creates a new RewriteCommand.
func NewRewriteCommand(
	manifestRegistry *infraRepos.ManifestRegistry,
	finder repositories.ManifestFinder,
	committer repositories.CommitRepository,
) *RewriteCommand {
	return &RewriteCommand{
		manifestRegistry: manifestRegistry,
		finder:           finder,
		committer:        committer,
	}
}

// Execute rewrites every manifest found under opts.Path. A manifest that
// cannot be read or written is logged and skipped.
func (it *RewriteCommand) Execute(ctx context.Context, opts RewriteOptions) (*RewriteReport, error) {
	selector := opts.Selector
	if selector == nil {
		selector = func(entities.Dependency) entities.ConstraintPolicy { return entities.Exact() }
	}

	paths, err := it.finder.Find(ctx, opts.Path)
	if err != nil {
		return nil, err
	}
	logger.Infof("Found %d manifest(s) in %s", len(paths), opts.Path)

	report := &RewriteReport{}
	var written []string

	for _, path := range paths {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return report, ctxErr
		}

		manifest := it.manifestRegistry.For(path)
		if manifest == nil {
			continue
		}
		// Skip if CLI filter is set and doesn't match
		if opts.AdapterName != "" && manifest.Name() != opts.AdapterName {
			continue
		}

		manifestReport, processErr := it.processManifest(ctx, manifest, path, selector, opts)
		if processErr != nil {
			logger.Errorf("[%s] Failed to process %s: %v", manifest.Name(), path, processErr)
			report.Failed = append(report.Failed, path)
			continue
		}
		report.Manifests = append(report.Manifests, manifestReport)
		if manifestReport.Written {
			written = append(written, path)
		}
	}

	report.Summary = entities.Summarize(report.Results())
	logger.Infof(
		"Rewrite complete: %d dependencies, %d rewritten (%d changed), %d unparseable, %d failed manifest(s)",
		report.Summary.Total, report.Summary.Rewritten, report.Summary.Changed,
		report.Summary.Unparseable, len(report.Failed),
	)

	if opts.DryRun || len(written) == 0 {
		return report, nil
	}

	if opts.ChangelogPath != "" {
		if changelogErr := updateChangelog(opts.ChangelogPath, report.Applied()); changelogErr != nil {
			return report, changelogErr
		}
		written = append(written, opts.ChangelogPath)
	}

	if opts.Commit {
		if commitErr := it.committer.Commit(
			ctx, worktreeDir(opts.Path), written, entities.BuildCommitMessage(report.Applied()),
		); commitErr != nil {
			return report, errors.Wrap(commitErr, "failed to commit rewritten manifests")
		}
	}

	return report, nil
}

// processManifest reads, rewrites and (unless dry-running) writes one file.
func (it *RewriteCommand) processManifest(
	ctx context.Context,
	manifest repositories.ManifestRepository,
	path string,
	selector entities.PolicySelector,
	opts RewriteOptions,
) (ManifestReport, error) {
	report := ManifestReport{Path: path, Adapter: manifest.Name()}

	deps, err := manifest.Read(ctx, path)
	if err != nil {
		return report, err
	}

	kept := deps[:0:0]
	for _, dep := range deps {
		if opts.Exclude != nil && opts.Exclude(dep.Coordinate()) {
			logger.Debugf("[%s] Excluding %s", manifest.Name(), dep.Coordinate())
			continue
		}
		kept = append(kept, dep)
	}

	report.Results = entities.RewriteWith(kept, selector)
	for _, result := range report.Results {
		switch {
		case result.Status == entities.StatusUnparseable:
			logger.Warnf("[%s] %s: could not parse %q, leaving it as is",
				manifest.Name(), result.Dependency.Coordinate(), result.Original)
		case result.Changed():
			logger.Infof("[%s] %s: %s -> %s",
				manifest.Name(), result.Dependency.Coordinate(), result.Original, result.Constraint)
		}
	}

	summary := entities.Summarize(report.Results)
	if opts.DryRun || summary.Changed == 0 {
		return report, nil
	}

	applied, err := manifest.Write(ctx, path, report.Results)
	if err != nil {
		return report, err
	}
	if skipped := summary.Changed - len(applied); skipped > 0 {
		logger.Warnf("[%s] %d constraint(s) could not be written to %s", manifest.Name(), skipped, path)
	}
	report.Applied = applied
	report.Written = len(applied) > 0
	return report, nil
}

func updateChangelog(path string, results []entities.RewriteResult) error {
	entries := entities.BuildChangelogEntries(results)
	if len(entries) == 0 {
		return nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read changelog %s", path)
	}

	updated := entities.InsertChangelogEntry(string(content), entries)
	if updated == string(content) {
		logger.Warnf("No [Unreleased] section in %s, changelog left untouched", path)
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "failed to stat %s", path)
	}
	if err = os.WriteFile(path, []byte(updated), info.Mode().Perm()); err != nil {
		return errors.Wrapf(err, "failed to write changelog %s", path)
	}

	logger.Infof("Added %d changelog entries to %s", len(entries), path)
	return nil
}

// worktreeDir returns the directory a commit is opened from.
func worktreeDir(path string) string {
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return filepath.Dir(path)
	}
	return path
}
