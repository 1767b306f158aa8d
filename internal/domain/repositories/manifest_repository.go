package repositories

import (
	"context"

	"github.com/rios0rios0/rangewriter/internal/domain/entities"
)

// ManifestRepository abstracts one build-file format (pom.xml, go.mod, ...).
// Each implementation reads the declared dependencies in file order and
// writes rewritten constraints back, leaving everything else untouched.
type ManifestRepository interface {
	// Name returns the adapter identifier (e.g. "maven", "golang").
	Name() string

	// Supports returns true if the file at path is handled by this adapter.
	Supports(path string) bool

	// Read returns the dependencies declared in the manifest at path.
	Read(ctx context.Context, path string) ([]entities.Dependency, error)

	// Write applies the results to the manifest at path and returns the ones
	// that reached the file. Results that were not rewritten, or whose
	// constraint the format cannot express, are skipped.
	Write(ctx context.Context, path string, results []entities.RewriteResult) ([]entities.RewriteResult, error)
}

// ManifestFinder resolves a user-supplied path into the manifests to process.
type ManifestFinder interface {
	Find(ctx context.Context, root string) ([]string, error)
}
