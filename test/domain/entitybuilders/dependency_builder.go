//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/rangewriter/internal/domain/entities"
)

const (
	defaultGroup    = "com.example"
	defaultArtifact = "test-dependency"
	defaultVersion  = "1.0.0"
	defaultFilePath = "pom.xml"
)

// DependencyBuilder helps create test dependencies with a fluent interface.
type DependencyBuilder struct {
	*testkit.BaseBuilder
	group    string
	artifact string
	version  string
	filePath string
	line     int
}

// NewDependencyBuilder creates a new dependency builder with sensible defaults.
func NewDependencyBuilder() *DependencyBuilder {
	return &DependencyBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		group:       defaultGroup,
		artifact:    defaultArtifact,
		version:     defaultVersion,
		filePath:    defaultFilePath,
	}
}

// WithGroup sets the group identifier.
func (b *DependencyBuilder) WithGroup(group string) *DependencyBuilder {
	b.group = group
	return b
}

// WithArtifact sets the artifact identifier.
func (b *DependencyBuilder) WithArtifact(artifact string) *DependencyBuilder {
	b.artifact = artifact
	return b
}

// WithVersion sets the declared version.
func (b *DependencyBuilder) WithVersion(version string) *DependencyBuilder {
	b.version = version
	return b
}

// WithFilePath sets the manifest path.
func (b *DependencyBuilder) WithFilePath(path string) *DependencyBuilder {
	b.filePath = path
	return b
}

// WithLine sets the line number.
func (b *DependencyBuilder) WithLine(line int) *DependencyBuilder {
	b.line = line
	return b
}

// Build creates the dependency (satisfies testkit.Builder interface).
func (b *DependencyBuilder) Build() interface{} {
	return b.BuildDependency()
}

// BuildDependency creates the dependency with a concrete return type.
func (b *DependencyBuilder) BuildDependency() entities.Dependency {
	return entities.Dependency{
		Group:    b.group,
		Artifact: b.artifact,
		Version:  b.version,
		FilePath: b.filePath,
		Line:     b.line,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *DependencyBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.group = defaultGroup
	b.artifact = defaultArtifact
	b.version = defaultVersion
	b.filePath = defaultFilePath
	b.line = 0
	return b
}

// Clone creates a deep copy of the DependencyBuilder.
func (b *DependencyBuilder) Clone() testkit.Builder {
	return &DependencyBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		group:       b.group,
		artifact:    b.artifact,
		version:     b.version,
		filePath:    b.filePath,
		line:        b.line,
	}
}
