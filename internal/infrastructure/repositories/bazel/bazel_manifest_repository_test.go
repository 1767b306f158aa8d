//go:build unit

package bazel_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/rangewriter/internal/domain/entities"
	"github.com/rios0rios0/rangewriter/internal/infrastructure/repositories/bazel"
)

const sampleModule = `module(
    name = "example",
    version = "0.1.0",
)

bazel_dep(name = "rules_go", version = "0.46.0")
bazel_dep(name = "gazelle", version = "0.35.0", repo_name = "bazel_gazelle")
bazel_dep(name = "platforms", version = "0.0.10", dev_dependency = True)
`

func writeModule(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "MODULE.bazel")
	require.NoError(t, os.WriteFile(path, []byte(sampleModule), 0o600))
	return path
}

func TestBazelManifestRepository_Read(t *testing.T) {
	t.Parallel()

	t.Run("should read every bazel_dep with a version", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeModule(t)
		repo := bazel.NewBazelManifestRepository()

		// when
		deps, err := repo.Read(context.Background(), path)

		// then
		require.NoError(t, err)
		require.Len(t, deps, 3)
		assert.Equal(t, "rules_go", deps[0].Coordinate())
		assert.Equal(t, "0.46.0", deps[0].Version)
		assert.Equal(t, 6, deps[0].Line)
		assert.Equal(t, "gazelle", deps[1].Group)
		assert.Equal(t, "0.0.10", deps[2].Version)
	})

	t.Run("should support MODULE.bazel only", func(t *testing.T) {
		t.Parallel()

		// given
		repo := bazel.NewBazelManifestRepository()

		// then
		assert.True(t, repo.Supports("/repo/MODULE.bazel"))
		assert.False(t, repo.Supports("/repo/WORKSPACE"))
	})
}

func TestBazelManifestRepository_Write(t *testing.T) {
	t.Parallel()

	t.Run("should write fixed versions", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := context.Background()
		path := writeModule(t)
		repo := bazel.NewBazelManifestRepository()
		deps, err := repo.Read(ctx, path)
		require.NoError(t, err)

		// when
		applied, err := repo.Write(ctx, path, entities.Rewrite(deps[:1], entities.Fixed("0.47.1")))

		// then
		require.NoError(t, err)
		assert.Len(t, applied, 1)
		reread, readErr := repo.Read(ctx, path)
		require.NoError(t, readErr)
		assert.Equal(t, "0.47.1", reread[0].Version)
		assert.Equal(t, "0.35.0", reread[1].Version)
	})

	t.Run("should skip interval constraints", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := context.Background()
		path := writeModule(t)
		repo := bazel.NewBazelManifestRepository()
		deps, err := repo.Read(ctx, path)
		require.NoError(t, err)

		// when
		applied, err := repo.Write(ctx, path, entities.Rewrite(deps, entities.PatchRange()))

		// then
		require.NoError(t, err)
		assert.Empty(t, applied)
		written, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.Equal(t, sampleModule, string(written))
	})
}
