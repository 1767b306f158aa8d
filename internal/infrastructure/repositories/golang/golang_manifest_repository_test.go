//go:build unit

package golang_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/rangewriter/internal/domain/entities"
	"github.com/rios0rios0/rangewriter/internal/infrastructure/repositories/golang"
)

const sampleGoMod = `module github.com/example/app

go 1.26.1

require (
	github.com/sirupsen/logrus v1.9.4
	github.com/docker/docker v25.0.6+incompatible
	github.com/sabhiram/go-gitignore v0.0.0-20210923224102-525f6e181f06 // indirect
)
`

func writeGoMod(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "go.mod")
	require.NoError(t, os.WriteFile(path, []byte(sampleGoMod), 0o600))
	return path
}

func TestGolangManifestRepository_Read(t *testing.T) {
	t.Parallel()

	t.Run("should expose module versions without the v prefix", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeGoMod(t)
		repo := golang.NewGolangManifestRepository()

		// when
		deps, err := repo.Read(context.Background(), path)

		// then
		require.NoError(t, err)
		require.Len(t, deps, 3)
		assert.Equal(t, "github.com/sirupsen/logrus", deps[0].Coordinate())
		assert.Equal(t, "1.9.4", deps[0].Version)
		assert.Equal(t, 6, deps[0].Line)
		assert.Equal(t, "25.0.6+incompatible", deps[1].Version)
		assert.Equal(t, "0.0.0-20210923224102-525f6e181f06", deps[2].Version)
	})

	t.Run("should support go.mod only", func(t *testing.T) {
		t.Parallel()

		// given
		repo := golang.NewGolangManifestRepository()

		// then
		assert.True(t, repo.Supports("/src/go.mod"))
		assert.False(t, repo.Supports("/src/go.sum"))
	})
}

func TestGolangManifestRepository_Write(t *testing.T) {
	t.Parallel()

	t.Run("should keep the file intact under exact", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := context.Background()
		path := writeGoMod(t)
		repo := golang.NewGolangManifestRepository()
		deps, err := repo.Read(ctx, path)
		require.NoError(t, err)

		// when
		applied, err := repo.Write(ctx, path, entities.Rewrite(deps, entities.Exact()))

		// then
		require.NoError(t, err)
		assert.Empty(t, applied)
		written, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.Equal(t, sampleGoMod, string(written))
	})

	t.Run("should skip range constraints", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := context.Background()
		path := writeGoMod(t)
		repo := golang.NewGolangManifestRepository()
		deps, err := repo.Read(ctx, path)
		require.NoError(t, err)

		// when
		applied, err := repo.Write(ctx, path, entities.Rewrite(deps, entities.MinorRange()))

		// then
		require.NoError(t, err)
		assert.Empty(t, applied)
		written, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.Equal(t, sampleGoMod, string(written))
	})

	t.Run("should write a fixed version in canonical module form", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := context.Background()
		path := writeGoMod(t)
		repo := golang.NewGolangManifestRepository()
		results := []entities.RewriteResult{{
			Dependency: entities.Dependency{Group: "github.com/sirupsen/logrus", Version: "1.9.4"},
			Original:   "1.9.4",
			Constraint: "1.10",
			Status:     entities.StatusRewritten,
		}}

		// when
		applied, err := repo.Write(ctx, path, results)

		// then
		require.NoError(t, err)
		assert.Equal(t, results, applied)
		written, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.Contains(t, string(written), "github.com/sirupsen/logrus v1.10.0")
		assert.Contains(t, string(written), "github.com/docker/docker v25.0.6+incompatible")
	})
}
