//go:build unit

package python_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/rangewriter/internal/domain/entities"
	"github.com/rios0rios0/rangewriter/internal/infrastructure/repositories/python"
)

const sampleRequirements = `# runtime
requests==2.31.0
uvicorn[standard] == 0.23.2  # server
django>=4.2,<5.0
-e git+https://example.com/lib.git#egg=lib
pytest==8.0.0rc1 ; python_version >= "3.8"
`

func writeRequirements(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "requirements.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleRequirements), 0o600))
	return path
}

func TestPythonManifestRepository_Read(t *testing.T) {
	t.Parallel()

	t.Run("should read pinned requirements only", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeRequirements(t)
		repo := python.NewPythonManifestRepository()

		// when
		deps, err := repo.Read(context.Background(), path)

		// then
		require.NoError(t, err)
		require.Len(t, deps, 3)
		assert.Equal(t, "requests", deps[0].Group)
		assert.Equal(t, "2.31.0", deps[0].Version)
		assert.Equal(t, 2, deps[0].Line)
		assert.Equal(t, "uvicorn", deps[1].Group)
		assert.Equal(t, "0.23.2", deps[1].Version)
		assert.Equal(t, "8.0.0rc1", deps[2].Version)
	})

	t.Run("should support requirements files", func(t *testing.T) {
		t.Parallel()

		// given
		repo := python.NewPythonManifestRepository()

		// then
		assert.True(t, repo.Supports("/app/requirements.txt"))
		assert.True(t, repo.Supports("/app/requirements-dev.txt"))
		assert.False(t, repo.Supports("/app/pyproject.toml"))
	})
}

func TestPythonManifestRepository_Write(t *testing.T) {
	t.Parallel()

	t.Run("should write pip specifiers and keep extras and comments", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := context.Background()
		path := writeRequirements(t)
		repo := python.NewPythonManifestRepository()
		deps, err := repo.Read(ctx, path)
		require.NoError(t, err)

		// when
		applied, err := repo.Write(ctx, path, entities.Rewrite(deps, entities.PatchRange()))

		// then
		require.NoError(t, err)
		assert.NotEmpty(t, applied)
		written, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.Contains(t, string(written), "requests>=2.31.0,<2.32.0\n")
		assert.Contains(t, string(written), "uvicorn[standard] >=0.23.2,<0.24.0  # server\n")
		assert.Contains(t, string(written), "django>=4.2,<5.0\n")
		assert.Contains(t, string(written), `pytest==8.0.0rc1 ; python_version >= "3.8"`)
	})

	t.Run("should pin fixed values with ==", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := context.Background()
		path := writeRequirements(t)
		repo := python.NewPythonManifestRepository()
		deps, err := repo.Read(ctx, path)
		require.NoError(t, err)

		// when
		applied, err := repo.Write(ctx, path, entities.Rewrite(deps[:1], entities.Fixed("404")))

		// then
		require.NoError(t, err)
		assert.Len(t, applied, 1)
		reread, readErr := repo.Read(ctx, path)
		require.NoError(t, readErr)
		assert.Equal(t, "404", reread[0].Version)
	})

	t.Run("should leave the file untouched under exact", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := context.Background()
		path := writeRequirements(t)
		repo := python.NewPythonManifestRepository()
		deps, err := repo.Read(ctx, path)
		require.NoError(t, err)

		// when
		applied, err := repo.Write(ctx, path, entities.Rewrite(deps, entities.Exact()))

		// then
		require.NoError(t, err)
		assert.Empty(t, applied)
		written, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.Equal(t, sampleRequirements, string(written))
	})
}
