//go:build unit

package repositories_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/rangewriter/internal/infrastructure/repositories"
	doubles "github.com/rios0rios0/rangewriter/test/infrastructure/repositorydoubles"
)

func TestManifestRegistry(t *testing.T) {
	t.Parallel()

	t.Run("should route each manifest to its adapter", func(t *testing.T) {
		t.Parallel()

		// given
		registry := repositories.NewDefaultManifestRegistry()

		// then
		assert.Equal(t, []string{"maven", "golang", "terraform", "bazel", "python"}, registry.Names())
		assert.Equal(t, "maven", registry.For("/repo/pom.xml").Name())
		assert.Equal(t, "golang", registry.For("/repo/go.mod").Name())
		assert.Equal(t, "terraform", registry.For("/repo/infra/main.tf").Name())
		assert.Equal(t, "bazel", registry.For("/repo/MODULE.bazel").Name())
		assert.Equal(t, "python", registry.For("/repo/requirements.txt").Name())
		assert.Nil(t, registry.For("/repo/package.json"))
		assert.False(t, registry.Supports("/repo/build.gradle"))
	})

	t.Run("should replace an adapter registered under the same name", func(t *testing.T) {
		t.Parallel()

		// given
		registry := repositories.NewManifestRegistry()
		first := &doubles.SpyManifestRepository{ManifestName: "maven", FileName: "pom.xml"}
		second := &doubles.SpyManifestRepository{ManifestName: "maven", FileName: "pom.xml"}

		// when
		registry.Register(first)
		registry.Register(second)

		// then
		assert.Len(t, registry.All(), 1)
		assert.Same(t, second, registry.Get("maven"))
	})
}
