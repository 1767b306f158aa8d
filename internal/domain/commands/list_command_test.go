//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/rangewriter/internal/domain/commands"
	doubles "github.com/rios0rios0/rangewriter/test/infrastructure/repositorydoubles"
)

func TestListCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should report each dependency with its parse outcome", func(t *testing.T) {
		t.Parallel()

		// given
		maven := newMavenSpy()
		finder := &doubles.StubManifestFinder{Paths: []string{pomPath}}
		cmd := commands.NewListCommand(newRegistry(maven), finder)

		// when
		listed, err := cmd.Execute(context.Background(), "/repo")

		// then
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, "maven", listed[0].Adapter)
		deps := listed[0].Dependencies
		require.Len(t, deps, 3)
		assert.True(t, deps[0].Parsed)
		assert.Equal(t, "1.2.3", deps[0].Canonical)
		assert.False(t, deps[1].Parsed)
		assert.Empty(t, deps[1].Canonical)
	})

	t.Run("should not write anything", func(t *testing.T) {
		t.Parallel()

		// given
		maven := newMavenSpy()
		finder := &doubles.StubManifestFinder{Paths: []string{pomPath}}
		cmd := commands.NewListCommand(newRegistry(maven), finder)

		// when
		_, err := cmd.Execute(context.Background(), "/repo")

		// then
		require.NoError(t, err)
		assert.Empty(t, maven.WriteCalls)
	})

	t.Run("should skip unreadable manifests", func(t *testing.T) {
		t.Parallel()

		// given
		maven := newMavenSpy()
		maven.ReadErr = errors.New("boom")
		golang := newGoSpy()
		finder := &doubles.StubManifestFinder{Paths: []string{pomPath, goModPath}}
		cmd := commands.NewListCommand(newRegistry(maven, golang), finder)

		// when
		listed, err := cmd.Execute(context.Background(), "/repo")

		// then
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, goModPath, listed[0].Path)
	})
}
