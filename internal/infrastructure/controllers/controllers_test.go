//go:build unit

package controllers_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/rangewriter/internal/domain/commands"
	"github.com/rios0rios0/rangewriter/internal/domain/entities"
	"github.com/rios0rios0/rangewriter/internal/infrastructure/controllers"
	commanddoubles "github.com/rios0rios0/rangewriter/test/domain/commanddoubles"
	"github.com/rios0rios0/rangewriter/test/domain/entitybuilders"
)

// newCommand binds a controller the way the entrypoint does, with the
// global flags declared on the command itself.
func newCommand(t *testing.T, controller entities.Controller, configContent string) (*cobra.Command, *bytes.Buffer) {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), ".rangewriter.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o600))

	bind := controller.GetBind()
	cmd := &cobra.Command{
		Use:  bind.Use,
		RunE: controller.Execute,
	}
	cmd.Flags().String("config", configPath, "")
	cmd.Flags().Bool("verbose", false, "")
	cmd.Flags().Bool("dry-run", false, "")
	controller.AddFlags(cmd)

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	return cmd, out
}

func TestRewriteController_Execute(t *testing.T) {
	t.Parallel()

	t.Run("should pass the configured policy and path to the command", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubRewriteCommand{}
		cmd, _ := newCommand(t, controllers.NewRewriteController(stub), "policy: minor\nexclude: [\"junit:*\"]\n")
		cmd.SetArgs([]string{"/repo"})

		// when
		err := cmd.Execute()

		// then
		require.NoError(t, err)
		assert.Equal(t, 1, stub.ExecuteCallCount)
		assert.Equal(t, "/repo", stub.LastOpts.Path)
		dep := entitybuilders.NewDependencyBuilder().BuildDependency()
		assert.Equal(t, entities.MinorRange(), stub.LastOpts.Selector(dep))
		assert.True(t, stub.LastOpts.Exclude("junit:junit"))
	})

	t.Run("should let flags override the configured policy", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubRewriteCommand{}
		cmd, _ := newCommand(t, controllers.NewRewriteController(stub), "policy: minor\n")
		cmd.SetArgs([]string{"--policy", "fixed", "--fixed", "404", "--commit", "--changelog", "CHANGELOG.md"})

		// when
		err := cmd.Execute()

		// then
		require.NoError(t, err)
		assert.Equal(t, ".", stub.LastOpts.Path)
		dep := entitybuilders.NewDependencyBuilder().BuildDependency()
		assert.Equal(t, entities.Fixed("404"), stub.LastOpts.Selector(dep))
		assert.True(t, stub.LastOpts.Commit)
		assert.Equal(t, "CHANGELOG.md", stub.LastOpts.ChangelogPath)
	})

	t.Run("should reject an unknown policy before running", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubRewriteCommand{}
		cmd, _ := newCommand(t, controllers.NewRewriteController(stub), "")
		cmd.SetArgs([]string{"--policy", "loose"})

		// when
		err := cmd.Execute()

		// then
		require.ErrorIs(t, err, entities.ErrUnknownPolicy)
		assert.Zero(t, stub.ExecuteCallCount)
	})

	t.Run("should print the planned changes on a dry run", func(t *testing.T) {
		t.Parallel()

		// given
		dep := entitybuilders.NewDependencyBuilder().WithGroup("com.example").WithArtifact("lib").
			WithVersion("1.2.3").BuildDependency()
		stub := &commanddoubles.StubRewriteCommand{Report: &commands.RewriteReport{
			Manifests: []commands.ManifestReport{{
				Path:    "pom.xml",
				Results: entities.Rewrite([]entities.Dependency{dep}, entities.PatchRange()),
			}},
		}}
		cmd, out := newCommand(t, controllers.NewRewriteController(stub), "")
		cmd.SetArgs([]string{"--dry-run", "--policy", "patch"})

		// when
		err := cmd.Execute()

		// then
		require.NoError(t, err)
		assert.True(t, stub.LastOpts.DryRun)
		assert.Contains(t, out.String(), "com.example:lib\t1.2.3 -> [1.2.3,1.3.0)")
	})

	t.Run("should fail in strict mode when versions were unparseable", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubRewriteCommand{Report: &commands.RewriteReport{
			Summary: entities.RewriteSummary{Total: 1, Unparseable: 1},
		}}
		cmd, _ := newCommand(t, controllers.NewRewriteController(stub), "")
		cmd.SetArgs([]string{"--strict"})

		// when
		err := cmd.Execute()

		// then
		require.ErrorIs(t, err, controllers.ErrUnparseableDependencies)
	})

	t.Run("should wrap command failures", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubRewriteCommand{ExecuteErr: errors.New("boom")}
		cmd, _ := newCommand(t, controllers.NewRewriteController(stub), "")
		cmd.SetArgs([]string{})

		// when
		err := cmd.Execute()

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rewrite failed")
	})
}

func TestListController_Execute(t *testing.T) {
	t.Parallel()

	t.Run("should print one row per dependency", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubListCommand{Listed: []commands.ListedManifest{{
			Path:    "pom.xml",
			Adapter: "maven",
			Dependencies: []commands.ListedDependency{
				{
					Dependency: entitybuilders.NewDependencyBuilder().WithGroup("com.example").WithArtifact("lib").
						WithVersion("1.2").WithLine(12).BuildDependency(),
					Parsed:    true,
					Canonical: "1.2.0",
				},
				{
					Dependency: entitybuilders.NewDependencyBuilder().WithGroup("com.example").WithArtifact("props").
						WithVersion("${v}").BuildDependency(),
				},
			},
		}}}
		cmd, out := newCommand(t, controllers.NewListController(stub), "")
		cmd.SetArgs([]string{"/repo"})

		// when
		err := cmd.Execute()

		// then
		require.NoError(t, err)
		assert.Equal(t, "/repo", stub.LastPath)
		assert.Contains(t, out.String(), "MANIFEST")
		assert.Contains(t, out.String(), "com.example:lib")
		assert.Contains(t, out.String(), "1.2.0")
		assert.Contains(t, out.String(), "unparseable")
	})
}

func TestRangeController_Execute(t *testing.T) {
	t.Parallel()

	t.Run("should print the range spec and pass the configured source", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubRangeCommand{Spec: "[1,3]"}
		cmd, out := newCommand(t, controllers.NewRangeController(stub),
			"maven:\n  base_url: https://mirror.example.com/maven2\n")
		cmd.SetArgs([]string{"--compatible", "1,2,3", "--available", "0,1,2,3,4"})

		// when
		err := cmd.Execute()

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "2", "3"}, stub.LastOpts.Compatible)
		assert.Equal(t, []string{"0", "1", "2", "3", "4"}, stub.LastOpts.Available)
		assert.Equal(t, "https://mirror.example.com/maven2", stub.LastOpts.Source.BaseURL)
		assert.Equal(t, "[1,3]\n", out.String())
	})

	t.Run("should require compatible versions", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubRangeCommand{}
		cmd, _ := newCommand(t, controllers.NewRangeController(stub), "")
		cmd.SetArgs([]string{"--coordinate", "com.example:lib"})

		// when
		err := cmd.Execute()

		// then
		require.Error(t, err)
		assert.Zero(t, stub.ExecuteCallCount)
	})
}
