package controllers

import (
	"context"

	"github.com/cockroachdb/errors"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/rangewriter/internal/domain/commands"
	"github.com/rios0rios0/rangewriter/internal/domain/entities"
)

// ErrUnparseableDependencies is returned by "rewrite --strict" when some
// versions could not be parsed.
var ErrUnparseableDependencies = errors.New("some dependency versions could not be parsed")

// RewriteController handles the "rewrite" subcommand.
type RewriteController struct {
	command commands.Rewrite
}

// NewRewriteController creates a new RewriteController.
func NewRewriteController(command commands.Rewrite) *RewriteController {
	return &RewriteController{command: command}
}

// GetBind returns the Cobra command metadata for the rewrite controller.
func (it *RewriteController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "rewrite [path]",
		Short: "Rewrite dependency versions into constraints",
		Long: `Rewrite every pinned dependency version found in the manifests under path
(pom.xml, go.mod, *.tf, MODULE.bazel, requirements.txt) into a constraint chosen by the policy:

  exact   keep the version, formatted canonically      1.2.3
  patch   allow patch upgrades                         [1.2.3,1.3.0)
  minor   allow minor and patch upgrades               [1.2.3,2.0.0)
  fixed   replace every version with --fixed VALUE     404

Versions that cannot be parsed are left as they are.`,
	}
}

// Execute runs the rewrite.
func (it *RewriteController) Execute(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("policy") {
		settings.Policy, _ = cmd.Flags().GetString("policy")
	}
	if cmd.Flags().Changed("fixed") {
		settings.Fixed, _ = cmd.Flags().GetString("fixed")
	}

	policy, err := settings.DefaultPolicy()
	if err != nil {
		return err
	}
	selector, err := settings.Selector(policy)
	if err != nil {
		return err
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	changelog, _ := cmd.Flags().GetString("changelog")
	commit, _ := cmd.Flags().GetBool("commit")
	adapter, _ := cmd.Flags().GetString("adapter")
	strict, _ := cmd.Flags().GetBool("strict")

	logger.Infof("Rewriting with policy %s...", policy)

	report, err := it.command.Execute(context.Background(), commands.RewriteOptions{
		Path:          pathArgument(args),
		Selector:      selector,
		Exclude:       settings.IsExcluded,
		AdapterName:   adapter,
		DryRun:        dryRun,
		ChangelogPath: changelog,
		Commit:        commit,
	})
	if err != nil {
		return errors.Wrap(err, "rewrite failed")
	}

	if dryRun {
		for _, result := range report.Results() {
			if result.Changed() {
				cmd.Printf("%s\t%s -> %s\n", result.Dependency.Coordinate(), result.Original, result.Constraint)
			}
		}
	}

	if strict && report.Summary.Unparseable > 0 {
		return errors.Wrapf(ErrUnparseableDependencies, "%d unparseable", report.Summary.Unparseable)
	}
	return nil
}

// AddFlags adds the rewrite-specific flags to the given Cobra command.
func (it *RewriteController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("policy", "p", "", "Constraint policy: exact, patch, minor or fixed (default: config or exact)")
	cmd.Flags().String("fixed", "", "Literal constraint used by the fixed policy")
	cmd.Flags().String("changelog", "", "Record changed constraints in this CHANGELOG.md")
	cmd.Flags().Bool("commit", false, "Commit the rewritten files in the enclosing Git repository")
	cmd.Flags().String("adapter", "", "Only process this manifest type (maven, golang, terraform, bazel, python)")
	cmd.Flags().Bool("strict", false, "Fail when some versions could not be parsed")
}
