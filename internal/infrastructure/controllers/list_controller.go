package controllers

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/rangewriter/internal/domain/commands"
	"github.com/rios0rios0/rangewriter/internal/domain/entities"
)

const (
	tabMinWidth = 0
	tabWidth    = 4
	tabPadding  = 2
)

// ListController handles the "list" subcommand.
type ListController struct {
	command commands.List
}

// NewListController creates a new ListController.
func NewListController(command commands.List) *ListController {
	return &ListController{command: command}
}

// GetBind returns the Cobra command metadata for the list controller.
func (it *ListController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "list [path]",
		Short: "List declared dependencies and whether their versions parse",
		Long: `List every dependency declared in the manifests under path, with the
canonical form of its version or "unparseable" when it would be left as is.`,
	}
}

// Execute prints one line per dependency.
func (it *ListController) Execute(cmd *cobra.Command, args []string) error {
	if _, err := loadSettings(cmd); err != nil {
		return err
	}

	listed, err := it.command.Execute(context.Background(), pathArgument(args))
	if err != nil {
		return err
	}

	writer := tabwriter.NewWriter(cmd.OutOrStdout(), tabMinWidth, tabWidth, tabPadding, ' ', 0)
	_, _ = fmt.Fprintln(writer, "MANIFEST\tLINE\tDEPENDENCY\tDECLARED\tSTATUS")
	for _, manifest := range listed {
		for _, item := range manifest.Dependencies {
			status := "unparseable"
			if item.Parsed {
				status = item.Canonical
				if item.Prerelease {
					status += " (pre-release)"
				}
			}
			_, _ = fmt.Fprintf(writer, "%s\t%d\t%s\t%s\t%s\n",
				manifest.Path, item.Dependency.Line, item.Dependency.Coordinate(), item.Dependency.Version, status)
		}
	}
	return writer.Flush()
}

// AddFlags adds no list-specific flags.
func (it *ListController) AddFlags(*cobra.Command) {}
