package controllers

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/rangewriter/internal/domain/commands"
	"github.com/rios0rios0/rangewriter/internal/domain/entities"
)

// RangeController handles the "range" subcommand.
type RangeController struct {
	command commands.Range
}

// NewRangeController creates a new RangeController.
func NewRangeController(command commands.Range) *RangeController {
	return &RangeController{command: command}
}

// GetBind returns the Cobra command metadata for the range controller.
func (it *RangeController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "range",
		Short: "Build a Maven version range from compatible versions",
		Long: `Group the compatible versions that are consecutive among the available
ones into closed Maven ranges, e.g. "[1.0,1.2],[1.4]".

When --available is omitted the published versions of --coordinate are
fetched from the configured Maven repository (Maven Central by default).`,
	}
}

// Execute prints the range spec.
func (it *RangeController) Execute(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	compatible, _ := cmd.Flags().GetStringSlice("compatible")
	available, _ := cmd.Flags().GetStringSlice("available")
	coordinate, _ := cmd.Flags().GetString("coordinate")

	spec, err := it.command.Execute(context.Background(), commands.RangeOptions{
		Compatible: compatible,
		Available:  available,
		Coordinate: coordinate,
		Source:     settings.VersionsSource(),
	})
	if err != nil {
		return err
	}

	cmd.Println(spec)
	return nil
}

// AddFlags adds the range-specific flags to the given Cobra command.
func (it *RangeController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("compatible", nil, "Compatible versions (comma separated or repeated)")
	cmd.Flags().StringSlice("available", nil, "Available versions; fetched for --coordinate when omitted")
	cmd.Flags().String("coordinate", "", "Artifact coordinate as group:artifact")
	_ = cmd.MarkFlagRequired("compatible")
}
