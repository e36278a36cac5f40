package commands

import (
	"wtr/internal/config"
	"wtr/internal/export"
	"wtr/internal/ui"

	"github.com/spf13/cobra"
)

// FailsCommand handles the fails command
type FailsCommand struct {
	config   *config.Config
	exporter export.Exporter
	viewer   ui.Viewer
}

// NewFailsCommand creates a new FailsCommand
func NewFailsCommand(cfg *config.Config, exporter export.Exporter, viewer ui.Viewer) *FailsCommand {
	return &FailsCommand{
		config:   cfg,
		exporter: exporter,
		viewer:   viewer,
	}
}

// Execute runs the command
func (fc *FailsCommand) Execute(cmd *cobra.Command, args []string) error {
	report, err := fc.exporter.Load()
	if err != nil {
		return err
	}

	return fc.viewer.View(report)
}
