package commands

import (
	"wtr/internal/config"
	"wtr/internal/provision"

	"github.com/spf13/cobra"
)

// PrepareCommand handles the prepare command
type PrepareCommand struct {
	config   *config.Config
	preparer provision.Preparer
}

// NewPrepareCommand creates a new PrepareCommand
func NewPrepareCommand(cfg *config.Config, preparer provision.Preparer) *PrepareCommand {
	return &PrepareCommand{
		config:   cfg,
		preparer: preparer,
	}
}

// Execute runs the command
func (pc *PrepareCommand) Execute(cmd *cobra.Command, args []string) error {
	return pc.preparer.Prepare(cmd.Context(), pc.config.MaxWorkers)
}
