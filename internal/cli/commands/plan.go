package commands

import (
	"strings"

	"wtr/internal/config"
	"wtr/internal/discovery"
	"wtr/internal/export"
	"wtr/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// PlanCommand handles the plan command
type PlanCommand struct {
	config    *config.Config
	scanner   *discovery.Scanner
	filter    *discovery.Filter
	formatter *ui.Formatter
	exporter  export.Exporter
}

// NewPlanCommand creates a new PlanCommand
func NewPlanCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	formatter *ui.Formatter,
	exporter export.Exporter,
) *PlanCommand {
	return &PlanCommand{
		config:    cfg,
		scanner:   scanner,
		filter:    filter,
		formatter: formatter,
		exporter:  exporter,
	}
}

// Execute runs the command
func (pc *PlanCommand) Execute(cmd *cobra.Command, args []string) error {
	cases, err := discoverCases(pc.config, pc.scanner)
	if err != nil {
		return err
	}

	// Filter cases
	cases = pc.filter.FilterByName(cases, pc.config.Flags.NameFilter)

	if len(cases) == 0 {
		color.Yellow("No cases found")
		return nil
	}

	plan, err := buildPlan(pc.config, cases)
	if err != nil {
		return err
	}

	// Mark cases that failed in the last run, when a report exists
	failedCases := make(map[string]struct{})
	if report, err := pc.exporter.Load(); err == nil {
		for _, suite := range report.FailedSuites() {
			for _, failure := range suite.Failures {
				failedCases[strings.ToLower(failure.CaseName)] = struct{}{}
			}
		}
	}

	return pc.formatter.PrintPlan(&plan, pc.config.Flags.ShowCases, failedCases)
}
